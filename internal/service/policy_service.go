package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jdu211171/schedule-website-sub007/pkg/redis"

	"github.com/jdu211171/schedule-website-sub007/internal/model"
	"github.com/jdu211171/schedule-website-sub007/internal/repository"
)

const (
	branchPolicyCacheTTL = 5 * time.Minute

	minGenerationMonths  = 1
	warnGenerationMonths = 12
)

// EffectiveSchedulingConfig is a fully resolved policy: every knob has a
// concrete value after layering series over branch over global defaults.
type EffectiveSchedulingConfig struct {
	MarkAsConflicted                map[string]bool
	AllowOutsideAvailabilityTeacher bool
	AllowOutsideAvailabilityStudent bool
	GenerationMonths                int
}

// defaultSchedulingConfig is the global base layer: hard conflicts mark,
// soft availability reasons do not, and generation looks one month ahead.
func defaultSchedulingConfig() *EffectiveSchedulingConfig {
	return &EffectiveSchedulingConfig{
		MarkAsConflicted: map[string]bool{
			model.ConflictTeacher:              true,
			model.ConflictStudent:              true,
			model.ConflictBooth:                true,
			model.ConflictTeacherUnavailable:   false,
			model.ConflictStudentUnavailable:   false,
			model.ConflictTeacherWrongTime:     false,
			model.ConflictStudentWrongTime:     false,
			model.ConflictNoSharedAvailability: false,
		},
		AllowOutsideAvailabilityTeacher: false,
		AllowOutsideAvailabilityStudent: false,
		GenerationMonths:                1,
	}
}

// applyPolicy overlays one sparse policy layer. Only set fields override.
func applyPolicy(cfg *EffectiveSchedulingConfig, p *model.ConflictPolicy) {
	if p == nil {
		return
	}

	setMark := func(conflictType string, v *bool) {
		if v != nil {
			cfg.MarkAsConflicted[conflictType] = *v
		}
	}
	setMark(model.ConflictTeacher, p.MarkTeacherConflict)
	setMark(model.ConflictStudent, p.MarkStudentConflict)
	setMark(model.ConflictBooth, p.MarkBoothConflict)
	setMark(model.ConflictTeacherUnavailable, p.MarkTeacherUnavailable)
	setMark(model.ConflictStudentUnavailable, p.MarkStudentUnavailable)
	setMark(model.ConflictTeacherWrongTime, p.MarkTeacherWrongTime)
	setMark(model.ConflictStudentWrongTime, p.MarkStudentWrongTime)
	setMark(model.ConflictNoSharedAvailability, p.MarkNoSharedAvailability)

	if p.AllowOutsideAvailabilityTeacher != nil {
		cfg.AllowOutsideAvailabilityTeacher = *p.AllowOutsideAvailabilityTeacher
	}
	if p.AllowOutsideAvailabilityStudent != nil {
		cfg.AllowOutsideAvailabilityStudent = *p.AllowOutsideAvailabilityStudent
	}
	if p.GenerationMonths != nil {
		cfg.GenerationMonths = *p.GenerationMonths
	}
}

// PolicyService resolves effective scheduling policies and manages branch
// defaults.
type PolicyService struct {
	configs repository.SchedulingConfigRepository
	cache   *redis.Client
	log     *zap.Logger
}

// NewPolicyService builds the policy resolver. cache may be nil.
func NewPolicyService(configs repository.SchedulingConfigRepository, cache *redis.Client, log *zap.Logger) *PolicyService {
	return &PolicyService{configs: configs, cache: cache, log: log}
}

func branchPolicyCacheKey(branchID string) string {
	return "scheduling:branch_policy:" + branchID
}

// branchPolicy loads the branch layer, consulting the cache first. A branch
// with no stored config yields an empty policy (inherit everything).
func (s *PolicyService) branchPolicy(ctx context.Context, branchID string) (*model.ConflictPolicy, error) {
	key := branchPolicyCacheKey(branchID)

	var cached model.ConflictPolicy
	hit, err := s.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		s.log.Warn("branch policy cache read failed", zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	cfg, err := s.configs.GetByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("load branch scheduling config: %w", err)
	}

	policy := &model.ConflictPolicy{}
	if cfg != nil {
		policy = &cfg.Policy
	}

	if err := s.cache.SetJSON(ctx, key, policy, branchPolicyCacheTTL); err != nil {
		s.log.Warn("branch policy cache write failed", zap.Error(err))
	}
	return policy, nil
}

// Resolve layers the series override over the branch defaults over the global
// defaults and validates the result. Returned warnings describe values that
// were clamped or look like misconfiguration; the config is always usable.
func (s *PolicyService) Resolve(ctx context.Context, branchID string, seriesOverride *model.ConflictPolicy) (*EffectiveSchedulingConfig, []string, error) {
	cfg := defaultSchedulingConfig()

	branchLayer, err := s.branchPolicy(ctx, branchID)
	if err != nil {
		return nil, nil, err
	}
	applyPolicy(cfg, branchLayer)
	applyPolicy(cfg, seriesOverride)

	var warnings []string

	if cfg.GenerationMonths < minGenerationMonths {
		warnings = append(warnings, fmt.Sprintf(
			"generation_months %d is below the minimum, using %d",
			cfg.GenerationMonths, minGenerationMonths))
		cfg.GenerationMonths = minGenerationMonths
	}
	if cfg.GenerationMonths > warnGenerationMonths {
		warnings = append(warnings, fmt.Sprintf(
			"generation_months %d is unusually large, sessions will be generated %d months ahead",
			cfg.GenerationMonths, cfg.GenerationMonths))
	}

	if !cfg.MarkAsConflicted[model.ConflictTeacher] &&
		!cfg.MarkAsConflicted[model.ConflictStudent] &&
		!cfg.MarkAsConflicted[model.ConflictBooth] {
		warnings = append(warnings,
			"all hard conflict types are unmarked, double bookings will be created as CONFIRMED")
	}

	return cfg, warnings, nil
}

// UpsertBranchPolicy merges the patch into the stored branch defaults. Only
// fields set in the patch change.
func (s *PolicyService) UpsertBranchPolicy(ctx context.Context, branchID string, patch *model.ConflictPolicy) (*model.ConflictPolicy, error) {
	existing, err := s.configs.GetByBranch(ctx, branchID)
	if err != nil {
		return nil, fmt.Errorf("load branch scheduling config: %w", err)
	}

	merged := model.ConflictPolicy{}
	if existing != nil {
		merged = existing.Policy
	}
	mergePolicy(&merged, patch)

	if err := s.configs.Upsert(ctx, &model.BranchSchedulingConfig{
		BranchID: branchID,
		Policy:   merged,
	}); err != nil {
		return nil, fmt.Errorf("save branch scheduling config: %w", err)
	}

	if err := s.cache.Delete(ctx, branchPolicyCacheKey(branchID)); err != nil {
		s.log.Warn("branch policy cache invalidation failed", zap.Error(err))
	}

	return &merged, nil
}

// mergePolicy copies set fields of patch into dst.
func mergePolicy(dst, patch *model.ConflictPolicy) {
	if patch == nil {
		return
	}
	if patch.MarkTeacherConflict != nil {
		dst.MarkTeacherConflict = patch.MarkTeacherConflict
	}
	if patch.MarkStudentConflict != nil {
		dst.MarkStudentConflict = patch.MarkStudentConflict
	}
	if patch.MarkBoothConflict != nil {
		dst.MarkBoothConflict = patch.MarkBoothConflict
	}
	if patch.MarkTeacherUnavailable != nil {
		dst.MarkTeacherUnavailable = patch.MarkTeacherUnavailable
	}
	if patch.MarkStudentUnavailable != nil {
		dst.MarkStudentUnavailable = patch.MarkStudentUnavailable
	}
	if patch.MarkTeacherWrongTime != nil {
		dst.MarkTeacherWrongTime = patch.MarkTeacherWrongTime
	}
	if patch.MarkStudentWrongTime != nil {
		dst.MarkStudentWrongTime = patch.MarkStudentWrongTime
	}
	if patch.MarkNoSharedAvailability != nil {
		dst.MarkNoSharedAvailability = patch.MarkNoSharedAvailability
	}
	if patch.AllowOutsideAvailabilityTeacher != nil {
		dst.AllowOutsideAvailabilityTeacher = patch.AllowOutsideAvailabilityTeacher
	}
	if patch.AllowOutsideAvailabilityStudent != nil {
		dst.AllowOutsideAvailabilityStudent = patch.AllowOutsideAvailabilityStudent
	}
	if patch.GenerationMonths != nil {
		dst.GenerationMonths = patch.GenerationMonths
	}
}
