package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/jdu211171/schedule-website-sub007/pkg/timeslot"

	"github.com/jdu211171/schedule-website-sub007/internal/dto"
	"github.com/jdu211171/schedule-website-sub007/internal/model"
	"github.com/jdu211171/schedule-website-sub007/internal/repository"
)

var (
	ErrSeriesNotFound  = errors.New("class series not found")
	ErrSeriesNotActive = errors.New("class series is not active")
	ErrEmptyDaysOfWeek = errors.New("class series has no days of week")
)

// GenerateOptions tune one generation run. Zero values mean "use the
// resolved policy / configuration".
type GenerateOptions struct {
	// LeadDays overrides the policy's generation horizon when positive.
	LeadDays int
	// Limit caps how many series are processed when positive.
	Limit int
	// BranchID restricts the run to one branch.
	BranchID *string
	// SeriesID restricts the run to one series.
	SeriesID *string
}

// GenerationService materializes class sessions from active series up to a
// rolling horizon. Runs are idempotent: existing dates are skipped and the
// per-series watermark only moves forward.
type GenerationService struct {
	series         repository.ClassSeriesRepository
	sessions       repository.ClassSessionRepository
	availabilities repository.AvailabilityRepository
	policy         *PolicyService
	classTypes     *ClassTypeService
	sink           WarningSink
	log            *zap.Logger

	maxSeriesPerRun int

	// now is injectable for tests.
	now func() time.Time
}

// NewGenerationService wires the generation engine.
func NewGenerationService(
	series repository.ClassSeriesRepository,
	sessions repository.ClassSessionRepository,
	availabilities repository.AvailabilityRepository,
	policy *PolicyService,
	classTypes *ClassTypeService,
	sink WarningSink,
	maxSeriesPerRun int,
	log *zap.Logger,
) *GenerationService {
	return &GenerationService{
		series:          series,
		sessions:        sessions,
		availabilities:  availabilities,
		policy:          policy,
		classTypes:      classTypes,
		sink:            sink,
		log:             log,
		maxSeriesPerRun: maxSeriesPerRun,
		now:             time.Now,
	}
}

// AdvanceSeries generates sessions for one series up to its horizon.
func (s *GenerationService) AdvanceSeries(ctx context.Context, seriesID string, opts GenerateOptions) (*dto.SeriesGenerationResult, error) {
	series, err := s.series.GetByID(ctx, seriesID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeriesNotFound
		}
		return nil, fmt.Errorf("load series: %w", err)
	}
	if series.Status != model.SeriesStatusActive {
		return nil, ErrSeriesNotActive
	}
	return s.advance(ctx, series, opts)
}

// GenerateForActiveSeries runs generation across all matching active series.
// Per-series failures are reported in the summary, never aborting the run.
func (s *GenerationService) GenerateForActiveSeries(ctx context.Context, opts GenerateOptions) (*dto.GenerationSummary, error) {
	started := s.now()

	limit := opts.Limit
	if limit <= 0 {
		limit = s.maxSeriesPerRun
	}

	seriesList, err := s.series.ListActive(ctx, opts.BranchID, opts.SeriesID, limit)
	if err != nil {
		return nil, fmt.Errorf("list active series: %w", err)
	}

	summary := &dto.GenerationSummary{
		Details: make([]dto.SeriesGenerationResult, 0, len(seriesList)),
	}
	typeCache := make(map[string]bool)

	for i := range seriesList {
		series := &seriesList[i]
		summary.Processed++

		result, err := s.advanceWithTypeCache(ctx, series, opts, typeCache)
		if err != nil {
			s.log.Error("series generation failed",
				zap.String("series_id", series.ID),
				zap.Error(err),
			)
			summary.Failed++
			summary.Details = append(summary.Details, dto.SeriesGenerationResult{
				SeriesID: series.ID,
				Error:    err.Error(),
			})
			continue
		}

		if result.UpToDate {
			summary.UpToDate++
		}
		summary.Created.Confirmed += result.CreatedConfirmed
		summary.Created.Conflicted += result.CreatedConflicted
		summary.Skipped += result.Skipped
		summary.Failed += result.Failed
		summary.Details = append(summary.Details, *result)
	}

	summary.DurationMs = time.Since(started).Milliseconds()

	s.log.Info("generation run finished",
		zap.Int("processed", summary.Processed),
		zap.Int("created_confirmed", summary.Created.Confirmed),
		zap.Int("created_conflicted", summary.Created.Conflicted),
		zap.Int("skipped", summary.Skipped),
		zap.Int("failed", summary.Failed),
		zap.Int64("duration_ms", summary.DurationMs),
	)
	return summary, nil
}

func (s *GenerationService) advance(ctx context.Context, series *model.ClassSeries, opts GenerateOptions) (*dto.SeriesGenerationResult, error) {
	return s.advanceWithTypeCache(ctx, series, opts, make(map[string]bool))
}

func (s *GenerationService) advanceWithTypeCache(ctx context.Context, series *model.ClassSeries, opts GenerateOptions, typeCache map[string]bool) (*dto.SeriesGenerationResult, error) {
	if len(series.DaysOfWeek) == 0 {
		return nil, ErrEmptyDaysOfWeek
	}

	result := &dto.SeriesGenerationResult{SeriesID: series.ID}

	cfg, warnings, err := s.policy.Resolve(ctx, series.BranchID, series.ConflictPolicy)
	if err != nil {
		return nil, fmt.Errorf("resolve policy: %w", err)
	}
	if len(warnings) > 0 {
		result.Warnings = warnings
		s.sink.Record(ctx, "class_series", series.ID, warnings)
	}

	leadDays := opts.LeadDays
	if leadDays <= 0 {
		leadDays = cfg.GenerationMonths * 30
	}
	if leadDays < 1 {
		leadDays = 1
	}

	today := timeslot.DateOnly(s.now())
	horizon := today.AddDate(0, 0, leadDays)
	if series.EndDate != nil {
		endDate := timeslot.DateOnly(*series.EndDate)
		if endDate.Before(horizon) {
			horizon = endDate
		}
	}

	cursor := timeslot.DateOnly(series.StartDate)
	if series.LastGeneratedThrough != nil {
		next := timeslot.DateOnly(*series.LastGeneratedThrough).AddDate(0, 0, 1)
		if next.After(cursor) {
			cursor = next
		}
	}

	if cursor.After(horizon) {
		result.UpToDate = true
		return result, nil
	}

	existingDates, err := s.sessions.ListDatesBySeries(ctx, series.ID, cursor, horizon)
	if err != nil {
		return nil, fmt.Errorf("load existing session dates: %w", err)
	}
	existing := make(map[string]bool, len(existingDates))
	for _, d := range existingDates {
		existing[timeslot.DateKey(d)] = true
	}

	neighborList, err := s.sessions.ListByDateRange(ctx, "", cursor, horizon)
	if err != nil {
		return nil, fmt.Errorf("load neighbor sessions: %w", err)
	}
	neighborsByDate := make(map[string][]model.ClassSession)
	for _, n := range neighborList {
		key := timeslot.DateKey(n.Date)
		neighborsByDate[key] = append(neighborsByDate[key], n)
	}

	var teacherSlots, studentSlots []model.Availability
	if series.TeacherID != nil {
		teacherSlots, err = s.availabilities.ListByUser(ctx, *series.TeacherID, model.UserTypeTeacher)
		if err != nil {
			return nil, fmt.Errorf("load teacher availability: %w", err)
		}
	}
	if series.StudentID != nil {
		studentSlots, err = s.availabilities.ListByUser(ctx, *series.StudentID, model.UserTypeStudent)
		if err != nil {
			return nil, fmt.Errorf("load student availability: %w", err)
		}
	}

	special, err := s.classTypes.IsSpecial(ctx, series.ClassTypeID, typeCache)
	if err != nil {
		return nil, fmt.Errorf("resolve class type: %w", err)
	}

	startMin, err := timeslot.MinuteOfDay(series.StartTime)
	if err != nil {
		return nil, fmt.Errorf("series start time: %w", err)
	}
	endMin, err := timeslot.MinuteOfDay(series.EndTime)
	if err != nil {
		return nil, fmt.Errorf("series end time: %w", err)
	}
	duration := endMin - startMin

	var firstFailed *time.Time

	for date := cursor; !date.After(horizon); date = date.AddDate(0, 0, 1) {
		if !series.DaysOfWeek.Contains(timeslot.Weekday(date)) {
			continue
		}
		if existing[timeslot.DateKey(date)] {
			result.Skipped++
			continue
		}

		cand := sessionCandidate{
			Date:      date,
			StartMin:  startMin,
			EndMin:    endMin,
			TeacherID: series.TeacherID,
			StudentID: series.StudentID,
			BoothID:   series.BoothID,
		}

		reasons := classifyHardConflicts(cand, neighborsByDate[timeslot.DateKey(date)])
		if !special {
			soft := classifyAvailability(cand, teacherSlots, studentSlots)
			soft = filterAllowedAvailability(soft,
				cfg.AllowOutsideAvailabilityTeacher,
				cfg.AllowOutsideAvailabilityStudent)
			reasons = append(reasons, soft...)
		}

		status := model.SessionStatusConfirmed
		for _, r := range reasons {
			if cfg.MarkAsConflicted[r.Type] {
				status = model.SessionStatusConflicted
				break
			}
		}

		seriesID := series.ID
		session := &model.ClassSession{
			VersionedModel: model.VersionedModel{
				BaseModel: model.BaseModel{ID: uuid.NewString()},
				Version:   1,
			},
			SeriesID:    &seriesID,
			BranchID:    series.BranchID,
			TeacherID:   series.TeacherID,
			StudentID:   series.StudentID,
			SubjectID:   series.SubjectID,
			ClassTypeID: series.ClassTypeID,
			BoothID:     series.BoothID,
			Date:        date,
			StartTime:   series.StartTime,
			EndTime:     series.EndTime,
			Duration:    &duration,
			Status:      status,
		}

		if err := s.sessions.Create(ctx, session); err != nil {
			s.log.Error("create generated session failed",
				zap.String("series_id", series.ID),
				zap.String("date", timeslot.DateKey(date)),
				zap.Error(err),
			)
			result.Failed++
			if firstFailed == nil {
				d := date
				firstFailed = &d
			}
			continue
		}

		// neighbors gain the new session so later dates in this run see it
		key := timeslot.DateKey(date)
		neighborsByDate[key] = append(neighborsByDate[key], *session)

		if status == model.SessionStatusConflicted {
			result.CreatedConflicted++
		} else {
			result.CreatedConfirmed++
		}
	}

	// Advance the watermark to the last date whose whole prefix succeeded.
	newWatermark := horizon
	if firstFailed != nil {
		newWatermark = firstFailed.AddDate(0, 0, -1)
	}

	advance := !newWatermark.Before(timeslot.DateOnly(series.StartDate))
	if series.LastGeneratedThrough != nil {
		advance = newWatermark.After(timeslot.DateOnly(*series.LastGeneratedThrough))
	}
	if advance {
		if err := s.series.UpdateWatermark(ctx, series.ID, newWatermark); err != nil {
			return nil, fmt.Errorf("update watermark: %w", err)
		}
		through := timeslot.DateKey(newWatermark)
		result.GeneratedThrough = &through
	}

	return result, nil
}
