package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	apperrors "github.com/jdu211171/schedule-website-sub007/pkg/errors"
	"github.com/jdu211171/schedule-website-sub007/pkg/timeslot"

	"github.com/jdu211171/schedule-website-sub007/internal/model"
	"github.com/jdu211171/schedule-website-sub007/internal/repository"
)

// ── class series ──

type mockSeriesRepo struct {
	series map[string]*model.ClassSeries
}

func newMockSeriesRepo() *mockSeriesRepo {
	return &mockSeriesRepo{series: make(map[string]*model.ClassSeries)}
}

func (m *mockSeriesRepo) put(s *model.ClassSeries) {
	copied := *s
	m.series[s.ID] = &copied
}

func (m *mockSeriesRepo) Create(ctx context.Context, s *model.ClassSeries) error {
	m.put(s)
	return nil
}

func (m *mockSeriesRepo) GetByID(ctx context.Context, id string) (*model.ClassSeries, error) {
	s, ok := m.series[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *mockSeriesRepo) List(ctx context.Context, filter repository.ClassSeriesFilter) ([]model.ClassSeries, int64, error) {
	var list []model.ClassSeries
	for _, s := range m.series {
		if filter.BranchID != "" && s.BranchID != filter.BranchID {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		list = append(list, *s)
	}
	return list, int64(len(list)), nil
}

func (m *mockSeriesRepo) ListActive(ctx context.Context, branchID, seriesID *string, limit int) ([]model.ClassSeries, error) {
	var list []model.ClassSeries
	for _, s := range m.series {
		if s.Status != model.SeriesStatusActive {
			continue
		}
		if branchID != nil && *branchID != "" && s.BranchID != *branchID {
			continue
		}
		if seriesID != nil && *seriesID != "" && s.ID != *seriesID {
			continue
		}
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (m *mockSeriesRepo) Update(ctx context.Context, s *model.ClassSeries) error {
	stored, ok := m.series[s.ID]
	if !ok || stored.Version != s.Version {
		return apperrors.ErrOptimisticLock
	}
	s.Version++
	copied := *s
	copied.LastGeneratedThrough = stored.LastGeneratedThrough
	m.series[s.ID] = &copied
	return nil
}

func (m *mockSeriesRepo) UpdateWatermark(ctx context.Context, id string, through time.Time) error {
	s, ok := m.series[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t := through
	s.LastGeneratedThrough = &t
	return nil
}

// ── class sessions ──

type mockSessionRepo struct {
	sessions map[string]*model.ClassSession
	// failDates makes Create fail for specific date keys.
	failDates map[string]bool
	creates   int
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{
		sessions:  make(map[string]*model.ClassSession),
		failDates: make(map[string]bool),
	}
}

func (m *mockSessionRepo) put(s *model.ClassSession) {
	copied := *s
	m.sessions[s.ID] = &copied
}

func (m *mockSessionRepo) Create(ctx context.Context, s *model.ClassSession) error {
	m.creates++
	if m.failDates[timeslot.DateKey(s.Date)] {
		return fmt.Errorf("simulated insert failure")
	}
	m.put(s)
	return nil
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id string) (*model.ClassSession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *s
	return &copied, nil
}

func (m *mockSessionRepo) List(ctx context.Context, filter repository.ClassSessionFilter) ([]model.ClassSession, int64, error) {
	var list []model.ClassSession
	for _, s := range m.sessions {
		if filter.SeriesID != "" && (s.SeriesID == nil || *s.SeriesID != filter.SeriesID) {
			continue
		}
		if filter.Status != "" && s.Status != filter.Status {
			continue
		}
		list = append(list, *s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list, int64(len(list)), nil
}

func (m *mockSessionRepo) ListByDateRange(ctx context.Context, branchID string, from, to time.Time) ([]model.ClassSession, error) {
	var list []model.ClassSession
	for _, s := range m.sessions {
		if s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		if branchID != "" && s.BranchID != branchID {
			continue
		}
		list = append(list, *s)
	}
	return list, nil
}

func (m *mockSessionRepo) ListByDate(ctx context.Context, date time.Time) ([]model.ClassSession, error) {
	var list []model.ClassSession
	for _, s := range m.sessions {
		if s.Date.Equal(date) {
			list = append(list, *s)
		}
	}
	return list, nil
}

func (m *mockSessionRepo) ListDatesBySeries(ctx context.Context, seriesID string, from, to time.Time) ([]time.Time, error) {
	var dates []time.Time
	for _, s := range m.sessions {
		if s.SeriesID == nil || *s.SeriesID != seriesID {
			continue
		}
		if s.Date.Before(from) || s.Date.After(to) {
			continue
		}
		dates = append(dates, s.Date)
	}
	return dates, nil
}

func (m *mockSessionRepo) Update(ctx context.Context, s *model.ClassSession) error {
	stored, ok := m.sessions[s.ID]
	if !ok || stored.Version != s.Version {
		return apperrors.ErrOptimisticLock
	}
	s.Version++
	m.put(s)
	return nil
}

func (m *mockSessionRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	s, ok := m.sessions[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	s.Status = status
	return nil
}

func (m *mockSessionRepo) bySeries(seriesID string) []model.ClassSession {
	var list []model.ClassSession
	for _, s := range m.sessions {
		if s.SeriesID != nil && *s.SeriesID == seriesID {
			list = append(list, *s)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Date.Before(list[j].Date) })
	return list
}

// ── availability ──

type mockAvailabilityRepo struct {
	rows []model.Availability
}

func (m *mockAvailabilityRepo) ListByUser(ctx context.Context, userID, userType string) ([]model.Availability, error) {
	var list []model.Availability
	for _, r := range m.rows {
		if r.UserID == userID && r.UserType == userType {
			list = append(list, r)
		}
	}
	return list, nil
}

func (m *mockAvailabilityRepo) ReplaceByUser(ctx context.Context, userID, userType string, slots []model.Availability) error {
	var kept []model.Availability
	for _, r := range m.rows {
		if r.UserID != userID || r.UserType != userType {
			kept = append(kept, r)
		}
	}
	m.rows = append(kept, slots...)
	return nil
}

// ── scheduling config ──

type mockConfigRepo struct {
	configs map[string]*model.BranchSchedulingConfig
}

func newMockConfigRepo() *mockConfigRepo {
	return &mockConfigRepo{configs: make(map[string]*model.BranchSchedulingConfig)}
}

func (m *mockConfigRepo) GetByBranch(ctx context.Context, branchID string) (*model.BranchSchedulingConfig, error) {
	cfg, ok := m.configs[branchID]
	if !ok {
		return nil, nil
	}
	copied := *cfg
	return &copied, nil
}

func (m *mockConfigRepo) Upsert(ctx context.Context, cfg *model.BranchSchedulingConfig) error {
	copied := *cfg
	m.configs[cfg.BranchID] = &copied
	return nil
}

// ── class types ──

type mockClassTypeRepo struct {
	types map[string]*model.ClassType
}

func newMockClassTypeRepo() *mockClassTypeRepo {
	return &mockClassTypeRepo{types: make(map[string]*model.ClassType)}
}

func (m *mockClassTypeRepo) GetByID(ctx context.Context, id string) (*model.ClassType, error) {
	ct, ok := m.types[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *ct
	return &copied, nil
}

func (m *mockClassTypeRepo) List(ctx context.Context) ([]model.ClassType, error) {
	var list []model.ClassType
	for _, ct := range m.types {
		list = append(list, *ct)
	}
	return list, nil
}

// ── notifications ──

type mockNotificationRepo struct {
	created []model.Notification
}

func (m *mockNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	m.created = append(m.created, *n)
	return nil
}

func (m *mockNotificationRepo) List(ctx context.Context, userID string, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error) {
	return m.created, int64(len(m.created)), nil
}

func (m *mockNotificationRepo) MarkRead(ctx context.Context, id string) error {
	return nil
}

// ── helpers ──

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
func intPtr(n int) *int       { return &n }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
