package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/jdu211171/schedule-website-sub007/internal/dto"
	"github.com/jdu211171/schedule-website-sub007/internal/model"
)

func newTestSeriesService() (*ClassSeriesService, *mockSeriesRepo, *mockConfigRepo) {
	seriesRepo := newMockSeriesRepo()
	configs := newMockConfigRepo()
	policy := NewPolicyService(configs, nil, zap.NewNop())
	return NewClassSeriesService(seriesRepo, policy, zap.NewNop()), seriesRepo, configs
}

func validCreateRequest() *dto.CreateClassSeriesRequest {
	return &dto.CreateClassSeriesRequest{
		BranchID:   "branch-1",
		TeacherID:  strPtr("t1"),
		StudentID:  strPtr("s1"),
		StartDate:  "2025-01-01",
		StartTime:  "16:00",
		EndTime:    "17:30",
		DaysOfWeek: []int{1, 3, 5},
	}
}

func TestCreateSeries(t *testing.T) {
	svc, seriesRepo, _ := newTestSeriesService()
	ctx := context.Background()

	series, err := svc.Create(ctx, validCreateRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if series.Status != model.SeriesStatusActive {
		t.Errorf("status = %s, want ACTIVE", series.Status)
	}
	if series.Duration == nil || *series.Duration != 90 {
		t.Errorf("duration = %v, want 90", series.Duration)
	}
	if series.LastGeneratedThrough != nil {
		t.Error("a new series has no watermark")
	}
	if _, err := seriesRepo.GetByID(ctx, series.ID); err != nil {
		t.Errorf("series not persisted: %v", err)
	}
}

func TestCreateSeriesValidation(t *testing.T) {
	svc, _, _ := newTestSeriesService()
	ctx := context.Background()

	cases := []struct {
		name    string
		mutate  func(*dto.CreateClassSeriesRequest)
		wantErr error
	}{
		{"empty days", func(r *dto.CreateClassSeriesRequest) { r.DaysOfWeek = nil }, ErrEmptyDaysOfWeek},
		{"weekday out of range", func(r *dto.CreateClassSeriesRequest) { r.DaysOfWeek = []int{1, 7} }, ErrInvalidDaysOfWeek},
		{"duplicate weekday", func(r *dto.CreateClassSeriesRequest) { r.DaysOfWeek = []int{1, 1} }, ErrInvalidDaysOfWeek},
		{"inverted window", func(r *dto.CreateClassSeriesRequest) { r.StartTime = "18:00"; r.EndTime = "17:00" }, ErrInvalidTimeWindow},
		{"zero length window", func(r *dto.CreateClassSeriesRequest) { r.EndTime = "16:00" }, ErrInvalidTimeWindow},
		{"end before start date", func(r *dto.CreateClassSeriesRequest) { r.EndDate = strPtr("2024-12-01") }, ErrInvalidDateRange},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(req)
			if _, err := svc.Create(ctx, req); !errors.Is(err, tc.wantErr) {
				t.Errorf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestUpdateSeriesStatusLifecycle(t *testing.T) {
	svc, _, _ := newTestSeriesService()
	ctx := context.Background()

	series, err := svc.Create(ctx, validCreateRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	paused, err := svc.UpdateStatus(ctx, series.ID, &dto.UpdateSeriesStatusRequest{
		Status: model.SeriesStatusPaused, Version: series.Version,
	})
	if err != nil {
		t.Fatalf("pause: %v", err)
	}

	ended, err := svc.UpdateStatus(ctx, series.ID, &dto.UpdateSeriesStatusRequest{
		Status: model.SeriesStatusEnded, Version: paused.Version,
	})
	if err != nil {
		t.Fatalf("end: %v", err)
	}

	// ENDED is terminal
	_, err = svc.UpdateStatus(ctx, series.ID, &dto.UpdateSeriesStatusRequest{
		Status: model.SeriesStatusActive, Version: ended.Version,
	})
	if !errors.Is(err, ErrSeriesAlreadyEnded) {
		t.Errorf("reactivating ended series: err = %v, want ErrSeriesAlreadyEnded", err)
	}

	_, err = svc.UpdateStatus(ctx, series.ID, &dto.UpdateSeriesStatusRequest{
		Status: "BOGUS", Version: ended.Version,
	})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("bogus status: err = %v, want ErrInvalidStatus", err)
	}
}

func TestUpdateSeriesOptimisticLock(t *testing.T) {
	svc, _, _ := newTestSeriesService()
	ctx := context.Background()

	series, err := svc.Create(ctx, validCreateRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Update(ctx, series.ID, &dto.UpdateClassSeriesRequest{
		Notes:   strPtr("first edit"),
		Version: series.Version,
	}); err != nil {
		t.Fatalf("first edit: %v", err)
	}

	// a second edit with the stale version must be rejected
	_, err = svc.Update(ctx, series.ID, &dto.UpdateClassSeriesRequest{
		Notes:   strPtr("stale edit"),
		Version: series.Version,
	})
	if err == nil {
		t.Error("stale edit should fail with an optimistic lock error")
	}
}

func TestUpdatePolicySaveAsBranchDefault(t *testing.T) {
	svc, _, configs := newTestSeriesService()
	ctx := context.Background()

	series, err := svc.Create(ctx, validCreateRequest())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	policy := &model.ConflictPolicy{MarkTeacherUnavailable: boolPtr(true)}
	updated, err := svc.UpdatePolicy(ctx, series.ID, &dto.UpdateSeriesPolicyRequest{
		Policy:              policy,
		SaveAsBranchDefault: true,
		Version:             series.Version,
	})
	if err != nil {
		t.Fatalf("UpdatePolicy: %v", err)
	}

	if updated.ConflictPolicy == nil || updated.ConflictPolicy.MarkTeacherUnavailable == nil {
		t.Error("series override not stored")
	}
	branchCfg := configs.configs["branch-1"]
	if branchCfg == nil || branchCfg.Policy.MarkTeacherUnavailable == nil || !*branchCfg.Policy.MarkTeacherUnavailable {
		t.Error("policy not saved as branch default")
	}
}
