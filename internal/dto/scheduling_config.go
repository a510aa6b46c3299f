package dto

import "github.com/jdu211171/schedule-website-sub007/internal/model"

// UpdateBranchPolicyRequest patches the branch-level policy defaults. Only
// set fields change; nil fields keep their current value.
type UpdateBranchPolicyRequest struct {
	Policy model.ConflictPolicy `json:"policy"`
}

// EffectiveConfigResponse shows the fully resolved policy for a branch (and
// optionally a series override layered on top).
type EffectiveConfigResponse struct {
	BranchID                        string          `json:"branch_id"`
	SeriesID                        *string         `json:"series_id,omitempty"`
	MarkAsConflicted                map[string]bool `json:"mark_as_conflicted"`
	AllowOutsideAvailabilityTeacher bool            `json:"allow_outside_availability_teacher"`
	AllowOutsideAvailabilityStudent bool            `json:"allow_outside_availability_student"`
	GenerationMonths                int             `json:"generation_months"`
	Warnings                        []string        `json:"warnings,omitempty"`
}
