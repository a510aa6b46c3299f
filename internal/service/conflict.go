package service

import (
	"time"

	"github.com/jdu211171/schedule-website-sub007/pkg/timeslot"

	"github.com/jdu211171/schedule-website-sub007/internal/model"
)

// ConflictReason is one detected problem with a candidate session.
type ConflictReason struct {
	Type string `json:"type"`
}

// IsHard reports whether the reason is a double-booking of a shared resource.
// Hard reasons are re-checked at confirmation time; soft availability reasons
// are advisory only.
func (r ConflictReason) IsHard() bool {
	switch r.Type {
	case model.ConflictTeacher, model.ConflictStudent, model.ConflictBooth:
		return true
	}
	return false
}

// sessionCandidate is the classifier's view of a session to be placed: a
// concrete date, a minute-of-day window and the resources it would occupy.
// ClassID is set when re-checking an existing session so it skips itself.
type sessionCandidate struct {
	ClassID   *string
	Date      time.Time
	StartMin  int
	EndMin    int
	TeacherID *string
	StudentID *string
	BoothID   *string
}

func sameRef(a, b *string) bool {
	return a != nil && b != nil && *a == *b
}

// classifyHardConflicts compares the candidate against the sessions already
// occupying its date and reports resource double-bookings. Cancelled sessions
// hold no resources. Each conflict type is reported at most once.
func classifyHardConflicts(cand sessionCandidate, neighbors []model.ClassSession) []ConflictReason {
	seen := make(map[string]bool)
	var reasons []ConflictReason

	add := func(conflictType string) {
		if !seen[conflictType] {
			seen[conflictType] = true
			reasons = append(reasons, ConflictReason{Type: conflictType})
		}
	}

	for i := range neighbors {
		n := &neighbors[i]
		if n.IsCancelled {
			continue
		}
		if cand.ClassID != nil && n.ID == *cand.ClassID {
			continue
		}

		nStart, err := timeslot.MinuteOfDay(n.StartTime)
		if err != nil {
			continue
		}
		nEnd, err := timeslot.MinuteOfDay(n.EndTime)
		if err != nil {
			continue
		}
		if !timeslot.Overlaps(cand.StartMin, cand.EndMin, nStart, nEnd) {
			continue
		}

		if sameRef(cand.TeacherID, n.TeacherID) {
			add(model.ConflictTeacher)
		}
		if sameRef(cand.StudentID, n.StudentID) {
			add(model.ConflictStudent)
		}
		if sameRef(cand.BoothID, n.BoothID) {
			add(model.ConflictBooth)
		}
	}

	return reasons
}

// classifyAvailability checks the candidate's window against each party's
// weekly availability. A party with no availability rows at all is treated as
// unconstrained. NO_SHARED_AVAILABILITY is reported only when both parties
// have slots on the day but no teacher slot overlaps any student slot.
func classifyAvailability(cand sessionCandidate, teacherSlots, studentSlots []model.Availability) []ConflictReason {
	weekday := timeslot.Weekday(cand.Date)
	var reasons []ConflictReason

	teacherDay := slotsForDay(teacherSlots, weekday)
	studentDay := slotsForDay(studentSlots, weekday)

	if cand.TeacherID != nil && len(teacherSlots) > 0 {
		if len(teacherDay) == 0 {
			reasons = append(reasons, ConflictReason{Type: model.ConflictTeacherUnavailable})
		} else if !anyCovers(teacherDay, cand.StartMin, cand.EndMin) {
			reasons = append(reasons, ConflictReason{Type: model.ConflictTeacherWrongTime})
		}
	}

	if cand.StudentID != nil && len(studentSlots) > 0 {
		if len(studentDay) == 0 {
			reasons = append(reasons, ConflictReason{Type: model.ConflictStudentUnavailable})
		} else if !anyCovers(studentDay, cand.StartMin, cand.EndMin) {
			reasons = append(reasons, ConflictReason{Type: model.ConflictStudentWrongTime})
		}
	}

	if cand.TeacherID != nil && cand.StudentID != nil &&
		len(teacherDay) > 0 && len(studentDay) > 0 &&
		!anyPairOverlaps(teacherDay, studentDay) {
		reasons = append(reasons, ConflictReason{Type: model.ConflictNoSharedAvailability})
	}

	return reasons
}

func slotsForDay(slots []model.Availability, weekday int) []model.Availability {
	var day []model.Availability
	for _, s := range slots {
		if s.DayOfWeek == weekday {
			day = append(day, s)
		}
	}
	return day
}

func anyCovers(slots []model.Availability, startMin, endMin int) bool {
	for _, s := range slots {
		sStart, err := timeslot.MinuteOfDay(s.StartTime)
		if err != nil {
			continue
		}
		sEnd, err := timeslot.MinuteOfDay(s.EndTime)
		if err != nil {
			continue
		}
		if timeslot.Covers(sStart, sEnd, startMin, endMin) {
			return true
		}
	}
	return false
}

func anyPairOverlaps(a, b []model.Availability) bool {
	for _, x := range a {
		xStart, err := timeslot.MinuteOfDay(x.StartTime)
		if err != nil {
			continue
		}
		xEnd, err := timeslot.MinuteOfDay(x.EndTime)
		if err != nil {
			continue
		}
		for _, y := range b {
			yStart, err := timeslot.MinuteOfDay(y.StartTime)
			if err != nil {
				continue
			}
			yEnd, err := timeslot.MinuteOfDay(y.EndTime)
			if err != nil {
				continue
			}
			if timeslot.Overlaps(xStart, xEnd, yStart, yEnd) {
				return true
			}
		}
	}
	return false
}

// filterAllowedAvailability removes soft reasons the policy permits: a party
// allowed outside its availability contributes no soft reasons, and
// NO_SHARED_AVAILABILITY is dropped only when both parties are allowed.
func filterAllowedAvailability(reasons []ConflictReason, allowTeacher, allowStudent bool) []ConflictReason {
	if !allowTeacher && !allowStudent {
		return reasons
	}
	filtered := reasons[:0:0]
	for _, r := range reasons {
		switch r.Type {
		case model.ConflictTeacherUnavailable, model.ConflictTeacherWrongTime:
			if allowTeacher {
				continue
			}
		case model.ConflictStudentUnavailable, model.ConflictStudentWrongTime:
			if allowStudent {
				continue
			}
		case model.ConflictNoSharedAvailability:
			if allowTeacher && allowStudent {
				continue
			}
		}
		filtered = append(filtered, r)
	}
	return filtered
}

func hasHardConflict(reasons []ConflictReason) bool {
	for _, r := range reasons {
		if r.IsHard() {
			return true
		}
	}
	return false
}
