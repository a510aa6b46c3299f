package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/jdu211171/schedule-website-sub007/internal/dto"
	"github.com/jdu211171/schedule-website-sub007/internal/model"
)

func icsFile(events ...string) []byte {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
	}
	lines = append(lines, events...)
	lines = append(lines, "END:VCALENDAR", "")
	return []byte(strings.Join(lines, "\r\n"))
}

func TestParseAvailabilityICS(t *testing.T) {
	t.Run("single event uses its weekday", func(t *testing.T) {
		// 2025-01-06 is a Monday
		data := icsFile(
			"BEGIN:VEVENT",
			"UID:ev1",
			"DTSTART:20250106T160000Z",
			"DTEND:20250106T173000Z",
			"SUMMARY:available",
			"END:VEVENT",
		)
		slots, err := ParseAvailabilityICS(data)
		if err != nil {
			t.Fatalf("ParseAvailabilityICS: %v", err)
		}
		if len(slots) != 1 {
			t.Fatalf("slots = %v, want one", slots)
		}
		got := slots[0]
		if got.DayOfWeek != 1 || got.StartTime != "16:00" || got.EndTime != "17:30" {
			t.Errorf("slot = %+v, want Monday 16:00-17:30", got)
		}
	})

	t.Run("weekly rrule spreads across byday", func(t *testing.T) {
		data := icsFile(
			"BEGIN:VEVENT",
			"UID:ev2",
			"DTSTART:20250106T100000Z",
			"DTEND:20250106T120000Z",
			"RRULE:FREQ=WEEKLY;BYDAY=MO,WE,FR",
			"END:VEVENT",
		)
		slots, err := ParseAvailabilityICS(data)
		if err != nil {
			t.Fatalf("ParseAvailabilityICS: %v", err)
		}
		if len(slots) != 3 {
			t.Fatalf("slots = %v, want three", slots)
		}
		days := map[int]bool{}
		for _, s := range slots {
			days[s.DayOfWeek] = true
			if s.StartTime != "10:00" || s.EndTime != "12:00" {
				t.Errorf("slot window = %s-%s, want 10:00-12:00", s.StartTime, s.EndTime)
			}
		}
		for _, want := range []int{1, 3, 5} {
			if !days[want] {
				t.Errorf("missing weekday %d", want)
			}
		}
	})

	t.Run("duplicate slots collapse", func(t *testing.T) {
		data := icsFile(
			"BEGIN:VEVENT",
			"UID:ev3",
			"DTSTART:20250106T160000Z",
			"DTEND:20250106T170000Z",
			"END:VEVENT",
			"BEGIN:VEVENT",
			"UID:ev4",
			"DTSTART:20250113T160000Z",
			"DTEND:20250113T170000Z",
			"END:VEVENT",
		)
		slots, err := ParseAvailabilityICS(data)
		if err != nil {
			t.Fatalf("ParseAvailabilityICS: %v", err)
		}
		if len(slots) != 1 {
			t.Errorf("slots = %v, want duplicates collapsed to one", slots)
		}
	})

	t.Run("garbage input fails", func(t *testing.T) {
		if _, err := ParseAvailabilityICS([]byte("not a calendar")); err == nil {
			t.Error("expected an error for invalid input")
		}
	})
}

func TestReplaceAvailability(t *testing.T) {
	avail := &mockAvailabilityRepo{}
	svc := NewAvailabilityService(avail, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Replace(ctx, &dto.ReplaceAvailabilityRequest{
		UserID:   "t1",
		UserType: model.UserTypeTeacher,
		Slots: []dto.AvailabilitySlot{
			{DayOfWeek: 1, StartTime: "10:00", EndTime: "18:00"},
			{DayOfWeek: 3, StartTime: "10:00", EndTime: "18:00"},
		},
	})
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}

	// a second replace swaps everything
	rows, err := svc.Replace(ctx, &dto.ReplaceAvailabilityRequest{
		UserID:   "t1",
		UserType: model.UserTypeTeacher,
		Slots:    []dto.AvailabilitySlot{{DayOfWeek: 5, StartTime: "09:00", EndTime: "12:00"}},
	})
	if err != nil {
		t.Fatalf("second Replace: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}

	stored, _ := avail.ListByUser(ctx, "t1", model.UserTypeTeacher)
	if len(stored) != 1 || stored[0].DayOfWeek != 5 {
		t.Errorf("stored = %+v, want only the Friday slot", stored)
	}
}

func TestReplaceAvailabilityValidation(t *testing.T) {
	svc := NewAvailabilityService(&mockAvailabilityRepo{}, zap.NewNop())
	ctx := context.Background()

	_, err := svc.Replace(ctx, &dto.ReplaceAvailabilityRequest{
		UserID: "t1", UserType: "ADMIN",
	})
	if !errors.Is(err, ErrInvalidUserType) {
		t.Errorf("err = %v, want ErrInvalidUserType", err)
	}

	_, err = svc.Replace(ctx, &dto.ReplaceAvailabilityRequest{
		UserID:   "t1",
		UserType: model.UserTypeTeacher,
		Slots:    []dto.AvailabilitySlot{{DayOfWeek: 9, StartTime: "10:00", EndTime: "11:00"}},
	})
	if !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("bad weekday: err = %v, want ErrInvalidSlot", err)
	}

	_, err = svc.Replace(ctx, &dto.ReplaceAvailabilityRequest{
		UserID:   "t1",
		UserType: model.UserTypeTeacher,
		Slots:    []dto.AvailabilitySlot{{DayOfWeek: 1, StartTime: "12:00", EndTime: "11:00"}},
	})
	if !errors.Is(err, ErrInvalidSlot) {
		t.Errorf("inverted window: err = %v, want ErrInvalidSlot", err)
	}
}

func TestImportICSReplacesAvailability(t *testing.T) {
	avail := &mockAvailabilityRepo{
		rows: []model.Availability{
			{UserID: "t1", UserType: model.UserTypeTeacher, DayOfWeek: 2, StartTime: "09:00", EndTime: "10:00"},
		},
	}
	svc := NewAvailabilityService(avail, zap.NewNop())

	data := icsFile(
		"BEGIN:VEVENT",
		"UID:ev1",
		"DTSTART:20250106T100000Z",
		"DTEND:20250106T120000Z",
		"RRULE:FREQ=WEEKLY;BYDAY=MO,WE",
		"END:VEVENT",
	)
	rows, err := svc.ImportICS(context.Background(), "t1", model.UserTypeTeacher, data)
	if err != nil {
		t.Fatalf("ImportICS: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	stored, _ := avail.ListByUser(context.Background(), "t1", model.UserTypeTeacher)
	for _, s := range stored {
		if s.DayOfWeek == 2 {
			t.Error("import should replace the old Tuesday slot")
		}
	}
	if len(stored) != 2 {
		t.Errorf("stored = %d rows, want 2", len(stored))
	}
}
