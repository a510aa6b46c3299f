package timeslot

import (
	"errors"
	"testing"
	"time"
)

func TestMinuteOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"09:05", 545, false},
		{"16:00", 960, false},
		{"23:59", 1439, false},
		{"16:00:00", 960, false},
		{"24:00", 0, true},
		{"12:60", 0, true},
		{"noon", 0, true},
		{"", 0, true},
	}
	for _, tc := range cases {
		got, err := MinuteOfDay(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("MinuteOfDay(%q): expected error", tc.in)
			} else if !errors.Is(err, ErrInvalidTimeFormat) {
				t.Errorf("MinuteOfDay(%q): err = %v, want ErrInvalidTimeFormat", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("MinuteOfDay(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("MinuteOfDay(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestFormatMinute(t *testing.T) {
	if got := FormatMinute(960); got != "16:00" {
		t.Errorf("FormatMinute(960) = %q, want 16:00", got)
	}
	if got := FormatMinute(545); got != "09:05" {
		t.Errorf("FormatMinute(545) = %q, want 09:05", got)
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd int
		want                       bool
	}{
		{"disjoint", 600, 660, 720, 780, false},
		{"adjacent windows do not overlap", 600, 660, 660, 720, false},
		{"partial overlap", 600, 660, 630, 690, true},
		{"contained", 600, 720, 630, 660, true},
		{"identical", 600, 660, 600, 660, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd); got != tc.want {
				t.Errorf("Overlaps = %v, want %v", got, tc.want)
			}
			// symmetric
			if got := Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd); got != tc.want {
				t.Errorf("Overlaps (swapped) = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCovers(t *testing.T) {
	if !Covers(540, 1080, 960, 1050) {
		t.Error("09:00-18:00 should cover 16:00-17:30")
	}
	if Covers(540, 1020, 960, 1050) {
		t.Error("09:00-17:00 should not cover 16:00-17:30")
	}
	if !Covers(960, 1050, 960, 1050) {
		t.Error("identical windows should cover")
	}
}

func TestDateHelpers(t *testing.T) {
	ts := time.Date(2025, time.January, 1, 15, 30, 45, 0, time.UTC)
	day := DateOnly(ts)
	if day.Hour() != 0 || day.Minute() != 0 {
		t.Errorf("DateOnly = %v, want midnight", day)
	}
	if got := DateKey(day); got != "2025-01-01" {
		t.Errorf("DateKey = %q, want 2025-01-01", got)
	}

	parsed, err := ParseDate("2025-01-01")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	if !parsed.Equal(day) {
		t.Errorf("ParseDate = %v, want %v", parsed, day)
	}
	if _, err := ParseDate("01/02/2025"); err == nil {
		t.Error("ParseDate should reject non-ISO input")
	}
}

func TestWeekday(t *testing.T) {
	// 2025-01-01 is a Wednesday
	if got := Weekday(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)); got != 3 {
		t.Errorf("Weekday(2025-01-01) = %d, want 3", got)
	}
	// 2025-01-05 is a Sunday
	if got := Weekday(time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)); got != 0 {
		t.Errorf("Weekday(2025-01-05) = %d, want 0", got)
	}

	if ValidWeekday(-1) || ValidWeekday(7) {
		t.Error("out of range weekdays should be invalid")
	}
	if !ValidWeekday(0) || !ValidWeekday(6) {
		t.Error("0 and 6 are valid weekdays")
	}
}
