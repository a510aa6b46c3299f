// Package timeslot provides minute-of-day and calendar-date arithmetic for
// schedule windows stored as "HH:MM" strings and date-only values.
package timeslot

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeFormat signals a time string that is not HH:MM or HH:MM:SS.
var ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")

// MinuteOfDay parses "HH:MM" (or "HH:MM:SS", seconds ignored) into minutes
// since midnight.
func MinuteOfDay(s string) (int, error) {
	var h, m, sec int
	n, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec)
	if err != nil || n < 2 {
		n2, err2 := fmt.Sscanf(s, "%d:%d", &h, &m)
		if err2 != nil || n2 != 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return h*60 + m, nil
}

// FormatMinute renders minutes since midnight as "HH:MM".
func FormatMinute(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// Overlaps reports whether the half-open windows [aStart, aEnd) and
// [bStart, bEnd) intersect. Adjacent windows do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

// Covers reports whether [outerStart, outerEnd) fully contains
// [innerStart, innerEnd).
func Covers(outerStart, outerEnd, innerStart, innerEnd int) bool {
	return outerStart <= innerStart && innerEnd <= outerEnd
}

// DateOnly truncates t to midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DateKey renders t as "2006-01-02", the canonical map key for a calendar day.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// ParseDate parses "2006-01-02" into midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// Weekday returns t's weekday with 0 = Sunday.
func Weekday(t time.Time) int {
	return int(t.Weekday())
}

// ValidWeekday reports whether d is within 0-6.
func ValidWeekday(d int) bool {
	return d >= 0 && d <= 6
}
