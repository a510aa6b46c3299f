package service

import (
	"bytes"
	"fmt"
	"strings"

	ics "github.com/arran4/golang-ical"

	"github.com/jdu211171/schedule-website-sub007/internal/dto"
)

var icsDayCodes = map[string]int{
	"SU": 0, "MO": 1, "TU": 2, "WE": 3, "TH": 4, "FR": 5, "SA": 6,
}

// ParseAvailabilityICS extracts weekly availability slots from an iCalendar
// export. Each VEVENT contributes one slot on its start weekday; a weekly
// RRULE with BYDAY spreads the same time window across the listed weekdays.
// Duplicate slots collapse.
func ParseAvailabilityICS(data []byte) ([]dto.AvailabilitySlot, error) {
	cal, err := ics.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse calendar: %w", err)
	}

	seen := make(map[string]bool)
	var slots []dto.AvailabilitySlot

	add := func(day int, startTime, endTime string) {
		key := fmt.Sprintf("%d|%s|%s", day, startTime, endTime)
		if seen[key] {
			return
		}
		seen[key] = true
		slots = append(slots, dto.AvailabilitySlot{
			DayOfWeek: day,
			StartTime: startTime,
			EndTime:   endTime,
		})
	}

	for _, event := range cal.Events() {
		start, err := event.GetStartAt()
		if err != nil {
			continue
		}
		end, err := event.GetEndAt()
		if err != nil {
			continue
		}

		startTime := start.Format("15:04")
		endTime := end.Format("15:04")
		if startTime >= endTime {
			continue
		}

		days := rruleWeekdays(event)
		if len(days) == 0 {
			days = []int{int(start.Weekday())}
		}
		for _, day := range days {
			add(day, startTime, endTime)
		}
	}

	return slots, nil
}

// rruleWeekdays returns the BYDAY weekdays of a weekly RRULE, if any.
func rruleWeekdays(event *ics.VEvent) []int {
	prop := event.GetProperty(ics.ComponentPropertyRrule)
	if prop == nil {
		return nil
	}

	rule := strings.ToUpper(prop.Value)
	if !strings.Contains(rule, "FREQ=WEEKLY") {
		return nil
	}

	var days []int
	for _, part := range strings.Split(rule, ";") {
		if !strings.HasPrefix(part, "BYDAY=") {
			continue
		}
		for _, code := range strings.Split(strings.TrimPrefix(part, "BYDAY="), ",") {
			// strip any ordinal prefix like 1MO or -1FR
			code = strings.TrimLeft(code, "+-0123456789")
			if day, ok := icsDayCodes[code]; ok {
				days = append(days, day)
			}
		}
	}
	return days
}
