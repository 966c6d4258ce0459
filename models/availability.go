package models

import (
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a clock time expressed as minutes from midnight
// (e.g., 540 for 9:00 AM).
type TimeOfDay int

// ParseClock parses an "HH:MM" clock string into a TimeOfDay.
func ParseClock(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// String renders the time as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// At anchors the clock time onto a calendar date in the local timezone.
func (t TimeOfDay) At(date time.Time) time.Time {
	midnight := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	return midnight.Add(time.Duration(t) * time.Minute)
}

// weekdayNames maps lowercase day names (and their common three-letter
// abbreviations) onto the canonical time.Weekday values.
var weekdayNames = map[string]time.Weekday{
	"sunday": time.Sunday, "sun": time.Sunday,
	"monday": time.Monday, "mon": time.Monday,
	"tuesday": time.Tuesday, "tue": time.Tuesday,
	"wednesday": time.Wednesday, "wed": time.Wednesday,
	"thursday": time.Thursday, "thu": time.Thursday,
	"friday": time.Friday, "fri": time.Friday,
	"saturday": time.Saturday, "sat": time.Saturday,
}

// ParseWeekday normalizes an external day name ("Monday", "mon", "MONDAY")
// into a canonical time.Weekday. All external day strings must pass through
// here; nothing else in the codebase compares day names.
func ParseWeekday(s string) (time.Weekday, error) {
	d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return d, nil
}

// TimeWindow is a half-open [Start, End) window within a day.
type TimeWindow struct {
	Start TimeOfDay `bson:"start" json:"start"`
	End   TimeOfDay `bson:"end" json:"end"`
}

// Contains reports whether t falls within [Start, End). A zero-width window
// (Start == End) contains nothing.
func (w TimeWindow) Contains(t TimeOfDay) bool {
	return t >= w.Start && t < w.End
}

// WeeklyAvailability is a party's recurring weekly pattern: the weekdays they
// are reachable and one or more open windows within those days. Windows may
// overlap; they are treated as a union.
type WeeklyAvailability struct {
	Days    []time.Weekday `bson:"days" json:"days"`
	Windows []TimeWindow   `bson:"windows" json:"windows"`
}

// DayOpen reports whether the weekday of date is one of the open days.
func (a WeeklyAvailability) DayOpen(date time.Time) bool {
	for _, d := range a.Days {
		if d == date.Weekday() {
			return true
		}
	}
	return false
}

// TimeOpen reports whether t falls within at least one open window.
// An empty window list means the party has no open hours.
func (a WeeklyAvailability) TimeOpen(t TimeOfDay) bool {
	for _, w := range a.Windows {
		if w.Contains(t) {
			return true
		}
	}
	return false
}

// OpenAt reports whether the party is open on the weekday of date at clock
// time t.
func (a WeeklyAvailability) OpenAt(date time.Time, t TimeOfDay) bool {
	return a.DayOpen(date) && a.TimeOpen(t)
}

// AvailabilityInput is the wire shape for availability as submitted by
// clients: day names plus "HH:MM" windows. It is normalized into a
// WeeklyAvailability at the API boundary.
type AvailabilityInput struct {
	Days      []string `json:"days"`
	TimeSlots []struct {
		Start string `json:"start" binding:"required"`
		End   string `json:"end" binding:"required"`
	} `json:"timeSlots"`
}

// Normalize converts the wire shape into the canonical model. Duplicate day
// names collapse; a window with start >= end is rejected except for the
// degenerate start == end case, which is kept but matches nothing.
func (in AvailabilityInput) Normalize() (WeeklyAvailability, error) {
	var out WeeklyAvailability

	seen := make(map[time.Weekday]bool)
	for _, name := range in.Days {
		d, err := ParseWeekday(name)
		if err != nil {
			return WeeklyAvailability{}, err
		}
		if !seen[d] {
			seen[d] = true
			out.Days = append(out.Days, d)
		}
	}

	for _, slot := range in.TimeSlots {
		start, err := ParseClock(slot.Start)
		if err != nil {
			return WeeklyAvailability{}, err
		}
		end, err := ParseClock(slot.End)
		if err != nil {
			return WeeklyAvailability{}, err
		}
		if start > end {
			return WeeklyAvailability{}, fmt.Errorf("window %s-%s ends before it starts", slot.Start, slot.End)
		}
		out.Windows = append(out.Windows, TimeWindow{Start: start, End: end})
	}

	return out, nil
}
