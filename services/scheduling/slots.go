package scheduling

import (
	"context"
	"fmt"
	"sort"
	"time"

	"harmony/models"
	"harmony/utils"

	"go.uber.org/zap"
)

// AvailableSlots returns the conflict-free start/end pairs for the request
// date, ascending by start time. A day the therapist does not work, or a day
// with every slot taken, yields an empty list, not an error.
func (se *DefaultSchedulingEngine) AvailableSlots(ctx context.Context, req SlotRequest) ([]models.CandidateSlot, error) {
	logger := utils.GetLogger().With(
		zap.String("therapistID", req.TherapistID),
		zap.String("date", req.Date),
	)

	if req.DurationMinutes <= 0 {
		return nil, newError(CodeInvalidDuration, fmt.Sprintf("duration must be positive, got %d", req.DurationMinutes))
	}
	gran := req.GranularityMinutes
	if gran <= 0 {
		gran = se.granularity()
	}
	if req.DurationMinutes%gran != 0 {
		return nil, newError(CodeInvalidDuration, fmt.Sprintf("duration %d is not a multiple of the %d-minute granularity", req.DurationMinutes, gran))
	}

	day, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return nil, newError(CodeInvalidDuration, fmt.Sprintf("invalid date %q", req.Date))
	}

	therapist, err := se.Therapists.GetByID(ctx, req.TherapistID)
	if err != nil {
		return nil, wrapError(CodeConflictCheckUnavailable, "could not load therapist profile", err)
	}

	var patientAvail *models.WeeklyAvailability
	if req.PatientID != "" {
		patient, err := se.Patients.GetByID(ctx, req.PatientID)
		if err != nil {
			return nil, wrapError(CodeConflictCheckUnavailable, "could not load patient profile", err)
		}
		patientAvail = &patient.PreferredDays
	}

	// A closed day short-circuits before any booking lookups.
	if !therapist.Availability.DayOpen(day) {
		return []models.CandidateSlot{}, nil
	}
	if patientAvail != nil && !patientAvail.DayOpen(day) {
		return []models.CandidateSlot{}, nil
	}

	therapistBooked, patientBooked, err := se.loadPartyIntervals(ctx, req.TherapistID, req.PatientID, req.Date)
	if err != nil {
		return nil, err
	}

	dur := models.TimeOfDay(req.DurationMinutes)
	seen := make(map[models.TimeOfDay]bool)
	var slots []models.CandidateSlot

	for _, w := range therapist.Availability.Windows {
		for start := w.Start; start+dur <= w.End; start += models.TimeOfDay(gran) {
			end := start + dur
			if seen[start] {
				continue
			}
			if patientAvail != nil && !windowFits(*patientAvail, start, end) {
				continue
			}
			if overlaps(start, end, therapistBooked) || overlaps(start, end, patientBooked) {
				continue
			}
			seen[start] = true
			slots = append(slots, models.CandidateSlot{Date: req.Date, Start: start, End: end})
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Start < slots[j].Start })

	logger.Debug("Generated candidate slots", zap.Int("count", len(slots)))
	if slots == nil {
		slots = []models.CandidateSlot{}
	}
	return slots, nil
}

// windowFits reports whether [start, end) lies entirely inside at least one
// of the availability's windows. Containment, not point membership: a slot
// ending exactly at a window's close still fits.
func windowFits(a models.WeeklyAvailability, start, end models.TimeOfDay) bool {
	for _, w := range a.Windows {
		if start >= w.Start && end <= w.End && w.Start < w.End {
			return true
		}
	}
	return false
}
