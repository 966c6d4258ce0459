package scheduling

import (
	"context"

	"harmony/models"
)

// overlaps reports whether the half-open candidate [start, end) collides with
// any booked interval. Boundary equality is not a conflict: back-to-back
// sessions are permitted.
func overlaps(start, end models.TimeOfDay, intervals []models.BookedInterval) bool {
	for _, iv := range intervals {
		if start < iv.End && end > iv.Start {
			return true
		}
	}
	return false
}

func toIntervals(sessions []models.Session, partyID string) []models.BookedInterval {
	intervals := make([]models.BookedInterval, 0, len(sessions))
	for _, s := range sessions {
		intervals = append(intervals, models.BookedInterval{
			PartyID: partyID,
			Date:    s.Date,
			Start:   s.Start,
			End:     s.End,
		})
	}
	return intervals
}

// therapistIntervals loads the therapist's booked intervals for a date.
// A failed fetch is conflictCheckUnavailable, never "no conflicts".
func (se *DefaultSchedulingEngine) therapistIntervals(ctx context.Context, therapistID, date string) ([]models.BookedInterval, error) {
	sessions, err := se.Sessions.FindByTherapistAndDate(ctx, therapistID, date)
	if err != nil {
		return nil, wrapError(CodeConflictCheckUnavailable, "could not load therapist bookings", err)
	}
	return toIntervals(sessions, therapistID), nil
}

// patientIntervals loads the patient's booked intervals for a date.
func (se *DefaultSchedulingEngine) patientIntervals(ctx context.Context, patientID, date string) ([]models.BookedInterval, error) {
	sessions, err := se.Sessions.FindByPatientAndDate(ctx, patientID, date)
	if err != nil {
		return nil, wrapError(CodeConflictCheckUnavailable, "could not load patient bookings", err)
	}
	return toIntervals(sessions, patientID), nil
}

type intervalFetch struct {
	intervals []models.BookedInterval
	err       error
}

// loadPartyIntervals fetches both parties' booked intervals concurrently and
// joins on both results. patientID may be empty, in which case only the
// therapist side is loaded.
func (se *DefaultSchedulingEngine) loadPartyIntervals(ctx context.Context, therapistID, patientID, date string) ([]models.BookedInterval, []models.BookedInterval, error) {
	therapistCh := make(chan intervalFetch, 1)
	go func() {
		ivs, err := se.therapistIntervals(ctx, therapistID, date)
		therapistCh <- intervalFetch{intervals: ivs, err: err}
	}()

	var patientCh chan intervalFetch
	if patientID != "" {
		patientCh = make(chan intervalFetch, 1)
		go func() {
			ivs, err := se.patientIntervals(ctx, patientID, date)
			patientCh <- intervalFetch{intervals: ivs, err: err}
		}()
	}

	therapistRes := <-therapistCh
	var patientRes intervalFetch
	if patientCh != nil {
		patientRes = <-patientCh
	}

	if therapistRes.err != nil {
		return nil, nil, therapistRes.err
	}
	if patientRes.err != nil {
		return nil, nil, patientRes.err
	}
	return therapistRes.intervals, patientRes.intervals, nil
}
