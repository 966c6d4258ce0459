package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	sessionRepo "harmony/database/repository/session"
	"harmony/models"
	"harmony/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BookSession re-validates the requested slot against current state, commits
// the session, then dispatches notifications best-effort. The store's unique
// slot index is the final arbiter when two commits race past the re-check.
func (se *DefaultSchedulingEngine) BookSession(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	logger := utils.GetLogger().With(
		zap.String("therapistID", req.TherapistID),
		zap.String("patientID", req.PatientID),
		zap.String("date", req.Date),
	)

	if req.End <= req.Start {
		return nil, newError(CodeInvalidDuration, fmt.Sprintf("interval %s-%s is empty or inverted", req.Start, req.End))
	}
	day, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return nil, newError(CodeInvalidDuration, fmt.Sprintf("invalid date %q", req.Date))
	}

	therapist, patient, err := se.loadParties(ctx, req.TherapistID, req.PatientID)
	if err != nil {
		return nil, err
	}

	if !therapist.Availability.DayOpen(day) || !windowFits(therapist.Availability, req.Start, req.End) {
		return nil, newError(CodeSlotUnavailable, "therapist is not available at the requested time")
	}
	if !patient.PreferredDays.DayOpen(day) || !windowFits(patient.PreferredDays, req.Start, req.End) {
		return nil, newError(CodeSlotUnavailable, "patient is not available at the requested time")
	}

	// Commit-time re-check against current bookings. The unique index below
	// still backstops the window between this read and the insert.
	therapistBooked, patientBooked, err := se.loadPartyIntervals(ctx, req.TherapistID, req.PatientID, req.Date)
	if err != nil {
		return nil, err
	}
	if overlaps(req.Start, req.End, therapistBooked) || overlaps(req.Start, req.End, patientBooked) {
		return nil, newError(CodeSlotUnavailable, "the requested slot is no longer available")
	}

	now := time.Now()
	session := &models.Session{
		ID:            uuid.New().String(),
		PatientID:     req.PatientID,
		TherapistID:   req.TherapistID,
		Date:          req.Date,
		Start:         req.Start,
		End:           req.End,
		Status:        models.SessionScheduled,
		Notes:         req.Notes,
		PatientName:   patient.Name,
		TherapistName: therapist.Name,
		SlotKeys:      slotKeys(req.Start, req.End),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := se.Sessions.Insert(ctx, session); err != nil {
		if errors.Is(err, sessionRepo.ErrDuplicateSlot) {
			return nil, wrapError(CodeSlotUnavailable, "the requested slot was taken by a concurrent booking", err)
		}
		return nil, wrapError(CodePersistenceFailure, "could not persist session", err)
	}
	logger.Info("Session booked", zap.String("sessionID", session.ID))

	if se.Reminders != nil {
		if err := se.Reminders.ScheduleSessionReminder(ctx, session); err != nil {
			logger.Warn("Failed to schedule session reminder", zap.Error(err))
		}
	}

	report := se.dispatchNotifications(ctx, session, therapist.Contact(), patient.Contact(), req.Channels)
	return &BookingResult{Session: session, Notifications: report}, nil
}

type partyFetch struct {
	therapist *models.Therapist
	patient   *models.Patient
	err       error
}

// loadParties fetches both profiles concurrently; the name snapshots and
// contact details come from here.
func (se *DefaultSchedulingEngine) loadParties(ctx context.Context, therapistID, patientID string) (*models.Therapist, *models.Patient, error) {
	therapistCh := make(chan partyFetch, 1)
	patientCh := make(chan partyFetch, 1)
	go func() {
		t, err := se.Therapists.GetByID(ctx, therapistID)
		therapistCh <- partyFetch{therapist: t, err: err}
	}()
	go func() {
		p, err := se.Patients.GetByID(ctx, patientID)
		patientCh <- partyFetch{patient: p, err: err}
	}()

	therapistRes := <-therapistCh
	patientRes := <-patientCh
	if therapistRes.err != nil {
		return nil, nil, wrapError(CodeConflictCheckUnavailable, "could not load therapist profile", therapistRes.err)
	}
	if patientRes.err != nil {
		return nil, nil, wrapError(CodeConflictCheckUnavailable, "could not load patient profile", patientRes.err)
	}
	return therapistRes.therapist, patientRes.patient, nil
}

// dispatchNotifications runs the fan-out with its own timeout so a slow
// provider cannot hold the booking response. Never returns an error.
func (se *DefaultSchedulingEngine) dispatchNotifications(ctx context.Context, session *models.Session, therapist, patient models.Recipient, channels []models.Channel) models.DispatchReport {
	if se.Notifier == nil {
		return models.DispatchReport{}
	}
	timeout := se.NotifyTimeout
	if timeout <= 0 {
		timeout = DefaultNotifyTimeout
	}
	notifyCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if len(channels) == 0 {
		channels = models.DefaultChannels
	}
	return se.Notifier.SendSessionNotifications(notifyCtx, session, therapist, patient, channels)
}

// slotKeys enumerates the minutes [start, end) covers. Minute resolution
// makes the stored exclusion exactly as fine as the half-open overlap test:
// two sessions share a key iff their intervals overlap, so back-to-back
// sessions never collide in the unique index even when a window anchors the
// stride off the wall-clock grid.
func slotKeys(start, end models.TimeOfDay) []int {
	keys := make([]int, 0, int(end-start))
	for k := int(start); k < int(end); k++ {
		keys = append(keys, k)
	}
	return keys
}
