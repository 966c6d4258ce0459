package scheduling

import (
	"context"
	"time"

	patientRepo "harmony/database/repository/patient"
	sessionRepo "harmony/database/repository/session"
	therapistRepo "harmony/database/repository/therapist"
	"harmony/models"
	"harmony/services/notification"
)

// SlotRequest asks for the bookable start times on one calendar date.
// PatientID is optional; when empty only therapist-side filtering applies.
type SlotRequest struct {
	TherapistID        string
	PatientID          string
	Date               string // "2006-01-02"
	DurationMinutes    int
	GranularityMinutes int // 0 means the engine default
}

// BookingRequest commits one chosen slot as a session.
type BookingRequest struct {
	PatientID   string
	TherapistID string
	Date        string // "2006-01-02"
	Start       models.TimeOfDay
	End         models.TimeOfDay
	Notes       string
	Channels    []models.Channel
}

// BookingResult is the outcome of a successful commit. Notifications carries
// the per-channel dispatch report; it never affects the committed session.
type BookingResult struct {
	Session       *models.Session       `json:"session"`
	Notifications models.DispatchReport `json:"notifications"`
}

// SchedulingEngine computes conflict-free slots and commits bookings.
type SchedulingEngine interface {
	AvailableSlots(ctx context.Context, req SlotRequest) ([]models.CandidateSlot, error)
	BookSession(ctx context.Context, req BookingRequest) (*BookingResult, error)
}

// ReminderScheduler enqueues a best-effort reminder for a committed session.
type ReminderScheduler interface {
	ScheduleSessionReminder(ctx context.Context, session *models.Session) error
}

// DefaultSchedulingEngine is the production implementation.
type DefaultSchedulingEngine struct {
	Sessions   sessionRepo.SessionRepository
	Patients   patientRepo.PatientRepository
	Therapists therapistRepo.TherapistRepository
	Notifier   notification.Service
	Reminders  ReminderScheduler // optional

	// Granularity is the stride between candidate start times, in minutes.
	// Zero means DefaultGranularityMinutes.
	Granularity int
	// NotifyTimeout bounds the post-commit notification fan-out. Zero means
	// DefaultNotifyTimeout.
	NotifyTimeout time.Duration
}

// DefaultGranularityMinutes is the stride between candidate start times.
const DefaultGranularityMinutes = 30

// DefaultNotifyTimeout bounds the notification fan-out after a commit.
const DefaultNotifyTimeout = 15 * time.Second

func (se *DefaultSchedulingEngine) granularity() int {
	if se.Granularity > 0 {
		return se.Granularity
	}
	return DefaultGranularityMinutes
}
