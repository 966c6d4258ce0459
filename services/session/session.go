package session

import (
	"context"
	"fmt"
	"time"

	patientRepo "harmony/database/repository/patient"
	sessionRepo "harmony/database/repository/session"
	therapistRepo "harmony/database/repository/therapist"
	"harmony/models"
	"harmony/services/notification"
)

// SessionService manages committed sessions after booking: listing, status
// transitions and notification re-dispatch.
type SessionService interface {
	Get(ctx context.Context, id string) (*models.Session, error)
	ListByTherapist(ctx context.Context, therapistID string) ([]models.Session, error)
	ListByPatient(ctx context.Context, patientID string) ([]models.Session, error)
	Cancel(ctx context.Context, id string) error
	Complete(ctx context.Context, id string) error
	ResendNotifications(ctx context.Context, id string, channels []models.Channel) (models.DispatchReport, error)
}

// DefaultSessionService implements SessionService over the repositories.
type DefaultSessionService struct {
	Sessions   sessionRepo.SessionRepository
	Patients   patientRepo.PatientRepository
	Therapists therapistRepo.TherapistRepository
	Notifier   notification.Service
}

func NewDefaultSessionService(sessions sessionRepo.SessionRepository, patients patientRepo.PatientRepository, therapists therapistRepo.TherapistRepository, notifier notification.Service) *DefaultSessionService {
	return &DefaultSessionService{Sessions: sessions, Patients: patients, Therapists: therapists, Notifier: notifier}
}

func (svc *DefaultSessionService) Get(ctx context.Context, id string) (*models.Session, error) {
	return svc.Sessions.GetByID(ctx, id)
}

func (svc *DefaultSessionService) ListByTherapist(ctx context.Context, therapistID string) ([]models.Session, error) {
	return svc.Sessions.ListByTherapist(ctx, therapistID)
}

func (svc *DefaultSessionService) ListByPatient(ctx context.Context, patientID string) ([]models.Session, error) {
	return svc.Sessions.ListByPatient(ctx, patientID)
}

// Cancel marks a scheduled session cancelled. Cancellation frees the slot:
// the unique slot index only covers scheduled sessions.
func (svc *DefaultSessionService) Cancel(ctx context.Context, id string) error {
	return svc.transition(ctx, id, models.SessionCancelled)
}

// Complete marks a scheduled session completed.
func (svc *DefaultSessionService) Complete(ctx context.Context, id string) error {
	return svc.transition(ctx, id, models.SessionCompleted)
}

func (svc *DefaultSessionService) transition(ctx context.Context, id, status string) error {
	current, err := svc.Sessions.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.Status != models.SessionScheduled {
		return fmt.Errorf("session %s is %s; only scheduled sessions can become %s", id, current.Status, status)
	}
	return svc.Sessions.UpdateStatus(ctx, id, status)
}

// ResendNotifications re-runs the notification fan-out for an existing
// session, for when the original dispatch partially failed.
func (svc *DefaultSessionService) ResendNotifications(ctx context.Context, id string, channels []models.Channel) (models.DispatchReport, error) {
	session, err := svc.Sessions.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	therapist, err := svc.Therapists.GetByID(ctx, session.TherapistID)
	if err != nil {
		return nil, fmt.Errorf("loading therapist for resend: %w", err)
	}
	patient, err := svc.Patients.GetByID(ctx, session.PatientID)
	if err != nil {
		return nil, fmt.Errorf("loading patient for resend: %w", err)
	}
	if len(channels) == 0 {
		channels = models.DefaultChannels
	}

	notifyCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	return svc.Notifier.SendSessionNotifications(notifyCtx, session, therapist.Contact(), patient.Contact(), channels), nil
}
