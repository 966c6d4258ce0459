package sessionRepo

import (
	"context"
	"errors"

	"harmony/models"
)

// ErrDuplicateSlot is returned by Insert when the store's uniqueness
// invariant rejects a session that covers an already-booked minute.
var ErrDuplicateSlot = errors.New("session overlaps an existing booking")

// SessionRepository defines the data access methods used by the scheduling
// engine and the session API.
type SessionRepository interface {
	// FindByTherapistAndDate returns all non-cancelled sessions for a
	// therapist on a calendar date.
	FindByTherapistAndDate(ctx context.Context, therapistID, date string) ([]models.Session, error)
	// FindByPatientAndDate returns all non-cancelled sessions for a patient
	// on a calendar date.
	FindByPatientAndDate(ctx context.Context, patientID, date string) ([]models.Session, error)
	// Insert persists a new session. Returns ErrDuplicateSlot when the
	// store-level overlap invariant rejects the write.
	Insert(ctx context.Context, session *models.Session) error
	// GetByID retrieves one session.
	GetByID(ctx context.Context, id string) (*models.Session, error)
	// UpdateStatus transitions a session's status.
	UpdateStatus(ctx context.Context, id, status string) error
	// ListByTherapist returns all sessions for a therapist, ascending by
	// date and start time.
	ListByTherapist(ctx context.Context, therapistID string) ([]models.Session, error)
	// ListByPatient returns all sessions for a patient, ascending by date
	// and start time.
	ListByPatient(ctx context.Context, patientID string) ([]models.Session, error)
}
