package scheduling

import (
	"context"
	"errors"
	"fmt"

	sessionRepo "harmony/database/repository/session"
	"harmony/models"
)

// fakeSessionRepo is an in-memory SessionRepository. Insert enforces the same
// overlap invariant the store's unique slot index provides.
type fakeSessionRepo struct {
	sessions  []models.Session
	findErr   error
	insertErr error
}

func (f *fakeSessionRepo) FindByTherapistAndDate(ctx context.Context, therapistID, date string) ([]models.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.Session
	for _, s := range f.sessions {
		if s.TherapistID == therapistID && s.Date == date && s.Status != models.SessionCancelled {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) FindByPatientAndDate(ctx context.Context, patientID, date string) ([]models.Session, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	var out []models.Session
	for _, s := range f.sessions {
		if s.PatientID == patientID && s.Date == date && s.Status != models.SessionCancelled {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) Insert(ctx context.Context, session *models.Session) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	for _, s := range f.sessions {
		if s.Status == models.SessionCancelled || s.Date != session.Date {
			continue
		}
		if s.TherapistID != session.TherapistID && s.PatientID != session.PatientID {
			continue
		}
		for _, k := range s.SlotKeys {
			for _, nk := range session.SlotKeys {
				if k == nk {
					return sessionRepo.ErrDuplicateSlot
				}
			}
		}
	}
	f.sessions = append(f.sessions, *session)
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			return &f.sessions[i], nil
		}
	}
	return nil, fmt.Errorf("session %s not found", id)
}

func (f *fakeSessionRepo) UpdateStatus(ctx context.Context, id, status string) error {
	for i := range f.sessions {
		if f.sessions[i].ID == id {
			f.sessions[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("session %s not found", id)
}

func (f *fakeSessionRepo) ListByTherapist(ctx context.Context, therapistID string) ([]models.Session, error) {
	var out []models.Session
	for _, s := range f.sessions {
		if s.TherapistID == therapistID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSessionRepo) ListByPatient(ctx context.Context, patientID string) ([]models.Session, error) {
	var out []models.Session
	for _, s := range f.sessions {
		if s.PatientID == patientID {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakePatientRepo struct {
	patients map[string]*models.Patient
}

var errNotFound = errors.New("not found")

func (f *fakePatientRepo) GetByID(ctx context.Context, id string) (*models.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, errNotFound
	}
	return p, nil
}

func (f *fakePatientRepo) Create(ctx context.Context, p *models.Patient) error {
	f.patients[p.ID] = p
	return nil
}

func (f *fakePatientRepo) Update(ctx context.Context, p *models.Patient) error {
	f.patients[p.ID] = p
	return nil
}

func (f *fakePatientRepo) Delete(ctx context.Context, id string) error {
	delete(f.patients, id)
	return nil
}

func (f *fakePatientRepo) List(ctx context.Context) ([]models.Patient, error) {
	var out []models.Patient
	for _, p := range f.patients {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakePatientRepo) SearchByName(ctx context.Context, query string) ([]models.Patient, error) {
	return f.List(ctx)
}

type fakeTherapistRepo struct {
	therapists map[string]*models.Therapist
}

func (f *fakeTherapistRepo) GetByID(ctx context.Context, id string) (*models.Therapist, error) {
	t, ok := f.therapists[id]
	if !ok {
		return nil, errNotFound
	}
	return t, nil
}

func (f *fakeTherapistRepo) Create(ctx context.Context, t *models.Therapist) error {
	f.therapists[t.ID] = t
	return nil
}

func (f *fakeTherapistRepo) Update(ctx context.Context, t *models.Therapist) error {
	f.therapists[t.ID] = t
	return nil
}

func (f *fakeTherapistRepo) Delete(ctx context.Context, id string) error {
	delete(f.therapists, id)
	return nil
}

func (f *fakeTherapistRepo) List(ctx context.Context) ([]models.Therapist, error) {
	var out []models.Therapist
	for _, t := range f.therapists {
		out = append(out, *t)
	}
	return out, nil
}
