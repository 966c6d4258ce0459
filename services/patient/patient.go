package patient

import (
	"context"
	"time"

	patientRepo "harmony/database/repository/patient"
	"harmony/models"

	"github.com/google/uuid"
)

// PatientService manages patient profiles.
type PatientService interface {
	Create(ctx context.Context, patient *models.Patient) error
	Get(ctx context.Context, id string) (*models.Patient, error)
	Update(ctx context.Context, patient *models.Patient) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Patient, error)
	Search(ctx context.Context, query string) ([]models.Patient, error)
}

// DefaultPatientService implements PatientService over the repository.
type DefaultPatientService struct {
	Repo patientRepo.PatientRepository
}

func NewDefaultPatientService(repo patientRepo.PatientRepository) *DefaultPatientService {
	return &DefaultPatientService{Repo: repo}
}

func (svc *DefaultPatientService) Create(ctx context.Context, patient *models.Patient) error {
	if patient.ID == "" {
		patient.ID = uuid.New().String()
	}
	now := time.Now()
	patient.CreatedAt = now
	patient.UpdatedAt = now
	return svc.Repo.Create(ctx, patient)
}

func (svc *DefaultPatientService) Get(ctx context.Context, id string) (*models.Patient, error) {
	return svc.Repo.GetByID(ctx, id)
}

func (svc *DefaultPatientService) Update(ctx context.Context, patient *models.Patient) error {
	patient.UpdatedAt = time.Now()
	return svc.Repo.Update(ctx, patient)
}

func (svc *DefaultPatientService) Delete(ctx context.Context, id string) error {
	return svc.Repo.Delete(ctx, id)
}

func (svc *DefaultPatientService) List(ctx context.Context) ([]models.Patient, error) {
	return svc.Repo.List(ctx)
}

func (svc *DefaultPatientService) Search(ctx context.Context, query string) ([]models.Patient, error) {
	return svc.Repo.SearchByName(ctx, query)
}
