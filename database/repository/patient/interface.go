package patientRepo

import (
	"context"

	"harmony/models"
)

// PatientRepository defines the data access methods for patient profiles.
type PatientRepository interface {
	GetByID(ctx context.Context, id string) (*models.Patient, error)
	Create(ctx context.Context, patient *models.Patient) error
	Update(ctx context.Context, patient *models.Patient) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Patient, error)
	SearchByName(ctx context.Context, query string) ([]models.Patient, error)
}
