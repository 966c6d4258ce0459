package therapistRepo

import (
	"context"

	"harmony/models"
)

// TherapistRepository defines the data access methods for therapist profiles.
type TherapistRepository interface {
	GetByID(ctx context.Context, id string) (*models.Therapist, error)
	Create(ctx context.Context, therapist *models.Therapist) error
	Update(ctx context.Context, therapist *models.Therapist) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Therapist, error)
}
