package therapist

import (
	"context"
	"time"

	therapistRepo "harmony/database/repository/therapist"
	"harmony/models"

	"github.com/google/uuid"
)

// TherapistService manages therapist profiles.
type TherapistService interface {
	Create(ctx context.Context, therapist *models.Therapist) error
	Get(ctx context.Context, id string) (*models.Therapist, error)
	Update(ctx context.Context, therapist *models.Therapist) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.Therapist, error)
}

// DefaultTherapistService implements TherapistService over the repository.
type DefaultTherapistService struct {
	Repo therapistRepo.TherapistRepository
}

func NewDefaultTherapistService(repo therapistRepo.TherapistRepository) *DefaultTherapistService {
	return &DefaultTherapistService{Repo: repo}
}

func (svc *DefaultTherapistService) Create(ctx context.Context, therapist *models.Therapist) error {
	if therapist.ID == "" {
		therapist.ID = uuid.New().String()
	}
	now := time.Now()
	therapist.CreatedAt = now
	therapist.UpdatedAt = now
	return svc.Repo.Create(ctx, therapist)
}

func (svc *DefaultTherapistService) Get(ctx context.Context, id string) (*models.Therapist, error) {
	return svc.Repo.GetByID(ctx, id)
}

func (svc *DefaultTherapistService) Update(ctx context.Context, therapist *models.Therapist) error {
	therapist.UpdatedAt = time.Now()
	return svc.Repo.Update(ctx, therapist)
}

func (svc *DefaultTherapistService) Delete(ctx context.Context, id string) error {
	return svc.Repo.Delete(ctx, id)
}

func (svc *DefaultTherapistService) List(ctx context.Context) ([]models.Therapist, error) {
	return svc.Repo.List(ctx)
}
