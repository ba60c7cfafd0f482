// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"joylist/internal/domain/entity"

	"github.com/google/uuid"
)

// BusinessUsecase defines the business-listing operations. Read operations
// are public; Create, Update and Delete require the caller's authenticated
// identity and run behind the mutation rate limit.
type BusinessUsecase interface {
	GetAll(ctx context.Context) ([]*entity.EnrichedBusiness, error)
	GetByID(ctx context.Context, businessID uuid.UUID) (*entity.Business, error)
	GetByUserID(ctx context.Context, userID string) ([]*entity.EnrichedBusiness, error)
	Create(ctx context.Context, callerID string, input *UpsertBusinessInput) (*entity.Business, error)
	Update(ctx context.Context, callerID string, businessID uuid.UUID, input *UpsertBusinessInput) (*entity.Business, error)
	Delete(ctx context.Context, callerID string, businessID uuid.UUID) (*entity.Business, error)
}

// --- Input DTOs ---

// UpsertBusinessInput is the untrusted submission for create and update.
type UpsertBusinessInput struct {
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	URL   string `json:"url"`
	Phone string `json:"phone,omitempty"`
}
