// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"joylist/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrBusinessNotFound is a domain-specific error returned when a business row does not exist.
var ErrBusinessNotFound = errors.New("business not found")

// BusinessRepository defines the standard operations for business persistence.
// The application layer depends on this interface, not the concrete implementation.
type BusinessRepository interface {
	// FindAll retrieves every business. No ordering is applied.
	FindAll(ctx context.Context) ([]*entity.Business, error)

	// FindByUser retrieves the businesses owned by userID, ordered by name ascending.
	FindByUser(ctx context.Context, userID string) ([]*entity.Business, error)

	// FindByID retrieves a single business by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error)

	// Create persists a new business and backfills the generated ID and timestamps.
	Create(ctx context.Context, business *entity.Business) error

	// Update overwrites the content fields (name, type, url, phone) of an existing row.
	Update(ctx context.Context, business *entity.Business) error

	// Delete removes the row matching id and returns the removed record.
	Delete(ctx context.Context, id uuid.UUID) (*entity.Business, error)
}
