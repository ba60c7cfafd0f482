// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Business is a user-submitted entry on a JoyList: a favorite place,
// service or activity the owner wants to share.
type Business struct {
	ID        uuid.UUID `json:"id"`         // The unique identifier, generated on creation.
	UserID    string    `json:"user_id"`    // Identity-provider ID of the owning user. Immutable after creation.
	Name      string    `json:"name"`       // Display name, 2-100 characters.
	Type      string    `json:"type"`       // Free-text category, optional, up to 100 characters.
	URL       string    `json:"url"`        // Website address, always carries an explicit scheme.
	Phone     string    `json:"phone"`      // Optional phone number in US format.
	CreatedAt time.Time `json:"created_at"` // Timestamp of when this entry was created.
	UpdatedAt time.Time `json:"updated_at"` // Timestamp of the last modification.
}

// EnrichedBusiness pairs a Business with a snapshot of its owner's public
// profile. It is a read model assembled per request and never persisted.
type EnrichedBusiness struct {
	Business *Business    `json:"business"`
	User     *UserProfile `json:"user"`
}
