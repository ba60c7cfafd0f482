package usecase

import (
	"context"

	"joylist/internal/domain/entity"
)

// ProfileUsecase defines the public profile operations backed by the
// external identity provider.
type ProfileUsecase interface {
	GetUserByUsername(ctx context.Context, username string) (*entity.UserProfile, error)

	// SearchUsers returns public profiles matching the query. An empty query
	// returns an empty result set, not all users.
	SearchUsers(ctx context.Context, query string) ([]*entity.UserProfile, error)

	// ShareQR renders a PNG QR code linking to the user's public list page.
	ShareQR(ctx context.Context, username string) ([]byte, error)
}
