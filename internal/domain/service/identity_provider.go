// Package service defines the interfaces for external collaborators consumed
// by the use-case layer.
package service

import (
	"context"
	"errors"

	"joylist/internal/domain/entity"
)

// ErrProviderUserNotFound is returned when the identity provider has no
// record for the requested user.
var ErrProviderUserNotFound = errors.New("identity provider user not found")

// IdentityProvider exposes the externally managed user directory.
// Sign-up, sign-in and session issuance live entirely on the provider side;
// this service only reads public profile data.
type IdentityProvider interface {
	// GetUserList fetches the profiles for a set of user IDs in one batch call.
	// IDs unknown to the provider are simply absent from the result.
	GetUserList(ctx context.Context, userIDs []string) ([]*entity.UserProfile, error)

	// GetUserByUsername fetches a single profile by its public handle.
	// Returns ErrProviderUserNotFound when no account matches.
	GetUserByUsername(ctx context.Context, username string) (*entity.UserProfile, error)

	// SearchUsers runs the provider's user search. An empty query is the
	// caller's responsibility to short-circuit; passed through it matches nothing.
	SearchUsers(ctx context.Context, query string) ([]*entity.UserProfile, error)
}
