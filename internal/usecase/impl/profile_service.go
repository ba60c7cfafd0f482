package impl

import (
	"context"
	"log/slog"
	"strings"

	"joylist/internal/domain/entity"
	domainerrors "joylist/internal/domain/errors"
	"joylist/internal/domain/service"
	"joylist/internal/usecase"

	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	identity service.IdentityProvider
	qr       service.QRCodeService
	logger   *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	identity service.IdentityProvider,
	qr service.QRCodeService,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		identity: identity,
		qr:       qr,
		logger:   logger,
	}
}

// GetUserByUsername returns the public profile for a username.
func (srv *profileService) GetUserByUsername(ctx context.Context, username string) (*entity.UserProfile, error) {
	profile, err := srv.identity.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, service.ErrProviderUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("no user for username")
		}

		return nil, errors.Wrap(err, "failed to fetch user")
	}

	return profile, nil
}

// SearchUsers delegates to the provider's user search. An empty query
// returns an empty result set without a provider call.
func (srv *profileService) SearchUsers(ctx context.Context, query string) ([]*entity.UserProfile, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*entity.UserProfile{}, nil
	}

	profiles, err := srv.identity.SearchUsers(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "user search failed")
	}

	return profiles, nil
}

// ShareQR renders a QR code for the user's public list page. The provider
// lookup runs first so unknown usernames surface as not-found.
func (srv *profileService) ShareQR(ctx context.Context, username string) ([]byte, error) {
	profile, err := srv.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	png, err := srv.qr.GenerateProfileQR(profile.Username)
	if err != nil {
		return nil, errors.Wrap(err, "failed to render profile QR")
	}

	return png, nil
}
