// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"time"

	"joylist/internal/domain/entity"
	domainerrors "joylist/internal/domain/errors"
	"joylist/internal/domain/repository"
	"joylist/internal/domain/service"
	"joylist/internal/domain/validate"
	"joylist/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// decisionRound keeps the retry hint readable in error details.
const decisionRound = time.Second

// businessService implements the BusinessUsecase interface.
type businessService struct {
	repo      repository.BusinessRepository
	txManager repository.TransactionManager
	identity  service.IdentityProvider
	limiter   service.RateLimiter
	logger    *slog.Logger
}

// NewBusinessService is the constructor for businessService.
func NewBusinessService(
	repo repository.BusinessRepository,
	txManager repository.TransactionManager,
	identity service.IdentityProvider,
	limiter service.RateLimiter,
	logger *slog.Logger,
) usecase.BusinessUsecase {
	return &businessService{
		repo:      repo,
		txManager: txManager,
		identity:  identity,
		limiter:   limiter,
		logger:    logger,
	}
}

// GetAll returns every business enriched with its owner's public profile.
func (srv *businessService) GetAll(ctx context.Context) ([]*entity.EnrichedBusiness, error) {
	businesses, err := srv.repo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list businesses")
	}

	return srv.addUserData(ctx, businesses)
}

// GetByID returns a single business. A missing row is a not-found error,
// never an internal one.
func (srv *businessService) GetByID(ctx context.Context, businessID uuid.UUID) (*entity.Business, error) {
	business, err := srv.repo.FindByID(ctx, businessID)
	if err != nil {
		if errors.Is(err, repository.ErrBusinessNotFound) {
			return nil, domainerrors.ErrBusinessNotFound.WrapMessage("no business for id")
		}

		return nil, errors.Wrap(err, "failed to find business")
	}

	return business, nil
}

// GetByUserID returns the businesses owned by userID, enriched and ordered
// by name ascending.
func (srv *businessService) GetByUserID(ctx context.Context, userID string) ([]*entity.EnrichedBusiness, error) {
	businesses, err := srv.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list businesses by user")
	}

	return srv.addUserData(ctx, businesses)
}

// Create validates the submission and inserts a new business owned by the
// caller. Sequencing: rate limit, then validation, then storage; each
// failure short-circuits the rest.
func (srv *businessService) Create(ctx context.Context, callerID string, input *usecase.UpsertBusinessInput) (*entity.Business, error) {
	if err := srv.checkRateLimit(ctx, callerID); err != nil {
		return nil, err
	}

	normalized, verr := validate.Business(&validate.BusinessInput{
		Name:  input.Name,
		Type:  input.Type,
		URL:   input.URL,
		Phone: input.Phone,
	})
	if verr != nil {
		return nil, verr
	}

	business := &entity.Business{
		UserID: callerID,
		Name:   normalized.Name,
		Type:   normalized.Type,
		URL:    normalized.URL,
		Phone:  normalized.Phone,
	}

	if err := srv.repo.Create(ctx, business); err != nil {
		return nil, errors.Wrap(err, "failed to create business")
	}

	srv.logger.Info("business created",
		slog.String("businessID", business.ID.String()),
		slog.String("userID", callerID),
	)

	return business, nil
}

// Update overwrites the content fields of an existing business. Only the
// owner may update; the check and the write share one transaction so a
// concurrent owner change cannot slip between them.
func (srv *businessService) Update(ctx context.Context, callerID string, businessID uuid.UUID, input *usecase.UpsertBusinessInput) (*entity.Business, error) {
	if err := srv.checkRateLimit(ctx, callerID); err != nil {
		return nil, err
	}

	normalized, verr := validate.Business(&validate.BusinessInput{
		Name:  input.Name,
		Type:  input.Type,
		URL:   input.URL,
		Phone: input.Phone,
	})
	if verr != nil {
		return nil, verr
	}

	var updated *entity.Business

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewBusinessRepository()

		business, err := repo.FindByID(ctx, businessID)
		if err != nil {
			if errors.Is(err, repository.ErrBusinessNotFound) {
				return domainerrors.ErrBusinessNotFound.WrapMessage("no business for id")
			}

			return errors.Wrap(err, "failed to find business")
		}

		if business.UserID != callerID {
			return domainerrors.ErrForbidden.WrapMessage("caller does not own business")
		}

		business.Name = normalized.Name
		business.Type = normalized.Type
		business.URL = normalized.URL
		business.Phone = normalized.Phone

		if err := repo.Update(ctx, business); err != nil {
			return errors.Wrap(err, "failed to update business")
		}
		updated = business

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("business updated",
		slog.String("businessID", businessID.String()),
		slog.String("userID", callerID),
	)

	return updated, nil
}

// Delete removes a business and returns the removed record. Only the owner
// may delete. Deletion counts against the mutation quota like any other write.
func (srv *businessService) Delete(ctx context.Context, callerID string, businessID uuid.UUID) (*entity.Business, error) {
	if err := srv.checkRateLimit(ctx, callerID); err != nil {
		return nil, err
	}

	var removed *entity.Business

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		repo := repoFactory.NewBusinessRepository()

		business, err := repo.FindByID(ctx, businessID)
		if err != nil {
			if errors.Is(err, repository.ErrBusinessNotFound) {
				return domainerrors.ErrBusinessNotFound.WrapMessage("no business for id")
			}

			return errors.Wrap(err, "failed to find business")
		}

		if business.UserID != callerID {
			return domainerrors.ErrForbidden.WrapMessage("caller does not own business")
		}

		removed, err = repo.Delete(ctx, businessID)
		if err != nil {
			return errors.Wrap(err, "failed to delete business")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.logger.Info("business deleted",
		slog.String("businessID", businessID.String()),
		slog.String("userID", callerID),
	)

	return removed, nil
}

// checkRateLimit consults the sliding window for the caller. A limiter store
// failure propagates as an infrastructure error (fail closed), distinct from
// a quota rejection.
func (srv *businessService) checkRateLimit(ctx context.Context, callerID string) error {
	decision, err := srv.limiter.Allow(ctx, callerID)
	if err != nil {
		return errors.Wrap(err, "rate limit check failed")
	}
	if !decision.Allowed {
		return domainerrors.ErrRateLimited.WithDetails(
			"retry after " + decision.RetryAfter.Round(decisionRound).String(),
		)
	}

	return nil
}

// addUserData pairs each business with its owner's public profile, fetched
// from the identity provider in one batch. A business whose owner cannot be
// resolved is a data-integrity error surfaced to the caller, never silently
// dropped.
func (srv *businessService) addUserData(ctx context.Context, businesses []*entity.Business) ([]*entity.EnrichedBusiness, error) {
	if len(businesses) == 0 {
		return []*entity.EnrichedBusiness{}, nil
	}

	seen := make(map[string]struct{}, len(businesses))
	ownerIDs := make([]string, 0, len(businesses))
	for _, business := range businesses {
		if _, ok := seen[business.UserID]; ok {
			continue
		}
		seen[business.UserID] = struct{}{}
		ownerIDs = append(ownerIDs, business.UserID)
	}

	profiles, err := srv.identity.GetUserList(ctx, ownerIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch listing owners")
	}

	byID := make(map[string]*entity.UserProfile, len(profiles))
	for _, profile := range profiles {
		byID[profile.ID] = profile
	}

	enriched := make([]*entity.EnrichedBusiness, 0, len(businesses))
	for _, business := range businesses {
		owner, ok := byID[business.UserID]
		if !ok {
			return nil, domainerrors.ErrListingOwnerNotFound.WithDetails(
				"owner " + business.UserID + " missing from identity provider",
			)
		}
		if owner.Username == "" {
			// The provider guarantees active accounts carry a username.
			return nil, domainerrors.ErrInternalError.WithDetails("owner has no username")
		}

		enriched = append(enriched, &entity.EnrichedBusiness{
			Business: business,
			User:     owner,
		})
	}

	return enriched, nil
}
