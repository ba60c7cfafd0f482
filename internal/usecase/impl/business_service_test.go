package impl

import (
	"context"
	"testing"
	"time"

	"joylist/internal/domain/entity"
	domainerrors "joylist/internal/domain/errors"
	"joylist/internal/domain/repository"
	"joylist/internal/domain/service"
	"joylist/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type businessServiceFixtures struct {
	service  usecase.BusinessUsecase
	repo     *mockBusinessRepo
	identity *mockIdentity
	limiter  *stubLimiter
}

func createTestBusinessService(t *testing.T, limiter *stubLimiter) businessServiceFixtures {
	t.Helper()

	repo := &mockBusinessRepo{}
	identity := &mockIdentity{}
	txManager := &passthroughTxManager{repo: repo}
	svc := NewBusinessService(repo, txManager, identity, limiter, newDiscardLogger())

	t.Cleanup(func() {
		repo.AssertExpectations(t)
		identity.AssertExpectations(t)
	})

	return businessServiceFixtures{
		service:  svc,
		repo:     repo,
		identity: identity,
		limiter:  limiter,
	}
}

func validUpsertInput() *usecase.UpsertBusinessInput {
	return &usecase.UpsertBusinessInput{
		Name:  "Corner Coffee",
		Type:  "Cafe",
		URL:   "https://corner.coffee",
		Phone: "(555) 555-1234",
	}
}

func TestBusinessService_Create_StampsCallerAsOwner(t *testing.T) {
	deps := createTestBusinessService(t, allowAll())
	ctx := context.Background()

	deps.repo.On("Create", ctx, mock.AnythingOfType("*entity.Business")).
		Run(func(args mock.Arguments) {
			business := args.Get(1).(*entity.Business)
			business.ID = uuid.New()
			business.CreatedAt = time.Now()
		}).
		Return(nil)

	created, err := deps.service.Create(ctx, "user_1", validUpsertInput())

	require.NoError(t, err)
	assert.Equal(t, "user_1", created.UserID)
	assert.Equal(t, "Corner Coffee", created.Name)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, []string{"user_1"}, deps.limiter.calls, "quota keyed by caller identity")
}

func TestBusinessService_Create_RateLimited(t *testing.T) {
	limiter := &stubLimiter{decision: service.Decision{Allowed: false, RetryAfter: 30 * time.Second}}
	deps := createTestBusinessService(t, limiter)

	_, err := deps.service.Create(context.Background(), "user_1", validUpsertInput())

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "RATE_LIMITED", appErr.ErrorCode())
	deps.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBusinessService_Create_LimiterOutageFailsClosed(t *testing.T) {
	limiter := &stubLimiter{err: errors.New("redis down")}
	deps := createTestBusinessService(t, limiter)

	_, err := deps.service.Create(context.Background(), "user_1", validUpsertInput())

	require.Error(t, err)
	var appErr domainerrors.AppError
	assert.False(t, errors.As(err, &appErr), "store outage is an infrastructure error, not a quota rejection")
	deps.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBusinessService_Create_ValidationShortCircuits(t *testing.T) {
	deps := createTestBusinessService(t, allowAll())

	input := validUpsertInput()
	input.URL = "corner.coffee"

	_, err := deps.service.Create(context.Background(), "user_1", input)

	var verr *domainerrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Please provide a valid website address.", verr.Fields()["url"])
	deps.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBusinessService_GetByID_NotFound(t *testing.T) {
	deps := createTestBusinessService(t, allowAll())
	ctx := context.Background()
	id := uuid.New()

	deps.repo.On("FindByID", ctx, id).Return(nil, repository.ErrBusinessNotFound)

	_, err := deps.service.GetByID(ctx, id)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "BUSINESS_NOT_FOUND", appErr.ErrorCode())
}

func TestBusinessService_GetAll_EnrichesWithOwners(t *testing.T) {
	deps := createTestBusinessService(t, allowAll())
	ctx := context.Background()

	businesses := []*entity.Business{
		{ID: uuid.New(), UserID: "user_1", Name: "Alpha", URL: "https://a.example"},
		{ID: uuid.New(), UserID: "user_2", Name: "Bravo", URL: "https://b.example"},
		{ID: uuid.New(), UserID: "user_1", Name: "Charlie", URL: "https://c.example"},
	}

	deps.repo.On("FindAll", ctx).Return(businesses, nil)
	// Owners are fetched once, for the distinct id set.
	deps.identity.On("GetUserList", ctx, []string{"user_1", "user_2"}).Return([]*entity.UserProfile{
		{ID: "user_1", Username: "ada"},
		{ID: "user_2", Username: "grace"},
	}, nil)

	enriched, err := deps.service.GetAll(ctx)

	require.NoError(t, err)
	require.Len(t, enriched, 3)
	assert.Equal(t, "ada", enriched[0].User.Username)
	assert.Equal(t, "grace", enriched[1].User.Username)
	assert.Equal(t, "ada", enriched[2].User.Username)
}

func TestBusinessService_GetAll_MissingOwnerIsNotFound(t *testing.T) {
	deps := createTestBusinessService(t, allowAll())
	ctx := context.Background()

	deps.repo.On("FindAll", ctx).Return([]*entity.Business{
		{ID: uuid.New(), UserID: "user_gone", Name: "Orphan", URL: "https://o.example"},
	}, nil)
	deps.identity.On("GetUserList", ctx, []string{"user_gone"}).Return([]*entity.UserProfile{}, nil)

	_, err := deps.service.GetAll(ctx)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "LISTING_OWNER_NOT_FOUND", appErr.ErrorCode())
}

func TestBusinessService_GetAll_OwnerWithoutUsernameIsInternal(t *testing.T) {
	deps := createTestBusinessService(t, allowAll())
	ctx := context.Background()

	deps.repo.On("FindAll", ctx).Return([]*entity.Business{
		{ID: uuid.New(), UserID: "user_1", Name: "Alpha", URL: "https://a.example"},
	}, nil)
	deps.identity.On("GetUserList", ctx, []string{"user_1"}).Return([]*entity.UserProfile{
		{ID: "user_1", Username: ""},
	}, nil)

	_, err := deps.service.GetAll(ctx)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INTERNAL_ERROR", appErr.ErrorCode())
}

func TestBusinessService_GetByUserID_PreservesNameOrder(t *testing.T) {
	deps := createTestBusinessService(t, allowAll())
	ctx := context.Background()

	// The repository returns rows ordered by name ascending.
	deps.repo.On("FindByUser", ctx, "user_1").Return([]*entity.Business{
		{ID: uuid.New(), UserID: "user_1", Name: "Alpha", URL: "https://a.example"},
		{ID: uuid.New(), UserID: "user_1", Name: "Bravo", URL: "https://b.example"},
	}, nil)
	deps.identity.On("GetUserList", ctx, []string{"user_1"}).Return([]*entity.UserProfile{
		{ID: "user_1", Username: "ada"},
	}, nil)

	enriched, err := deps.service.GetByUserID(ctx, "user_1")

	require.NoError(t, err)
	require.Len(t, enriched, 2)
	assert.Equal(t, "Alpha", enriched[0].Business.Name)
	assert.Equal(t, "Bravo", enriched[1].Business.Name)
}

func TestBusinessService_Update_ForbiddenForNonOwner(t *testing.T) {
	deps := createTestBusinessService(t, allowAll())
	ctx := context.Background()
	id := uuid.New()

	deps.repo.On("FindByID", ctx, id).Return(&entity.Business{
		ID: id, UserID: "user_1", Name: "Alpha", URL: "https://a.example",
	}, nil)

	_, err := deps.service.Update(ctx, "user_2", id, validUpsertInput())

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.ErrorCode())
	deps.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestBusinessService_Update_OverwritesContentFields(t *testing.T) {
	deps := createTestBusinessService(t, allowAll())
	ctx := context.Background()
	id := uuid.New()

	deps.repo.On("FindByID", ctx, id).Return(&entity.Business{
		ID: id, UserID: "user_1", Name: "Old Name", URL: "https://old.example",
	}, nil)
	deps.repo.On("Update", ctx, mock.AnythingOfType("*entity.Business")).Return(nil)

	updated, err := deps.service.Update(ctx, "user_1", id, validUpsertInput())

	require.NoError(t, err)
	assert.Equal(t, "Corner Coffee", updated.Name)
	assert.Equal(t, "https://corner.coffee", updated.URL)
	assert.Equal(t, "user_1", updated.UserID, "owner never changes on update")
}

func TestBusinessService_Delete_ReturnsRemovedRecord(t *testing.T) {
	deps := createTestBusinessService(t, allowAll())
	ctx := context.Background()
	id := uuid.New()

	existing := &entity.Business{ID: id, UserID: "user_1", Name: "Alpha", URL: "https://a.example"}
	deps.repo.On("FindByID", ctx, id).Return(existing, nil)
	deps.repo.On("Delete", ctx, id).Return(existing, nil)

	removed, err := deps.service.Delete(ctx, "user_1", id)

	require.NoError(t, err)
	assert.Equal(t, id, removed.ID)
	assert.Equal(t, []string{"user_1"}, deps.limiter.calls, "delete counts against the mutation quota")
}

func TestBusinessService_Delete_NotFoundAfterRemoval(t *testing.T) {
	deps := createTestBusinessService(t, allowAll())
	ctx := context.Background()
	id := uuid.New()

	deps.repo.On("FindByID", ctx, id).Return(nil, repository.ErrBusinessNotFound)

	_, err := deps.service.Delete(ctx, "user_1", id)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "BUSINESS_NOT_FOUND", appErr.ErrorCode())
}
