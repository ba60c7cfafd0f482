package impl

import (
	"context"
	"io"
	"log/slog"

	"joylist/internal/domain/entity"
	"joylist/internal/domain/repository"
	"joylist/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- repository double ---

type mockBusinessRepo struct {
	mock.Mock
}

func (m *mockBusinessRepo) FindAll(ctx context.Context) ([]*entity.Business, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Business), args.Error(1)
}

func (m *mockBusinessRepo) FindByUser(ctx context.Context, userID string) ([]*entity.Business, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Business), args.Error(1)
}

func (m *mockBusinessRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Business), args.Error(1)
}

func (m *mockBusinessRepo) Create(ctx context.Context, business *entity.Business) error {
	args := m.Called(ctx, business)

	return args.Error(0)
}

func (m *mockBusinessRepo) Update(ctx context.Context, business *entity.Business) error {
	args := m.Called(ctx, business)

	return args.Error(0)
}

func (m *mockBusinessRepo) Delete(ctx context.Context, id uuid.UUID) (*entity.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Business), args.Error(1)
}

// passthroughTxManager runs the callback against the same repository double,
// without a real transaction.
type passthroughTxManager struct {
	repo repository.BusinessRepository
}

func (tm *passthroughTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(tm)
}

func (tm *passthroughTxManager) NewBusinessRepository() repository.BusinessRepository {
	return tm.repo
}

// --- identity double ---

type mockIdentity struct {
	mock.Mock
}

func (m *mockIdentity) GetUserList(ctx context.Context, userIDs []string) ([]*entity.UserProfile, error) {
	args := m.Called(ctx, userIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.UserProfile), args.Error(1)
}

func (m *mockIdentity) GetUserByUsername(ctx context.Context, username string) (*entity.UserProfile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.UserProfile), args.Error(1)
}

func (m *mockIdentity) SearchUsers(ctx context.Context, query string) ([]*entity.UserProfile, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.UserProfile), args.Error(1)
}

// --- rate limiter double ---

type stubLimiter struct {
	decision service.Decision
	err      error
	calls    []string
}

func allowAll() *stubLimiter {
	return &stubLimiter{decision: service.Decision{Allowed: true, Remaining: 2}}
}

func (l *stubLimiter) Allow(_ context.Context, identity string) (service.Decision, error) {
	l.calls = append(l.calls, identity)
	if l.err != nil {
		return service.Decision{}, l.err
	}

	return l.decision, nil
}

// --- qr double ---

type stubQR struct {
	png []byte
	err error
}

func (q *stubQR) GenerateProfileQR(_ string) ([]byte, error) {
	return q.png, q.err
}
