package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
	errs "github.com/oseikuffour/contribution-processor/internal/domain/error"
	mcore "github.com/oseikuffour/contribution-processor/mocks/port/core"
	mpers "github.com/oseikuffour/contribution-processor/mocks/port/persistence"
)

func newResolverWithMocks() (*UserResolver, *mpers.MockUserRepository) {
	userRepo := new(mpers.MockUserRepository)
	logger := new(mcore.MockLogger)
	logger.On("Info", mock.Anything, mock.Anything).Maybe()
	return NewUserResolver(userRepo, logger), userRepo
}

func TestUserResolver(t *testing.T) {
	ctx := context.Background()
	user := &entity.User{ID: 42, Email: "akosua@example.com"}

	t.Run("Resolves by id", func(t *testing.T) {
		resolver, userRepo := newResolverWithMocks()
		userRepo.On("GetByID", ctx, uint64(42)).Return(user, nil)

		got, err := resolver.Resolve(ctx, 42, "")
		assert.NoError(t, err)
		assert.Equal(t, user, got)
		userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})

	t.Run("Falls back to email when id misses", func(t *testing.T) {
		resolver, userRepo := newResolverWithMocks()
		userRepo.On("GetByID", ctx, uint64(99)).Return(nil, errs.ErrUserNotFound)
		userRepo.On("GetByEmail", ctx, "akosua@example.com").Return(user, nil)

		got, err := resolver.Resolve(ctx, 99, "akosua@example.com")
		assert.NoError(t, err)
		assert.Equal(t, user, got)
	})

	t.Run("No id match and no email is a resolution failure", func(t *testing.T) {
		resolver, userRepo := newResolverWithMocks()
		userRepo.On("GetByID", ctx, uint64(99)).Return(nil, errs.ErrUserNotFound)

		_, err := resolver.Resolve(ctx, 99, "")
		assert.ErrorIs(t, err, errs.ErrUserNotFound)

		var rerr *errs.UserResolutionError
		assert.ErrorAs(t, err, &rerr)
		assert.Equal(t, uint64(99), rerr.UserID)
	})

	t.Run("Neither id nor email resolves", func(t *testing.T) {
		resolver, userRepo := newResolverWithMocks()
		userRepo.On("GetByID", ctx, uint64(99)).Return(nil, errs.ErrUserNotFound)
		userRepo.On("GetByEmail", ctx, "ghost@example.com").Return(nil, errs.ErrUserNotFound)

		_, err := resolver.Resolve(ctx, 99, "ghost@example.com")
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("Infrastructure errors propagate unchanged", func(t *testing.T) {
		resolver, userRepo := newResolverWithMocks()
		boom := errors.New("connection refused")
		userRepo.On("GetByID", ctx, uint64(42)).Return(nil, boom)

		_, err := resolver.Resolve(ctx, 42, "akosua@example.com")
		assert.ErrorIs(t, err, boom)
		userRepo.AssertNotCalled(t, "GetByEmail", mock.Anything, mock.Anything)
	})
}
