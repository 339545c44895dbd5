package persistence

import (
	"context"

	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
)

// UserRepository defines read access to member accounts plus the create
// operation used by development seeding
type UserRepository interface {
	// GetByID retrieves a member by id
	//
	// Possible errors:
	// - ErrUserNotFound
	// - ErrDatabaseConnection
	GetByID(ctx context.Context, id uint64) (*entity.User, error)

	// GetByEmail retrieves a member by email, the explicit fallback used by
	// the initiation resolver
	//
	// Possible errors:
	// - ErrUserNotFound
	// - ErrDatabaseConnection
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create inserts a member record (development seeding only)
	//
	// Possible errors:
	// - ErrDuplicateUser
	// - ErrDatabaseConnection
	Create(ctx context.Context, user *entity.User) error
}
