package migration

import (
	"context"
	"errors"

	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
	errs "github.com/oseikuffour/contribution-processor/internal/domain/error"
	"github.com/oseikuffour/contribution-processor/internal/domain/port/persistence"
)

// Seed members for development environments. Production member accounts are
// managed by the main application, never seeded here.
var defaultMembers = []entity.User{
	{Name: "Akosua Mensah", Email: "akosua@example.com", Phone: "+233241234567"},
	{Name: "Kofi Boateng", Email: "kofi@example.com", Phone: "+233501234567"},
	{Name: "Ama Owusu", Email: "ama@example.com", Phone: "+233271234567"},
}

// CreateDefaultMembers creates the development seed members, skipping any
// that already exist
func CreateDefaultMembers(ctx context.Context, users persistence.UserRepository) error {
	for _, member := range defaultMembers {
		_, err := users.GetByEmail(ctx, member.Email)
		if err == nil {
			continue
		}
		if !errors.Is(err, errs.ErrUserNotFound) {
			return err
		}

		seed := member
		if err := users.Create(ctx, &seed); err != nil && !errors.Is(err, errs.ErrDuplicateUser) {
			return err
		}
	}

	return nil
}
