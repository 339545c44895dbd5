package payment

import (
	"context"

	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
	errs "github.com/oseikuffour/contribution-processor/internal/domain/error"
	coreport "github.com/oseikuffour/contribution-processor/internal/domain/port/core"
	"github.com/oseikuffour/contribution-processor/internal/domain/port/persistence"
)

// UserResolver resolves the owning member for an initiation request. There is
// exactly one resolution policy: id first, then email as an explicit,
// logged fallback. Downstream code consumes the resolved user once and never
// branches on how it was found.
type UserResolver struct {
	userRepo persistence.UserRepository
	logger   coreport.Logger
}

// NewUserResolver creates a new UserResolver
func NewUserResolver(userRepo persistence.UserRepository, logger coreport.Logger) *UserResolver {
	return &UserResolver{userRepo: userRepo, logger: logger}
}

// Resolve returns the member for the given id, falling back to email when the
// id does not match. A UserResolutionError means no record may be created.
func (r *UserResolver) Resolve(ctx context.Context, userID uint64, email string) (*entity.User, error) {
	if userID != 0 {
		user, err := r.userRepo.GetByID(ctx, userID)
		if err == nil {
			return user, nil
		}
		if !errs.IsUserNotFoundError(err) {
			return nil, err
		}
	}

	if email == "" {
		return nil, &errs.UserResolutionError{UserID: userID}
	}

	r.logger.Info("Member id did not resolve, falling back to email", map[string]any{
		"user_id": userID,
		"email":   email,
	})

	user, err := r.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errs.IsUserNotFoundError(err) {
		return nil, err
	}
	return nil, &errs.UserResolutionError{UserID: userID, Email: email}
}
