package persistence

import (
	"context"

	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
)

// NotificationRepository persists user-facing notification records
type NotificationRepository interface {
	// Create inserts a notification. A unique index on
	// (transaction_id, status) backs up the dispatcher's at-most-once
	// guarantee; violating it returns ErrDuplicateReference.
	//
	// Possible errors:
	// - ErrDuplicateReference
	// - ErrDatabaseConnection
	Create(ctx context.Context, notification *entity.Notification) error
}
