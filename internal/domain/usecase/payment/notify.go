package payment

import (
	"context"
	"time"

	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
	"github.com/oseikuffour/contribution-processor/internal/domain/port/events"
)

// dispatchNotification writes the user-facing record for a terminal
// transition. It runs only after the guarded transition succeeded, so it
// fires at most once per (transaction, status). Failures are logged and
// swallowed: the transition is the authoritative unit of durability, the
// notification is not.
func (s *Service) dispatchNotification(ctx context.Context, txn *entity.Transaction) {
	notification := entity.NewTransactionNotification(txn, s.timeProvider)
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.Warn("Failed to write notification", map[string]any{
			"transaction_id": txn.ID,
			"user_id":        txn.UserID,
			"status":         string(txn.Status),
			"error":          err.Error(),
		})
		return
	}

	s.logger.Debug("Notification dispatched", map[string]any{
		"transaction_id": txn.ID,
		"user_id":        txn.UserID,
		"type":           string(notification.Type),
	})
}

// publishSettled emits the settlement event for read-only collaborators.
// Best-effort like notifications; a nil publisher disables the feed.
func (s *Service) publishSettled(ctx context.Context, txn *entity.Transaction, settledAt time.Time) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.PublishSettled(ctx, events.SettledEvent{
		TransactionID: txn.ID,
		UserID:        txn.UserID,
		Reference:     txn.TransactionReference,
		Status:        string(txn.Status),
		Amount:        entity.FormatAmount(txn.Amount),
		SettledAt:     settledAt,
	})
	if err != nil {
		s.logger.Warn("Failed to publish settlement event", map[string]any{
			"transaction_id": txn.ID,
			"error":          err.Error(),
		})
	}
}
