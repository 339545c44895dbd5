package events

import (
	"context"
	"time"
)

// SettledEvent announces a terminal transition on the ledger. Dashboard and
// statement collaborators consume these as an append-only feed; they never
// mutate transaction state.
type SettledEvent struct {
	TransactionID uint64    `json:"transaction_id"`
	UserID        uint64    `json:"user_id"`
	Reference     string    `json:"reference"`
	Status        string    `json:"status"`
	Amount        string    `json:"amount"` // major units, two decimal places
	SettledAt     time.Time `json:"settled_at"`
}

// Publisher emits settlement events. Implementations are best-effort: a
// publish failure is logged and swallowed, never escalated to the caller.
type Publisher interface {
	PublishSettled(ctx context.Context, event SettledEvent) error
	Close()
}
