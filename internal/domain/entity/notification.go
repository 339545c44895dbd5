package entity

import (
	"fmt"
	"time"

	coreport "github.com/oseikuffour/contribution-processor/internal/domain/port/core"
)

// NotificationType tags user-facing notification records
type NotificationType string

const (
	NotificationDepositCompleted NotificationType = "deposit_completed"
	NotificationDepositFailed    NotificationType = "deposit_failed"
)

// Notification is a user-facing record of a settled contribution. It is
// written at most once per (transaction, terminal status) pair, and only
// after the guarded transition has actually occurred.
type Notification struct {
	ID            uint64
	UserID        uint64
	TransactionID uint64
	Type          NotificationType
	Title         string
	Message       string
	Reference     string
	Status        TransactionStatus
	CreatedAt     time.Time
}

// NewTransactionNotification renders the notification for a terminal
// transition on the given transaction
func NewTransactionNotification(txn *Transaction, timeProvider coreport.TimeProvider) *Notification {
	n := &Notification{
		UserID:        txn.UserID,
		TransactionID: txn.ID,
		Reference:     txn.TransactionReference,
		Status:        txn.Status,
		CreatedAt:     timeProvider.Now(),
	}

	amount := FormatAmount(txn.Amount)
	if txn.Status == StatusCompleted {
		n.Type = NotificationDepositCompleted
		n.Title = "Contribution received"
		n.Message = fmt.Sprintf("Your contribution of GHS %s was successful.", amount)
	} else {
		n.Type = NotificationDepositFailed
		n.Title = "Contribution failed"
		n.Message = fmt.Sprintf("Your contribution of GHS %s could not be completed.", amount)
		if reason := txn.PaymentDetails.FailureReason; reason != "" {
			n.Message = fmt.Sprintf("%s Reason: %s.", n.Message, reason)
		}
	}
	return n
}
