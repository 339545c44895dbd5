package entity

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	errs "github.com/oseikuffour/contribution-processor/internal/domain/error"
)

// fixedClock pins time for entity tests
type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time                  { return c.now }
func (c fixedClock) Since(t time.Time) time.Duration { return c.now.Sub(t) }
func (c fixedClock) WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, d)
}

func TestNewDeposit(t *testing.T) {
	clock := fixedClock{now: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)}
	amount := decimal.RequireFromString("50.00")
	details := PaymentDetails{Phone: "+233241234567", Network: "mtn", Channel: "mtn"}

	t.Run("Creates pending deposit", func(t *testing.T) {
		txn, err := NewDeposit(42, amount, "CTB-20240301093000-abcd1234", details, clock)
		assert.NoError(t, err)
		assert.Equal(t, StatusPending, txn.Status)
		assert.Equal(t, TypeDeposit, txn.Type)
		assert.Equal(t, MethodMobileMoney, txn.PaymentMethod)
		assert.Equal(t, uint64(42), txn.UserID)
		assert.True(t, txn.Amount.Equal(amount))
		// provider reference starts equal to the idempotency key until the
		// gateway assigns its own
		assert.Equal(t, txn.ReferenceID, txn.TransactionReference)
		assert.Equal(t, clock.now, txn.CreatedAt)
		assert.False(t, txn.IsTerminal())
	})

	t.Run("Rejects missing owner", func(t *testing.T) {
		_, err := NewDeposit(0, amount, "ref", details, clock)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
	})

	t.Run("Rejects empty reference", func(t *testing.T) {
		_, err := NewDeposit(42, amount, "", details, clock)
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})

	t.Run("Rejects non-positive amount", func(t *testing.T) {
		_, err := NewDeposit(42, decimal.Zero, "ref", details, clock)
		assert.ErrorIs(t, err, errs.ErrInvalidAmount)
	})
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, IsTerminalStatus(StatusCompleted))
	assert.True(t, IsTerminalStatus(StatusFailed))
	assert.False(t, IsTerminalStatus(StatusPending))

	assert.True(t, IsValidStatus(StatusPending))
	assert.False(t, IsValidStatus(TransactionStatus("refunded")))
}

func TestNewTransactionNotification(t *testing.T) {
	clock := fixedClock{now: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)}
	amount := decimal.RequireFromString("50.00")

	t.Run("Completed deposit", func(t *testing.T) {
		txn := &Transaction{
			ID:                   7,
			UserID:               42,
			Amount:               amount,
			Status:               StatusCompleted,
			TransactionReference: "ref-abc",
		}

		n := NewTransactionNotification(txn, clock)
		assert.Equal(t, NotificationDepositCompleted, n.Type)
		assert.Equal(t, uint64(42), n.UserID)
		assert.Equal(t, uint64(7), n.TransactionID)
		assert.Equal(t, "ref-abc", n.Reference)
		assert.Contains(t, n.Message, "GHS 50.00")
		assert.Contains(t, n.Message, "successful")
	})

	t.Run("Failed deposit includes reason", func(t *testing.T) {
		txn := &Transaction{
			ID:     8,
			UserID: 42,
			Amount: amount,
			Status: StatusFailed,
			PaymentDetails: PaymentDetails{
				FailureReason: "insufficient funds",
			},
		}

		n := NewTransactionNotification(txn, clock)
		assert.Equal(t, NotificationDepositFailed, n.Type)
		assert.Contains(t, n.Message, "insufficient funds")
	})
}
