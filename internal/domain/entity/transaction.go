package entity

import (
	"time"

	"github.com/shopspring/decimal"

	errs "github.com/oseikuffour/contribution-processor/internal/domain/error"
	coreport "github.com/oseikuffour/contribution-processor/internal/domain/port/core"
)

// TransactionType classifies ledger entries
type TransactionType string

// Transaction types. This subsystem only creates deposits; the other types
// are written by the controller and interest jobs that read the same ledger.
const (
	TypeDeposit    TransactionType = "deposit"
	TypeController TransactionType = "controller"
	TypeInterest   TransactionType = "interest"
	TypeWithdrawal TransactionType = "withdrawal"
)

// TransactionStatus defines possible status values for a transaction
type TransactionStatus string

// Lifecycle states. pending is the only non-terminal state; once a
// transaction is completed or failed it never changes again.
const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// PaymentMethod values
const (
	MethodMobileMoney = "mobile_money"
)

// Transaction represents a ledger entry for a member contribution
type Transaction struct {
	ID                   uint64            // Unique identifier for the transaction
	UserID               uint64            // Owning member, immutable after creation
	Amount               decimal.Decimal   // Major-unit amount (cedis), immutable after creation
	Type                 TransactionType   // Fixed at creation
	Status               TransactionStatus // pending | completed | failed
	PaymentMethod        string            // e.g. mobile_money
	ReferenceID          string            // Internally generated idempotency key, never reassigned
	TransactionReference string            // Provider-facing reference, authoritative for webhook matching once set
	PaymentDetails       PaymentDetails    // Accumulating provider metadata
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// NewDeposit creates a pending mobile-money deposit. The record is persisted
// before the gateway is called so a crash mid-charge still leaves a
// reconciliation anchor.
func NewDeposit(
	userID uint64,
	amount decimal.Decimal,
	referenceID string,
	details PaymentDetails,
	timeProvider coreport.TimeProvider,
) (*Transaction, error) {
	if userID == 0 {
		return nil, errs.ErrUserNotFound
	}
	if referenceID == "" {
		return nil, errs.ErrInvalidRequest
	}
	if err := ValidateAmount(amount); err != nil {
		return nil, err
	}

	now := timeProvider.Now()
	return &Transaction{
		UserID:               userID,
		Amount:               amount,
		Type:                 TypeDeposit,
		Status:               StatusPending,
		PaymentMethod:        MethodMobileMoney,
		ReferenceID:          referenceID,
		TransactionReference: referenceID,
		PaymentDetails:       details,
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

// IsTerminal reports whether the transaction has reached a final state
func (t *Transaction) IsTerminal() bool {
	return t.Status == StatusCompleted || t.Status == StatusFailed
}

// IsTerminalStatus reports whether a status value is final
func IsTerminalStatus(status TransactionStatus) bool {
	return status == StatusCompleted || status == StatusFailed
}

// IsValidStatus reports whether a status value is one the ledger accepts
func IsValidStatus(status TransactionStatus) bool {
	return status == StatusPending || IsTerminalStatus(status)
}
