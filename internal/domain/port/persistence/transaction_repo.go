package persistence

import (
	"context"
	"time"

	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
)

// TransactionRepository defines the ledger operations for contribution records
type TransactionRepository interface {
	// Create persists a new pending transaction before the gateway is called
	//
	// Possible errors:
	// - ErrDuplicateReference: if the reference_id already exists
	// - ErrDatabaseConnection: if the database cannot be reached
	Create(ctx context.Context, transaction *entity.Transaction) error

	// GetByID retrieves a transaction by its internal identifier
	//
	// Possible errors:
	// - ErrTransactionNotFound
	// - ErrDatabaseConnection
	GetByID(ctx context.Context, id uint64) (*entity.Transaction, error)

	// GetByReference resolves a transaction for webhook matching. It is the
	// single prioritized resolver: transaction_reference is tried first,
	// reference_id second, and the precedence never varies between callers.
	//
	// Possible errors:
	// - ErrTransactionNotFound: if neither field matches
	// - ErrDatabaseConnection
	GetByReference(ctx context.Context, reference string) (*entity.Transaction, error)

	// AdoptProviderReference records the provider-assigned reference on a
	// transaction. Once set it is authoritative for webhook matching;
	// reference_id remains strictly the creation-time idempotency key.
	//
	// Possible errors:
	// - ErrTransactionNotFound
	// - ErrDatabaseConnection
	AdoptProviderReference(ctx context.Context, id uint64, providerReference string) error

	// SettleIfPending applies the guarded transition: an atomic conditional
	// update that moves the transaction out of pending and merges the given
	// details in a single statement. It returns false (and no error) when the
	// transaction is already terminal, which makes duplicate webhooks, retried
	// deliveries and the race with the initiator's immediate-response path all
	// collapse into harmless no-ops.
	//
	// Possible errors:
	// - ErrTransactionNotFound: if no row with the given id exists at all
	// - ErrDatabaseConnection
	SettleIfPending(
		ctx context.Context,
		id uint64,
		status entity.TransactionStatus,
		details entity.PaymentDetails,
		settledAt time.Time,
	) (bool, error)
}
