package migration

import (
	"gorm.io/gorm"

	coreport "github.com/oseikuffour/contribution-processor/internal/domain/port/core"
)

// IndexManager manages the PostgreSQL indexes that back the ledger's
// idempotency and reconciliation guarantees
type IndexManager struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewIndexManager creates a new index manager
func NewIndexManager(db *gorm.DB, logger coreport.Logger) *IndexManager {
	return &IndexManager{
		db:     db,
		logger: logger,
	}
}

// CreateIndexes creates the indexes the lifecycle depends on. The unique
// indexes are correctness constraints, not performance tuning: reference_id
// uniqueness backs initiation idempotency, and the composite notification
// index backs at-most-once delivery.
func (m *IndexManager) CreateIndexes() error {
	m.logger.Info("Creating database indexes", nil)

	statements := []string{
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_reference_id
		 ON transactions (reference_id)`,

		`CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_transaction_reference
		 ON transactions (transaction_reference)`,

		`CREATE INDEX IF NOT EXISTS idx_transactions_user_status
		 ON transactions (user_id, status)`,

		// Pending rows are the working set for reconciliation
		`CREATE INDEX IF NOT EXISTS idx_transactions_pending
		 ON transactions (created_at)
		 WHERE status = 'pending'`,

		`CREATE INDEX IF NOT EXISTS idx_transactions_created_at_brin
		 ON transactions USING BRIN (created_at)
		 WITH (pages_per_range = 32)`,

		`CREATE UNIQUE INDEX IF NOT EXISTS idx_notifications_txn_status
		 ON notifications (transaction_id, status)`,

		`CREATE INDEX IF NOT EXISTS idx_notifications_user_id
		 ON notifications (user_id)`,
	}

	for _, stmt := range statements {
		if err := m.db.Exec(stmt).Error; err != nil {
			m.logger.Error("Failed to create index", map[string]any{
				"statement": stmt,
				"error":     err.Error(),
			})
			return err
		}
	}

	m.logger.Info("Database indexes created successfully", nil)
	return nil
}
