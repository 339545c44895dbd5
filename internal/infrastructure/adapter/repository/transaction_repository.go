package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
	errs "github.com/oseikuffour/contribution-processor/internal/domain/error"
	coreport "github.com/oseikuffour/contribution-processor/internal/domain/port/core"
	"github.com/oseikuffour/contribution-processor/internal/infrastructure/adapter/model"
)

// TransactionRepository implements the ledger port using GORM
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a transaction entity to a database model
func (r *TransactionRepository) entityToModel(transaction *entity.Transaction) (model.Transaction, error) {
	details, err := json.Marshal(transaction.PaymentDetails)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: serializing payment details: %s",
			errs.ErrInternalServer, err.Error())
	}

	return model.Transaction{
		ID:                   transaction.ID,
		UserID:               transaction.UserID,
		Amount:               transaction.Amount,
		Type:                 string(transaction.Type),
		Status:               string(transaction.Status),
		PaymentMethod:        transaction.PaymentMethod,
		ReferenceID:          transaction.ReferenceID,
		TransactionReference: transaction.TransactionReference,
		PaymentDetails:       model.JSONB(details),
		CreatedAt:            transaction.CreatedAt,
		UpdatedAt:            transaction.UpdatedAt,
	}, nil
}

// modelToEntity converts a transaction model to an entity
func (r *TransactionRepository) modelToEntity(transactionModel *model.Transaction) (*entity.Transaction, error) {
	transaction := &entity.Transaction{
		ID:                   transactionModel.ID,
		UserID:               transactionModel.UserID,
		Amount:               transactionModel.Amount,
		Type:                 entity.TransactionType(transactionModel.Type),
		Status:               entity.TransactionStatus(transactionModel.Status),
		PaymentMethod:        transactionModel.PaymentMethod,
		ReferenceID:          transactionModel.ReferenceID,
		TransactionReference: transactionModel.TransactionReference,
		CreatedAt:            transactionModel.CreatedAt,
		UpdatedAt:            transactionModel.UpdatedAt,
	}

	if len(transactionModel.PaymentDetails) > 0 {
		if err := json.Unmarshal(transactionModel.PaymentDetails, &transaction.PaymentDetails); err != nil {
			r.logger.Error("Failed to decode payment details", map[string]any{
				"transaction_id": transactionModel.ID,
				"error":          err.Error(),
			})
			return nil, fmt.Errorf("%w: decoding payment details: %s",
				errs.ErrInternalServer, err.Error())
		}
	}

	return transaction, nil
}

// Create persists a new pending transaction
func (r *TransactionRepository) Create(ctx context.Context, transaction *entity.Transaction) error {
	r.logger.Debug("Creating transaction", map[string]any{
		"reference_id": transaction.ReferenceID,
		"user_id":      transaction.UserID,
	})

	transactionModel, err := r.entityToModel(transaction)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Create(&transactionModel)

	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Duplicate transaction reference detected", map[string]any{
				"reference_id": transaction.ReferenceID,
				"user_id":      transaction.UserID,
			})
			return errs.ErrDuplicateReference
		}

		r.logger.Error("Failed to create transaction", map[string]any{
			"reference_id": transaction.ReferenceID,
			"user_id":      transaction.UserID,
			"error":        result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	transaction.ID = transactionModel.ID

	r.logger.Info("Transaction created", map[string]any{
		"transaction_id": transaction.ID,
		"reference_id":   transaction.ReferenceID,
		"user_id":        transaction.UserID,
	})
	return nil
}

// GetByID retrieves a transaction by its internal identifier
func (r *TransactionRepository) GetByID(ctx context.Context, id uint64) (*entity.Transaction, error) {
	var transactionModel model.Transaction
	result := r.db.WithContext(ctx).First(&transactionModel, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTransactionNotFound
		}
		r.logger.Error("Failed to get transaction", map[string]any{
			"transaction_id": id,
			"error":          result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToEntity(&transactionModel)
}

// GetByReference resolves a transaction for webhook matching. The provider
// reference is tried first; the internal reference id is the fallback for
// charges where the provider echoed our own reference back.
func (r *TransactionRepository) GetByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	r.logger.Debug("Resolving transaction by reference", map[string]any{
		"reference": reference,
	})

	var transactionModel model.Transaction
	result := r.db.WithContext(ctx).
		Where("transaction_reference = ?", reference).
		First(&transactionModel)

	if result.Error != nil && errors.Is(result.Error, gorm.ErrRecordNotFound) {
		result = r.db.WithContext(ctx).
			Where("reference_id = ?", reference).
			First(&transactionModel)
	}

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			r.logger.Warn("No transaction matches reference", map[string]any{
				"reference": reference,
			})
			return nil, errs.ErrTransactionNotFound
		}
		r.logger.Error("Failed to resolve transaction reference", map[string]any{
			"reference": reference,
			"error":     result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	return r.modelToEntity(&transactionModel)
}

// AdoptProviderReference records the provider-assigned reference. It only
// applies while the record still carries its creation-time reference, so a
// replayed initiation can never overwrite an adopted reference.
func (r *TransactionRepository) AdoptProviderReference(ctx context.Context, id uint64, providerReference string) error {
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ? AND transaction_reference = reference_id", id).
		Update("transaction_reference", providerReference)

	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			return errs.ErrDuplicateReference
		}
		r.logger.Error("Failed to adopt provider reference", map[string]any{
			"transaction_id":     id,
			"provider_reference": providerReference,
			"error":              result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	if result.RowsAffected == 0 {
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return errs.ErrTransactionNotFound
		}
		// Reference already adopted; nothing to do.
		return nil
	}

	r.logger.Info("Provider reference adopted", map[string]any{
		"transaction_id":     id,
		"provider_reference": providerReference,
	})
	return nil
}

// SettleIfPending applies the guarded transition in a single conditional
// UPDATE. The status guard in the WHERE clause is the only authority for
// leaving pending; the jsonb concatenation merges the incoming details
// without touching fields the incoming payload did not set.
func (r *TransactionRepository) SettleIfPending(
	ctx context.Context,
	id uint64,
	status entity.TransactionStatus,
	details entity.PaymentDetails,
	settledAt time.Time,
) (bool, error) {
	if !entity.IsTerminalStatus(status) {
		return false, errs.ErrInvalidRequest
	}

	payload, err := json.Marshal(details)
	if err != nil {
		return false, fmt.Errorf("%w: serializing payment details: %s",
			errs.ErrInternalServer, err.Error())
	}

	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ? AND status = ?", id, string(entity.StatusPending)).
		Updates(map[string]interface{}{
			"status":          string(status),
			"payment_details": gorm.Expr("COALESCE(payment_details, '{}'::jsonb) || ?::jsonb", string(payload)),
			"updated_at":      settledAt,
		})

	if result.Error != nil {
		r.logger.Error("Failed to settle transaction", map[string]any{
			"transaction_id": id,
			"status":         status,
			"error":          result.Error.Error(),
		})
		return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	if result.RowsAffected == 0 {
		exists, err := r.exists(ctx, id)
		if err != nil {
			return false, err
		}
		if !exists {
			return false, errs.ErrTransactionNotFound
		}
		// Already terminal; the caller treats this as a no-op.
		return false, nil
	}

	r.logger.Info("Transaction settled", map[string]any{
		"transaction_id": id,
		"status":         status,
	})
	return true, nil
}

// exists checks whether a row with the given id is present at all
func (r *TransactionRepository) exists(ctx context.Context, id uint64) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&model.Transaction{}).
		Where("id = ?", id).
		Count(&count)

	if result.Error != nil {
		return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return count > 0, nil
}
