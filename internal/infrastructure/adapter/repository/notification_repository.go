package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/oseikuffour/contribution-processor/internal/domain/entity"
	errs "github.com/oseikuffour/contribution-processor/internal/domain/error"
	coreport "github.com/oseikuffour/contribution-processor/internal/domain/port/core"
	"github.com/oseikuffour/contribution-processor/internal/infrastructure/adapter/model"
)

// NotificationRepository implements the notification port using GORM
type NotificationRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewNotificationRepository creates a new NotificationRepository instance
func NewNotificationRepository(db *gorm.DB, logger coreport.Logger) *NotificationRepository {
	return &NotificationRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// Create inserts a notification record. The unique index on
// (transaction_id, status) turns a concurrent duplicate dispatch into a
// constraint violation instead of a second notification.
func (r *NotificationRepository) Create(ctx context.Context, notification *entity.Notification) error {
	notificationModel := model.Notification{
		UserID:        notification.UserID,
		TransactionID: notification.TransactionID,
		Type:          string(notification.Type),
		Title:         notification.Title,
		Message:       notification.Message,
		Reference:     notification.Reference,
		Status:        string(notification.Status),
		CreatedAt:     notification.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(&notificationModel)

	if result.Error != nil {
		if r.errorClassifier.IsDuplicateKeyError(result.Error) {
			r.logger.Warn("Notification already recorded for transition", map[string]any{
				"transaction_id": notification.TransactionID,
				"status":         notification.Status,
			})
			return errs.ErrDuplicateReference
		}

		r.logger.Error("Failed to create notification", map[string]any{
			"transaction_id": notification.TransactionID,
			"user_id":        notification.UserID,
			"error":          result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}

	notification.ID = notificationModel.ID

	r.logger.Info("Notification recorded", map[string]any{
		"notification_id": notification.ID,
		"transaction_id":  notification.TransactionID,
		"type":            notification.Type,
	})
	return nil
}
