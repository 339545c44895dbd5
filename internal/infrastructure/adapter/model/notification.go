package model

import (
	"time"
)

// Notification represents the database model for user-facing notifications.
// The composite unique index on (transaction_id, status) is the hard backstop
// for at-most-once delivery per terminal transition.
type Notification struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	UserID        uint64    `gorm:"not null;index"`
	TransactionID uint64    `gorm:"not null;uniqueIndex:idx_notifications_txn_status"`
	Type          string    `gorm:"not null;size:50"`
	Title         string    `gorm:"not null;size:255"`
	Message       string    `gorm:"type:text;not null"`
	Reference     string    `gorm:"not null;size:255;index"`
	Status        string    `gorm:"not null;size:50;uniqueIndex:idx_notifications_txn_status"`
	CreatedAt     time.Time `gorm:"not null"`

	// Define relationships
	User        User        `gorm:"foreignKey:UserID;references:ID"`
	Transaction Transaction `gorm:"foreignKey:TransactionID;references:ID"`
}

// TableName specifies the table name for Notification
func (Notification) TableName() string {
	return "notifications"
}
