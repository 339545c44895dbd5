package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents the database model for ledger entries
type Transaction struct {
	ID                   uint64          `gorm:"primaryKey;autoIncrement"`
	UserID               uint64          `gorm:"not null;index"`
	Amount               decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Type                 string          `gorm:"not null;size:50"`
	Status               string          `gorm:"not null;size:50;index"`
	PaymentMethod        string          `gorm:"not null;size:50"`
	ReferenceID          string          `gorm:"uniqueIndex;not null;size:255"`
	TransactionReference string          `gorm:"uniqueIndex;not null;size:255"`
	PaymentDetails       JSONB           `gorm:"type:jsonb"`
	CreatedAt            time.Time       `gorm:"not null"`
	UpdatedAt            time.Time       `gorm:"not null"`

	// Define relationships
	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}
