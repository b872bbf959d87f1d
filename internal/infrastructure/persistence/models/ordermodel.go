package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type OrderModel struct {
	ID             uint            `gorm:"primaryKey"`
	TemporaryID    string          `gorm:"uniqueIndex;size:64;not null"`
	Number         string          `gorm:"uniqueIndex;size:64;not null"`
	ReferenceID    string          `gorm:"size:128;index"`
	Currency       string          `gorm:"size:3;not null"`
	OrderStatus    string          `gorm:"size:32;not null;index"`
	PaymentStatus  string          `gorm:"size:32;not null;index"`
	AuthAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CapturedAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ReleasedAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	RefundedAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Version        int             `gorm:"default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderTransactionModel is the audit row of one provider action.
type OrderTransactionModel struct {
	ID               string         `gorm:"primaryKey;size:36"`
	OrderTemporaryID string         `gorm:"size:64;not null;index"`
	Action           string         `gorm:"size:16;not null"`
	ProviderUUID     string         `gorm:"size:64;not null;uniqueIndex"`
	AmountInCents    int64          `gorm:"not null"`
	Currency         string         `gorm:"size:3;not null"`
	RawResponse      datatypes.JSON `gorm:"type:json"`
	CreatedAt        time.Time
}

func (OrderTransactionModel) TableName() string {
	return "order_transactions"
}
