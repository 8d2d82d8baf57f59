package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentStatus represents the status of a payment.
type PaymentStatus string

const (
	PaymentStatusPending     PaymentStatus = "pending"
	PaymentStatusAccepted    PaymentStatus = "accepted"
	PaymentStatusFailed      PaymentStatus = "failed"
	PaymentStatusUnavailable PaymentStatus = "unavailable"
)

// Payment records a gateway payment confirmed against an order.
type Payment struct {
	ID               uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	OrderID          uuid.UUID       `json:"order_id" gorm:"type:char(36);not null;index"`
	GatewayOrderID   string          `json:"gateway_order_id" gorm:"size:64;not null;index"`
	GatewayPaymentID string          `json:"gateway_payment_id" gorm:"size:64;not null;uniqueIndex"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:decimal(20,2);not null"`
	Method           string          `json:"method,omitempty" gorm:"size:32"`
	GatewayStatus    string          `json:"gateway_status,omitempty" gorm:"size:32"`
	Status           PaymentStatus   `json:"status" gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Order Order `json:"-" gorm:"foreignKey:OrderID"`
}

// BeforeCreate sets UUID before creating the record.
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
