package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderStatus is the fulfilment stage of an order.
type OrderStatus string

const (
	OrderStatusRaised    OrderStatus = "order_raised"
	OrderStatusConfirmed OrderStatus = "order_confirmed"
	OrderStatusPacked    OrderStatus = "order_packed"
	OrderStatusShipped   OrderStatus = "order_shipped"
	OrderStatusDelivered OrderStatus = "order_delivered"
	OrderStatusCancelled OrderStatus = "order_cancelled"
)

var orderStatusLabels = map[OrderStatus]string{
	OrderStatusRaised:    "Order Raised",
	OrderStatusConfirmed: "Order Confirmed",
	OrderStatusPacked:    "Order Packed",
	OrderStatusShipped:   "Order Shipped",
	OrderStatusDelivered: "Order Delivered",
	OrderStatusCancelled: "Order Cancelled",
}

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	_, ok := orderStatusLabels[s]
	return ok
}

// Label returns the customer-facing name of the status.
func (s OrderStatus) Label() string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return string(s)
}

// Order is a customer purchase.
type Order struct {
	ID             uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	UserID         uuid.UUID       `json:"user_id" gorm:"type:char(36);not null;index"`
	OrderNumber    string          `json:"order_number" gorm:"uniqueIndex;size:32;not null"`
	Status         OrderStatus     `json:"status" gorm:"type:varchar(32);not null;default:'order_raised';index"`
	TotalAmount    decimal.Decimal `json:"total_amount" gorm:"type:decimal(20,2);not null"`
	Currency       string          `json:"currency" gorm:"size:8;not null;default:'INR'"`
	GatewayOrderID string          `json:"gateway_order_id,omitempty" gorm:"size:64;index"`
	PaymentID      string          `json:"payment_id,omitempty" gorm:"size:64"`
	PaymentStatus  PaymentStatus   `json:"payment_status" gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `json:"-" gorm:"index"`

	// Relations
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

// BeforeCreate sets UUID before creating the record.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// OrderItem is one product line of an order.
type OrderItem struct {
	ID        uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	OrderID   uuid.UUID       `json:"order_id" gorm:"type:char(36);not null;index"`
	Name      string          `json:"name" gorm:"size:255;not null"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:decimal(20,2);not null"`
	CreatedAt time.Time       `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
