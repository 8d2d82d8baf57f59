package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationTypeOrderStatus marks notifications raised by order status changes.
const NotificationTypeOrderStatus = "order_status_update"

// Notification is an in-app message addressed to a user.
type Notification struct {
	ID          uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID  `json:"userId" gorm:"type:char(36);not null;index"`
	Type        string     `json:"type" gorm:"size:64;not null;default:'order_status_update'"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	Message     string     `json:"message" gorm:"type:text"`
	OrderID     *uuid.UUID `json:"orderId,omitempty" gorm:"type:char(36);index"`
	OrderNumber string     `json:"orderNumber,omitempty" gorm:"size:32"`
	Read        bool       `json:"read" gorm:"default:false"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// BeforeCreate sets UUID before creating the record.
func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
