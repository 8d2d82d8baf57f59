package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmailKind distinguishes the purpose of an outbound email.
type EmailKind string

const (
	EmailKindOtp         EmailKind = "otp"
	EmailKindOrderStatus EmailKind = "order_status"
)

// EmailStatus is the outcome of a send attempt.
type EmailStatus string

const (
	EmailStatusSent   EmailStatus = "sent"
	EmailStatusFailed EmailStatus = "failed"
)

// EmailLog represents one delivery attempt.
// All attempts are logged regardless of success or failure.
type EmailLog struct {
	ID             uuid.UUID   `json:"id" gorm:"type:char(36);primaryKey"`
	NotificationID *uuid.UUID  `json:"notification_id,omitempty" gorm:"type:char(36);index"`
	Recipient      string      `json:"recipient" gorm:"size:255;not null;index"`
	Kind           EmailKind   `json:"kind" gorm:"type:varchar(20);not null"`
	MessageID      string      `json:"message_id,omitempty" gorm:"size:255"`
	Status         EmailStatus `json:"status" gorm:"type:varchar(20);not null;index"`
	ErrorMessage   string      `json:"error_message,omitempty" gorm:"type:text"`
	CreatedAt      time.Time   `json:"created_at"`
}

// BeforeCreate sets UUID before creating the record.
func (l *EmailLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
