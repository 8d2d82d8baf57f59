package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OtpVerification is the one-time code issued to an email address.
// The unique index on Email keeps a single row per address; reissuing overwrites it.
type OtpVerification struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Otp       string    `json:"-" gorm:"size:6;not null"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
	Verified  bool      `json:"verified" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (o *OtpVerification) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// Expired reports whether the code is past its expiry at the given instant.
func (o *OtpVerification) Expired(now time.Time) bool {
	return o.ExpiresAt.Before(now)
}
