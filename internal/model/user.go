package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AuthProvider identifies how an account signs in.
type AuthProvider string

const (
	AuthProviderLocal  AuthProvider = "local"
	AuthProviderGoogle AuthProvider = "google"
)

// User is a storefront customer or administrator.
// Local accounts authenticate with PasswordHash; google accounts carry GoogleID and no hash.
type User struct {
	ID            uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	Email         string          `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash  *string         `json:"-" gorm:"size:255"` // Never expose in JSON
	Name          string          `json:"name" gorm:"size:255;not null"`
	Phone         string          `json:"phone" gorm:"size:20"`
	Address       string          `json:"address" gorm:"type:text"`
	IsAdmin       bool            `json:"is_admin" gorm:"default:false"`
	WalletBalance decimal.Decimal `json:"wallet_balance" gorm:"type:decimal(20,2);not null;default:0"`
	LockedAmount  decimal.Decimal `json:"locked_amount" gorm:"type:decimal(20,2);not null;default:0"`
	GoogleID      *string         `json:"-" gorm:"uniqueIndex;size:255"`
	IsVerified    bool            `json:"is_verified" gorm:"default:false"`
	AuthProvider  AuthProvider    `json:"auth_provider" gorm:"type:varchar(16);not null;default:'local'"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.AuthProvider == "" {
		u.AuthProvider = AuthProviderLocal
	}
	return nil
}

// UnifiedUser is the public projection of a User returned by every endpoint.
type UnifiedUser struct {
	ID            uuid.UUID       `json:"id"`
	Email         string          `json:"email"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone"`
	Address       string          `json:"address"`
	IsAdmin       bool            `json:"is_admin"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
	LockedAmount  decimal.Decimal `json:"locked_amount"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	IsVerified    bool            `json:"is_verified"`
	AuthProvider  AuthProvider    `json:"auth_provider"`
}

// Unified projects the user without credential fields.
func (u *User) Unified() *UnifiedUser {
	return &UnifiedUser{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Phone:         u.Phone,
		Address:       u.Address,
		IsAdmin:       u.IsAdmin,
		WalletBalance: u.WalletBalance,
		LockedAmount:  u.LockedAmount,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
		IsVerified:    u.IsVerified,
		AuthProvider:  u.AuthProvider,
	}
}
