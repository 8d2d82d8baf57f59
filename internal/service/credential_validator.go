package service

import (
	"context"
	"errors"
	"regexp"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

const bcryptCost = 10

var indianMobileRegex = regexp.MustCompile(`^(\+91[6-9]\d{9}|[6-9]\d{9})$`)

// ValidIndianMobile reports whether phone is a 10-digit Indian mobile number, optionally +91 prefixed.
func ValidIndianMobile(phone string) bool {
	return indianMobileRegex.MatchString(phone)
}

// HashPassword hashes a plaintext password with the fixed work factor.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CredentialValidator checks email/password pairs against the credential store.
// It never writes and never reads through a cache.
type CredentialValidator struct {
	users repository.UserRepository
}

// NewCredentialValidator creates a new credential validator.
func NewCredentialValidator(users repository.UserRepository) *CredentialValidator {
	return &CredentialValidator{users: users}
}

// Validate returns the user projection when the password matches the stored hash.
func (v *CredentialValidator) Validate(ctx context.Context, email, password string) (*model.UnifiedUser, error) {
	user, err := v.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, upstream("find user", err)
	}

	if user.AuthProvider != model.AuthProviderLocal {
		return nil, apperrors.ErrWrongAuthProvider
	}
	if user.PasswordHash == nil || *user.PasswordHash == "" {
		return nil, apperrors.ErrNoPasswordSet
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user.Unified(), nil
}
