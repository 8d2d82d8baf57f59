package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"storefront/internal/model"
)

// OtpRepository defines persistence operations for the OTP ledger.
type OtpRepository interface {
	// Upsert atomically replaces whatever row exists for otp.Email.
	Upsert(ctx context.Context, otp *model.OtpVerification) error
	FindActive(ctx context.Context, email, code string) (*model.OtpVerification, error)
	FindByEmail(ctx context.Context, email string) (*model.OtpVerification, error)
	// MarkVerified flips verified only if it is still false and reports whether it did.
	MarkVerified(ctx context.Context, id uuid.UUID) (bool, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, otps OtpRepository, users UserRepository) error) error
}

type otpRepository struct {
	db *gorm.DB
}

// NewOtpRepository creates a new OTP repository.
func NewOtpRepository(db *gorm.DB) OtpRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Upsert(ctx context.Context, otp *model.OtpVerification) error {
	now := time.Now()
	if otp.ID == uuid.Nil {
		otp.ID = uuid.New()
	}
	otp.CreatedAt = now
	otp.UpdatedAt = now

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"id", "otp", "expires_at", "verified", "created_at", "updated_at"}),
	}).Create(otp).Error
}

func (r *otpRepository) FindActive(ctx context.Context, email, code string) (*model.OtpVerification, error) {
	var otp model.OtpVerification
	if err := r.db.WithContext(ctx).
		Where("email = ? AND otp = ? AND verified = ?", email, code, false).
		First(&otp).Error; err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *otpRepository) FindByEmail(ctx context.Context, email string) (*model.OtpVerification, error) {
	var otp model.OtpVerification
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&otp).Error; err != nil {
		return nil, err
	}
	return &otp, nil
}

func (r *otpRepository) MarkVerified(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.OtpVerification{}).
		Where("id = ? AND verified = ?", id, false).
		Updates(map[string]interface{}{"verified": true, "updated_at": time.Now()})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// WithTransaction executes fn with OTP and user repositories bound to one transaction.
func (r *otpRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, otps OtpRepository, users UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &otpRepository{db: tx}, &userRepository{db: tx})
	})
}
