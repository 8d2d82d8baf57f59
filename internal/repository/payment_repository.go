package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront/internal/model"
)

// PaymentRepository defines payment persistence operations.
type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	FindByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*model.Payment, error)
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Create creates a new payment record.
func (r *paymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// FindByGatewayPaymentID finds a payment by the gateway's payment id.
func (r *paymentRepository) FindByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.WithContext(ctx).Where("gateway_payment_id = ?", gatewayPaymentID).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}
