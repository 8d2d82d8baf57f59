package repository

import (
	"context"

	"gorm.io/gorm"

	"storefront/internal/model"
)

// NotificationRepository defines notification persistence operations.
type NotificationRepository interface {
	Create(ctx context.Context, notification *model.Notification) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// Create creates a new notification.
func (r *notificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

// EmailLogRepository defines email delivery log persistence operations.
type EmailLogRepository interface {
	Create(ctx context.Context, log *model.EmailLog) error
	CreateBatch(ctx context.Context, logs []model.EmailLog) error
}

type emailLogRepository struct {
	db *gorm.DB
}

// NewEmailLogRepository creates a new email log repository.
func NewEmailLogRepository(db *gorm.DB) EmailLogRepository {
	return &emailLogRepository{db: db}
}

// Create creates a new email log entry.
func (r *emailLogRepository) Create(ctx context.Context, log *model.EmailLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// CreateBatch creates multiple email log entries in a single statement.
func (r *emailLogRepository) CreateBatch(ctx context.Context, logs []model.EmailLog) error {
	if len(logs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(logs, 100).Error
}
