package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

type notificationFixture struct {
	service       *notificationService
	notifications *MockNotificationRepository
	users         *MockUserRepository
	orders        *MockOrderRepository
	mailer        *MockMailer
	logs          *MockEmailLogger
}

func newNotificationFixture() *notificationFixture {
	f := &notificationFixture{
		notifications: new(MockNotificationRepository),
		users:         new(MockUserRepository),
		orders:        new(MockOrderRepository),
		mailer:        &MockMailer{},
		logs:          &MockEmailLogger{},
	}
	store := StoreInfo{Name: "Pulasa", URL: "https://pulasa.com", SupportEmail: "support@pulasa.com"}
	svc := NewNotificationService(f.notifications, f.users, f.orders, f.mailer, f.logs, store).(*notificationService)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 6, 30, 0, 0, time.UTC) }
	f.service = svc
	return f
}

func TestNotificationService_ExplicitRecipient(t *testing.T) {
	f := newNotificationFixture()
	f.notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
		return n.Type == model.NotificationTypeOrderStatus && n.OrderNumber == "PUL-1"
	})).Return(nil)

	result, err := f.service.NotifyOrderStatus(context.Background(), OrderStatusEvent{
		OrderNumber: "PUL-1",
		Status:      model.OrderStatusShipped,
		Email:       "Buyer@x.com",
		Items: []NotificationItem{
			{Name: "Pulasa <script>", Quantity: 2, Price: decimal.NewFromInt(450)},
		},
	})
	require.NoError(t, err)
	assert.True(t, result.EmailSent)
	assert.NotEmpty(t, result.EmailMessageID)
	assert.Equal(t, "Your order is on its way! You will receive tracking details soon.", result.Notification.Message)

	sent := f.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "buyer@x.com", sent[0].To)
	assert.Equal(t, "🐠 Pulasa Fish Order [#PUL-1] - Order Shipped", sent[0].Subject)
	assert.Contains(t, sent[0].Text, "• Pulasa <script> - Quantity: 2 - Price: ₹450.00")
	assert.Contains(t, sent[0].Text, "Total: ₹900.00")
	assert.Contains(t, sent[0].Text, "01 Mar 2026, 12:00 PM")
	assert.Contains(t, sent[0].HTML, "Pulasa &lt;script&gt;")
	assert.NotContains(t, sent[0].HTML, "<script>")

	entries := f.logs.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, model.EmailKindOrderStatus, entries[0].Kind)
	assert.Equal(t, result.Notification.ID, *entries[0].NotificationID)
}

func TestNotificationService_ResolvesFromOrder(t *testing.T) {
	f := newNotificationFixture()
	orderID := uuid.New()
	ownerID := uuid.New()

	f.orders.On("FindByID", mock.Anything, orderID).Return(&model.Order{
		ID:          orderID,
		UserID:      ownerID,
		OrderNumber: "PUL-2",
		TotalAmount: decimal.NewFromInt(1200),
		Items:       []model.OrderItem{{Name: "Pulasa Fish", Quantity: 1, Price: decimal.NewFromInt(1200)}},
	}, nil)
	f.users.On("FindByID", mock.Anything, ownerID).Return(&model.User{ID: ownerID, Email: "owner@x.com", Name: "Owner"}, nil)
	f.notifications.On("Create", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
		return n.UserID == ownerID && *n.OrderID == orderID
	})).Return(nil)

	result, err := f.service.NotifyOrderStatus(context.Background(), OrderStatusEvent{
		OrderID: &orderID,
		Status:  model.OrderStatusDelivered,
	})
	require.NoError(t, err)
	assert.True(t, result.EmailSent)

	sent := f.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "owner@x.com", sent[0].To)
	assert.Contains(t, sent[0].Subject, "[#PUL-2] - Order Delivered")
	assert.Contains(t, sent[0].Text, "Dear Owner,")
	assert.Contains(t, sent[0].Text, "Pulasa Fish - Quantity: 1")
	f.users.AssertExpectations(t)
}

func TestNotificationService_MailFailureIsRecorded(t *testing.T) {
	f := newNotificationFixture()
	f.mailer.err = errors.New("smtp down")
	f.notifications.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.NotifyOrderStatus(context.Background(), OrderStatusEvent{
		OrderNumber: "PUL-3",
		Status:      model.OrderStatusPacked,
		Email:       "a@x.com",
	})
	require.NoError(t, err)
	assert.False(t, result.EmailSent)
	assert.Empty(t, result.EmailMessageID)

	entries := f.logs.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, model.EmailStatusFailed, entries[0].Status)
}

func TestNotificationService_NoRecipient(t *testing.T) {
	f := newNotificationFixture()
	userID := uuid.New()
	f.users.On("FindByID", mock.Anything, userID).Return(nil, errors.New("gone"))
	f.notifications.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := f.service.NotifyOrderStatus(context.Background(), OrderStatusEvent{
		UserID:      userID,
		OrderNumber: "PUL-4",
		Status:      model.OrderStatusConfirmed,
	})
	require.NoError(t, err)
	assert.False(t, result.EmailSent)
	assert.Empty(t, f.mailer.Sent())
}

func TestNotificationService_PersistFailure(t *testing.T) {
	f := newNotificationFixture()
	f.notifications.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := f.service.NotifyOrderStatus(context.Background(), OrderStatusEvent{
		OrderNumber: "PUL-5",
		Status:      model.OrderStatusRaised,
		Email:       "a@x.com",
	})
	assert.True(t, errors.Is(err, apperrors.ErrUpstream))
	assert.Empty(t, f.mailer.Sent())
}

func TestNotificationService_UnknownStatus(t *testing.T) {
	f := newNotificationFixture()

	_, err := f.service.NotifyOrderStatus(context.Background(), OrderStatusEvent{
		OrderNumber: "PUL-6",
		Status:      model.OrderStatus("lost_at_sea"),
		Email:       "a@x.com",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)
	f.notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestStatusMessage(t *testing.T) {
	tests := []struct {
		status model.OrderStatus
		want   string
	}{
		{model.OrderStatusRaised, "Your order has been successfully placed and is being processed."},
		{model.OrderStatusCancelled, "Your order has been cancelled. If you have any questions, please contact support."},
		{model.OrderStatus("lost_at_sea"), "Your order status has been updated."},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusMessage(tt.status))
		})
	}
}

func TestNotificationService_ForeignOrder(t *testing.T) {
	f := newNotificationFixture()
	orderID := uuid.New()
	caller := uuid.New()
	f.orders.On("FindByID", mock.Anything, orderID).Return(&model.Order{
		ID:          orderID,
		UserID:      uuid.New(),
		OrderNumber: "PUL-VICTIM",
		Items:       []model.OrderItem{{Name: "Pulasa Fish", Quantity: 1, Price: decimal.NewFromInt(900)}},
	}, nil)

	_, err := f.service.NotifyOrderStatus(context.Background(), OrderStatusEvent{
		UserID:  caller,
		OrderID: &orderID,
		Status:  model.OrderStatusShipped,
	})
	assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
	f.notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.Empty(t, f.mailer.Sent())
}

func TestNotificationService_MissingOrderWithoutUser(t *testing.T) {
	f := newNotificationFixture()
	orderID := uuid.New()
	f.orders.On("FindByID", mock.Anything, orderID).Return(nil, gorm.ErrRecordNotFound)

	_, err := f.service.NotifyOrderStatus(context.Background(), OrderStatusEvent{
		OrderID: &orderID,
		Status:  model.OrderStatusShipped,
	})
	assert.ErrorIs(t, err, apperrors.ErrOrderNotFound)
	f.notifications.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
