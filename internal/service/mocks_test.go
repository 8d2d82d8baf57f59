package service

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"storefront/internal/auth"
	"storefront/internal/gateway"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Save(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByGoogleID(ctx context.Context, googleID string) (*model.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) SetVerifiedByEmail(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockUserRepository) LinkGoogleID(ctx context.Context, id uuid.UUID, googleID string) error {
	args := m.Called(ctx, id, googleID)
	return args.Error(0)
}

// MockOtpService is a mock implementation of OtpService.
type MockOtpService struct {
	mock.Mock
}

func (m *MockOtpService) Issue(ctx context.Context, email string) (*OtpIssue, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OtpIssue), args.Error(1)
}

func (m *MockOtpService) Verify(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

func (m *MockOtpService) Resend(ctx context.Context, email string) (*OtpIssue, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*OtpIssue), args.Error(1)
}

// MockMailer records sent messages and returns a configured error.
type MockMailer struct {
	mu   sync.Mutex
	sent []sentEmail
	err  error
}

type sentEmail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

func (m *MockMailer) Send(ctx context.Context, to, subject, text, html string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, sentEmail{To: to, Subject: subject, Text: text, HTML: html})
	return "msg-" + uuid.NewString(), nil
}

func (m *MockMailer) Sent() []sentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]sentEmail(nil), m.sent...)
}

// MockEmailLogger collects log entries synchronously.
type MockEmailLogger struct {
	mu      sync.Mutex
	entries []model.EmailLog
}

func (m *MockEmailLogger) Record(ctx context.Context, entry model.EmailLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
}

func (m *MockEmailLogger) Entries() []model.EmailLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.EmailLog(nil), m.entries...)
}

// MockThrottle is a mock implementation of OtpThrottle.
type MockThrottle struct {
	mock.Mock
}

func (m *MockThrottle) Allow(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

// MockGoogleVerifier is a mock implementation of GoogleVerifier.
type MockGoogleVerifier struct {
	mock.Mock
}

func (m *MockGoogleVerifier) Verify(ctx context.Context, rawToken string) (*auth.GoogleIdentity, error) {
	args := m.Called(ctx, rawToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.GoogleIdentity), args.Error(1)
}

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]model.Order, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdatePayment(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	args := m.Called(ctx, id, updates)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) FindByGatewayPaymentID(ctx context.Context, gatewayPaymentID string) (*model.Payment, error) {
	args := m.Called(ctx, gatewayPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

// MockNotificationRepository is a mock implementation of NotificationRepository.
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *model.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

// MockNotificationService is a mock implementation of NotificationService.
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) NotifyOrderStatus(ctx context.Context, event OrderStatusEvent) (*NotificationResult, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*NotificationResult), args.Error(1)
}

// MockGateway is a mock implementation of PaymentGateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(amount decimal.Decimal, currency, receipt string) (*gateway.GatewayOrder, error) {
	args := m.Called(amount, currency, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.GatewayOrder), args.Error(1)
}

func (m *MockGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	args := m.Called(gatewayOrderID, paymentID, signature)
	return args.Bool(0)
}

func (m *MockGateway) FetchPayment(paymentID string) (*gateway.GatewayPayment, error) {
	args := m.Called(paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.GatewayPayment), args.Error(1)
}

func (m *MockGateway) KeyID() string {
	args := m.Called()
	return args.String(0)
}

var (
	_ repository.UserRepository         = (*MockUserRepository)(nil)
	_ repository.OrderRepository        = (*MockOrderRepository)(nil)
	_ repository.PaymentRepository      = (*MockPaymentRepository)(nil)
	_ repository.NotificationRepository = (*MockNotificationRepository)(nil)
	_ gateway.PaymentGateway            = (*MockGateway)(nil)
	_ auth.OtpThrottle                  = (*MockThrottle)(nil)
	_ auth.GoogleVerifier               = (*MockGoogleVerifier)(nil)
)
