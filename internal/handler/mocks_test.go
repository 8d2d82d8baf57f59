package handler_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"storefront/internal/auth"
	"storefront/internal/model"
	"storefront/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, in service.RegisterInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) GoogleLogin(ctx context.Context, in service.GoogleLoginInput) (*service.AuthResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (*model.UnifiedUser, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UnifiedUser), args.Error(1)
}

type MockOtpService struct {
	mock.Mock
}

func (m *MockOtpService) Issue(ctx context.Context, email string) (*service.OtpIssue, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OtpIssue), args.Error(1)
}

func (m *MockOtpService) Verify(ctx context.Context, email, code string) error {
	args := m.Called(ctx, email, code)
	return args.Error(0)
}

func (m *MockOtpService) Resend(ctx context.Context, email string) (*service.OtpIssue, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OtpIssue), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Profile(ctx context.Context, id uuid.UUID) (*model.UnifiedUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UnifiedUser), args.Error(1)
}

func (m *MockUserService) GetUser(ctx context.Context, requester *auth.Claims, id uuid.UUID) (*model.UnifiedUser, error) {
	args := m.Called(ctx, requester, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.UnifiedUser), args.Error(1)
}

func (m *MockUserService) CheckUser(ctx context.Context, email string) (*model.UnifiedUser, bool, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.UnifiedUser), args.Bool(1), args.Error(2)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, userID uuid.UUID, in service.CreateOrderInput) (*service.CheckoutResult, error) {
	args := m.Called(ctx, userID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CheckoutResult), args.Error(1)
}

func (m *MockOrderService) List(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, *service.NotificationResult, error) {
	args := m.Called(ctx, id, status)
	var order *model.Order
	if v := args.Get(0); v != nil {
		order = v.(*model.Order)
	}
	var result *service.NotificationResult
	if v := args.Get(1); v != nil {
		result = v.(*service.NotificationResult)
	}
	return order, result, args.Error(2)
}

func (m *MockOrderService) VerifyPayment(ctx context.Context, userID, orderID uuid.UUID, in service.VerifyPaymentInput) (*model.Order, error) {
	args := m.Called(ctx, userID, orderID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) NotifyOrderStatus(ctx context.Context, event service.OrderStatusEvent) (*service.NotificationResult, error) {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.NotificationResult), args.Error(1)
}
