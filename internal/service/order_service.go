package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
	"storefront/internal/gateway"
	"storefront/internal/model"
	"storefront/internal/repository"
)

const (
	defaultCurrency = "INR"
	orderListLimit  = 50
)

// OrderLineInput is one requested product line.
type OrderLineInput struct {
	Name     string
	Quantity int
	Price    decimal.Decimal
}

// CreateOrderInput carries a validated checkout request.
type CreateOrderInput struct {
	Items    []OrderLineInput
	Currency string
}

// CheckoutResult is a stored order plus what the client needs to open the gateway checkout.
type CheckoutResult struct {
	Order        *model.Order
	GatewayKeyID string
	AmountMinor  int64
}

// VerifyPaymentInput is the gateway checkout callback payload.
type VerifyPaymentInput struct {
	GatewayOrderID string
	PaymentID      string
	Signature      string
}

// OrderService handles order lifecycle operations.
type OrderService interface {
	Create(ctx context.Context, userID uuid.UUID, in CreateOrderInput) (*CheckoutResult, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, *NotificationResult, error)
	VerifyPayment(ctx context.Context, userID, orderID uuid.UUID, in VerifyPaymentInput) (*model.Order, error)
}

type orderService struct {
	orders   repository.OrderRepository
	payments repository.PaymentRepository
	gateway  gateway.PaymentGateway
	notifier NotificationService
	now      func() time.Time
}

// NewOrderService creates a new order service. A nil gateway disables online payment.
func NewOrderService(
	orders repository.OrderRepository,
	payments repository.PaymentRepository,
	gw gateway.PaymentGateway,
	notifier NotificationService,
) OrderService {
	return &orderService{
		orders:   orders,
		payments: payments,
		gateway:  gw,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *orderService) newOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("PUL-%s-%s", s.now().Format("20060102"), suffix)
}

// Create stores an order in order_raised and opens a gateway order for it.
// Gateway failures leave payment_status unavailable without failing the order.
func (s *orderService) Create(ctx context.Context, userID uuid.UUID, in CreateOrderInput) (*CheckoutResult, error) {
	if len(in.Items) == 0 {
		return nil, apperrors.ErrInvalidOrder
	}

	order := &model.Order{
		UserID:        userID,
		OrderNumber:   s.newOrderNumber(),
		Status:        model.OrderStatusRaised,
		Currency:      in.Currency,
		PaymentStatus: model.PaymentStatusPending,
	}
	if order.Currency == "" {
		order.Currency = defaultCurrency
	}

	total := decimal.Zero
	for _, line := range in.Items {
		if line.Quantity <= 0 || !line.Price.IsPositive() || strings.TrimSpace(line.Name) == "" {
			return nil, apperrors.ErrInvalidOrder
		}
		order.Items = append(order.Items, model.OrderItem{Name: line.Name, Quantity: line.Quantity, Price: line.Price})
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	order.TotalAmount = total

	result := &CheckoutResult{Order: order, AmountMinor: gateway.ToMinorUnits(total)}
	if s.gateway == nil {
		order.PaymentStatus = model.PaymentStatusUnavailable
	} else {
		gwOrder, err := s.gateway.CreateOrder(total, order.Currency, order.OrderNumber)
		if err != nil {
			log.Printf("[orders] gateway order failed for %s: %v", order.OrderNumber, err)
			order.PaymentStatus = model.PaymentStatusUnavailable
		} else {
			order.GatewayOrderID = gwOrder.ID
			result.GatewayKeyID = s.gateway.KeyID()
		}
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, upstream("create order", err)
	}

	s.notify(ctx, order, model.OrderStatusRaised)
	return result, nil
}

func (s *orderService) List(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orders.ListByUser(ctx, userID, orderListLimit)
	if err != nil {
		return nil, upstream("list orders", err)
	}
	return orders, nil
}

// UpdateStatus moves an order to status and notifies its owner.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, *NotificationResult, error) {
	if !status.Valid() {
		return nil, nil, apperrors.ErrInvalidStatus
	}

	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrOrderNotFound
		}
		return nil, nil, upstream("update order status", err)
	}

	order, err := s.findOrder(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	return order, s.notify(ctx, order, status), nil
}

// VerifyPayment checks the checkout signature and marks the caller's order paid.
func (s *orderService) VerifyPayment(ctx context.Context, userID, orderID uuid.UUID, in VerifyPaymentInput) (*model.Order, error) {
	if s.gateway == nil {
		return nil, apperrors.ErrPaymentUnavailable
	}

	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.ErrOrderNotFound
	}
	if order.GatewayOrderID == "" {
		return nil, apperrors.ErrPaymentUnavailable
	}
	if in.GatewayOrderID != "" && in.GatewayOrderID != order.GatewayOrderID {
		return nil, apperrors.ErrInvalidSignature
	}
	if !s.gateway.VerifySignature(order.GatewayOrderID, in.PaymentID, in.Signature) {
		return nil, apperrors.ErrInvalidSignature
	}

	if order.PaymentStatus == model.PaymentStatusAccepted && order.PaymentID == in.PaymentID {
		return order, nil
	}

	existing, err := s.payments.FindByGatewayPaymentID(ctx, in.PaymentID)
	switch {
	case err == nil:
		// A gateway payment settles exactly one order.
		if existing.OrderID != order.ID {
			return nil, apperrors.ErrInvalidSignature
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.recordPayment(ctx, order, in.PaymentID); err != nil {
			return nil, err
		}
	default:
		return nil, upstream("find payment", err)
	}

	updates := map[string]interface{}{
		"payment_id":     in.PaymentID,
		"payment_status": model.PaymentStatusAccepted,
	}
	if err := s.orders.UpdatePayment(ctx, order.ID, updates); err != nil {
		return nil, upstream("update order payment", err)
	}

	order.PaymentID = in.PaymentID
	order.PaymentStatus = model.PaymentStatusAccepted
	return order, nil
}

func (s *orderService) recordPayment(ctx context.Context, order *model.Order, paymentID string) error {
	payment := &model.Payment{
		OrderID:          order.ID,
		GatewayOrderID:   order.GatewayOrderID,
		GatewayPaymentID: paymentID,
		Amount:           order.TotalAmount,
		Status:           model.PaymentStatusAccepted,
	}
	if fetched, err := s.gateway.FetchPayment(paymentID); err != nil {
		log.Printf("[orders] fetch payment %s failed: %v", paymentID, err)
	} else {
		payment.Method = fetched.Method
		payment.GatewayStatus = fetched.Status
		if fetched.Amount > 0 {
			payment.Amount = decimal.New(fetched.Amount, -2)
		}
	}

	if err := s.payments.Create(ctx, payment); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return upstream("record payment", err)
	}
	return nil
}

func (s *orderService) findOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, upstream("find order", err)
	}
	return order, nil
}

// notify is best effort; a failed notification never fails the order operation.
func (s *orderService) notify(ctx context.Context, order *model.Order, status model.OrderStatus) *NotificationResult {
	if s.notifier == nil {
		return nil
	}

	orderID := order.ID
	event := OrderStatusEvent{
		UserID:      order.UserID,
		OrderID:     &orderID,
		OrderNumber: order.OrderNumber,
		Status:      status,
	}
	for _, item := range order.Items {
		event.Items = append(event.Items, NotificationItem{Name: item.Name, Quantity: item.Quantity, Price: item.Price})
	}

	result, err := s.notifier.NotifyOrderStatus(ctx, event)
	if err != nil {
		log.Printf("[orders] notification for %s failed: %v", order.OrderNumber, err)
		return nil
	}
	return result
}
