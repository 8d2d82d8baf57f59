package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
	"storefront/internal/mailer"
	"storefront/internal/model"
	"storefront/internal/repository"
)

var statusMessages = map[model.OrderStatus]string{
	model.OrderStatusRaised:    "Your order has been successfully placed and is being processed.",
	model.OrderStatusConfirmed: "Your order has been confirmed and is being prepared for packaging.",
	model.OrderStatusPacked:    "Your order has been carefully packed and is ready for shipping.",
	model.OrderStatusShipped:   "Your order is on its way! You will receive tracking details soon.",
	model.OrderStatusDelivered: "Your order has been successfully delivered. Enjoy your Pulasa products!",
	model.OrderStatusCancelled: "Your order has been cancelled. If you have any questions, please contact support.",
}

const defaultStatusMessage = "Your order status has been updated."

// StatusMessage returns the customer-facing sentence for status.
func StatusMessage(status model.OrderStatus) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return defaultStatusMessage
}

var istZone = time.FixedZone("IST", 5*60*60+30*60)

// NotificationItem is one order line shown in a status email.
type NotificationItem struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderStatusEvent describes an order lifecycle change to notify about.
// Email and Items are optional; they are resolved from the store when empty.
type OrderStatusEvent struct {
	UserID      uuid.UUID
	OrderID     *uuid.UUID
	OrderNumber string
	Status      model.OrderStatus
	Email       string
	Items       []NotificationItem
	Message     string
}

// NotificationResult reports the stored notification and the email outcome.
type NotificationResult struct {
	Notification   *model.Notification
	EmailSent      bool
	EmailMessageID string
}

// NotificationService records order notifications and emails the customer.
type NotificationService interface {
	NotifyOrderStatus(ctx context.Context, event OrderStatusEvent) (*NotificationResult, error)
}

type notificationService struct {
	notifications repository.NotificationRepository
	users         repository.UserRepository
	orders        repository.OrderRepository
	mailer        mailer.Mailer
	emailLogs     EmailLogger
	store         StoreInfo
	now           func() time.Time
}

// NewNotificationService creates a new notification service.
func NewNotificationService(
	notifications repository.NotificationRepository,
	users repository.UserRepository,
	orders repository.OrderRepository,
	m mailer.Mailer,
	emailLogs EmailLogger,
	store StoreInfo,
) NotificationService {
	return &notificationService{
		notifications: notifications,
		users:         users,
		orders:        orders,
		mailer:        m,
		emailLogs:     emailLogs,
		store:         store,
		now:           time.Now,
	}
}

// NotifyOrderStatus persists the notification and then attempts delivery.
// Only the persist step can fail the call.
func (s *notificationService) NotifyOrderStatus(ctx context.Context, event OrderStatusEvent) (*NotificationResult, error) {
	if !event.Status.Valid() {
		return nil, apperrors.ErrInvalidStatus
	}

	var order *model.Order
	if event.OrderID != nil {
		found, err := s.orders.FindByID(ctx, *event.OrderID)
		switch {
		case err == nil:
			order = found
		case errors.Is(err, gorm.ErrRecordNotFound):
			log.Printf("[notify] order %s not found, sending without order details", event.OrderID)
		default:
			return nil, upstream("find order", err)
		}
	}

	if order != nil && event.UserID != uuid.Nil && order.UserID != event.UserID {
		return nil, apperrors.ErrOrderNotFound
	}
	if event.UserID == uuid.Nil && event.OrderID != nil && order == nil {
		return nil, apperrors.ErrOrderNotFound
	}

	if order != nil {
		if event.OrderNumber == "" {
			event.OrderNumber = order.OrderNumber
		}
		if event.UserID == uuid.Nil {
			event.UserID = order.UserID
		}
		if len(event.Items) == 0 {
			for _, item := range order.Items {
				event.Items = append(event.Items, NotificationItem{Name: item.Name, Quantity: item.Quantity, Price: item.Price})
			}
		}
	}

	label := event.Status.Label()
	message := event.Message
	if message == "" {
		message = StatusMessage(event.Status)
	}

	notification := &model.Notification{
		UserID:      event.UserID,
		Type:        model.NotificationTypeOrderStatus,
		Title:       fmt.Sprintf("Order #%s - %s", event.OrderNumber, label),
		Message:     message,
		OrderID:     event.OrderID,
		OrderNumber: event.OrderNumber,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, upstream("create notification", err)
	}

	result := &NotificationResult{Notification: notification}

	recipient, customerName := s.resolveRecipient(ctx, event, order)
	if recipient == "" {
		log.Printf("[notify] no recipient for order %s, email skipped", event.OrderNumber)
		return result, nil
	}

	data := orderEmailData{
		Store:         s.store,
		CustomerName:  customerName,
		OrderNumber:   event.OrderNumber,
		StatusLabel:   label,
		StatusMessage: message,
		UpdatedOn:     s.now().In(istZone).Format("02 Jan 2006, 03:04 PM"),
	}
	total := decimal.Zero
	for _, item := range event.Items {
		data.Items = append(data.Items, orderEmailItem{Name: item.Name, Quantity: item.Quantity, Price: item.Price.StringFixed(2)})
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if order != nil {
		total = order.TotalAmount
	}
	if !total.IsZero() {
		data.Total = total.StringFixed(2)
	}

	messageID, err := s.send(ctx, notification.ID, recipient, OrderEmailSubject(s.store.Name, event.OrderNumber, label), data)
	if err != nil {
		log.Printf("[notify] email delivery failed for order %s: %v", event.OrderNumber, err)
		return result, nil
	}

	result.EmailSent = true
	result.EmailMessageID = messageID
	return result, nil
}

// OrderEmailSubject formats the subject line of a status email.
func OrderEmailSubject(storeName, orderNumber, label string) string {
	return fmt.Sprintf("🐠 %s Fish Order [#%s] - %s", storeName, orderNumber, label)
}

// resolveRecipient prefers the explicit email, then the user, then the order's owner.
func (s *notificationService) resolveRecipient(ctx context.Context, event OrderStatusEvent, order *model.Order) (email, name string) {
	if event.Email != "" {
		email = NormalizeEmail(event.Email)
	}

	candidates := []uuid.UUID{event.UserID}
	if order != nil && order.UserID != event.UserID {
		candidates = append(candidates, order.UserID)
	}
	for _, id := range candidates {
		if id == uuid.Nil {
			continue
		}
		user, err := s.users.FindByID(ctx, id)
		if err != nil {
			continue
		}
		if email == "" {
			return user.Email, user.Name
		}
		if user.Email == email {
			return email, user.Name
		}
	}
	return email, ""
}

func (s *notificationService) send(ctx context.Context, notificationID uuid.UUID, to, subject string, data orderEmailData) (string, error) {
	if s.mailer == nil {
		return "", mailer.ErrNotConfigured
	}

	text, html, err := renderOrderEmail(data)
	if err != nil {
		return "", fmt.Errorf("render order email: %w", err)
	}

	messageID, err := s.mailer.Send(ctx, to, subject, text, html)

	entry := model.EmailLog{
		NotificationID: &notificationID,
		Recipient:      to,
		Kind:           model.EmailKindOrderStatus,
		MessageID:      messageID,
		Status:         model.EmailStatusSent,
	}
	if err != nil {
		entry.Status = model.EmailStatusFailed
		entry.ErrorMessage = err.Error()
	}
	if s.emailLogs != nil {
		s.emailLogs.Record(ctx, entry)
	}
	return messageID, err
}
