package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/service"
)

// NotificationHandler handles order notification endpoints.
type NotificationHandler struct {
	notificationService service.NotificationService
}

// NewNotificationHandler creates a new notification handler.
func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// NotificationItemRequest is one order line shown in the email.
type NotificationItemRequest struct {
	Name     string          `json:"name" validate:"required"`
	Quantity int             `json:"quantity" validate:"gt=0"`
	Price    decimal.Decimal `json:"price" swaggertype:"string"`
}

// CreateNotificationRequest represents an order status notification.
// Email and UserID default to the caller; only admins may address other users.
type CreateNotificationRequest struct {
	UserID      string                    `json:"userId" validate:"omitempty,uuid"`
	OrderID     string                    `json:"orderId" validate:"omitempty,uuid"`
	OrderNumber string                    `json:"orderNumber" validate:"required_without=OrderID"`
	Status      string                    `json:"status" validate:"required"`
	Email       string                    `json:"email" validate:"omitempty,email"`
	Message     string                    `json:"message"`
	Items       []NotificationItemRequest `json:"items" validate:"omitempty,dive"`
}

// NotificationResponse reports the stored notification and the email outcome.
type NotificationResponse struct {
	Success        bool                `json:"success"`
	Notification   *model.Notification `json:"notification"`
	EmailSent      bool                `json:"emailSent"`
	EmailMessageID string              `json:"emailMessageId,omitempty"`
}

// Create godoc
// @Summary Record an order status notification and email the customer
// @Tags notifications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateNotificationRequest true "Notification"
// @Success 201 {object} NotificationResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /notifications [post]
func (h *NotificationHandler) Create(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return errorResponse(c, err)
	}
	callerID, err := claims.UserUUID()
	if err != nil {
		return errorResponse(c, err)
	}

	var req CreateNotificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	event := service.OrderStatusEvent{
		UserID:      callerID,
		OrderNumber: req.OrderNumber,
		Status:      model.OrderStatus(req.Status),
		Message:     req.Message,
	}
	if req.OrderID != "" {
		orderID := uuid.MustParse(req.OrderID)
		event.OrderID = &orderID
		if claims.IsAdmin {
			// resolved from the order's owner
			event.UserID = uuid.Nil
		}
	}
	if req.UserID != "" {
		event.UserID = uuid.MustParse(req.UserID)
	}
	if !claims.IsAdmin && (event.UserID != callerID || req.Email != "") {
		return errorResponse(c, errors.ErrAccessDenied)
	}
	event.Email = req.Email
	for _, item := range req.Items {
		event.Items = append(event.Items, service.NotificationItem{Name: item.Name, Quantity: item.Quantity, Price: item.Price})
	}

	result, err := h.notificationService.NotifyOrderStatus(c.Request().Context(), event)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, NotificationResponse{
		Success:        true,
		Notification:   result.Notification,
		EmailSent:      result.EmailSent,
		EmailMessageID: result.EmailMessageID,
	})
}
