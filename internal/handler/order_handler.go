package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"storefront/internal/model"
	"storefront/internal/service"
)

// OrderHandler handles order and checkout endpoints.
type OrderHandler struct {
	orderService service.OrderService
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// OrderItemRequest is one product line.
type OrderItemRequest struct {
	Name     string          `json:"name" validate:"required"`
	Quantity int             `json:"quantity" validate:"required,gt=0"`
	Price    decimal.Decimal `json:"price" swaggertype:"string"`
}

// CreateOrderRequest represents a checkout request.
type CreateOrderRequest struct {
	Items    []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	Currency string             `json:"currency" validate:"omitempty,len=3"`
}

// UpdateStatusRequest represents an order status change.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// VerifyPaymentRequest is the payload the gateway checkout hands back to the client.
type VerifyPaymentRequest struct {
	GatewayOrderID string `json:"razorpay_order_id"`
	PaymentID      string `json:"razorpay_payment_id" validate:"required"`
	Signature      string `json:"razorpay_signature" validate:"required"`
}

// CheckoutPayment tells the client how to open the gateway checkout.
type CheckoutPayment struct {
	GatewayOrderID string `json:"gatewayOrderId,omitempty"`
	KeyID          string `json:"keyId,omitempty"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Available      bool   `json:"available"`
}

// OrderResponse wraps a single order.
type OrderResponse struct {
	Success bool             `json:"success"`
	Order   *model.Order     `json:"order"`
	Payment *CheckoutPayment `json:"payment,omitempty"`
}

// OrderListResponse wraps the caller's orders.
type OrderListResponse struct {
	Success bool          `json:"success"`
	Orders  []model.Order `json:"orders"`
}

// OrderStatusResponse reports a status change and its notification outcome.
type OrderStatusResponse struct {
	Success        bool         `json:"success"`
	Order          *model.Order `json:"order"`
	EmailSent      bool         `json:"emailSent"`
	EmailMessageID string       `json:"emailMessageId,omitempty"`
}

// Create godoc
// @Summary Place an order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateOrderRequest true "Order lines"
// @Success 201 {object} OrderResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return errorResponse(c, err)
	}
	userID, err := claims.UserUUID()
	if err != nil {
		return errorResponse(c, err)
	}

	var req CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	input := service.CreateOrderInput{Currency: req.Currency}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.OrderLineInput{Name: item.Name, Quantity: item.Quantity, Price: item.Price})
	}

	result, err := h.orderService.Create(c.Request().Context(), userID, input)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusCreated, OrderResponse{
		Success: true,
		Order:   result.Order,
		Payment: &CheckoutPayment{
			GatewayOrderID: result.Order.GatewayOrderID,
			KeyID:          result.GatewayKeyID,
			Amount:         result.AmountMinor,
			Currency:       result.Order.Currency,
			Available:      result.Order.GatewayOrderID != "",
		},
	})
}

// List godoc
// @Summary List the caller's orders, newest first
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Success 200 {object} OrderListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return errorResponse(c, err)
	}
	userID, err := claims.UserUUID()
	if err != nil {
		return errorResponse(c, err)
	}

	orders, err := h.orderService.List(c.Request().Context(), userID)
	if err != nil {
		return errorResponse(c, err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return c.JSON(http.StatusOK, OrderListResponse{Success: true, Orders: orders})
}

// UpdateStatus godoc
// @Summary Change an order's status and notify the customer (admin)
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} OrderStatusResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid order id", "INVALID_UUID")
	}

	var req UpdateStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, notification, err := h.orderService.UpdateStatus(c.Request().Context(), id, model.OrderStatus(req.Status))
	if err != nil {
		return errorResponse(c, err)
	}

	resp := OrderStatusResponse{Success: true, Order: order}
	if notification != nil {
		resp.EmailSent = notification.EmailSent
		resp.EmailMessageID = notification.EmailMessageID
	}
	return c.JSON(http.StatusOK, resp)
}

// VerifyPayment godoc
// @Summary Confirm a gateway payment for an order
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Param request body VerifyPaymentRequest true "Gateway callback"
// @Success 200 {object} OrderResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /orders/{id}/verify-payment [post]
func (h *OrderHandler) VerifyPayment(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return errorResponse(c, err)
	}
	userID, err := claims.UserUUID()
	if err != nil {
		return errorResponse(c, err)
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid order id", "INVALID_UUID")
	}

	var req VerifyPaymentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	order, err := h.orderService.VerifyPayment(c.Request().Context(), userID, orderID, service.VerifyPaymentInput{
		GatewayOrderID: req.GatewayOrderID,
		PaymentID:      req.PaymentID,
		Signature:      req.Signature,
	})
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, OrderResponse{Success: true, Order: order})
}
