package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"storefront/internal/model"
	"storefront/internal/service"
)

// UserHandler bundles HTTP handlers.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// CheckUserResponse reports whether an email is registered.
type CheckUserResponse struct {
	Success bool               `json:"success"`
	Exists  bool               `json:"exists"`
	User    *model.UnifiedUser `json:"user"`
}

// Profile godoc
// @Summary Current user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/profile [get]
func (h *UserHandler) Profile(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return errorResponse(c, err)
	}
	id, err := claims.UserUUID()
	if err != nil {
		return errorResponse(c, err)
	}

	user, err := h.svc.Profile(c.Request().Context(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, UserResponse{Success: true, User: user})
}

// GetUser godoc
// @Summary Get a user by id (admin or self)
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} UserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/user/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	claims, err := claimsFrom(c)
	if err != nil {
		return errorResponse(c, err)
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return badRequest("invalid user id", "INVALID_UUID")
	}

	user, err := h.svc.GetUser(c.Request().Context(), claims, id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, UserResponse{Success: true, User: user})
}

// CheckUser godoc
// @Summary Check whether an email is registered
// @Tags users
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} CheckUserResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/check-user/{email} [get]
func (h *UserHandler) CheckUser(c echo.Context) error {
	raw, err := url.PathUnescape(c.Param("email"))
	if err != nil {
		return badRequest("Invalid email", "VALIDATION_ERROR")
	}
	email := strings.TrimSpace(raw)
	if email == "" {
		return badRequest("Email is required", "VALIDATION_ERROR")
	}

	user, exists, err := h.svc.CheckUser(c.Request().Context(), email)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, CheckUserResponse{Success: true, Exists: exists, User: user})
}
