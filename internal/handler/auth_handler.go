package handler

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	otpService  service.OtpService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, otpService service.OtpService) *AuthHandler {
	return &AuthHandler{authService: authService, otpService: otpService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,notblank"`
	Phone    string `json:"phone" validate:"required,in_mobile"`
	Address  string `json:"address"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// VerifyOtpRequest represents an email verification request.
type VerifyOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
	Otp   string `json:"otp" validate:"required,len=6,numeric"`
}

// ResendOtpRequest represents a request for a fresh code.
type ResendOtpRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// GoogleRequest represents a Google sign-in request.
// IDToken is verified when the server has a Google client id configured.
type GoogleRequest struct {
	GoogleUserID string `json:"googleUserId" validate:"required_without=IDToken"`
	IDToken      string `json:"idToken"`
	Email        string `json:"email" validate:"omitempty,email"`
	Name         string `json:"name"`
}

// ValidateRequest represents a token introspection request.
type ValidateRequest struct {
	Token string `json:"token"`
}

// ValidateResponse reports whether a token is usable.
type ValidateResponse struct {
	Success bool               `json:"success"`
	Valid   bool               `json:"valid"`
	User    *model.UnifiedUser `json:"user,omitempty"`
	Error   string             `json:"error,omitempty"`
}

// ResendOtpResponse represents a resend acknowledgement.
type ResendOtpResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	EmailSent bool   `json:"emailSent"`
}

// HealthResponse represents the service health probe.
type HealthResponse struct {
	Success   bool   `json:"success"`
	Service   string `json:"service"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// Login godoc
// @Summary Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		// Unknown accounts are a credential failure on this endpoint.
		if stderrors.Is(err, errors.ErrNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Success: false,
				Error:   err.Error(),
				Code:    "NOT_FOUND",
			})
		}
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: "Login successful",
		User:    result.User,
		Tokens:  newTokens(result.Token, result.ExpiresIn),
	})
}

// Register godoc
// @Summary Register a new account and send a verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Register(c.Request().Context(), service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	message := "Registration successful. Please verify your email with the OTP sent."
	if !result.OtpRequired {
		message = "Registration successful! Email verification will be available soon."
	}
	otpRequired := result.OtpRequired

	return c.JSON(http.StatusCreated, AuthResponse{
		Success:     true,
		Message:     message,
		User:        result.User,
		Tokens:      newTokens(result.Token, result.ExpiresIn),
		OtpRequired: &otpRequired,
	})
}

// VerifyOtp godoc
// @Summary Verify an email with its one-time code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body VerifyOtpRequest true "Email and code"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/verify-otp [post]
func (h *AuthHandler) VerifyOtp(c echo.Context) error {
	var req VerifyOtpRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.otpService.Verify(c.Request().Context(), req.Email, req.Otp); err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Email verified successfully"})
}

// ResendOtp godoc
// @Summary Send a fresh verification code
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResendOtpRequest true "Email"
// @Success 200 {object} ResendOtpResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 429 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/resend-otp [post]
func (h *AuthHandler) ResendOtp(c echo.Context) error {
	var req ResendOtpRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	issue, err := h.otpService.Resend(c.Request().Context(), req.Email)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(http.StatusOK, ResendOtpResponse{
		Success:   true,
		Message:   "OTP resent successfully",
		EmailSent: issue.EmailSent,
	})
}

// Google godoc
// @Summary Sign in, sign up or link an account with Google
// @Tags auth
// @Accept json
// @Produce json
// @Param request body GoogleRequest true "Google identity"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/google [post]
func (h *AuthHandler) Google(c echo.Context) error {
	var req GoogleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.authService.GoogleLogin(c.Request().Context(), service.GoogleLoginInput{
		IDToken:  req.IDToken,
		GoogleID: req.GoogleUserID,
		Email:    req.Email,
		Name:     req.Name,
	})
	if err != nil {
		if stderrors.Is(err, errors.ErrInsufficientInfo) {
			return c.JSON(http.StatusBadRequest, map[string]interface{}{
				"success":                false,
				"error":                  "User not found. Please provide email and name for new user creation.",
				"code":                   "INSUFFICIENT_INFO",
				"requiresAdditionalInfo": true,
			})
		}
		return errorResponse(c, err)
	}

	message := "Google login successful"
	if result.IsNewUser {
		message = "Google signup successful"
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Success: true,
		Message: message,
		User:    result.User,
		Tokens:  newTokens(result.Token, result.ExpiresIn),
		Source:  "google-oauth",
	})
}

// Validate godoc
// @Summary Introspect a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ValidateRequest true "Token"
// @Success 200 {object} ValidateResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/validate [post]
func (h *AuthHandler) Validate(c echo.Context) error {
	var req ValidateRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if req.Token == "" {
		return badRequest("No token provided", "NO_TOKEN")
	}

	user, err := h.authService.ValidateToken(c.Request().Context(), req.Token)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, ValidateResponse{Success: true, Valid: true, User: user})
	case stderrors.Is(err, errors.ErrInvalidToken):
		return c.JSON(http.StatusOK, ValidateResponse{Success: true, Valid: false, Error: "Invalid token"})
	case stderrors.Is(err, errors.ErrNotFound):
		return c.JSON(http.StatusOK, ValidateResponse{Success: true, Valid: false, Error: "User not found"})
	default:
		return errorResponse(c, err)
	}
}

// Logout godoc
// @Summary Logout (tokens are stateless; the client discards its token)
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: "Logout successful"})
}

// Health godoc
// @Summary Auth service health
// @Tags auth
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /auth/health [get]
func (h *AuthHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Success:   true,
		Service:   "auth",
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
