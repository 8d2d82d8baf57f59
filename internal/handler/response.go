package handler

import (
	"log"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"storefront/internal/auth"
	"storefront/internal/errors"
	"storefront/internal/model"
)

// TokensResponse is the session token envelope returned on every successful sign-in.
type TokensResponse struct {
	JWTToken  string `json:"jwtToken"`
	TokenType string `json:"tokenType"`
	ExpiresIn string `json:"expiresIn"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	Success     bool               `json:"success"`
	Message     string             `json:"message"`
	User        *model.UnifiedUser `json:"user"`
	Tokens      TokensResponse     `json:"tokens"`
	OtpRequired *bool              `json:"otpRequired,omitempty"`
	Source      string             `json:"source,omitempty"`
}

// MessageResponse is a bare success acknowledgement.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// UserResponse wraps a single user projection.
type UserResponse struct {
	Success bool               `json:"success"`
	User    *model.UnifiedUser `json:"user"`
}

func newTokens(token, expiresIn string) TokensResponse {
	return TokensResponse{JWTToken: token, TokenType: "Bearer", ExpiresIn: expiresIn}
}

// errorResponse maps a service error to an echo error carrying an ErrorResponse body.
// Server-side failures are logged here and leave the response generic.
func errorResponse(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	if httpErr.StatusCode >= http.StatusInternalServerError {
		log.Printf("[http] %s %s: %v", c.Request().Method, c.Path(), err)
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message, code string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Success: false,
		Error:   message,
		Code:    code,
	})
}

// bindAndValidate decodes the body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}
	return nil
}

// claimsFrom returns the session claims placed in the context by the JWT middleware.
func claimsFrom(c echo.Context) (*auth.Claims, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, errors.ErrInvalidToken
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return nil, errors.ErrInvalidToken
	}
	return claims, nil
}

// AdminOnly rejects requests whose session is not an administrator's.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := claimsFrom(c)
		if err != nil {
			return errorResponse(c, err)
		}
		if !claims.IsAdmin {
			return errorResponse(c, errors.ErrAccessDenied)
		}
		return next(c)
	}
}
