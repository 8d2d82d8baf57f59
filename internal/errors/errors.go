package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrNotFound is returned when a user or record does not exist.
	ErrNotFound = errors.New("user not found")
	// ErrAlreadyExists is returned when registering an email that is taken.
	ErrAlreadyExists = errors.New("user already exists")
	// ErrInvalidCredentials is returned when the password does not match.
	ErrInvalidCredentials = errors.New("invalid password")
	// ErrWrongAuthProvider is returned when a google account tries password login.
	ErrWrongAuthProvider = errors.New("this account was created with Google, please use Google sign-in")
	// ErrNoPasswordSet is returned for a local account without a stored hash.
	ErrNoPasswordSet = errors.New("no password set for this account")
	// ErrInvalidOtp covers a wrong code, a used code and a code for another email alike.
	ErrInvalidOtp = errors.New("invalid OTP")
	// ErrOtpExpired is returned when a matching code is past its expiry.
	ErrOtpExpired = errors.New("OTP expired")
	// ErrInvalidToken is returned when a session token fails signature or expiry checks.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInsufficientInfo is returned when a Google sign-up lacks email or name.
	ErrInsufficientInfo = errors.New("user not found, please provide email and name for new user creation")
	// ErrAccessDenied is returned when the caller may not read the resource.
	ErrAccessDenied = errors.New("access denied")
	// ErrTooManyRequests is returned when OTP resends arrive faster than the cooldown.
	ErrTooManyRequests = errors.New("too many OTP requests, please try again later")
	// ErrOrderNotFound is returned when an order is not found.
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidOrder is returned for an order without purchasable lines.
	ErrInvalidOrder = errors.New("order must contain at least one item with a positive quantity and price")
	// ErrInvalidStatus is returned for an unknown order status.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrInvalidSignature is returned when a payment signature does not verify.
	ErrInvalidSignature = errors.New("invalid payment signature")
	// ErrPaymentUnavailable is returned when no payment gateway is configured.
	ErrPaymentUnavailable = errors.New("payment gateway unavailable")
	// ErrUpstream tags failures of the store, mailer or gateway.
	ErrUpstream = errors.New("upstream failure")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Success: false,
		Error:   e.Message,
		Code:    e.Code,
	}
}

var mappings = []struct {
	err    error
	status int
	code   string
}{
	{ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
	{ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{ErrWrongAuthProvider, http.StatusUnauthorized, "WRONG_AUTH_PROVIDER"},
	{ErrNoPasswordSet, http.StatusUnauthorized, "NO_PASSWORD_SET"},
	{ErrInvalidOtp, http.StatusBadRequest, "INVALID_OTP"},
	{ErrOtpExpired, http.StatusBadRequest, "OTP_EXPIRED"},
	{ErrInvalidToken, http.StatusUnauthorized, "INVALID_TOKEN"},
	{ErrInsufficientInfo, http.StatusBadRequest, "INSUFFICIENT_INFO"},
	{ErrAccessDenied, http.StatusForbidden, "ACCESS_DENIED"},
	{ErrTooManyRequests, http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
	{ErrOrderNotFound, http.StatusNotFound, "ORDER_NOT_FOUND"},
	{ErrInvalidOrder, http.StatusBadRequest, "INVALID_ORDER"},
	{ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
	{ErrInvalidSignature, http.StatusBadRequest, "INVALID_SIGNATURE"},
	{ErrPaymentUnavailable, http.StatusServiceUnavailable, "PAYMENT_UNAVAILABLE"},
}

// MapErrorToHTTP maps domain errors to HTTP errors.
// Upstream and unknown errors collapse into a generic 500 so internals never leak.
func MapErrorToHTTP(err error) *HTTPError {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, m.err.Error(), m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
