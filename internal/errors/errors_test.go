package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"not found", ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"already exists", ErrAlreadyExists, http.StatusConflict, "ALREADY_EXISTS"},
		{"wrapped invalid otp", fmt.Errorf("verify: %w", ErrInvalidOtp), http.StatusBadRequest, "INVALID_OTP"},
		{"otp expired", ErrOtpExpired, http.StatusBadRequest, "OTP_EXPIRED"},
		{"wrong provider", ErrWrongAuthProvider, http.StatusUnauthorized, "WRONG_AUTH_PROVIDER"},
		{"order not found", ErrOrderNotFound, http.StatusNotFound, "ORDER_NOT_FOUND"},
		{"invalid signature", ErrInvalidSignature, http.StatusBadRequest, "INVALID_SIGNATURE"},
		{"payment unavailable", ErrPaymentUnavailable, http.StatusServiceUnavailable, "PAYMENT_UNAVAILABLE"},
		{"access denied", ErrAccessDenied, http.StatusForbidden, "ACCESS_DENIED"},
		{"throttled", ErrTooManyRequests, http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{"upstream", fmt.Errorf("%w: connection refused", ErrUpstream), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
		})
	}
}

func TestMapErrorToHTTP_DoesNotLeakUpstreamDetail(t *testing.T) {
	httpErr := MapErrorToHTTP(fmt.Errorf("%w: dial tcp 10.0.0.5:3306", ErrUpstream))
	resp := httpErr.ToErrorResponse()

	assert.False(t, resp.Success)
	assert.Equal(t, "internal server error", resp.Error)
	assert.NotContains(t, resp.Error, "10.0.0.5")
}
