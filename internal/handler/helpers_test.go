package handler_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"storefront/internal/auth"
	"storefront/internal/router"
)

// newEcho returns an echo instance with the production validator.
func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = router.NewValidator()
	return e
}

// withClaims stands in for the JWT middleware.
func withClaims(claims *auth.Claims) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user", jwt.NewWithClaims(jwt.SigningMethodHS256, claims))
			return next(c)
		}
	}
}

func customer(id uuid.UUID) *auth.Claims {
	return &auth.Claims{UserID: id.String(), Email: "buyer@example.com"}
}

func admin(id uuid.UUID) *auth.Claims {
	return &auth.Claims{UserID: id.String(), Email: "admin@example.com", IsAdmin: true}
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func assertError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decode(t, rec)
	require.Equal(t, false, body["success"])
	require.Equal(t, code, body["code"])
}
