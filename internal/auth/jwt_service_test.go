package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "storefront/internal/errors"
)

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", 0)
	userID := uuid.New()

	token, err := svc.Issue(userID, "a@x.com", true)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.True(t, claims.IsAdmin)

	parsed, err := claims.UserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)

	assert.Equal(t, "24h", svc.ExpiresIn())
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_Verify(t *testing.T) {
	issuer := NewJWTService("test-secret", time.Hour)
	token, err := issuer.Issue(uuid.New(), "a@x.com", false)
	require.NoError(t, err)

	tests := []struct {
		name  string
		svc   func() *JWTService
		token string
	}{
		{
			name:  "wrong secret",
			svc:   func() *JWTService { return NewJWTService("other-secret", time.Hour) },
			token: token,
		},
		{
			name: "expired",
			svc: func() *JWTService {
				s := NewJWTService("test-secret", time.Hour)
				s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
				return s
			},
			token: token,
		},
		{
			name:  "garbage",
			svc:   func() *JWTService { return NewJWTService("test-secret", time.Hour) },
			token: "not-a-jwt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tt.svc().Verify(tt.token)
			assert.Nil(t, claims)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidToken))
		})
	}
}
