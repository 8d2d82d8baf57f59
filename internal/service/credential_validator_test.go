package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

func TestCredentialValidator_Validate(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	googleID := "google-1"

	tests := []struct {
		name     string
		user     *model.User
		findErr  error
		password string
		wantErr  error
	}{
		{
			name:     "success",
			user:     &model.User{ID: uuid.New(), Email: "a@x.com", PasswordHash: &hash, AuthProvider: model.AuthProviderLocal},
			password: "secret1",
		},
		{
			name:     "not found",
			findErr:  gorm.ErrRecordNotFound,
			password: "secret1",
			wantErr:  apperrors.ErrNotFound,
		},
		{
			name:     "google account rejects any password",
			user:     &model.User{ID: uuid.New(), Email: "a@x.com", PasswordHash: &hash, GoogleID: &googleID, AuthProvider: model.AuthProviderGoogle},
			password: "secret1",
			wantErr:  apperrors.ErrWrongAuthProvider,
		},
		{
			name:     "local account without hash",
			user:     &model.User{ID: uuid.New(), Email: "a@x.com", AuthProvider: model.AuthProviderLocal},
			password: "",
			wantErr:  apperrors.ErrNoPasswordSet,
		},
		{
			name:     "wrong password",
			user:     &model.User{ID: uuid.New(), Email: "a@x.com", PasswordHash: &hash, AuthProvider: model.AuthProviderLocal},
			password: "secret2",
			wantErr:  apperrors.ErrInvalidCredentials,
		},
		{
			name:     "store down",
			findErr:  errors.New("connection reset"),
			password: "secret1",
			wantErr:  apperrors.ErrUpstream,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(MockUserRepository)
			if tt.user != nil {
				users.On("FindByEmail", mock.Anything, "a@x.com").Return(tt.user, nil)
			} else {
				users.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, tt.findErr)
			}

			got, err := NewCredentialValidator(users).Validate(context.Background(), "A@x.com", tt.password)

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.user.ID, got.ID)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestValidIndianMobile(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"9876543210", true},
		{"+919876543210", true},
		{"5876543210", false},
		{"987654321", false},
		{"+91987654321", false},
		{"+449876543210", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidIndianMobile(tt.phone))
		})
	}
}
