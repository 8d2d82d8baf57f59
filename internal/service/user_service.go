package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"storefront/internal/auth"
	"storefront/internal/cache"
	apperrors "storefront/internal/errors"
	"storefront/internal/model"
	"storefront/internal/repository"
)

// UserService exposes read access to accounts.
type UserService interface {
	Profile(ctx context.Context, id uuid.UUID) (*model.UnifiedUser, error)
	GetUser(ctx context.Context, requester *auth.Claims, id uuid.UUID) (*model.UnifiedUser, error)
	CheckUser(ctx context.Context, email string) (*model.UnifiedUser, bool, error)
}

type userService struct {
	repo  repository.UserRepository
	cache userCache
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: userCache{client: cache}}
}

func (s *userService) Profile(ctx context.Context, id uuid.UUID) (*model.UnifiedUser, error) {
	if cached := s.cache.get(ctx, id); cached != nil {
		return cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, upstream("find user", err)
	}

	unified := user.Unified()
	s.cache.set(ctx, unified)
	return unified, nil
}

// GetUser returns id's profile to an admin or to the user themself.
func (s *userService) GetUser(ctx context.Context, requester *auth.Claims, id uuid.UUID) (*model.UnifiedUser, error) {
	if requester == nil {
		return nil, apperrors.ErrInvalidToken
	}
	if !requester.IsAdmin && requester.UserID != id.String() {
		return nil, apperrors.ErrAccessDenied
	}
	return s.Profile(ctx, id)
}

// CheckUser reports whether an account exists for email.
func (s *userService) CheckUser(ctx context.Context, email string) (*model.UnifiedUser, bool, error) {
	user, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, upstream("find user", err)
	}
	return user.Unified(), true, nil
}
