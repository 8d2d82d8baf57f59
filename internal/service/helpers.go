package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"storefront/internal/cache"
	apperrors "storefront/internal/errors"
	"storefront/internal/model"
)

const userCacheTTL = 5 * time.Minute

// NormalizeEmail lower-cases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// upstream tags a store, mailer or gateway failure so it maps to a generic 500.
func upstream(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, apperrors.ErrUpstream, err)
}

// userCache keeps unified user projections in redis keyed by id.
type userCache struct {
	client *cache.Client
}

func (c userCache) key(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id)
}

func (c userCache) get(ctx context.Context, id uuid.UUID) *model.UnifiedUser {
	data, _ := c.client.Get(ctx, c.key(id))
	if data == nil {
		return nil
	}
	var cached model.UnifiedUser
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil
	}
	return &cached
}

func (c userCache) set(ctx context.Context, user *model.UnifiedUser) {
	if payload, err := json.Marshal(user); err == nil {
		_ = c.client.Set(ctx, c.key(user.ID), payload, userCacheTTL)
	}
}

func (c userCache) invalidate(ctx context.Context, id uuid.UUID) {
	_ = c.client.Delete(ctx, c.key(id))
}
