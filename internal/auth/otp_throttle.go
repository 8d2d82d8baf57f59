package auth

import (
	"context"
	"strings"
	"time"

	"storefront/internal/cache"
)

const otpCooldownKeyPrefix = "otp_cooldown:"

// OtpThrottle limits how often a code may be re-sent to one email.
type OtpThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
}

// CooldownThrottle keeps a per-email marker in Redis for the cooldown window.
type CooldownThrottle struct {
	cache    *cache.Client
	cooldown time.Duration
}

// Ensure CooldownThrottle implements OtpThrottle
var _ OtpThrottle = (*CooldownThrottle)(nil)

// NewCooldownThrottle creates a throttle; a zero cooldown disables it.
func NewCooldownThrottle(cache *cache.Client, cooldown time.Duration) *CooldownThrottle {
	return &CooldownThrottle{cache: cache, cooldown: cooldown}
}

// Allow reports whether a send may proceed and starts a new window when it does.
// Redis outages fail open.
func (t *CooldownThrottle) Allow(ctx context.Context, email string) (bool, error) {
	if t.cooldown <= 0 {
		return true, nil
	}
	key := otpCooldownKeyPrefix + strings.ToLower(email)
	return t.cache.SetNX(ctx, key, []byte("1"), t.cooldown)
}
