package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_TTL_HOURS", "")
	t.Setenv("OTP_TTL_MINUTES", "")
	t.Setenv("MAILER", "")
	t.Setenv("RAZORPAY_KEY_ID", "")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.OtpTTL)
	assert.Equal(t, "log", cfg.Mailer)
	assert.False(t, cfg.PaymentsEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("OTP_TTL_MINUTES", "5")
	t.Setenv("OTP_RESEND_COOLDOWN_SECONDS", "not-a-number")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "secret")

	cfg := Load()

	assert.Equal(t, 5*time.Minute, cfg.OtpTTL)
	assert.Equal(t, 30*time.Second, cfg.OtpResendCooldown)
	assert.True(t, cfg.PaymentsEnabled())
}
