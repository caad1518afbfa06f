package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GO_ENV", "development")
	t.Setenv("PAYMENT_AMOUNT_MINOR", "")
	t.Setenv("JWT_TTL_HOURS", "")

	cfg := Load()

	assert.Equal(t, int64(50000), cfg.Payment.AmountMinor)
	assert.Equal(t, "INR", cfg.Payment.Currency)
	assert.Equal(t, 7*24*time.Hour, cfg.Auth.TokenTTL)
	assert.False(t, cfg.Auth.CookieSecure)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("PAYMENT_AMOUNT_MINOR", "75000")
	t.Setenv("JWT_TTL_HOURS", "2")
	t.Setenv("MIDTRANS_IS_PRODUCTION", "true")

	cfg := Load()

	assert.Equal(t, int64(75000), cfg.Payment.AmountMinor)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.True(t, cfg.Auth.CookieSecure)
	assert.True(t, cfg.Payment.IsProduction)
	assert.True(t, cfg.IsProduction())
}
