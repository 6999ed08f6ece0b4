package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"GO_ENV", "PAYMENT_CURRENCY", "SETTINGS_STORE_TIMEOUT", "GUEST_STORE", "GUEST_SESSION_TTL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "INR", cfg.Payment.Currency)
	assert.Equal(t, 3*time.Second, cfg.Database.Timeout)
	assert.Equal(t, 2*time.Hour, cfg.Entitlement.GuestSessionTTL)
	assert.False(t, cfg.IsProduction())
}

func TestGetEnvAsDuration(t *testing.T) {
	for in, want := range map[string]time.Duration{"5s": 5 * time.Second, "7": 7 * time.Second, "1m30s": 90 * time.Second, "soon": time.Minute} {
		t.Setenv("TEST_DURATION", in)
		assert.Equal(t, want, getEnvAsDuration("TEST_DURATION", time.Minute), "input %q", in)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("RAZORPAY_KEY_ID", "rzp_test_key")
	t.Setenv("RAZORPAY_KEY_SECRET", "rzp_secret")
	t.Setenv("PAYMENT_TIMEOUT", "4s")
	t.Setenv("SMTP_PORT", "2525")
	t.Setenv("GUEST_STORE", "redis")
	t.Setenv("ADMIN_CODE_HASH", "abc")

	cfg := Load()

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "rzp_test_key", cfg.Payment.KeyId)
	assert.Equal(t, "rzp_secret", cfg.Payment.KeySecret)
	assert.Equal(t, 4*time.Second, cfg.Payment.Timeout)
	assert.Equal(t, 2525, cfg.SMTP.Port)
	assert.Equal(t, "redis", cfg.Entitlement.GuestStore)
	assert.Equal(t, "abc", cfg.Codes.AdminHash)
}
