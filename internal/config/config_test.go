package config

import (
	"errors"
	"testing"
	"time"

	"github.com/portfolio-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "OTP_TOKEN_TTL_SECONDS", "OTP_RATE_WINDOW_MINUTES", "OTP_MAX_ATTEMPTS", "OTP_ALLOWED_RECIPIENTS"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, 300*time.Second, cfg.OTPTokenTTL)
	assert.Equal(t, time.Hour, cfg.OTPRateWindow)
	assert.Equal(t, 3, cfg.OTPMaxAttempts)
	assert.Empty(t, cfg.OTPAllowedRecipients)
}

func TestLoad_AllowedRecipients(t *testing.T) {
	t.Setenv("OTP_ALLOWED_RECIPIENTS", "me@example.com, +15551234567 ,")
	cfg := Load()
	assert.Equal(t, []string{"me@example.com", "+15551234567"}, cfg.OTPAllowedRecipients)
}

func TestValidate_MissingSecrets(t *testing.T) {
	cfg := &Config{OTPMaxAttempts: 3}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
	assert.Contains(t, err.Error(), "OTP_SECRET")
	assert.Contains(t, err.Error(), "EMAIL_API_KEY")
}

func TestValidate_OK(t *testing.T) {
	cfg := &Config{OTPSecret: "s", EmailAPIKey: "k", OTPMaxAttempts: 3}
	require.NoError(t, cfg.Validate())
}

func TestValidate_BadMaxAttempts(t *testing.T) {
	cfg := &Config{OTPSecret: "s", EmailAPIKey: "k"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConfiguration))
}
