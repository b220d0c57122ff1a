package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	unsetEnv(t, "PORT", "LOG_LEVEL", "ALLOWED_ORIGINS", "PAYMENT_TIMEOUT", "PENDING_PURCHASE_TTL", "EXPIRY_SCHEDULE", "PUBLIC_URL", "PAYMENT_WEBHOOK_SECRET")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.PaymentTimeout)
	assert.Equal(t, 24*time.Hour, cfg.PendingTTL)
	assert.Equal(t, "@every 15m", cfg.ExpirySchedule)
	assert.Equal(t, "http://localhost:8080", cfg.PublicURL)
	assert.Empty(t, cfg.WebhookSecret)
}

func TestLoadServerConfig_RequiresSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "")

	_, err := LoadServerConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
}

func TestLoadServerConfig_EnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	unsetEnv(t, "PORT", "ALLOWED_ORIGINS", "PENDING_PURCHASE_TTL", "PAYMENT_WEBHOOK_SECRET")
	// godotenv does not override variables that are already set
	t.Setenv("JWT_SECRET", "from-env")

	content := "PORT=9999\nJWT_SECRET=from-file\nALLOWED_ORIGINS=https://devnagringa.com, http://localhost:3000\nPENDING_PURCHASE_TTL=2h\nPAYMENT_WEBHOOK_SECRET=whsec_1\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))

	cfg, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, []string{"https://devnagringa.com", "http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, 2*time.Hour, cfg.PendingTTL)
	assert.Equal(t, "whsec_1", cfg.WebhookSecret)
}

func TestLoadServerConfig_BadValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "s")

	t.Run("port", func(t *testing.T) {
		t.Setenv("PORT", "http")
		_, err := LoadServerConfig()
		assert.Error(t, err)
	})

	t.Run("duration", func(t *testing.T) {
		t.Setenv("PAYMENT_TIMEOUT", "soon")
		_, err := LoadServerConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "PAYMENT_TIMEOUT")
	})
}

func TestLoadServerConfig_MissingExplicitFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")

	_, err := LoadServerConfig(filepath.Join(t.TempDir(), "nope.env"))
	assert.Error(t, err)
}

// unsetEnv clears keys for the duration of the test, restoring them afterwards
func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}
