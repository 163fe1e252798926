package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"ONLYTOP_APP_NAME",
	"ONLYTOP_APP_ENV",
	"ONLYTOP_APP_PORT",
	"ONLYTOP_API_BASE_URL",
	"ONLYTOP_API_TIMEOUT",
	"ONLYTOP_SESSION_STORE",
	"ONLYTOP_SESSION_SECURE",
	"ONLYTOP_SESSION_SAME_SITE",
	"ONLYTOP_STORAGE_ENABLED",
	"ONLYTOP_STORAGE_BUCKET",
	"ONLYTOP_TELEMETRY_SAMPLING_RATIO",
	"ONLYTOP_TELEMETRY_PROFILING_ENABLED",
	"ONLYTOP_SESSION_FLASH_KEY",
}

const testFlashKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "onlytop-admin", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "3000", cfg.App.Port)
		assert.Equal(t, "http://localhost:3041", cfg.API.BaseURL)
		assert.Equal(t, 15*time.Second, cfg.API.Timeout)
		assert.Equal(t, "memory", cfg.Session.Store)
		assert.Equal(t, "onlytop_session", cfg.Session.CookieName)
		assert.Equal(t, "onlytop_theme", cfg.Session.ThemeCookieName)
		assert.Equal(t, "lax", cfg.Session.SameSite)
		assert.Equal(t, 5, cfg.HTTP.LoginRateLimitRequests)
		assert.Equal(t, "onlytop-admin", cfg.Telemetry.ServiceName)
		assert.Equal(t, "info", cfg.Telemetry.LogsLevel)
		assert.Contains(t, cfg.Telemetry.ProfileTypes, "cpu")
	})

	t.Run("loads values from environment variables with ONLYTOP prefix", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ONLYTOP_APP_NAME", "admin-test")
		t.Setenv("ONLYTOP_APP_PORT", "9000")
		t.Setenv("ONLYTOP_API_BASE_URL", "https://api.onlytop.test/")
		t.Setenv("ONLYTOP_API_TIMEOUT", "3s")
		t.Setenv("ONLYTOP_SESSION_STORE", "redis")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "admin-test", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "https://api.onlytop.test", cfg.API.BaseURL, "trailing slash is trimmed")
		assert.Equal(t, 3*time.Second, cfg.API.Timeout)
		assert.Equal(t, "redis", cfg.Session.Store)
	})
}

func TestValidate(t *testing.T) {
	t.Run("rejects relative api base url", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ONLYTOP_API_BASE_URL", "api.local")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "api.base_url must be an absolute URL")
	})

	t.Run("rejects unknown session store", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ONLYTOP_SESSION_STORE", "file")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "session.store")
	})

	t.Run("same_site none requires secure", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ONLYTOP_SESSION_SAME_SITE", "none")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "requires session.secure=true")
	})

	t.Run("storage requires bucket", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ONLYTOP_STORAGE_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.bucket is required")
	})

	t.Run("sampling ratio out of range", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ONLYTOP_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sampling_ratio")
	})

	t.Run("rejects a short flash key", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ONLYTOP_SESSION_FLASH_KEY", "abcd")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "64 hex characters")
	})

	t.Run("profiling requires a server", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ONLYTOP_TELEMETRY_PROFILING_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "telemetry.profiling_server")
	})
}

func TestProductionValidation(t *testing.T) {
	setValidProductionBase := func(t *testing.T) {
		t.Setenv("ONLYTOP_APP_ENV", "production")
		t.Setenv("ONLYTOP_API_BASE_URL", "https://api.onlytop.co")
		t.Setenv("ONLYTOP_SESSION_SECURE", "true")
		t.Setenv("ONLYTOP_SESSION_STORE", "redis")
		t.Setenv("ONLYTOP_SESSION_FLASH_KEY", testFlashKey)
	}

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv(t)
		setValidProductionBase(t)

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.App.IsProduction())
		key, err := cfg.Session.FlashKeyBytes()
		require.NoError(t, err)
		assert.Len(t, key, 32)
	})

	t.Run("requires a flash key in production", func(t *testing.T) {
		clearEnv(t)
		setValidProductionBase(t)
		t.Setenv("ONLYTOP_SESSION_FLASH_KEY", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "session.flash_key is required")
	})

	t.Run("requires secure cookies in production", func(t *testing.T) {
		clearEnv(t)
		setValidProductionBase(t)
		t.Setenv("ONLYTOP_SESSION_SECURE", "false")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "session.secure must be true in production")
	})

	t.Run("requires https backend in production", func(t *testing.T) {
		clearEnv(t)
		setValidProductionBase(t)
		t.Setenv("ONLYTOP_API_BASE_URL", "http://api.onlytop.co")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must use https in production")
	})

	t.Run("rejects memory sessions in production", func(t *testing.T) {
		clearEnv(t)
		setValidProductionBase(t)
		t.Setenv("ONLYTOP_SESSION_STORE", "memory")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "session.store=memory")
	})
}

func TestLocation(t *testing.T) {
	a := AppConfig{Timezone: "America/Bogota"}
	assert.Equal(t, "America/Bogota", a.Location().String())

	bad := AppConfig{Timezone: "Mars/Olympus"}
	assert.Equal(t, time.UTC, bad.Location())
}
