package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "3000", cfg.Service.Port)
	assert.Equal(t, "development", cfg.Service.Env)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Tracing.Enabled)
	assert.False(t, cfg.Profiling.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_HOST", "db.internal:5432")
	t.Setenv("DATABASE_USER", "svc")
	t.Setenv("DATABASE_PASSWORD", "pw")
	t.Setenv("DATABASE_NAME", "members")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("TRACING_SAMPLE_RATE", "0.25")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "30")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Service.Port)
	assert.True(t, cfg.Tracing.Enabled)
	assert.InDelta(t, 0.25, cfg.Tracing.SampleRate, 1e-9)
	assert.Equal(t, "postgres://svc:pw@db.internal:5432/members", cfg.DatabaseURL())
	assert.Equal(t, 30, cfg.Shutdown.TimeoutSeconds)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg := Load()
		cfg.Service.Env = "production"
		cfg.Database.User = "svc"
		cfg.Database.Password = "pw"
		cfg.Session.StoreSecret = "store"
		cfg.Session.SigningSecret = "sign"
		return cfg
	}

	t.Run("complete production config", func(t *testing.T) {
		require.NoError(t, base().Validate())
	})

	t.Run("development tolerates missing secrets", func(t *testing.T) {
		cfg := Load()
		require.NoError(t, cfg.Validate())
	})

	t.Run("missing database credentials", func(t *testing.T) {
		cfg := base()
		cfg.Database.Password = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing session secrets", func(t *testing.T) {
		cfg := base()
		cfg.Session.SigningSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-numeric port", func(t *testing.T) {
		cfg := base()
		cfg.Service.Port = "http"
		assert.Error(t, cfg.Validate())
	})
}
