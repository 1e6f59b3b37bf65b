package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every BO_* variable for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, EnvPrefix+"_") {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads defaults", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "backoffice", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "fixed_monthly", cfg.Payroll.DeductionPolicy)
		assert.Equal(t, 15*time.Minute, cfg.Storage.PresignExpiration)
		assert.True(t, cfg.Idempotency.Enabled)
		assert.Equal(t, 24*time.Hour, cfg.Idempotency.TTL)
		assert.NotEmpty(t, cfg.JWT.Secret, "development secret is filled in")
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BO_APP_NAME", "test-app")
		t.Setenv("BO_APP_PORT", "9000")
		t.Setenv("BO_DATABASE_HOST", "testdb.local")
		t.Setenv("BO_DATABASE_PORT", "5433")
		t.Setenv("BO_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("BO_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("BO_PAYROLL_DEDUCTION_POLICY", "shortfall")
		t.Setenv("BO_IDEMPOTENCY_TTL", "1h")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, "shortfall", cfg.Payroll.DeductionPolicy)
		assert.Equal(t, time.Hour, cfg.Idempotency.TTL)
	})

	t.Run("rejects idle connections above open connections", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BO_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("BO_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
	})

	t.Run("rejects zero open connections", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BO_DATABASE_MAX_OPEN_CONNS", "0")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_open_conns")
	})

	t.Run("rejects unknown deduction policy", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BO_PAYROLL_DEDUCTION_POLICY", "whatever")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "deduction_policy")
	})

	t.Run("requires storage credentials when storage is enabled", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BO_STORAGE_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	production := func(t *testing.T) {
		clearEnv(t)
		t.Setenv("BO_APP_ENV", "production")
		t.Setenv("BO_JWT_SECRET", "this-is-a-very-secure-jwt-secret-key-32chars")
		t.Setenv("BO_DATABASE_PASSWORD", "secure-password")
		t.Setenv("BO_DATABASE_SSLMODE", "require")
	}

	t.Run("valid production config", func(t *testing.T) {
		production(t)
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.App.IsProduction())
	})

	t.Run("short jwt secret", func(t *testing.T) {
		production(t)
		t.Setenv("BO_JWT_SECRET", "short-secret")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "jwt.secret")
	})

	t.Run("missing database password", func(t *testing.T) {
		production(t)
		os.Unsetenv("BO_DATABASE_PASSWORD")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password")
	})

	t.Run("ssl disabled", func(t *testing.T) {
		production(t)
		t.Setenv("BO_DATABASE_SSLMODE", "disable")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sslmode")
	})

	t.Run("wildcard cors", func(t *testing.T) {
		production(t)
		t.Setenv("BO_HTTP_CORS_ALLOW_ORIGINS", "*")
		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cors")
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "bo", Password: "p@ss word", DBName: "backoffice", SSLMode: "disable"}
	assert.Equal(t, "postgres://bo:p%40ss%20word@db:5432/backoffice?sslmode=disable", d.DSN())
}
