package config_test

import (
	"testing"
	"time"

	"inkwell/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := config.Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/api", cfg.GetAPIBasePath())
	assert.Equal(t, ":8080", cfg.GetServerAddress())
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.NotEmpty(t, cfg.Database.DSN)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092, broker-2:9092")

	cfg := config.Load()

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
}

func TestSecretsHaveNoDefaults(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_JWT_SECRET", "")
	t.Setenv("REFRESH_TOKEN_JWT_SECRET", "")

	cfg := config.Load()

	assert.Empty(t, cfg.Auth.AccessSecret)
	assert.Empty(t, cfg.Auth.RefreshSecret)
}

func TestValidate(t *testing.T) {
	valid := func() *config.Config {
		t.Setenv("ACCESS_TOKEN_JWT_SECRET", "access-secret")
		t.Setenv("REFRESH_TOKEN_JWT_SECRET", "refresh-secret")
		return config.Load()
	}

	t.Run("valid configuration passes", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("missing access secret fails", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.AccessSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("missing refresh secret fails", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.RefreshSecret = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("identical secrets fail", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.RefreshSecret = cfg.Auth.AccessSecret
		assert.Error(t, cfg.Validate())
	})

	t.Run("bcrypt cost out of range fails", func(t *testing.T) {
		cfg := valid()
		cfg.Auth.BcryptCost = 99
		assert.Error(t, cfg.Validate())
	})
}
