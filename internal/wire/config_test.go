package wire

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "STORE_DRIVER", "DATABASE_URL", "REDIS_ADDR", "REDIS_KEY_PREFIX",
		"CORS_ALLOWED_ORIGINS", "WS_WRITE_TIMEOUT", "WS_PONG_WAIT", "WS_PING_INTERVAL",
		"WS_SEND_BUFFER", "WS_MAX_MESSAGE_BYTES", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Empty(t, cfg.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.WS.WriteTimeout)
	assert.Equal(t, 32, cfg.WS.SendBuffer)
}

func TestLoadConfig_PostgresWhenDatabaseURLSet(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/roadside")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.Store)
}

func TestLoadConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("WS_PONG_WAIT", "30")
	t.Setenv("WS_SEND_BUFFER", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.WS.PongWait)
	assert.Equal(t, 32, cfg.WS.SendBuffer, "invalid values fall back to the default")
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "postgres without url", env: map[string]string{"STORE_DRIVER": "postgres"}},
		{name: "redis without addr", env: map[string]string{"STORE_DRIVER": "redis"}},
		{name: "unknown driver", env: map[string]string{"STORE_DRIVER": "mongo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLogLevel(t *testing.T) {
	clearEnv(t)
	assert.Equal(t, slog.LevelInfo, LogLevel())
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, slog.LevelDebug, LogLevel())
	t.Setenv("LOG_LEVEL", "loud")
	assert.Equal(t, slog.LevelInfo, LogLevel())
}
