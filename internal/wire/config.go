package wire

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alanyang/roadside-relay/internal/transport/ws"
)

type StoreDriver string

const (
	StorePostgres StoreDriver = "postgres"
	StoreRedis    StoreDriver = "redis"
	StoreMemory   StoreDriver = "memory"
)

// Config is everything the process reads from its environment.
type Config struct {
	Port           string
	Store          StoreDriver
	DatabaseURL    string
	RedisAddr      string
	RedisPrefix    string
	AllowedOrigins []string
	WS             ws.Options
}

// LoadConfig reads the environment. STORE_DRIVER defaults to postgres when
// DATABASE_URL is set and to the in-memory store otherwise.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:           envString("PORT", "5000"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPrefix:    envString("REDIS_KEY_PREFIX", "roadside"),
		AllowedOrigins: envList("CORS_ALLOWED_ORIGINS"),
		WS: ws.Options{
			WriteTimeout:    envDuration("WS_WRITE_TIMEOUT", ws.DefaultOptions.WriteTimeout),
			PongWait:        envDuration("WS_PONG_WAIT", ws.DefaultOptions.PongWait),
			PingInterval:    envDuration("WS_PING_INTERVAL", ws.DefaultOptions.PingInterval),
			SendBuffer:      envInt("WS_SEND_BUFFER", ws.DefaultOptions.SendBuffer),
			MaxMessageBytes: int64(envInt("WS_MAX_MESSAGE_BYTES", int(ws.DefaultOptions.MaxMessageBytes))),
		},
	}

	driver := StoreDriver(strings.ToLower(strings.TrimSpace(os.Getenv("STORE_DRIVER"))))
	if driver == "" {
		driver = StoreMemory
		if cfg.DatabaseURL != "" {
			driver = StorePostgres
		}
	}
	cfg.Store = driver

	switch driver {
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL not set")
		}
	case StoreRedis:
		if cfg.RedisAddr == "" {
			return Config{}, fmt.Errorf("REDIS_ADDR not set")
		}
	case StoreMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORE_DRIVER %q", driver)
	}
	return cfg, nil
}

// LogLevel parses LOG_LEVEL, defaulting to info.
func LogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(envString("LOG_LEVEL", "info"))); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func envString(key, defaultVal string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return defaultVal
}

// envDuration reads an integer-seconds env var and returns a Duration.
// Falls back to defaultVal if the var is unset or invalid.
func envDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}

func envList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
