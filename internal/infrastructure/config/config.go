package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Session SessionConfig
	Redis   RedisConfig
}

type BackendConfig struct {
	BaseURL string        `env:"BACKEND_URL,     default=http://localhost:8000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=30s"`
}

type SessionConfig struct {
	// Store selects the session backend: "memory" or "redis".
	Store string `env:"SESSION_STORE, default=memory"`
	// TTL is the fallback session lifetime when the backend token carries
	// no usable expiry.
	TTL time.Duration `env:"SESSION_TTL, default=1h"`
	// SweepEvery is the interval of the expired-session sweep (memory store).
	SweepEvery time.Duration `env:"SESSION_SWEEP_EVERY, default=5m"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
