package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Session backends selectable with SESSION_BACKEND.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API     APIConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

// APIConfig points at the job-board JSON API.
type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:8081"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=10s"`
}

type SessionConfig struct {
	Backend       string        `env:"SESSION_BACKEND, default=memory"`
	TTL           time.Duration `env:"SESSION_TTL,     default=8h"`
	CookieSecure  bool          `env:"COOKIE_SECURE,   default=false"`
	SubmitLockTTL time.Duration `env:"SUBMIT_LOCK_TTL, default=10s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=campus_portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Development reports whether the portal runs with development defaults
// (console logs).
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment win.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}

	switch cfg.Session.Backend {
	case BackendMemory, BackendRedis, BackendMongo:
	default:
		return nil, fmt.Errorf("config: unknown SESSION_BACKEND %q", cfg.Session.Backend)
	}
	return &cfg, nil
}
