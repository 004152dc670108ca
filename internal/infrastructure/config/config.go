package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// minSecretLen is the minimum signing-secret length accepted in production.
const minSecretLen = 32

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth  AuthConfig
	Mongo MongoConfig
	Redis RedisConfig
}

// AuthConfig is the access-control engine's tuning surface. The auth rate
// window guards login attempts; the general window covers authenticated
// traffic and is much looser.
type AuthConfig struct {
	JWTSecret       string        `env:"JWT_SECRET"`
	TokenTTLSeconds int           `env:"TOKEN_TTL_SECONDS,   default=3600"`
	LoginRateMax    int           `env:"AUTH_RATE_MAX,       default=10"`
	LoginRateWindow time.Duration `env:"AUTH_RATE_WINDOW,    default=15m"`
	GeneralRateMax  int           `env:"GENERAL_RATE_MAX,    default=100"`
	GeneralRateWin  time.Duration `env:"GENERAL_RATE_WINDOW, default=1m"`
	BCryptCost      int           `env:"BCRYPT_COST,         default=10"`
}

// TokenTTL returns the configured token lifetime as a duration.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLSeconds) * time.Second
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=access_engine"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Load reads configuration from environment variables using go-envconfig and
// validates it for the configured environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate enforces startup invariants. A weak signing secret is rejected in
// production; development tolerates any non-empty secret.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("config: JWT_SECRET is required")
	}
	if c.IsProduction() && len(c.Auth.JWTSecret) < minSecretLen {
		return fmt.Errorf("config: JWT_SECRET must be at least %d bytes in production", minSecretLen)
	}
	if c.Auth.TokenTTLSeconds <= 0 {
		return fmt.Errorf("config: TOKEN_TTL_SECONDS must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
