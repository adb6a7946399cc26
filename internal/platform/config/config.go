// Package config loads service configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all externally supplied settings. It is parsed once in
// main and handed to constructors; services never read the environment
// themselves.
type Config struct {
	Port string `env:"PORT" envDefault:"5000"`

	DBHost        string `env:"DB_HOST" envDefault:"localhost"`
	DBPort        string `env:"DB_PORT" envDefault:"5432"`
	DBUser        string `env:"DB_USER" envDefault:"postgres"`
	DBPassword    string `env:"DB_PASSWORD"`
	DBName        string `env:"DB_NAME" envDefault:"bugdash"`
	DBSSLMode     string `env:"DB_SSLMODE" envDefault:"disable"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"false"`

	RedisHost     string `env:"REDIS_HOST"`
	RedisPort     string `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	JWTSecret        string        `env:"JWT_SECRET"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	AccessTokenTTL   time.Duration `env:"JWT_ACCESS_EXPIRES_IN" envDefault:"24h"`
	RefreshTokenTTL  time.Duration `env:"JWT_REFRESH_EXPIRES_IN" envDefault:"168h"`
	// MaxRefreshTokens caps the live refresh tokens per user; the oldest
	// is evicted when a login would exceed it.
	MaxRefreshTokens int64 `env:"MAX_REFRESH_TOKENS" envDefault:"5"`

	SMTPHost    string `env:"SMTP_HOST"`
	SMTPPort    int    `env:"SMTP_PORT" envDefault:"465"`
	EmailUser   string `env:"EMAIL_USER"`
	EmailPass   string `env:"EMAIL_PASS"`
	FrontendURL string `env:"FRONTEND_URL"`
}

// Load parses the configuration from the environment.
// When JWT_REFRESH_SECRET is not set, the refresh secret is derived from
// the access secret so the two token kinds never share key material.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTRefreshSecret == "" {
		cfg.JWTRefreshSecret = cfg.JWTSecret + "_refresh"
	}
	return &cfg, nil
}

// DSN renders the Postgres connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
