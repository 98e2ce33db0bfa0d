package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// RateLimitConfig indicates how many requests are allowed within a given interval.
type RateLimitConfig struct {
	Requests int
	Interval time.Duration
}

// UnmarshalText parses the <requests>/<interval> notation, e.g. "10/min".
func (r *RateLimitConfig) UnmarshalText(text []byte) error {
	parsed, err := parseRateLimit(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Config aggregates application-wide configuration values.
type Config struct {
	DatabaseURL    string          `env:"DATABASE_URL,required,notEmpty"`
	JWTSecret      string          `env:"JWT_SECRET" envDefault:"dev-secret"`
	Port           string          `env:"PORT" envDefault:"8080"`
	TokenTTL       time.Duration   `env:"JWT_TTL" envDefault:"60m"`
	RateLimitLogin RateLimitConfig `env:"RATE_LIMIT_LOGIN" envDefault:"10/min"`
	PhoneRegion    string          `env:"PHONE_REGION" envDefault:"US"`
	LogLevel       string          `env:"LOG_LEVEL" envDefault:"info"`
	RunMigrations  bool            `env:"RUN_MIGRATIONS" envDefault:"true"`
}

// Load reads configuration from environment variables and applies defaults.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.PhoneRegion = strings.ToUpper(strings.TrimSpace(cfg.PhoneRegion))
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("JWT_TTL must be positive, got %s", cfg.TokenTTL)
	}

	return cfg, nil
}

func parseRateLimit(value string) (RateLimitConfig, error) {
	parts := strings.Split(value, "/")
	if len(parts) != 2 {
		return RateLimitConfig{}, fmt.Errorf("expected format <requests>/<interval>, got %q", value)
	}

	requests, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || requests <= 0 {
		return RateLimitConfig{}, fmt.Errorf("invalid request count: %v", parts[0])
	}

	unit := strings.ToLower(strings.TrimSpace(parts[1]))
	var interval time.Duration
	switch unit {
	case "s", "sec", "second", "seconds":
		interval = time.Second
	case "m", "min", "minute", "minutes":
		interval = time.Minute
	case "h", "hr", "hour", "hours":
		interval = time.Hour
	default:
		return RateLimitConfig{}, fmt.Errorf("unsupported interval unit: %s", unit)
	}

	return RateLimitConfig{Requests: requests, Interval: interval}, nil
}
