package jwtmw

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"auth_backend/internal/platform/config"
)

// ErrMissingSecret is returned when JWT_SECRET is not configured.
var ErrMissingSecret = errors.New("JWT_SECRET is not set")

// Config holds token signing settings.
type Config struct {
	Secret     string        `env:"JWT_SECRET"`
	AccessTTL  time.Duration `env:"JWT_ACCESS_TTL"  envDefault:"15m"`
	RefreshTTL time.Duration `env:"JWT_REFRESH_TTL" envDefault:"168h"`
}

// LoadConfigFromEnv loads the JWT settings from environment variables.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports whether the configuration can sign tokens.
func (c Config) Validate() error {
	if c.Secret == "" {
		return ErrMissingSecret
	}
	if c.AccessTTL <= 0 || c.RefreshTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	return nil
}

// RandomSecret returns a 32-byte hex secret for development runs without JWT_SECRET.
// Tokens signed with it do not survive a restart.
func RandomSecret() string {
	b := make([]byte, 32)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
