// Package twilio provides a client for the Twilio Messages API.
package twilio

import (
	"log/slog"
	"time"

	"auth_backend/internal/platform/config"
)

// Config holds configuration for the Twilio API client.
type Config struct {
	AccountSID  string        `env:"TWILIO_ACCOUNT_SID"`
	AuthToken   string        `env:"TWILIO_AUTH_TOKEN"`
	PhoneNumber string        `env:"TWILIO_PHONE_NUMBER"` // sender number in E.164
	BaseURL     string        `env:"TWILIO_BASE_URL" envDefault:"https://api.twilio.com"`
	Timeout     time.Duration `env:"TWILIO_TIMEOUT"  envDefault:"10s"`
	// RatePerMinute caps outbound calls; 0 disables throttling.
	RatePerMinute int `env:"TWILIO_RATE_PER_MINUTE" envDefault:"60"`
}

// LoadConfig loads Twilio configuration from environment variables.
func LoadConfig() Config {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		slog.Warn("twilio config parse failed, using defaults", "error", err)
	}
	return cfg
}

// Enabled reports whether account credentials and a sender number are configured.
func (c Config) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.PhoneNumber != ""
}
