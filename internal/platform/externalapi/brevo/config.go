// Package brevo provides a client for the Brevo transactional email API.
package brevo

import (
	"log/slog"
	"time"

	"auth_backend/internal/platform/config"
)

// Config holds configuration for the Brevo API client.
type Config struct {
	APIKey      string        `env:"BREVO_API_KEY"`                                    // API key sent in the api-key header
	BaseURL     string        `env:"BREVO_BASE_URL" envDefault:"https://api.brevo.com"` // Base URL for the API
	SenderName  string        `env:"SENDER_NAME"    envDefault:"Auth Backend"`
	SenderEmail string        `env:"SENDER_EMAIL"`
	Timeout     time.Duration `env:"BREVO_TIMEOUT"  envDefault:"10s"` // HTTP request timeout
	// RatePerMinute caps outbound calls; 0 disables throttling.
	RatePerMinute int `env:"BREVO_RATE_PER_MINUTE" envDefault:"300"`
}

// LoadConfig loads Brevo configuration from environment variables.
func LoadConfig() Config {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		slog.Warn("brevo config parse failed, using defaults", "error", err)
	}
	return cfg
}

// Enabled reports whether credentials and a sender are configured.
func (c Config) Enabled() bool {
	return c.APIKey != "" && c.SenderEmail != ""
}
