// Package config loads configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from the given .env files into the process environment.
// Missing files are not an error; system environment variables are used instead.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// EnvDevelop is the APP_ENV value that enables development fallbacks.
const EnvDevelop = "develop"

// App holds process-level settings.
type App struct {
	Env         string   `env:"APP_ENV"              envDefault:"develop"`
	Port        string   `env:"PORT"                 envDefault:"8080"`
	LogLevel    string   `env:"LOG_LEVEL"            envDefault:"info"`
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	// TokenLedger selects the token ledger backend: "db" or "redis".
	TokenLedger string `env:"TOKEN_LEDGER" envDefault:"db"`
	// LoginRatePerMinute caps login and OTP attempts per client IP and route.
	LoginRatePerMinute int `env:"LOGIN_RATE_LIMIT_PER_MINUTE" envDefault:"10"`
	// OTPValidityMinutes is the validity window stamped on newly issued OTPs.
	OTPValidityMinutes int `env:"OTP_VALIDITY_MINUTES" envDefault:"10"`
}

// LoadAppFromEnv loads App settings.
func LoadAppFromEnv() (App, error) {
	var cfg App
	if err := ParseEnv(&cfg); err != nil {
		return App{}, err
	}
	return cfg, nil
}

// IsDevelop reports whether the process runs in the development environment.
func (a App) IsDevelop() bool {
	return a.Env == EnvDevelop
}

// Addr returns the listen address for the HTTP server.
func (a App) Addr() string {
	return ":" + a.Port
}
