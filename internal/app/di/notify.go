package di

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/platform/externalapi/brevo"
	"auth_backend/internal/platform/externalapi/twilio"
	infrahttp "auth_backend/internal/platform/http"
	"auth_backend/internal/platform/notify"
	"auth_backend/internal/shared/ratelimiter"
)

// ErrProviderNotConfigured is returned when a delivery provider has no credentials
// and the log fallback is not allowed.
var ErrProviderNotConfigured = errors.New("delivery provider not configured")

// NewMailer creates a Brevo-backed Mailer with a tuned HTTP client.
// Without Brevo credentials it logs messages when allowLogFallback is set, and fails otherwise.
func NewMailer(cfg brevo.Config, allowLogFallback bool) (usecase.Mailer, error) {
	if !cfg.Enabled() {
		if !allowLogFallback {
			return nil, fmt.Errorf("brevo: %w", ErrProviderNotConfigured)
		}
		slog.Warn("Brevo is not configured; emails will be logged instead of sent")
		return notify.NewLogNotifier(nil), nil
	}
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return brevo.NewClient(cfg, httpClient, ratelimiter.NewRateLimiter(cfg.RatePerMinute, time.Minute)), nil
}

// NewSMSSender creates a Twilio-backed SMSSender. The logging fallback follows the same rule as NewMailer.
func NewSMSSender(cfg twilio.Config, allowLogFallback bool) (usecase.SMSSender, error) {
	if !cfg.Enabled() {
		if !allowLogFallback {
			return nil, fmt.Errorf("twilio: %w", ErrProviderNotConfigured)
		}
		slog.Warn("Twilio is not configured; text messages will be logged instead of sent")
		return notify.NewLogNotifier(nil), nil
	}
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return twilio.NewClient(cfg, httpClient, ratelimiter.NewRateLimiter(cfg.RatePerMinute, time.Minute)), nil
}
