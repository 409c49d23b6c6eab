package brevo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/shared/ratelimiter"
)

// maxErrorBody bounds how much of an error response is kept for logging.
const maxErrorBody = 512

type contact struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type sendEmailRequest struct {
	Sender      contact   `json:"sender"`
	To          []contact `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"htmlContent"`
}

type sendEmailResponse struct {
	MessageID string `json:"messageId"`
}

// Client はBrevoのトランザクションメールAPIでメールを送信するMailer実装です。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// ClientがMailerを実装していることをコンパイル時に検証します。
var _ usecase.Mailer = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。limiter は nil でもかまいません。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *Client {
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

// SendEmail sends one HTML email to a single recipient.
func (c *Client) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	payload, err := json.Marshal(sendEmailRequest{
		Sender:      contact{Name: c.cfg.SenderName, Email: c.cfg.SenderEmail},
		To:          []contact{{Email: to}},
		Subject:     subject,
		HTMLContent: htmlBody,
	})
	if err != nil {
		return fmt.Errorf("brevo: marshal request: %w", err)
	}

	u := strings.TrimRight(c.cfg.BaseURL, "/") + "/v3/smtp/email"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("api-key", c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("brevo: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return fmt.Errorf("brevo http %d: %s", res.StatusCode, strings.TrimSpace(string(body)))
	}

	var out sendEmailResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("brevo: decode response: %w", err)
	}
	slog.Info("email sent", "provider", "brevo", "message_id", out.MessageID)
	return nil
}
