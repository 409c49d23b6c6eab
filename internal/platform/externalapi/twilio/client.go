package twilio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/shared/ratelimiter"
)

const maxErrorBody = 512

type messageResponse struct {
	SID    string `json:"sid"`
	Status string `json:"status"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Client はTwilioのMessages APIでSMSを送信するSMSSender実装です。
type Client struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

var _ usecase.SMSSender = (*Client)(nil)

// NewClient は指定された設定とHTTPクライアントでClientを生成します。
func NewClient(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *Client {
	return &Client{cfg: cfg, client: client, limiter: limiter}
}

// SendSMS sends body to the E.164 number to.
func (c *Client) SendSMS(ctx context.Context, to, body string) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.cfg.PhoneNumber)
	form.Set("Body", body)

	u := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json",
		strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(c.cfg.AccountSID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio: %w", err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		var e errorResponse
		if json.Unmarshal(raw, &e) == nil && e.Message != "" {
			return fmt.Errorf("twilio http %d: code %d: %s", res.StatusCode, e.Code, e.Message)
		}
		return fmt.Errorf("twilio http %d", res.StatusCode)
	}

	var out messageResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return fmt.Errorf("twilio: decode response: %w", err)
	}
	slog.Info("sms sent", "provider", "twilio", "sid", out.SID, "status", out.Status)
	return nil
}
