// Package notify provides a notifier that writes outbound messages to the log instead of delivering them.
package notify

import (
	"context"
	"log/slog"
)

// LogNotifier はメール/SMSを送信せずにログへ出力します。プロバイダー未設定の開発環境向けです。
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a LogNotifier. A nil logger uses slog.Default().
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogNotifier{logger: logger}
}

// SendEmail logs the email instead of sending it.
func (n *LogNotifier) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	n.logger.InfoContext(ctx, "email not sent: no provider configured",
		"to", to, "subject", subject, "body", htmlBody)
	return nil
}

// SendSMS logs the text message instead of sending it.
func (n *LogNotifier) SendSMS(ctx context.Context, to, body string) error {
	n.logger.InfoContext(ctx, "sms not sent: no provider configured", "to", to, "body", body)
	return nil
}
