package usecase

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"math/big"
	"strings"
	"time"

	"auth_backend/internal/feature/auth/domain"
	"auth_backend/internal/feature/auth/domain/entity"
	userdomain "auth_backend/internal/feature/user/domain"
	userentity "auth_backend/internal/feature/user/domain/entity"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"

	otpDigits = 6
	// otpCodeAttempts bounds the search for a code no other OTP row carries.
	otpCodeAttempts = 5

	otpEmailSubject = "Your one-time code"
)

var otpEmailTemplate = template.Must(template.New("otp").Parse(
	`<html><body>` +
		`<p>Hello {{.Name}},</p>` +
		`<p>Your one-time code is <strong>{{.Code}}</strong>.</p>` +
		`<p>It expires in {{.Minutes}} minutes. If you did not request it, ignore this email.</p>` +
		`</body></html>`))

// otpUsecase はワンタイムパスワードの発行と検証を実装します。
type otpUsecase struct {
	users           UserRepository
	otps            OTPRepository
	ledger          TokenLedger
	tokens          TokenIssuer
	mailer          Mailer
	sms             SMSSender
	validityMinutes int
	now             func() time.Time
	generateCode    func() (string, error)
}

// NewOTPUsecase creates the OTP usecase. validityMinutes <= 0 falls back to the default.
func NewOTPUsecase(users UserRepository, otps OTPRepository, ledger TokenLedger, tokens TokenIssuer,
	mailer Mailer, sms SMSSender, validityMinutes int) *otpUsecase {
	if validityMinutes <= 0 {
		validityMinutes = entity.DefaultOTPValidityMinutes
	}
	return &otpUsecase{
		users:           users,
		otps:            otps,
		ledger:          ledger,
		tokens:          tokens,
		mailer:          mailer,
		sms:             sms,
		validityMinutes: validityMinutes,
		now:             time.Now,
		generateCode:    randomCode,
	}
}

// randomCode returns a zero-padded 6-digit code from crypto/rand.
func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate otp code: %w", err)
	}
	return fmt.Sprintf("%0*d", otpDigits, n.Int64()), nil
}

// Issue creates an OTP for the active user with email and delivers it over channel.
// An empty channel means email. The OTP row stays even if delivery fails; it simply expires.
func (u *otpUsecase) Issue(ctx context.Context, email, channel string) error {
	channel = strings.ToLower(strings.TrimSpace(channel))
	if channel == "" {
		channel = ChannelEmail
	}
	if channel != ChannelEmail && channel != ChannelSMS {
		return ErrUnsupportedChannel
	}

	user, err := u.users.FindByEmail(ctx, userentity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			return ErrUnknownEmail
		}
		return err
	}
	if !user.IsActive {
		return ErrUnknownEmail
	}
	if channel == ChannelSMS && user.PhoneNumber == "" {
		return ErrMissingPhone
	}

	code, err := u.uniqueCode(ctx)
	if err != nil {
		return err
	}
	otp := &entity.OTP{
		UserID:          user.ID,
		Code:            code,
		IsActive:        true,
		ValidityMinutes: u.validityMinutes,
		CreatedAt:       u.now(),
	}
	if err := u.otps.Create(ctx, otp); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	if err := u.deliver(ctx, user, otp, channel); err != nil {
		slog.Error("otp delivery failed", "error", err, "user_id", user.ID, "channel", channel)
		return fmt.Errorf("failed to deliver otp: %w", err)
	}
	slog.Info("otp issued", "user_id", user.ID, "channel", channel)
	return nil
}

// uniqueCode draws codes until one is not carried by any existing OTP row.
// Lookup by code is global, so a reused code would be shadowed by the older row.
func (u *otpUsecase) uniqueCode(ctx context.Context) (string, error) {
	var code string
	for range otpCodeAttempts {
		c, err := u.generateCode()
		if err != nil {
			return "", err
		}
		inUse, err := u.otps.CodeInUse(ctx, c)
		if err != nil {
			return "", err
		}
		code = c
		if !inUse {
			return code, nil
		}
	}
	slog.Warn("otp code collision persisted; issuing a reused code", "attempts", otpCodeAttempts)
	return code, nil
}

func (u *otpUsecase) deliver(ctx context.Context, user *userentity.User, otp *entity.OTP, channel string) error {
	if channel == ChannelSMS {
		body := fmt.Sprintf("Your one-time code is %s. It expires in %d minutes.", otp.Code, otp.ValidityMinutes)
		return u.sms.SendSMS(ctx, user.PhoneNumber, body)
	}

	var buf bytes.Buffer
	if err := otpEmailTemplate.Execute(&buf, struct {
		Name    string
		Code    string
		Minutes int
	}{strings.TrimSpace(user.FullName()), otp.Code, otp.ValidityMinutes}); err != nil {
		return fmt.Errorf("render otp email: %w", err)
	}
	return u.mailer.SendEmail(ctx, user.Email, otpEmailSubject, buf.String())
}

// ValidateAndLogin consumes the OTP carrying code and issues tokens for its user.
// The first row with the code decides the outcome, even if it is inactive.
func (u *otpUsecase) ValidateAndLogin(ctx context.Context, code string) (*LoginResult, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrInvalidOTP
	}

	otp, err := u.otps.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrOTPNotFound) {
			return nil, ErrInvalidOTP
		}
		return nil, err
	}
	if !otp.IsActive {
		return nil, ErrInvalidOTP
	}
	if otp.IsExpired(u.now()) {
		return nil, ErrExpiredOTP
	}

	// ユーザーを確認してから消費する。拒否されたコードは有効なまま残る
	user, err := u.users.FindByID(ctx, otp.UserID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			return nil, ErrInvalidOTP
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, userdomain.ErrInactiveUser
	}

	// 条件付き更新で消費する。0件なら並行リクエストが先に消費済み
	consumed, err := u.otps.Deactivate(ctx, otp.ID)
	if err != nil {
		return nil, err
	}
	if !consumed {
		return nil, ErrInvalidOTP
	}

	pair, err := issueAndRecord(ctx, u.tokens, u.ledger, user, u.now())
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Tokens: pair}, nil
}
