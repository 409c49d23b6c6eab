package usecase

import (
	"context"

	"auth_backend/internal/feature/auth/domain/entity"
	userentity "auth_backend/internal/feature/user/domain/entity"
)

// UserRepository is the subset of user storage the auth flows read.
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// FindByEmail returns the user with the normalized email or a not-found error.
	FindByEmail(ctx context.Context, email string) (*userentity.User, error)

	// FindByID returns the user with the given id or a not-found error.
	FindByID(ctx context.Context, id uint) (*userentity.User, error)
}

// OTPRepository persists one-time codes.
type OTPRepository interface {
	// Create persists a new OTP.
	Create(ctx context.Context, otp *entity.OTP) error

	// FindByCode returns the first OTP (lowest id) carrying code, active or not.
	// Returns domain.ErrOTPNotFound when none exists.
	FindByCode(ctx context.Context, code string) (*entity.OTP, error)

	// CodeInUse reports whether any OTP row carries code.
	CodeInUse(ctx context.Context, code string) (bool, error)

	// Deactivate clears the active flag only if it is still set.
	// It reports false when another caller consumed the OTP first.
	Deactivate(ctx context.Context, id uint) (bool, error)
}

// TokenLedger records issued refresh tokens and the subset that has been revoked.
type TokenLedger interface {
	// RecordOutstanding stores a newly issued refresh token.
	RecordOutstanding(ctx context.Context, token *entity.OutstandingToken) error

	// FindOutstanding returns the ledger entry for jti or domain.ErrTokenNotOutstanding.
	FindOutstanding(ctx context.Context, jti string) (*entity.OutstandingToken, error)

	// ListByUser returns every ledger entry of the user, including revoked ones.
	ListByUser(ctx context.Context, userID uint) ([]*entity.OutstandingToken, error)

	// Blacklist revokes token. Revoking an already revoked token is a no-op.
	Blacklist(ctx context.Context, token *entity.OutstandingToken) error

	// IsBlacklisted reports whether jti has been revoked.
	IsBlacklisted(ctx context.Context, jti string) (bool, error)
}

// TokenIssuer signs and verifies tokens.
type TokenIssuer interface {
	IssuePair(userID uint, email string) (entity.TokenPair, error)
	IssueAccess(userID uint, email string) (string, error)
	ParseRefresh(token string) (entity.RefreshClaims, error)
}

// Mailer delivers a transactional HTML email.
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

// SMSSender delivers a text message.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}
