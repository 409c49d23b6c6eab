package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"auth_backend/internal/feature/auth/domain"
	"auth_backend/internal/feature/auth/domain/entity"
	userdomain "auth_backend/internal/feature/user/domain"
	userentity "auth_backend/internal/feature/user/domain/entity"
)

// LoginResult is the outcome of a successful password or OTP login.
type LoginResult struct {
	User   *userentity.User
	Tokens entity.TokenPair
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users  UserRepository
	ledger TokenLedger
	tokens TokenIssuer
	now    func() time.Time
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, ledger TokenLedger, tokens TokenIssuer) *authUsecase {
	return &authUsecase{
		users:  users,
		ledger: ledger,
		tokens: tokens,
		now:    time.Now,
	}
}

// Login はメールアドレスとパスワードでユーザーを認証し、アクセストークンとリフレッシュトークンを発行します。
// Unknown emails and wrong passwords are reported separately. Inactive accounts get the password error.
func (u *authUsecase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = userentity.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			return nil, ErrUnknownEmail
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	pair, err := issueAndRecord(ctx, u.tokens, u.ledger, user, u.now())
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Tokens: pair}, nil
}

// Logout は指定されたリフレッシュトークンをブラックリストに登録します。
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	token, err := u.outstandingRefresh(ctx, refreshToken)
	if err != nil {
		return err
	}
	if err := u.ledger.Blacklist(ctx, token); err != nil {
		slog.Error("blacklist refresh token failed", "error", err, "jti", token.JTI, "user_id", token.UserID)
		return ErrLogoutFailed.Wrap(err)
	}
	return nil
}

// LogoutAll はユーザーの全リフレッシュトークンをブラックリストに登録します。
// Already revoked tokens are revoked again as a no-op. Only a user with no ledger entries gets ErrNoActiveTokens.
// Best effort: a failure on one token does not undo the others.
func (u *authUsecase) LogoutAll(ctx context.Context, userID uint) error {
	tokens, err := u.ledger.ListByUser(ctx, userID)
	if err != nil {
		return ErrLogoutFailed.Wrap(err)
	}
	if len(tokens) == 0 {
		return ErrNoActiveTokens
	}

	var errs []error
	for _, t := range tokens {
		if err := u.ledger.Blacklist(ctx, t); err != nil {
			errs = append(errs, fmt.Errorf("jti %s: %w", t.JTI, err))
		}
	}
	if len(errs) > 0 {
		joined := errors.Join(errs...)
		slog.Error("logout all partially failed", "error", joined, "user_id", userID,
			"failed", len(errs), "total", len(tokens))
		return ErrLogoutFailed.Wrap(joined)
	}
	return nil
}

// Refresh はリフレッシュトークンを検証し、新しいアクセストークンを発行します。
func (u *authUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	token, err := u.outstandingRefresh(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	user, err := u.users.FindByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, userdomain.ErrUserNotFound) {
			return "", ErrInvalidToken
		}
		return "", err
	}
	if !user.IsActive {
		return "", userdomain.ErrInactiveUser
	}

	access, err := u.tokens.IssueAccess(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to issue access token: %w", err)
	}
	return access, nil
}

// outstandingRefresh verifies refreshToken and returns its ledger entry.
// Tokens that fail verification, were never recorded, or are already revoked are all ErrInvalidToken.
func (u *authUsecase) outstandingRefresh(ctx context.Context, refreshToken string) (*entity.OutstandingToken, error) {
	if refreshToken == "" {
		return nil, ErrMissingToken
	}

	claims, err := u.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, ErrInvalidToken.Wrap(err)
	}

	token, err := u.ledger.FindOutstanding(ctx, claims.JTI)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotOutstanding) {
			return nil, ErrInvalidToken.Wrap(err)
		}
		return nil, err
	}

	revoked, err := u.ledger.IsBlacklisted(ctx, claims.JTI)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrInvalidToken
	}
	return token, nil
}

// issueAndRecord issues a token pair and records the refresh token as outstanding.
func issueAndRecord(ctx context.Context, tokens TokenIssuer, ledger TokenLedger, user *userentity.User, now time.Time) (entity.TokenPair, error) {
	pair, err := tokens.IssuePair(user.ID, user.Email)
	if err != nil {
		return entity.TokenPair{}, fmt.Errorf("failed to issue tokens: %w", err)
	}

	if err := ledger.RecordOutstanding(ctx, &entity.OutstandingToken{
		JTI:       pair.RefreshJTI,
		UserID:    user.ID,
		Token:     pair.Refresh,
		CreatedAt: now,
		ExpiresAt: pair.RefreshExpiresAt,
	}); err != nil {
		return entity.TokenPair{}, fmt.Errorf("failed to record refresh token: %w", err)
	}
	return pair, nil
}
