package usecase

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"auth_backend/internal/feature/auth/domain"
	"auth_backend/internal/feature/auth/domain/entity"
	userdomain "auth_backend/internal/feature/user/domain"
	userentity "auth_backend/internal/feature/user/domain/entity"
)

// mockUserRepository is a func-field mock of UserRepository.
type mockUserRepository struct {
	FindByEmailFunc func(ctx context.Context, email string) (*userentity.User, error)
	FindByIDFunc    func(ctx context.Context, id uint) (*userentity.User, error)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*userentity.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, userdomain.ErrUserNotFound
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*userentity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, userdomain.ErrUserNotFound
}

// usersOf returns a mock serving exactly the given users.
func usersOf(users ...*userentity.User) *mockUserRepository {
	return &mockUserRepository{
		FindByEmailFunc: func(_ context.Context, email string) (*userentity.User, error) {
			for _, u := range users {
				if u.Email == email {
					return u, nil
				}
			}
			return nil, userdomain.ErrUserNotFound
		},
		FindByIDFunc: func(_ context.Context, id uint) (*userentity.User, error) {
			for _, u := range users {
				if u.ID == id {
					return u, nil
				}
			}
			return nil, userdomain.ErrUserNotFound
		},
	}
}

func testUser(t *testing.T, id uint, email, password string, active bool) *userentity.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &userentity.User{ID: id, Email: email, Password: string(hashed), FirstName: "Ada", LastName: "Lovelace",
		PhoneNumber: "+15550100", IsActive: active}
}

// memLedger is an in-memory TokenLedger. Failing jtis make Blacklist error.
type memLedger struct {
	mu          sync.Mutex
	outstanding map[string]*entity.OutstandingToken
	blacklisted map[string]bool
	failing     map[string]bool
}

func newMemLedger() *memLedger {
	return &memLedger{
		outstanding: map[string]*entity.OutstandingToken{},
		blacklisted: map[string]bool{},
		failing:     map[string]bool{},
	}
}

func (l *memLedger) RecordOutstanding(_ context.Context, t *entity.OutstandingToken) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	cp := *t
	l.outstanding[t.JTI] = &cp
	return nil
}

func (l *memLedger) FindOutstanding(_ context.Context, jti string) (*entity.OutstandingToken, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	t, ok := l.outstanding[jti]
	if !ok {
		return nil, domain.ErrTokenNotOutstanding
	}
	cp := *t
	return &cp, nil
}

func (l *memLedger) ListByUser(_ context.Context, userID uint) ([]*entity.OutstandingToken, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []*entity.OutstandingToken
	for _, t := range l.outstanding {
		if t.UserID == userID {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (l *memLedger) Blacklist(_ context.Context, t *entity.OutstandingToken) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failing[t.JTI] {
		return context.DeadlineExceeded
	}
	l.blacklisted[t.JTI] = true
	return nil
}

func (l *memLedger) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.blacklisted[jti], nil
}

// fakeIssuer issues predictable tokens: "access-<n>" / "refresh-<n>" with jti "jti-<n>".
type fakeIssuer struct {
	mu     sync.Mutex
	n      int
	issued map[string]entity.RefreshClaims
	err    error
}

func newFakeIssuer() *fakeIssuer {
	return &fakeIssuer{issued: map[string]entity.RefreshClaims{}}
}

func (f *fakeIssuer) IssuePair(userID uint, email string) (entity.TokenPair, error) {
	if f.err != nil {
		return entity.TokenPair{}, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	jti := "jti-" + strconv.Itoa(f.n)
	refresh := "refresh-" + strconv.Itoa(f.n)
	exp := time.Now().Add(time.Hour)
	f.issued[refresh] = entity.RefreshClaims{JTI: jti, UserID: userID, Email: email, ExpiresAt: exp}
	return entity.TokenPair{Access: "access-" + strconv.Itoa(f.n), Refresh: refresh, RefreshJTI: jti, RefreshExpiresAt: exp}, nil
}

func (f *fakeIssuer) IssueAccess(_ uint, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "access-refreshed", nil
}

func (f *fakeIssuer) ParseRefresh(token string) (entity.RefreshClaims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.issued[token]
	if !ok {
		return entity.RefreshClaims{}, errInvalidSignature
	}
	return c, nil
}

var errInvalidSignature = errors.New("token signature is invalid")

// mockOTPRepository is a func-field mock of OTPRepository.
type mockOTPRepository struct {
	CreateFunc     func(ctx context.Context, otp *entity.OTP) error
	FindByCodeFunc func(ctx context.Context, code string) (*entity.OTP, error)
	CodeInUseFunc  func(ctx context.Context, code string) (bool, error)
	DeactivateFunc func(ctx context.Context, id uint) (bool, error)
}

func (m *mockOTPRepository) Create(ctx context.Context, otp *entity.OTP) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, otp)
	}
	return nil
}

func (m *mockOTPRepository) FindByCode(ctx context.Context, code string) (*entity.OTP, error) {
	if m.FindByCodeFunc != nil {
		return m.FindByCodeFunc(ctx, code)
	}
	return nil, domain.ErrOTPNotFound
}

func (m *mockOTPRepository) CodeInUse(ctx context.Context, code string) (bool, error) {
	if m.CodeInUseFunc != nil {
		return m.CodeInUseFunc(ctx, code)
	}
	return false, nil
}

func (m *mockOTPRepository) Deactivate(ctx context.Context, id uint) (bool, error) {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	return true, nil
}

// memOTPs is a stateful OTPRepository with conditional deactivation.
type memOTPs struct {
	mu   sync.Mutex
	rows []*entity.OTP
}

func (m *memOTPs) Create(_ context.Context, otp *entity.OTP) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	otp.ID = uint(len(m.rows) + 1)
	cp := *otp
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memOTPs) FindByCode(_ context.Context, code string) (*entity.OTP, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Code == code {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrOTPNotFound
}

func (m *memOTPs) CodeInUse(ctx context.Context, code string) (bool, error) {
	_, err := m.FindByCode(ctx, code)
	return err == nil, nil
}

func (m *memOTPs) Deactivate(_ context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id && r.IsActive {
			r.IsActive = false
			return true, nil
		}
	}
	return false, nil
}

// recordingMailer captures sent emails.
type recordingMailer struct {
	to, subject, body string
	err               error
}

func (m *recordingMailer) SendEmail(_ context.Context, to, subject, htmlBody string) error {
	m.to, m.subject, m.body = to, subject, htmlBody
	return m.err
}

// recordingSMS captures sent messages.
type recordingSMS struct {
	to, body string
	err      error
}

func (m *recordingSMS) SendSMS(_ context.Context, to, body string) error {
	m.to, m.body = to, body
	return m.err
}
