package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
	userentity "auth_backend/internal/feature/user/domain/entity"
	"auth_backend/internal/platform/http/middleware"
	jwtmw "auth_backend/internal/platform/jwt"
)

// mockAuthUsecase is a mock implementation of the AuthUsecase interface.
type mockAuthUsecase struct {
	LoginFunc     func(ctx context.Context, email, password string) (*usecase.LoginResult, error)
	LogoutFunc    func(ctx context.Context, refreshToken string) error
	LogoutAllFunc func(ctx context.Context, userID uint) error
	RefreshFunc   func(ctx context.Context, refreshToken string) (string, error)
}

func (m *mockAuthUsecase) Login(ctx context.Context, email, password string) (*usecase.LoginResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return nil, errors.New("login failed")
}

func (m *mockAuthUsecase) Logout(ctx context.Context, refreshToken string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, refreshToken)
	}
	return nil
}

func (m *mockAuthUsecase) LogoutAll(ctx context.Context, userID uint) error {
	if m.LogoutAllFunc != nil {
		return m.LogoutAllFunc(ctx, userID)
	}
	return nil
}

func (m *mockAuthUsecase) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, refreshToken)
	}
	return "", errors.New("refresh failed")
}

// mockOTPUsecase is a mock implementation of the OTPUsecase interface.
type mockOTPUsecase struct {
	IssueFunc            func(ctx context.Context, email, channel string) error
	ValidateAndLoginFunc func(ctx context.Context, code string) (*usecase.LoginResult, error)
}

func (m *mockOTPUsecase) Issue(ctx context.Context, email, channel string) error {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, email, channel)
	}
	return nil
}

func (m *mockOTPUsecase) ValidateAndLogin(ctx context.Context, code string) (*usecase.LoginResult, error) {
	if m.ValidateAndLoginFunc != nil {
		return m.ValidateAndLoginFunc(ctx, code)
	}
	return nil, usecase.ErrInvalidOTP
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func loginResult() *usecase.LoginResult {
	return &usecase.LoginResult{
		User: &userentity.User{ID: 7, Email: "a@x.com", FirstName: "Ada", LastName: "Lovelace", IsActive: true},
		Tokens: entity.TokenPair{
			Access:  "access-token",
			Refresh: "refresh-token",
		},
	}
}

// newRouter wires h behind the error handler. authUserID > 0 simulates AuthRequired.
func newRouter(h *AuthHandler, authUserID uint) *gin.Engine {
	r := gin.New()
	r.Use(middleware.ErrorHandler())
	authed := func(c *gin.Context) {
		if authUserID > 0 {
			c.Set(jwtmw.ContextUserID, authUserID)
		}
		c.Next()
	}
	r.POST("/login", h.Login)
	r.POST("/otp/request", h.RequestOTP)
	r.POST("/otp/login", h.LoginOTP)
	r.POST("/token/refresh", h.Refresh)
	r.POST("/logout", authed, h.Logout)
	r.POST("/logout/all", authed, h.LogoutAll)
	return r
}

func doJSON(t *testing.T, r http.Handler, path string, body any) (int, gin.H) {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var res gin.H
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return w.Code, res
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		loginFunc      func(ctx context.Context, email, password string) (*usecase.LoginResult, error)
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name: "success: user login",
			body: gin.H{"email": "a@x.com", "password": "secret"},
			loginFunc: func(ctx context.Context, email, password string) (*usecase.LoginResult, error) {
				return loginResult(), nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: gin.H{
				"message":     "User logged in successfully",
				"user_detail": map[string]any{"user_id": float64(7), "email": "a@x.com", "name": "Ada Lovelace"},
				"token":       map[string]any{"refresh_token": "refresh-token", "access_token": "access-token"},
				"status":      float64(200),
			},
		},
		{
			name: "failure: wrong password is 400, not 401",
			body: gin.H{"email": "a@x.com", "password": "nope"},
			loginFunc: func(ctx context.Context, email, password string) (*usecase.LoginResult, error) {
				return nil, usecase.ErrInvalidCredentials
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"message": "Error login, password incorrect", "status": float64(400)},
		},
		{
			name:           "failure: malformed body",
			body:           "{not json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"message": "Error Email or Password not found", "status": float64(400)},
		},
		{
			name: "failure: unexpected error is hidden",
			body: gin.H{"email": "a@x.com", "password": "secret"},
			loginFunc: func(ctx context.Context, email, password string) (*usecase.LoginResult, error) {
				return nil, errors.New("db exploded")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   gin.H{"message": "internal server error", "status": float64(500)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&mockAuthUsecase{LoginFunc: tt.loginFunc}, &mockOTPUsecase{})

			status, body := doJSON(t, newRouter(h, 0), "/login", tt.body)

			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}

func TestAuthHandler_RequestOTP(t *testing.T) {
	t.Run("success: code sent", func(t *testing.T) {
		var gotEmail, gotChannel string
		otp := &mockOTPUsecase{IssueFunc: func(ctx context.Context, email, channel string) error {
			gotEmail, gotChannel = email, channel
			return nil
		}}
		h := NewAuthHandler(&mockAuthUsecase{}, otp)

		status, body := doJSON(t, newRouter(h, 0), "/otp/request", gin.H{"email": "a@x.com", "channel": "sms"})

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, gin.H{"message": "OTP code sent.", "status": float64(200)}, body)
		assert.Equal(t, "a@x.com", gotEmail)
		assert.Equal(t, "sms", gotChannel)
	})

	t.Run("failure: invalid email lists field error", func(t *testing.T) {
		h := NewAuthHandler(&mockAuthUsecase{}, &mockOTPUsecase{})

		status, body := doJSON(t, newRouter(h, 0), "/otp/request", gin.H{"email": "not-an-email"})

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Error requesting OTP", body["message"])
		assert.Equal(t, map[string]any{"email": []any{"Enter a valid email address."}}, body["error"])
	})

	t.Run("failure: unknown email", func(t *testing.T) {
		otp := &mockOTPUsecase{IssueFunc: func(ctx context.Context, email, channel string) error {
			return usecase.ErrUnknownEmail
		}}
		h := NewAuthHandler(&mockAuthUsecase{}, otp)

		status, body := doJSON(t, newRouter(h, 0), "/otp/request", gin.H{"email": "ghost@x.com"})

		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Error Email not found", body["message"])
	})
}

func TestAuthHandler_LoginOTP(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		validateFunc   func(ctx context.Context, code string) (*usecase.LoginResult, error)
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name: "success: tokens and user",
			body: gin.H{"otp": "123456"},
			validateFunc: func(ctx context.Context, code string) (*usecase.LoginResult, error) {
				return loginResult(), nil
			},
			expectedStatus: http.StatusOK,
			expectedBody: gin.H{
				"access_token":  "access-token",
				"refresh_token": "refresh-token",
				"user":          map[string]any{"id": float64(7), "name": "Ada Lovelace", "email": "a@x.com"},
			},
		},
		{
			name: "failure: expired code",
			body: gin.H{"otp": "123456"},
			validateFunc: func(ctx context.Context, code string) (*usecase.LoginResult, error) {
				return nil, usecase.ErrExpiredOTP
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"message": "OTP code has expired.", "status": float64(400)},
		},
		{
			name:           "failure: missing code",
			body:           gin.H{},
			expectedStatus: http.StatusBadRequest,
			expectedBody: gin.H{
				"message": "Invalid OTP code.",
				"status":  float64(400),
				"error":   map[string]any{"otp": []any{"This field is required."}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&mockAuthUsecase{}, &mockOTPUsecase{ValidateAndLoginFunc: tt.validateFunc})

			status, body := doJSON(t, newRouter(h, 0), "/otp/login", tt.body)

			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	auth := &mockAuthUsecase{RefreshFunc: func(ctx context.Context, refreshToken string) (string, error) {
		if refreshToken == "good" {
			return "new-access", nil
		}
		return "", usecase.ErrInvalidToken
	}}
	r := newRouter(NewAuthHandler(auth, &mockOTPUsecase{}), 0)

	status, body := doJSON(t, r, "/token/refresh", gin.H{"refresh_token": "good"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, gin.H{"access_token": "new-access", "status": float64(200)}, body)

	status, body = doJSON(t, r, "/token/refresh", gin.H{"refresh_token": "bad"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, gin.H{"message": "Invalid token.", "status": float64(400)}, body)
}

func TestAuthHandler_Logout(t *testing.T) {
	revoked := map[string]bool{}
	auth := &mockAuthUsecase{LogoutFunc: func(ctx context.Context, refreshToken string) error {
		if refreshToken == "" {
			return usecase.ErrMissingToken
		}
		if revoked[refreshToken] {
			return usecase.ErrInvalidToken
		}
		revoked[refreshToken] = true
		return nil
	}}
	r := newRouter(NewAuthHandler(auth, &mockOTPUsecase{}), 7)

	status, body := doJSON(t, r, "/logout", gin.H{"refresh_token": "refresh-token"})
	assert.Equal(t, http.StatusResetContent, status)
	assert.Equal(t, gin.H{"message": "Successfully logged out.", "status": float64(205)}, body)

	status, body = doJSON(t, r, "/logout", gin.H{"refresh_token": "refresh-token"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, gin.H{"message": "Invalid token.", "status": float64(400)}, body)

	status, body = doJSON(t, r, "/logout", gin.H{})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Error refresh token not found", body["message"])
}

func TestAuthHandler_LogoutAll(t *testing.T) {
	tests := []struct {
		name           string
		authUserID     uint
		logoutAllFunc  func(ctx context.Context, userID uint) error
		expectedStatus int
		expectedBody   gin.H
	}{
		{
			name:       "success: all sessions revoked",
			authUserID: 7,
			logoutAllFunc: func(ctx context.Context, userID uint) error {
				if userID != 7 {
					return errors.New("wrong user")
				}
				return nil
			},
			expectedStatus: http.StatusResetContent,
			expectedBody:   gin.H{"message": "Successfully logged out all sessions.", "status": float64(205)},
		},
		{
			name:       "failure: no active tokens",
			authUserID: 7,
			logoutAllFunc: func(ctx context.Context, userID uint) error {
				return usecase.ErrNoActiveTokens
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"message": "No active tokens for this user.", "status": float64(400)},
		},
		{
			name:       "failure: ledger error detail is not leaked",
			authUserID: 7,
			logoutAllFunc: func(ctx context.Context, userID uint) error {
				return usecase.ErrLogoutFailed.Wrap(errors.New("connection reset by peer"))
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   gin.H{"message": "Error logout", "status": float64(400)},
		},
		{
			name:           "failure: unauthenticated",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   gin.H{"message": "Authentication credentials were not provided.", "status": float64(401)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAuthHandler(&mockAuthUsecase{LogoutAllFunc: tt.logoutAllFunc}, &mockOTPUsecase{})

			status, body := doJSON(t, newRouter(h, tt.authUserID), "/logout/all", gin.H{})

			assert.Equal(t, tt.expectedStatus, status)
			assert.Equal(t, tt.expectedBody, body)
		})
	}
}
