// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"auth_backend/internal/feature/auth/transport/http/dto"
	"auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/platform/http/binding"
	jwtmw "auth_backend/internal/platform/jwt"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Login はユーザーを認証し、成功時にトークンペアを返します。
	Login(ctx context.Context, email, password string) (*usecase.LoginResult, error)
	// Logout は指定されたリフレッシュトークンを無効化します。
	Logout(ctx context.Context, refreshToken string) error
	// LogoutAll はユーザーの有効なリフレッシュトークンをすべて無効化します。
	LogoutAll(ctx context.Context, userID uint) error
	// Refresh はリフレッシュトークンから新しいアクセストークンを発行します。
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

// OTPUsecase はワンタイムコードの発行と検証を定義します。
type OTPUsecase interface {
	Issue(ctx context.Context, email, channel string) error
	ValidateAndLogin(ctx context.Context, code string) (*usecase.LoginResult, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// エラーはc.Errorで登録し、middleware.ErrorHandlerがレスポンスに変換します。
type AuthHandler struct {
	auth AuthUsecase
	otp  OTPUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase, otp OTPUsecase) *AuthHandler {
	return &AuthHandler{auth: auth, otp: otp}
}

// Login はユーザーログインAPIエンドポイントを処理します。
// - 認証失敗時は401ではなく400を返却
// - 成功時はユーザー概要とトークンペア付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		_ = c.Error(binding.Translate(err, usecase.ErrMissingCredentials.Message))
		return
	}
	res, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		_ = c.Error(err)
		return
	}
	slog.Info("user login successful", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.LoginRes{
		Message: "User logged in successfully",
		UserDetail: dto.UserDetail{
			UserID: res.User.ID,
			Email:  res.User.Email,
			Name:   res.User.FullName(),
		},
		Token: dto.TokenRes{
			RefreshToken: res.Tokens.Refresh,
			AccessToken:  res.Tokens.Access,
		},
		Status: http.StatusOK,
	})
}

// RequestOTP はワンタイムコードを発行し、指定チャネルで送信します。
func (h *AuthHandler) RequestOTP(c *gin.Context) {
	var req dto.OTPRequestReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(binding.Translate(err, "Error requesting OTP"))
		return
	}
	if err := h.otp.Issue(c.Request.Context(), req.Email, req.Channel); err != nil {
		slog.Warn("otp request failed", "error", err, "email", req.Email, "remote_addr", c.ClientIP())
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageRes{Message: "OTP code sent.", Status: http.StatusOK})
}

// LoginOTP はワンタイムコードを検証し、トークンペアを返します。
func (h *AuthHandler) LoginOTP(c *gin.Context) {
	var req dto.OTPLoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(binding.Translate(err, usecase.ErrInvalidOTP.Message))
		return
	}
	res, err := h.otp.ValidateAndLogin(c.Request.Context(), req.OTP)
	if err != nil {
		slog.Warn("otp login failed", "error", err, "remote_addr", c.ClientIP())
		_ = c.Error(err)
		return
	}
	slog.Info("user otp login successful", "user_id", res.User.ID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, dto.OTPLoginRes{
		AccessToken:  res.Tokens.Access,
		RefreshToken: res.Tokens.Refresh,
		User: dto.OTPUser{
			ID:    res.User.ID,
			Name:  res.User.FullName(),
			Email: res.User.Email,
		},
	})
}

// Refresh はリフレッシュトークンから新しいアクセストークンを発行します。
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(binding.Translate(err, usecase.ErrMissingToken.Message))
		return
	}
	access, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, dto.RefreshRes{AccessToken: access, Status: http.StatusOK})
}

// Logout はリフレッシュトークンをブラックリストに登録します。
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(binding.Translate(err, usecase.ErrMissingToken.Message))
		return
	}
	if err := h.auth.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		slog.Warn("logout failed", "error", err, "remote_addr", c.ClientIP())
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusResetContent, dto.MessageRes{Message: "Successfully logged out.", Status: http.StatusResetContent})
}

// LogoutAll は認証済みユーザーの全セッションを無効化します。
func (h *AuthHandler) LogoutAll(c *gin.Context) {
	userID, ok := jwtmw.UserIDFrom(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.MessageRes{
			Message: "Authentication credentials were not provided.",
			Status:  http.StatusUnauthorized,
		})
		return
	}
	if err := h.auth.LogoutAll(c.Request.Context(), userID); err != nil {
		_ = c.Error(err)
		return
	}
	slog.Info("user logged out of all sessions", "user_id", userID, "remote_addr", c.ClientIP())
	c.JSON(http.StatusResetContent, dto.MessageRes{
		Message: "Successfully logged out all sessions.",
		Status:  http.StatusResetContent,
	})
}
