// Package router wires HTTP routes and middleware.
package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	authhandler "auth_backend/internal/feature/auth/transport/handler"
	userhandler "auth_backend/internal/feature/user/transport/handler"
	"auth_backend/internal/platform/http/handler"
	"auth_backend/internal/platform/http/middleware"
	jwtmw "auth_backend/internal/platform/jwt"
)

// Config carries the settings the route table depends on.
type Config struct {
	// CORSOrigins lists allowed origins. Empty allows all origins.
	CORSOrigins []string
	// Verifier checks bearer access tokens on protected routes.
	Verifier jwtmw.AccessVerifier
	// Redis backs the login rate limiter. nil disables rate limiting.
	Redis *redis.Client
	// LoginRatePerMinute caps login and OTP attempts per client IP and route.
	LoginRatePerMinute int
	// ReadinessChecks are pinged by /readyz.
	ReadinessChecks []handler.Check
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return cors.Default()
	}
	for _, o := range origins {
		if o == "*" {
			return cors.Default()
		}
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func NewRouter(cfg Config, auth *authhandler.AuthHandler, users *userhandler.UserHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(), corsMiddleware(cfg.CORSOrigins))
	r.Use(middleware.ErrorHandler())

	// 導通確認用
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)
	r.GET("/readyz", handler.Ready(cfg.ReadinessChecks...))

	limited := middleware.RateLimit(cfg.Redis, cfg.LoginRatePerMinute)
	requireAuth := jwtmw.AuthRequired(cfg.Verifier)

	api := r.Group("/api")

	// 認証
	a := api.Group("/auth")
	{
		a.POST("/login", limited, auth.Login)
		a.POST("/otp/request", limited, auth.RequestOTP)
		a.POST("/otp/login", limited, auth.LoginOTP)
		a.POST("/token/refresh", auth.Refresh)
		// 認証必須
		a.POST("/logout", requireAuth, auth.Logout)
		a.POST("/logout/all", requireAuth, auth.LogoutAll)
	}

	// ユーザー
	u := api.Group("/user")
	{
		// 新規ユーザー登録は認証不要
		u.POST("/", users.Create)
		u.PUT("/", requireAuth, users.Update)
		u.GET("/list", requireAuth, users.List)
		u.GET("/detail", requireAuth, users.Detail)
	}

	return r
}
