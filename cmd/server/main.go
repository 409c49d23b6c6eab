package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"auth_backend/internal/app/di"
	"auth_backend/internal/app/router"
	authadapters "auth_backend/internal/feature/auth/adapters"
	authhandler "auth_backend/internal/feature/auth/transport/handler"
	authusecase "auth_backend/internal/feature/auth/usecase"
	useradapters "auth_backend/internal/feature/user/adapters"
	userentity "auth_backend/internal/feature/user/domain/entity"
	userhandler "auth_backend/internal/feature/user/transport/handler"
	userusecase "auth_backend/internal/feature/user/usecase"
	"auth_backend/internal/platform/config"
	platformdb "auth_backend/internal/platform/db"
	"auth_backend/internal/platform/externalapi/brevo"
	"auth_backend/internal/platform/externalapi/twilio"
	"auth_backend/internal/platform/http/handler"
	jwtmw "auth_backend/internal/platform/jwt"
	"auth_backend/internal/platform/logging"
	platformredis "auth_backend/internal/platform/redis"
)

func main() {
	config.LoadDotEnv()

	app, err := config.LoadAppFromEnv()
	if err != nil {
		slog.Error("invalid app config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(logging.New(app.LogLevel))

	if err := run(app); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// loadJWTConfig refuses to start without JWT_SECRET, except in development where a random secret is used.
func loadJWTConfig(app config.App) (jwtmw.Config, error) {
	cfg, err := jwtmw.LoadConfigFromEnv()
	if err != nil {
		return jwtmw.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		if !errors.Is(err, jwtmw.ErrMissingSecret) || !app.IsDevelop() {
			return jwtmw.Config{}, err
		}
		// JWT_SECRETチェック（開発中の注意喚起）
		slog.Warn("JWT_SECRET is not set. Using a random secret; tokens will not survive a restart.")
		cfg.Secret = jwtmw.RandomSecret()
	}
	return cfg, nil
}

func run(app config.App) error {
	jwtCfg, err := loadJWTConfig(app)
	if err != nil {
		return err
	}

	// db
	models := append([]any{&userentity.User{}}, authadapters.Models()...)
	db, err := platformdb.OpenDB(platformdb.LoadConfigFromEnv(), models...)
	if err != nil {
		return err
	}

	// Redis
	var rdb *redisv9.Client
	if tmp, err := platformredis.NewRedisClient(context.Background(), platformredis.LoadConfigFromEnv()); err != nil {
		slog.Warn("Redis unavailable. Running without rate limiting.")
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("Failed to close Redis client", "error", err)
			}
		}()
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	checks := []handler.Check{{Name: "db", Ping: sqlDB.PingContext}}
	if rdb != nil {
		checks = append(checks, handler.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}

	// Repository
	userRepo := useradapters.NewUserGorm(db)
	otpRepo := authadapters.NewOTPGorm(db)
	ledger := di.NewTokenLedger(app, rdb, db)

	issuer := jwtmw.NewIssuer(jwtCfg)
	tokens := authadapters.NewJWTIssuer(issuer)

	// 開発環境以外ではプロバイダー未設定で起動しない
	mailer, err := di.NewMailer(brevo.LoadConfig(), app.IsDevelop())
	if err != nil {
		return err
	}
	sms, err := di.NewSMSSender(twilio.LoadConfig(), app.IsDevelop())
	if err != nil {
		return err
	}

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, ledger, tokens)
	otpUC := authusecase.NewOTPUsecase(userRepo, otpRepo, ledger, tokens, mailer, sms, app.OTPValidityMinutes)
	userUC := userusecase.NewUserUsecase(userRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC, otpUC)
	userH := userhandler.NewUserHandler(userUC)

	// ルータ生成
	r := router.NewRouter(router.Config{
		CORSOrigins:        app.CORSOrigins,
		Verifier:           issuer,
		Redis:              rdb,
		LoginRatePerMinute: app.LoginRatePerMinute,
		ReadinessChecks:    checks,
	}, authH, userH)

	slog.Info("server starting", "addr", app.Addr(), "env", app.Env)
	return r.Run(app.Addr())
}
