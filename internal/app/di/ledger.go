// Package di provides dependency injection factories for creating application components.
package di

import (
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "auth_backend/internal/feature/auth/adapters"
	"auth_backend/internal/feature/auth/usecase"
	"auth_backend/internal/platform/config"
	"auth_backend/internal/platform/ledger"
)

const ledgerRedis = "redis"

// NewTokenLedger creates a TokenLedger implementation.
// TOKEN_LEDGER=redis selects the Redis-backed ledger when a client is available.
// Otherwise, it falls back to the database.
func NewTokenLedger(app config.App, rdb *redis.Client, db *gorm.DB) usecase.TokenLedger {
	if app.TokenLedger == ledgerRedis {
		if rdb != nil {
			return ledger.NewLedgerRedis(rdb, "tokens")
		}
		slog.Warn("TOKEN_LEDGER=redis but Redis is unavailable; using database ledger")
	}
	return authadapters.NewTokenLedgerGorm(db)
}
