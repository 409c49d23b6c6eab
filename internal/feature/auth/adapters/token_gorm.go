// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"auth_backend/internal/feature/auth/domain"
	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
)

// tokenLedgerGorm is a relational implementation of the TokenLedger interface.
type tokenLedgerGorm struct {
	db  *gorm.DB
	now func() time.Time
}

// Compile-time check to ensure tokenLedgerGorm implements TokenLedger.
var _ usecase.TokenLedger = (*tokenLedgerGorm)(nil)

// NewTokenLedgerGorm creates a new instance of tokenLedgerGorm.
func NewTokenLedgerGorm(db *gorm.DB) *tokenLedgerGorm {
	return &tokenLedgerGorm{db: db, now: time.Now}
}

// RecordOutstanding persists a newly issued refresh token.
func (r *tokenLedgerGorm) RecordOutstanding(ctx context.Context, token *entity.OutstandingToken) error {
	return r.db.WithContext(ctx).Create(OutstandingTokenModelFromEntity(token)).Error
}

// FindOutstanding retrieves a token by its jti.
func (r *tokenLedgerGorm) FindOutstanding(ctx context.Context, jti string) (*entity.OutstandingToken, error) {
	var model OutstandingTokenModel
	if err := r.db.WithContext(ctx).Where("token_id = ?", jti).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTokenNotOutstanding
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// ListByUser retrieves every ledger row of the user, revoked and expired ones included.
func (r *tokenLedgerGorm) ListByUser(ctx context.Context, userID uint) ([]*entity.OutstandingToken, error) {
	var models []OutstandingTokenModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	tokens := make([]*entity.OutstandingToken, len(models))
	for i := range models {
		tokens[i] = models[i].ToEntity()
	}
	return tokens, nil
}

// Blacklist inserts a blacklist row unless one already exists (get-or-create).
func (r *tokenLedgerGorm) Blacklist(ctx context.Context, token *entity.OutstandingToken) error {
	row := &BlacklistedTokenModel{TokenID: token.JTI, BlacklistedAt: r.now()}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "token_id"}}, DoNothing: true}).
		Create(row).Error
}

// IsBlacklisted reports whether a blacklist row exists for jti.
func (r *tokenLedgerGorm) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&BlacklistedTokenModel{}).
		Where("token_id = ?", jti).
		Count(&count).Error
	return count > 0, err
}
