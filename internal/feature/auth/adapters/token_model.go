package adapters

import (
	"time"

	"auth_backend/internal/feature/auth/domain/entity"
)

// OutstandingTokenModel is the GORM model for the outstanding_tokens table.
type OutstandingTokenModel struct {
	ID        uint      `gorm:"primaryKey"`
	TokenID   string    `gorm:"column:token_id;size:64;uniqueIndex;not null"`
	UserID    uint      `gorm:"index;not null"`
	Token     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
}

// TableName returns the table name for GORM.
func (OutstandingTokenModel) TableName() string {
	return "outstanding_tokens"
}

// BlacklistedTokenModel is the GORM model for the blacklisted_tokens table.
// TokenID is unique, so a token can be blacklisted at most once.
type BlacklistedTokenModel struct {
	ID            uint      `gorm:"primaryKey"`
	TokenID       string    `gorm:"column:token_id;size:64;uniqueIndex;not null"`
	BlacklistedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM.
func (BlacklistedTokenModel) TableName() string {
	return "blacklisted_tokens"
}

// Models lists every table owned by the auth feature, for AutoMigrate.
func Models() []any {
	return []any{&entity.OTP{}, &OutstandingTokenModel{}, &BlacklistedTokenModel{}}
}

// ToEntity converts the GORM model to a domain entity.
func (m *OutstandingTokenModel) ToEntity() *entity.OutstandingToken {
	return &entity.OutstandingToken{
		JTI:       m.TokenID,
		UserID:    m.UserID,
		Token:     m.Token,
		CreatedAt: m.CreatedAt,
		ExpiresAt: m.ExpiresAt,
	}
}

// OutstandingTokenModelFromEntity converts a domain entity to a GORM model.
func OutstandingTokenModelFromEntity(t *entity.OutstandingToken) *OutstandingTokenModel {
	return &OutstandingTokenModel{
		TokenID:   t.JTI,
		UserID:    t.UserID,
		Token:     t.Token,
		CreatedAt: t.CreatedAt,
		ExpiresAt: t.ExpiresAt,
	}
}
