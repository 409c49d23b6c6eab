// Package ledger provides a Redis-backed refresh token ledger.
package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"auth_backend/internal/feature/auth/domain"
	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
)

// minBlacklistTTL keeps a blacklist marker around briefly even for tokens that already expired.
const minBlacklistTTL = time.Minute

// LedgerRedis implements usecase.TokenLedger using Redis.
// Outstanding entries and blacklist markers expire together with the token they describe.
type LedgerRedis struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

var _ usecase.TokenLedger = (*LedgerRedis)(nil)

// NewLedgerRedis creates a new LedgerRedis instance.
func NewLedgerRedis(client *redis.Client, prefix string) *LedgerRedis {
	return &LedgerRedis{
		client: client,
		prefix: prefix,
		now:    time.Now,
	}
}

// outstandingKey returns the Redis key for an outstanding token.
func (r *LedgerRedis) outstandingKey(jti string) string {
	return fmt.Sprintf("%s:outstanding:%s", r.prefix, jti)
}

// blacklistKey returns the Redis key marking a token as revoked.
func (r *LedgerRedis) blacklistKey(jti string) string {
	return fmt.Sprintf("%s:blacklist:%s", r.prefix, jti)
}

// userTokensKey returns the Redis key for a user's token id set.
func (r *LedgerRedis) userTokensKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", r.prefix, userID)
}

// RecordOutstanding stores token until its expiry and indexes it under its user.
func (r *LedgerRedis) RecordOutstanding(ctx context.Context, token *entity.OutstandingToken) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	ttl := token.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return errors.New("token already expired")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.outstandingKey(token.JTI), data, ttl)
	pipe.SAdd(ctx, r.userTokensKey(token.UserID), token.JTI)
	_, err = pipe.Exec(ctx)
	return err
}

// FindOutstanding retrieves a token by its jti.
func (r *LedgerRedis) FindOutstanding(ctx context.Context, jti string) (*entity.OutstandingToken, error) {
	data, err := r.client.Get(ctx, r.outstandingKey(jti)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrTokenNotOutstanding
		}
		return nil, err
	}

	var token entity.OutstandingToken
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}
	return &token, nil
}

// ListByUser retrieves the user's ledger entries, revoked ones included.
// Entries vanish when their token expires; their ids are pruned from the user's set.
func (r *LedgerRedis) ListByUser(ctx context.Context, userID uint) ([]*entity.OutstandingToken, error) {
	ids, err := r.client.SMembers(ctx, r.userTokensKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	var tokens []*entity.OutstandingToken
	for _, id := range ids {
		token, err := r.FindOutstanding(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrTokenNotOutstanding) {
				r.client.SRem(ctx, r.userTokensKey(userID), id)
				continue
			}
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

// Blacklist sets the revocation marker with SETNX, so repeating it is a no-op.
func (r *LedgerRedis) Blacklist(ctx context.Context, token *entity.OutstandingToken) error {
	ttl := token.ExpiresAt.Sub(r.now())
	if ttl < minBlacklistTTL {
		ttl = minBlacklistTTL
	}
	return r.client.SetNX(ctx, r.blacklistKey(token.JTI), r.now().UTC().Format(time.RFC3339), ttl).Err()
}

// IsBlacklisted reports whether the revocation marker exists.
func (r *LedgerRedis) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	n, err := r.client.Exists(ctx, r.blacklistKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
