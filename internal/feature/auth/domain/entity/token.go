package entity

import "time"

// OutstandingToken is a ledger entry for an issued refresh token.
// A token moves from outstanding to blacklisted exactly once and never back.
type OutstandingToken struct {
	// JTI is the token's unique id claim.
	JTI       string
	UserID    uint
	Token     string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpired reports whether the token has passed its expiry.
func (t *OutstandingToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// TokenPair is a freshly issued access/refresh pair.
type TokenPair struct {
	Access           string
	Refresh          string
	RefreshJTI       string
	RefreshExpiresAt time.Time
}

// RefreshClaims are the verified claims of a refresh token.
type RefreshClaims struct {
	JTI       string
	UserID    uint
	Email     string
	ExpiresAt time.Time
}
