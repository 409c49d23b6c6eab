// Package jwtmw issues and verifies HS256 access/refresh tokens and provides the bearer auth middleware.
package jwtmw

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

var (
	// ErrInvalidToken covers malformed, badly signed and expired tokens.
	ErrInvalidToken = errors.New("invalid token")

	// ErrWrongTokenType is returned when a refresh token is presented as access or vice versa.
	ErrWrongTokenType = errors.New("unexpected token type")
)

// Claims are the claims carried by both token types.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Email     string `json:"email"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Pair is the result of a login: an access token plus a refresh token and its ledger identity.
type Pair struct {
	Access           string
	Refresh          string
	RefreshID        string
	RefreshExpiresAt time.Time
}

// Issuer signs and verifies tokens with a shared HMAC secret.
type Issuer struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewIssuer creates an Issuer from cfg.
func NewIssuer(cfg Config) *Issuer {
	return &Issuer{
		secret:     []byte(cfg.Secret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
}

// Issue creates a new access/refresh pair for the user.
func (i *Issuer) Issue(userID uint, email string) (Pair, error) {
	now := i.now()

	access, _, err := i.sign(userID, email, TokenTypeAccess, now, i.accessTTL)
	if err != nil {
		return Pair{}, err
	}
	refresh, claims, err := i.sign(userID, email, TokenTypeRefresh, now, i.refreshTTL)
	if err != nil {
		return Pair{}, err
	}

	return Pair{
		Access:           access,
		Refresh:          refresh,
		RefreshID:        claims.ID,
		RefreshExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// IssueAccess creates a standalone access token, used when refreshing.
func (i *Issuer) IssueAccess(userID uint, email string) (string, error) {
	token, _, err := i.sign(userID, email, TokenTypeAccess, i.now(), i.accessTTL)
	return token, err
}

func (i *Issuer) sign(userID uint, email, tokenType string, now time.Time, ttl time.Duration) (string, *Claims, error) {
	claims := &Claims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims, nil
}

// ParseAccess verifies an access token.
func (i *Issuer) ParseAccess(tokenStr string) (*Claims, error) {
	return i.parse(tokenStr, TokenTypeAccess)
}

// ParseRefresh verifies a refresh token.
func (i *Issuer) ParseRefresh(tokenStr string) (*Claims, error) {
	return i.parse(tokenStr, TokenTypeRefresh)
}

func (i *Issuer) parse(tokenStr, wantType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		// HMACのみ許可
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.TokenType != wantType {
		return nil, ErrWrongTokenType
	}
	if claims.ID == "" || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
