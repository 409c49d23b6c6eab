package adapters

import (
	"auth_backend/internal/feature/auth/domain/entity"
	"auth_backend/internal/feature/auth/usecase"
	jwtmw "auth_backend/internal/platform/jwt"
)

// jwtIssuer adapts the platform JWT issuer to usecase.TokenIssuer.
type jwtIssuer struct {
	issuer *jwtmw.Issuer
}

var _ usecase.TokenIssuer = (*jwtIssuer)(nil)

// NewJWTIssuer wraps issuer.
func NewJWTIssuer(issuer *jwtmw.Issuer) *jwtIssuer {
	return &jwtIssuer{issuer: issuer}
}

func (a *jwtIssuer) IssuePair(userID uint, email string) (entity.TokenPair, error) {
	p, err := a.issuer.Issue(userID, email)
	if err != nil {
		return entity.TokenPair{}, err
	}
	return entity.TokenPair{
		Access:           p.Access,
		Refresh:          p.Refresh,
		RefreshJTI:       p.RefreshID,
		RefreshExpiresAt: p.RefreshExpiresAt,
	}, nil
}

func (a *jwtIssuer) IssueAccess(userID uint, email string) (string, error) {
	return a.issuer.IssueAccess(userID, email)
}

func (a *jwtIssuer) ParseRefresh(token string) (entity.RefreshClaims, error) {
	c, err := a.issuer.ParseRefresh(token)
	if err != nil {
		return entity.RefreshClaims{}, err
	}
	return entity.RefreshClaims{
		JTI:       c.ID,
		UserID:    c.UserID,
		Email:     c.Email,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}
