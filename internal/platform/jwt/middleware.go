package jwtmw

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID = "userID"
	ContextEmail  = "email"
)

// AccessVerifier verifies access tokens. *Issuer satisfies it.
type AccessVerifier interface {
	ParseAccess(tokenStr string) (*Claims, error)
}

// AuthRequired returns a Gin middleware function that validates bearer access tokens
// and restricts access to authenticated users only.
func AuthRequired(verifier AccessVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Authorizationヘッダーを取得
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			abortUnauthorized(c)
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. 署名・有効期限・トークン種別を検証
		claims, err := verifier.ParseAccess(tokenStr)
		if err != nil {
			slog.Debug("bearer token rejected", "error", err, "remote_addr", c.ClientIP())
			abortUnauthorized(c)
			return
		}

		// 3. 後続ハンドラー向けにクレームをコンテキストへ格納
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Next()
	}
}

// UserIDFrom returns the authenticated user's id set by AuthRequired.
func UserIDFrom(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"message": "Authentication credentials were not provided.",
		"status":  http.StatusUnauthorized,
	})
}
