// Package middleware provides gin middleware shared by every route.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"auth_backend/internal/shared/apperr"
)

// ErrorHandler renders the last error attached with c.Error as {message, status}.
// Taxonomy errors use their kind's status and client message. Anything else is logged and
// rendered as a generic 500 so internal details never reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err

		appErr, ok := apperr.As(err)
		if !ok {
			slog.Error("unhandled error", "error", err, "path", c.FullPath(), "request_id", RequestIDFrom(c))
			c.JSON(http.StatusInternalServerError, gin.H{
				"message": "internal server error",
				"status":  http.StatusInternalServerError,
			})
			return
		}

		status := appErr.Kind.Status()
		if status >= http.StatusInternalServerError {
			slog.Error("request failed", "error", err, "path", c.FullPath(), "request_id", RequestIDFrom(c))
		}
		body := gin.H{"message": appErr.Message, "status": status}
		if len(appErr.Fields) > 0 {
			body["error"] = appErr.Fields
		}
		c.JSON(status, body)
	}
}
