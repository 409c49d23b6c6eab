package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const rateLimitWindow = time.Minute

// RateLimit caps requests per client IP and route in a fixed one-minute window kept in Redis.
// It is a no-op without Redis and fails open on Redis errors.
func RateLimit(rdb *redis.Client, maxPerWindow int) gin.HandlerFunc {
	if maxPerWindow <= 0 {
		maxPerWindow = 10
	}
	return func(c *gin.Context) {
		if rdb == nil {
			c.Next()
			return
		}
		ctx := c.Request.Context()
		key := "rl:" + c.FullPath() + ":" + c.ClientIP()

		// INCRとEXPIRE NXを同一トランザクションで送る。TTLのないキーは次のリクエストで補われる
		var incr *redis.IntCmd
		if _, err := rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, key)
			pipe.ExpireNX(ctx, key, rateLimitWindow)
			return nil
		}); err != nil {
			slog.Warn("rate limiter unavailable", "error", err, "key", key)
			c.Next()
			return
		}
		if cnt := incr.Val(); cnt > int64(maxPerWindow) {
			slog.Warn("rate limit exceeded", "key", key, "count", cnt)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "too many attempts, try again later",
				"status":  http.StatusTooManyRequests,
			})
			return
		}
		c.Next()
	}
}
