package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RateLimitMiddleware allows limit requests per window for each principal
// (or client IP when unauthenticated) and path, counted in Redis. The counter
// and its TTL are set in one MULTI/EXEC so a key never outlives its window
// (EXPIRE NX needs Redis 7). If Redis is unavailable the request is let
// through.
func RateLimitMiddleware(redisClient *redis.Client, limit int, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		who := c.ClientIP()
		if p, ok := GetPrincipal(c); ok {
			who = p.Username
		}
		key := fmt.Sprintf("rate_limit:%s:%s", c.FullPath(), who)

		ctx := c.Request.Context()
		var incr *redis.IntCmd
		_, err := redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, key)
			pipe.ExpireNX(ctx, key, window)
			return nil
		})
		if err != nil {
			logger.Warn("rate limit check failed", zap.Error(err), zap.String("key", key))
			c.Next()
			return
		}

		if count := incr.Val(); count > int64(limit) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
