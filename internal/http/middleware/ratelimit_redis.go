package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

// InitRedisRateLimiter initializes the shared Redis client used by the
// middleware. If addr is empty or the ping fails, the client stays nil and
// every limiter acts fail-open.
func InitRedisRateLimiter(addr, password string, db int) {
	if addr == "" {
		return
	}
	redisClient = redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		redisClient = nil
	}
}

// RedisRateLimit is a fixed-window per-IP limiter built on INCR/EXPIRE.
// key format: rl:<window_seconds>:<identifier>
func RedisRateLimit(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if redisClient == nil {
			c.Next()
			return
		}

		key := "rl:" + strconv.FormatInt(int64(window.Seconds()), 10) + ":" + c.ClientIP()
		ctx := context.Background()

		val, err := redisClient.Incr(ctx, key).Result()
		if err != nil {
			// fail-open on Redis errors, but make it visible
			c.Header("X-RateLimit-Error", "redis-error")
			c.Next()
			return
		}

		if val == 1 {
			redisClient.Expire(ctx, key, window)
		}

		if val > int64(maxRequests) {
			RLBlocked.WithLabelValues(c.FullPath()).Inc()
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}

		RLRequests.WithLabelValues(c.FullPath()).Inc()
		c.Next()
	}
}
