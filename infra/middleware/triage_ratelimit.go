package middleware

import (
	"fmt"
	"strconv"
	"time"

	"triage_server/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// slidingWindowScript counts requests in the window atomically and
// reports how long the caller must wait when over the limit.
var slidingWindowScript = redis.NewScript(`
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window_start = tonumber(ARGV[2])
	local max_requests = tonumber(ARGV[3])
	local window_ms = tonumber(ARGV[4])

	redis.call('ZREMRANGEBYSCORE', key, '-inf', window_start)

	local count = redis.call('ZCARD', key)

	if count < max_requests then
		redis.call('ZADD', key, now, now .. '-' .. math.random())
		redis.call('PEXPIRE', key, window_ms * 2)
		return 1
	else
		local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
		if #oldest > 0 then
			return -(oldest[2] + window_ms - now)
		end
		return 0
	end
`)

// RateLimiter limits requests per client IP using a sliding window
// backed by Redis. Requests are allowed when Redis is unavailable.
type RateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
	scope  string
}

func NewRateLimiter(redisClient *redis.Client, scope string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		limit:  limit,
		window: window,
		scope:  scope,
	}
}

func (l *RateLimiter) allow(c *fiber.Ctx, key string) (bool, time.Duration) {
	if l.redis == nil {
		return true, 0
	}

	now := time.Now()
	windowStart := now.Add(-l.window)
	redisKey := fmt.Sprintf("ratelimit:%s:%s", l.scope, key)

	result, err := slidingWindowScript.Run(c.Context(), l.redis, []string{redisKey},
		now.UnixMilli(),
		windowStart.UnixMilli(),
		l.limit,
		l.window.Milliseconds(),
	).Int64()

	if err != nil {
		logger.WithError(err).Warn("Rate limit check failed, allowing request")
		return true, 0
	}

	if result == 1 {
		return true, 0
	}

	if result < 0 {
		return false, time.Duration(-result) * time.Millisecond
	}

	return false, l.window
}

// Handler returns the Fiber middleware for this limiter.
func (l *RateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, wait := l.allow(c, c.IP())
		if !allowed {
			retryAfter := int(wait.Seconds()) + 1
			c.Set("Retry-After", strconv.Itoa(retryAfter))
			return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
				Success:   false,
				Timestamp: time.Now().UTC().Format(time.RFC3339),
				Error: ErrorDetail{
					Code:    "RATE_LIMITED",
					Message: "Too many requests, please slow down",
					Details: map[string]any{"retry_after_seconds": retryAfter},
				},
			})
		}
		return c.Next()
	}
}
