package middleware

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// IssueRateLimiter caps how many issues one user may submit per day.
// Counts live in Redis keyed per user with a 24h TTL set on the first
// submission. If Redis is down the request passes; losing rate limiting
// is better than rejecting every report.
func IssueRateLimiter(rdb *redis.Client, limit int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rdb == nil || limit <= 0 {
			return c.Next()
		}

		userID := GetCurrentUserID(c)
		key := fmt.Sprintf("issue_limit:%s", userID)

		ctx := c.Context()
		count, err := rdb.Incr(ctx, key).Result()
		if err != nil {
			return c.Next()
		}
		if count == 1 {
			_ = rdb.Expire(ctx, key, 24*time.Hour).Err()
		}

		if count > int64(limit) {
			retryAfter, _ := rdb.TTL(ctx, key).Result()
			c.Set("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
			return TooManyRequests("Daily issue submission limit reached")
		}

		return c.Next()
	}
}
