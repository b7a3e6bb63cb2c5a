package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/snehalsudhakarkadam-code/RailSathiBE/internal/persistence"
	apperrors "github.com/snehalsudhakarkadam-code/RailSathiBE/pkg/util"
)

const rateLimitWindow = time.Minute

// RateLimiter throttles the unauthenticated endpoints with a fixed
// per-IP window backed by redis. Redis failures let requests through;
// throttling is protection, not a dependency.
func RateLimiter(redis *persistence.Redis, logger *zap.Logger, requestsPerMinute int) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := fmt.Sprintf("ratelimit:%s:%d", c.IP(), time.Now().Unix()/int64(rateLimitWindow.Seconds()))
		ctx := c.UserContext()

		count, err := redis.Client.Incr(ctx, key).Result()
		if err != nil {
			logger.Warn("rate limit counter unavailable", zap.Error(err))
			return c.Next()
		}
		if count == 1 {
			if err := redis.Client.Expire(ctx, key, rateLimitWindow).Err(); err != nil {
				logger.Warn("rate limit expiry not set", zap.String("key", key), zap.Error(err))
			}
		}
		if count > int64(requestsPerMinute) {
			return apperrors.NewRateLimited("too many requests, slow down")
		}
		return c.Next()
	}
}
