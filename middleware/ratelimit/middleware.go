package ratelimit

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Config holds rate limiter middleware configuration.
type Config struct {
	// Limit is the maximum number of requests allowed in the window.
	Limit int

	// Window is the time window for the rate limit.
	Window time.Duration
}

// DefaultConfig returns a config suited for credential endpoints.
func DefaultConfig() Config {
	return Config{
		Limit:  20,
		Window: time.Minute,
	}
}

// Middleware creates a Fiber middleware that rate limits requests per
// client IP. A Redis failure fails open: the request proceeds and the
// error is logged.
func Middleware(limiter *Limiter, cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := limiter.Allow(c.UserContext(), c.IP(), cfg.Limit, cfg.Window)
		if err != nil {
			log.Printf("[ratelimit] check failed, allowing request: %v", err)
			return c.Next()
		}

		c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", result.Limit))
		c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", result.Remaining))

		if !result.Allowed {
			retryAfter := int(time.Until(result.ResetAt).Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Set("Retry-After", fmt.Sprintf("%d", retryAfter))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "rate_limited",
				"message": "Too many requests, slow down",
			})
		}

		return c.Next()
	}
}
