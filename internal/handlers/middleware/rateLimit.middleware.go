package middleware

import (
	"time"

	"musiclabel/internal/types"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

const RateLimitMessage = "Too many requests, please try again later"

// RateLimit is the general limit applied to every /api route.
func (m *Middleware) RateLimit() fiber.Handler {
	return m.limiter(
		"api",
		m.Config.RateLimitMax,
		time.Duration(m.Config.RateLimitWindowSeconds)*time.Second,
	)
}

// FormRateLimit is the stricter limit for public form submissions
// (contact and newsletter subscribe).
func (m *Middleware) FormRateLimit() fiber.Handler {
	return m.limiter(
		"form",
		m.Config.FormRateLimitMax,
		time.Duration(m.Config.FormRateLimitWindowSeconds)*time.Second,
	)
}

func (m *Middleware) limiter(scope string, max int, window time.Duration) fiber.Handler {
	log := m.log.Function("limiter")

	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Storage:    m.storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return scope + ":" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			log.Warn("Rate limit reached", "scope", scope, "ip", c.IP(), "path", c.Path())
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success":   false,
				"error":     types.NewThrottleError(RateLimitMessage),
				"traceId":   GetTraceID(c),
				"timestamp": time.Now().UTC(),
			})
		},
	})
}
