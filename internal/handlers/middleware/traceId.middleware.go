package middleware

import (
	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	TraceIDHeader   = "X-Trace-ID"
	traceIDLocalKey = "traceID"
	maxTraceIDLen   = 128
)

// TraceID tags every request with an id that is echoed in the response header,
// attached to the logger context and reported in error bodies so a failed
// submission can be matched to its log lines.
func (m *Middleware) TraceID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := c.Get(TraceIDHeader)
		if traceID == "" || len(traceID) > maxTraceIDLen {
			traceID = uuid.NewString()
		}

		c.Set(TraceIDHeader, traceID)
		c.Locals(traceIDLocalKey, traceID)
		c.SetUserContext(logger.ContextWithTraceID(c.UserContext(), traceID))

		return c.Next()
	}
}

// GetTraceID returns the request's trace id, or "" outside the TraceID
// middleware.
func GetTraceID(c *fiber.Ctx) string {
	traceID, _ := c.Locals(traceIDLocalKey).(string)
	return traceID
}
