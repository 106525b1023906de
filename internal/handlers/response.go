package handlers

import (
	"errors"
	"time"

	"musiclabel/internal/handlers/middleware"
	"musiclabel/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

const internalErrorMessage = "An unexpected error occurred"

var kindStatus = map[types.ErrorKind]int{
	types.KindValidation: fiber.StatusBadRequest,
	types.KindSpam:       fiber.StatusBadRequest,
	types.KindInvariant:  fiber.StatusBadRequest,
	types.KindNotFound:   fiber.StatusNotFound,
	types.KindConflict:   fiber.StatusConflict,
	types.KindThrottle:   fiber.StatusTooManyRequests,
}

type envelope struct {
	Success    bool              `json:"success"`
	Data       any               `json:"data,omitempty"`
	Error      *types.AppError   `json:"error,omitempty"`
	Pagination *types.Pagination `json:"pagination,omitempty"`
	Message    string            `json:"message,omitempty"`
	TraceID    string            `json:"traceId,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

func respond(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

func respondMessage(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusOK).JSON(envelope{
		Success:   true,
		Message:   message,
		Timestamp: time.Now().UTC(),
	})
}

func respondList[T any](c *fiber.Ctx, result types.PaginatedResult[T]) error {
	items := result.Items
	if items == nil {
		items = []T{}
	}
	return c.Status(fiber.StatusOK).JSON(envelope{
		Success:    true,
		Data:       items,
		Pagination: &result.Pagination,
		Timestamp:  time.Now().UTC(),
	})
}

// respondError maps business errors to their status. Anything that is not an
// AppError is logged and hidden behind a generic 500.
func respondError(c *fiber.Ctx, log logger.Logger, err error) error {
	var appErr *types.AppError
	status, known := 0, false
	if errors.As(err, &appErr) {
		status, known = kindStatus[appErr.Kind]
	}
	if !known {
		log.Er("Unhandled error", err, "path", c.Path(), "method", c.Method())
		return c.Status(fiber.StatusInternalServerError).JSON(envelope{
			Error:     &types.AppError{Kind: "InternalError", Message: internalErrorMessage},
			TraceID:   middleware.GetTraceID(c),
			Timestamp: time.Now().UTC(),
		})
	}

	return c.Status(status).JSON(envelope{
		Error:     appErr,
		TraceID:   middleware.GetTraceID(c),
		Timestamp: time.Now().UTC(),
	})
}
