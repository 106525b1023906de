package types

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation ErrorKind = "ValidationFailure"
	KindNotFound   ErrorKind = "NotFound"
	KindConflict   ErrorKind = "Conflict"
	KindInvariant  ErrorKind = "InvariantViolation"
	KindThrottle   ErrorKind = "RateLimitOrThrottle"
	KindSpam       ErrorKind = "SpamRejected"
)

// AppError is the business error returned by controllers. Message keeps the
// substrings clients match on ("not found", "already exists", ...).
type AppError struct {
	Kind    ErrorKind         `json:"kind"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

func NewValidationError(message string, fields map[string]string) *AppError {
	return &AppError{Kind: KindValidation, Message: message, Fields: fields}
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{Kind: KindNotFound, Message: fmt.Sprintf("%s not found", resource)}
}

func NewConflictError(message string) *AppError {
	return &AppError{Kind: KindConflict, Message: message}
}

func NewInvariantError(message string) *AppError {
	return &AppError{Kind: KindInvariant, Message: message}
}

func NewThrottleError(message string) *AppError {
	return &AppError{Kind: KindThrottle, Message: message}
}

func NewSpamError(message string) *AppError {
	return &AppError{Kind: KindSpam, Message: message}
}

// KindOf reports the kind of the first AppError in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind, true
	}
	return "", false
}

func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
