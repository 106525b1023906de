package validate

import (
	"errors"

	"musiclabel/internal/types"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const validationFailedPrefix = "Validation failed: "

// FromError turns ozzo validation errors into a ValidationFailure listing every
// offending field. Internal rule errors are returned unchanged.
func FromError(err error) error {
	if err == nil {
		return nil
	}

	var internalErr validation.InternalError
	if errors.As(err, &internalErr) {
		return err
	}

	var errs validation.Errors
	if errors.As(err, &errs) {
		fields := make(map[string]string)
		flatten("", errs, fields)
		return types.NewValidationError(validationFailedPrefix+errs.Error(), fields)
	}

	return types.NewValidationError(validationFailedPrefix+err.Error(), nil)
}

// Failed builds a ValidationFailure for a single field.
func Failed(field, message string) error {
	return FromError(validation.Errors{field: errors.New(message)})
}

func flatten(prefix string, errs validation.Errors, out map[string]string) {
	for key, err := range errs {
		if err == nil {
			continue
		}

		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		var nested validation.Errors
		if errors.As(err, &nested) {
			flatten(name, nested, out)
			continue
		}
		out[name] = err.Error()
	}
}
