package validate

import (
	"regexp"
	"strings"
	"time"

	"musiclabel/internal/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var (
	httpScheme  = regexp.MustCompile(`^https?://[^/\s]+`)
	timeOfDay   = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	uploadsPath = regexp.MustCompile(`^/uploads/[a-z]+/[A-Za-z0-9_.-]+$`)
)

var (
	ErrInvalidDate = validation.NewError(
		"validation_invalid_date",
		"must be a valid date (YYYY-MM-DD or ISO 8601)",
	)
	ErrInvalidSlug = validation.NewError(
		"validation_invalid_slug",
		"must contain only lowercase letters, numbers and hyphens",
	)
	ErrInvalidImageURL = validation.NewError(
		"validation_invalid_image_url",
		"must be an absolute URL or an /uploads path",
	)
)

// URL rules require an absolute http(s) URL with a host.
var URL = []validation.Rule{
	is.URL,
	validation.Match(httpScheme).Error("must be an absolute http(s) URL"),
}

// Link is URL for values that cannot be left empty, such as social or streaming links.
var Link = append([]validation.Rule{validation.Required}, URL...)

var Email = []validation.Rule{
	is.EmailFormat,
	validation.Length(3, 255),
}

var Date = validation.NewStringRuleWithError(func(value string) bool {
	_, err := utils.ParseDate(value)
	return err == nil
}, ErrInvalidDate)

var TimeOfDay = validation.Match(timeOfDay).Error("must be a time in HH:MM format")

var Slug = validation.NewStringRuleWithError(utils.IsValidSlug, ErrInvalidSlug)

var ImageURL = validation.NewStringRuleWithError(func(value string) bool {
	if uploadsPath.MatchString(value) {
		return true
	}
	return httpScheme.MatchString(value) && validation.Validate(value, is.URL) == nil
}, ErrInvalidImageURL)

// AllowedKeys validates a string map whose keys must come from keys. Unknown
// keys fail with "key not expected"; every present value must pass valueRules.
func AllowedKeys(keys []string, valueRules ...validation.Rule) validation.MapRule {
	keyRules := make([]*validation.KeyRules, 0, len(keys))
	for _, key := range keys {
		keyRules = append(keyRules, validation.Key(key, valueRules...).Optional())
	}
	return validation.Map(keyRules...)
}

// NotBlank rejects strings that are empty once trimmed. Nil pointers pass.
var NotBlank = validation.NewStringRuleWithError(func(value string) bool {
	return strings.TrimSpace(value) != ""
}, validation.ErrRequired)

// OneOf restricts a string field to a closed set of values.
func OneOf(values []string) validation.Rule {
	allowed := make([]any, len(values))
	for i, value := range values {
		allowed[i] = value
	}
	return validation.In(allowed...).Error("must be one of: " + strings.Join(values, ", "))
}

// DateBetween checks that a date string lies within [min, max]. A zero bound
// is open. Empty and unparsable values are left to Required and Date.
func DateBetween(min, max time.Time) validation.Rule {
	return validation.By(func(value any) error {
		value, isNil := validation.Indirect(value)
		raw, ok := value.(string)
		if isNil || !ok || raw == "" {
			return nil
		}

		date, err := utils.ParseDate(raw)
		if err != nil {
			return nil
		}
		if !min.IsZero() && date.Before(min) {
			return validation.NewError(
				"validation_date_too_early",
				"must not be before "+min.Format("2006-01-02"),
			)
		}
		if !max.IsZero() && date.After(max) {
			return validation.NewError(
				"validation_date_too_late",
				"must not be after "+max.Format("2006-01-02"),
			)
		}
		return nil
	})
}

// NotInPast rejects timestamps before now. Calendar dates have no time of day,
// so they only need to fall on or after today.
func NotInPast(now time.Time) validation.Rule {
	return validation.By(func(value any) error {
		value, isNil := validation.Indirect(value)
		raw, ok := value.(string)
		if isNil || !ok || raw == "" {
			return nil
		}

		date, err := utils.ParseDate(raw)
		if err != nil {
			return nil
		}

		floor := now.UTC()
		if utils.IsCalendarDate(raw) {
			floor = utils.StartOfDay(now)
		}
		if date.Before(floor) {
			return validation.NewError("validation_date_in_past", "must not be in the past")
		}
		return nil
	})
}
