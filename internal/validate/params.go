package validate

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"musiclabel/internal/types"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ListQuery is the raw, untyped form of the shared list parameters.
type ListQuery struct {
	Page   string
	Limit  string
	Search string
	Sort   string
}

func ParseID(raw string) (int, error) {
	id, err := parsePositiveInt(raw)
	if err != nil {
		return 0, Failed("id", "must be a positive integer")
	}
	return id, nil
}

// ParseListParams coerces page/limit to integers, applies defaults and checks
// sort against the entity's closed set. The first entry of sorts is the default.
func ParseListParams(query ListQuery, sorts ...string) (types.ListParams, error) {
	params := types.ListParams{
		Page:   types.DefaultPage,
		Limit:  types.DefaultLimit,
		Search: strings.TrimSpace(query.Search),
	}
	if len(sorts) > 0 {
		params.Sort = sorts[0]
	}

	errs := validation.Errors{}

	if query.Page != "" {
		page, err := parsePositiveInt(query.Page)
		if err != nil {
			errs["page"] = errors.New("must be an integer greater than or equal to 1")
		} else {
			params.Page = page
		}
	}

	if query.Limit != "" {
		limit, err := parsePositiveInt(query.Limit)
		if err != nil || limit > types.MaxLimit {
			errs["limit"] = errors.New("must be an integer between 1 and 100")
		} else {
			params.Limit = limit
		}
	}

	if len(params.Search) > 255 {
		errs["search"] = errors.New("the length must be no more than 255")
	}

	if query.Sort != "" {
		if !slices.Contains(sorts, query.Sort) {
			errs["sort"] = errors.New("must be one of: " + strings.Join(sorts, ", "))
		} else {
			params.Sort = query.Sort
		}
	}

	if len(errs) > 0 {
		return types.ListParams{}, FromError(errs)
	}

	return params, nil
}

func ParseOptionalBool(name, raw string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, Failed(name, "must be a boolean")
	}
	return &value, nil
}

func ParseOptionalID(name, raw string) (*int, error) {
	if raw == "" {
		return nil, nil
	}
	value, err := parsePositiveInt(raw)
	if err != nil {
		return nil, Failed(name, "must be a positive integer")
	}
	return &value, nil
}

// ParseOptionalEnum accepts "" or one of allowed.
func ParseOptionalEnum(name, raw string, allowed ...string) (string, error) {
	if raw == "" || slices.Contains(allowed, raw) {
		return raw, nil
	}
	return "", Failed(name, "must be one of: "+strings.Join(allowed, ", "))
}

func parsePositiveInt(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if value < 1 {
		return 0, strconv.ErrRange
	}
	return value, nil
}
