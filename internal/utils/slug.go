package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const (
	MaxSlugLength = 255
	DefaultSlug   = "news"

	maxSlugAttempts = 1000
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
	slugHyphens      = regexp.MustCompile(`-+`)
	slugPattern      = regexp.MustCompile(`^[a-z0-9-]+$`)
)

// GenerateSlug lowercases title, drops anything outside [a-z0-9], joins words with
// single hyphens and truncates to MaxSlugLength.
func GenerateSlug(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugInvalidChars.ReplaceAllString(slug, "")
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	slug = slugHyphens.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > MaxSlugLength {
		slug = strings.TrimRight(slug[:MaxSlugLength], "-")
	}

	return slug
}

func IsValidSlug(slug string) bool {
	return len(slug) <= MaxSlugLength && slugPattern.MatchString(slug)
}

// UniqueSlug tries base, base-1, base-2, ... in order and returns the first
// candidate that exists reports as free.
func UniqueSlug(base string, exists func(candidate string) (bool, error)) (string, error) {
	if base == "" {
		base = DefaultSlug
	}

	candidate := base
	for i := 1; i <= maxSlugAttempts; i++ {
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}

		suffix := "-" + strconv.Itoa(i)
		prefix := base
		if len(prefix)+len(suffix) > MaxSlugLength {
			prefix = strings.TrimRight(prefix[:MaxSlugLength-len(suffix)], "-")
		}
		candidate = prefix + suffix
	}

	return "", fmt.Errorf("no free slug for %q after %d attempts", base, maxSlugAttempts)
}
