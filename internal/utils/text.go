package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var markupTag = regexp.MustCompile(`<[^>]*>`)

// CleanUTF8 removes or replaces invalid UTF8 characters from a string
// Returns the cleaned string and a boolean indicating if cleaning was needed
func CleanUTF8(input string) (string, bool) {
	needsCleaning := strings.Contains(input, "\x00") || !utf8.ValidString(input)

	if !needsCleaning {
		return input, false
	}

	cleaned := strings.ToValidUTF8(input, "")
	cleaned = strings.ReplaceAll(cleaned, "\x00", "")

	return cleaned, true
}

// StripMarkup drops HTML tags and stray angle brackets from user supplied text.
func StripMarkup(input string) string {
	cleaned, _ := CleanUTF8(input)
	cleaned = markupTag.ReplaceAllString(cleaned, "")
	cleaned = strings.NewReplacer("<", "", ">", "").Replace(cleaned)
	return strings.TrimSpace(cleaned)
}
