package utils

import "regexp"

const (
	maxRepeatedChars = 10
)

var spamPatterns = []*regexp.Regexp{
	// pharma, gambling and lottery vocabulary
	regexp.MustCompile(
		`(?i)\b(viagra|cialis|levitra|xanax|pharmacy|casino|lottery|jackpot|poker|roulette|payday\s+loans?|crypto\s+giveaway)\b`,
	),
	// sales phrasing
	regexp.MustCompile(
		`(?i)\b(buy\s+now|click\s+here|guaranteed|act\s+now|limited\s+time\s+offer|make\s+money\s+fast|free\s+money|risk[\s-]free|100%\s+free)\b`,
	),
	// stacked currency signs or amounts, e.g. "$$$" or "£500"
	regexp.MustCompile(`[$€£¥]{2,}|[$€£¥]\s?\d`),
	// links to low-reputation TLDs
	regexp.MustCompile(
		`(?i)(https?://|www\.)[^\s/]*\.(tk|ml|ga|cf|gq|xyz|top|click|loan|win|work|buzz)\b`,
	),
	// shouting
	regexp.MustCompile(`[A-Z]{20,}`),
}

// IsSpam reports whether text matches any of the content heuristics used to
// reject form submissions.
func IsSpam(text string) bool {
	for _, pattern := range spamPatterns {
		if pattern.MatchString(text) {
			return true
		}
	}

	return hasRepeatedRun(text, maxRepeatedChars)
}

// RE2 has no backreferences, so runs of one character are counted by hand.
func hasRepeatedRun(text string, limit int) bool {
	var prev rune
	run := 0
	for i, r := range text {
		if i > 0 && r == prev {
			run++
		} else {
			run = 1
		}
		if run >= limit {
			return true
		}
		prev = r
	}
	return false
}
