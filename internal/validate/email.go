package validate

import "strings"

var (
	gmailDomains = map[string]bool{
		"gmail.com":      true,
		"googlemail.com": true,
	}

	plusTagDomains = map[string]bool{
		"outlook.com": true,
		"hotmail.com": true,
		"live.com":    true,
		"icloud.com":  true,
		"me.com":      true,
	}

	dashTagDomains = map[string]bool{
		"yahoo.com":      true,
		"ymail.com":      true,
		"rocketmail.com": true,
	}

	disposableDomains = map[string]bool{
		"10minutemail.com":  true,
		"guerrillamail.com": true,
		"mailinator.com":    true,
		"tempmail.org":      true,
		"temp-mail.org":     true,
		"throwaway.email":   true,
		"yopmail.com":       true,
		"trashmail.com":     true,
		"getnada.com":       true,
		"sharklasers.com":   true,
		"maildrop.cc":       true,
		"dispostable.com":   true,
	}
)

// NormalizeEmail returns the canonical form used for uniqueness and throttle
// checks. The whole address is lowercased and provider specific aliases
// (dots and +tags for gmail, +tags for outlook/icloud, -tags for yahoo) are
// removed. NormalizeEmail(NormalizeEmail(x)) == NormalizeEmail(x).
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))

	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return email
	}
	local, domain := email[:at], email[at+1:]

	switch {
	case gmailDomains[domain]:
		domain = "gmail.com"
		local = stripTag(local, "+")
		local = strings.ReplaceAll(local, ".", "")
	case plusTagDomains[domain]:
		local = stripTag(local, "+")
	case dashTagDomains[domain]:
		local = stripTag(local, "-")
	}

	if local == "" {
		return email
	}

	return local + "@" + domain
}

func stripTag(local, separator string) string {
	if idx := strings.Index(local, separator); idx > 0 {
		return local[:idx]
	}
	return local
}

func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}

func IsDisposableEmail(email string) bool {
	return disposableDomains[EmailDomain(email)]
}
