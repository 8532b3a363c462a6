package session

import (
	"regexp"
	"strings"
)

// Letters and whitespace only, minimum two characters. ASCII on purpose:
// the directory applies its own looser policy server-side.
var nameRe = regexp.MustCompile(`^[a-zA-Z\s]{2,}$`)

// ValidateName reports whether name is at least 2 characters of letters and
// whitespace after trimming.
func ValidateName(name string) bool {
	return nameRe.MatchString(strings.TrimSpace(name))
}

// ValidatePhone reports whether phone reduces to exactly 10 digits once all
// non-digit characters are stripped.
func ValidatePhone(phone string) bool {
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits == 10
}

func trimmed(s string) string { return strings.TrimSpace(s) }
