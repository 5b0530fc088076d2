// Package validate holds the pure input checks used by dialog flows.
// Every function is side-effect free: a failed check is always recovered
// by re-prompting the same dialog state.
package validate

import (
	"html"
	"regexp"
	"strings"
)

// phoneRe matches an international-style number: optional leading +,
// first digit non-zero, 2 to 15 digits total.
var phoneRe = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// Sanitize neutralizes markup in user-supplied text so stored and
// re-displayed values cannot be interpreted as HTML.
func Sanitize(input string) string {
	return html.EscapeString(strings.TrimSpace(input))
}

// IsValidPhone reports whether the text looks like a phone number.
func IsValidPhone(phone string) bool {
	return phoneRe.MatchString(strings.TrimSpace(phone))
}

// IsValidAddress applies the minimal length policy for addresses.
func IsValidAddress(address string) bool {
	return len([]rune(strings.TrimSpace(address))) > 5
}
