package values

import "strings"

// stripNonDigits drops every character outside '0'..'9', keeping the input's
// digit order. Formatting punctuation (dots, slashes, hyphens, spaces) is
// discarded here so validators only ever see bare digit strings.
func stripNonDigits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// allSameDigit reports whether s is non-empty and made of one repeated digit.
func allSameDigit(s string) bool {
	if s == "" {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] != s[0] {
			return false
		}
	}
	return true
}
