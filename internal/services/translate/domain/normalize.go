package domain

import "strings"

// Normalize converts raw input text into the canonical comparable form used
// for phrase matching and spelling decomposition: lower-cased, stripped of
// everything that is not a lowercase letter, digit, or whitespace, and
// trimmed. It is total and idempotent.
func Normalize(text string) string {
	lowered := strings.ToLower(text)
	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}
