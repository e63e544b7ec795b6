package logging

import (
	"strings"
	"unicode/utf8"
)

// RedactEmail shows first 2 runes of the local part and replaces the rest
// with "****", keeping the domain intact. It leaves the input unchanged if:
// - empty
// - malformed (no '@' or '@' at ends)
// - local part has fewer than 3 runes (too short to meaningfully redact)
func RedactEmail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		// malformed: no '@', or '@' at start/end
		return s
	}

	local, domain := s[:at], s[at+1:]
	if utf8.RuneCountInString(local) < 3 {
		// not enough characters to redact
		return s
	}

	// take first 2 runes from local (rune-safe)
	offset := 0
	for count := 0; count < 2 && offset < len(local); count++ {
		_, size := utf8.DecodeRuneInString(local[offset:])
		offset += size
	}
	prefix := local[:offset]

	return prefix + "****@" + domain
}

// RedactPhone keeps the dialing prefix (leading '+' and up to 3 digits) and the
// last 2 digits, masking everything in between. Numbers too short to mask
// meaningfully are returned unchanged.
func RedactPhone(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	prefixLen := 0
	if strings.HasPrefix(s, "+") {
		prefixLen = 1
	}
	for prefixLen < len(s) && prefixLen < 4 && s[prefixLen] >= '0' && s[prefixLen] <= '9' {
		prefixLen++
	}

	if len(s)-prefixLen < 5 {
		// not enough digits to redact
		return s
	}

	return s[:prefixLen] + strings.Repeat("*", len(s)-prefixLen-2) + s[len(s)-2:]
}
