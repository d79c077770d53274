package utils

import (
	"strings"
)

// SplitAndTrim parses a comma separated tag string into a clean slice:
// elements trimmed, empties dropped, order preserved.
func SplitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

// Truncate returns at most n bytes of s without splitting the tail rune.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && s[n]&0xC0 == 0x80 {
		n--
	}
	return s[:n]
}
