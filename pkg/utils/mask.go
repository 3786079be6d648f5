package utils

import (
	"regexp"
	"strings"
)

var dsnPasswordRegex = regexp.MustCompile(`(:)([^:@]+)(@)`)

// MaskDSN hides the password segment of a connection string (redis://:pass@host).
func MaskDSN(dsn string) string {
	return dsnPasswordRegex.ReplaceAllString(dsn, ":***@")
}

// MaskSecret keeps the first two runes of s and replaces the rest with "***".
// Values of two runes or fewer are fully masked.
func MaskSecret(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	if len(r) <= 2 {
		return "***"
	}
	var b strings.Builder
	b.WriteString(string(r[:2]))
	b.WriteString("***")
	return b.String()
}
