// Package utils provides common utility functions.
package utils

import (
	"strings"
	"unicode"
)

// IsBlank reports whether s is empty or made only of whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// RemoveWhitespace drops every whitespace rune, including non-breaking spaces.
func RemoveWhitespace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}

		return r
	}, s)
}

// KeepRunes returns s with only the runes for which keep returns true.
func KeepRunes(s string, keep func(rune) bool) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if keep(r) {
			b.WriteRune(r)
		}
	}

	return b.String()
}

// NormalizeWhitespace replaces multiple whitespace with single space.
func NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// TruncateString truncates string to max runes, appending "...".
func TruncateString(str string, maxLength int) string {
	runes := []rune(str)
	if len(runes) <= maxLength {
		return str
	}

	return string(runes[:maxLength]) + "..."
}
