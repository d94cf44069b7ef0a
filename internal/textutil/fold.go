package textutil

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
)

// Fold returns the case-folded form of s. A Caser is stateful, so a fresh one
// is created per call.
func Fold(s string) string {
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(Fold(s), Fold(substr))
}

// TrimSuffixFold removes suffix from the end of s when present, ignoring case.
// The suffix is compared over its own byte length.
func TrimSuffixFold(s, suffix string) string {
	if suffix == "" || len(s) < len(suffix) {
		return s
	}
	tail := s[len(s)-len(suffix):]
	if strings.EqualFold(tail, suffix) {
		return s[:len(s)-len(suffix)]
	}
	return s
}

// IsWordRune reports whether r counts as a word character for whole-word
// matching: letters, numbers and the underscore.
func IsWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// WordBefore reports whether the rune ending at byte offset i of s is a word rune.
func WordBefore(s string, i int) bool {
	if i <= 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return IsWordRune(r)
}

// WordAt reports whether the rune starting at byte offset i of s is a word rune.
func WordAt(s string, i int) bool {
	if i >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return IsWordRune(r)
}
