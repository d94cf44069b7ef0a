// Package matcher scores corpus responses against free-text queries.
//
// Two query modes are supported. FindBestResponse counts whole-word matches
// of the query tokens and returns the single highest-scoring response, the
// earliest one winning ties. FindAllResponses returns every response whose
// text contains the query as a substring, grouped by corpus group.
//
// All comparisons are case-insensitive and every function here is a pure
// read of an immutable corpus snapshot.
package matcher

import (
	"strings"
	"unicode/utf8"

	"dotaresponses/internal/textutil"
)

// Tokens splits a query on whitespace and returns its distinct folded tokens
// in order of first appearance.
func Tokens(query string) []string {
	fields := strings.Fields(textutil.Fold(query))
	out := fields[:0]
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// WordMatchCount returns how many distinct query tokens occur as whole words
// in text, ignoring case.
func WordMatchCount(query, text string) int {
	return countWords(Tokens(query), textutil.Fold(text))
}

func countWords(tokens []string, folded string) int {
	n := 0
	for _, tok := range tokens {
		if containsWord(folded, tok) {
			n++
		}
	}
	return n
}

// containsWord reports whether word occurs in s delimited by word boundaries,
// where a boundary sits between a word rune and a non-word rune (or the edge
// of s). Both arguments must already be folded. The word is matched literally.
func containsWord(s, word string) bool {
	if word == "" {
		return false
	}
	startWord := textutil.WordAt(word, 0)
	endWord := textutil.WordBefore(word, len(word))
	for from := 0; from <= len(s)-len(word); {
		i := strings.Index(s[from:], word)
		if i < 0 {
			return false
		}
		pos := from + i
		end := pos + len(word)
		if textutil.WordBefore(s, pos) != startWord && textutil.WordAt(s, end) != endWord {
			return true
		}
		_, size := utf8.DecodeRuneInString(s[pos:])
		from = pos + size
	}
	return false
}
