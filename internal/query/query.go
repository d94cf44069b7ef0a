// Package query parses the user-facing "<hero>/<text>" syntax into an
// already-split domain.Query. Only front ends use it; the matcher never sees
// the raw string.
package query

import (
	"strings"

	"dotaresponses/internal/domain"
)

// Separator splits the optional hero filter from the query text.
const Separator = "/"

// Parse splits input on the first Separator. Text after the separator may
// itself contain slashes. Both parts are trimmed; an empty text falls back to
// defaultText.
func Parse(input, defaultText string) domain.Query {
	var q domain.Query
	if hero, text, ok := strings.Cut(input, Separator); ok {
		q.Hero = strings.TrimSpace(hero)
		q.Text = strings.TrimSpace(text)
	} else {
		q.Text = strings.TrimSpace(input)
	}
	if q.Text == "" {
		q.Text = defaultText
	}
	return q
}

// String renders q back into the "<hero>/<text>" form.
func String(q domain.Query) string {
	if q.Hero == "" {
		return q.Text
	}
	return q.Hero + Separator + q.Text
}
