package matcher

import (
	"strings"

	"dotaresponses/internal/corpus"
	"dotaresponses/internal/domain"
	"dotaresponses/internal/textutil"
)

// DefaultGroupSuffix is stripped from group names to build display names.
const DefaultGroupSuffix = "_responses"

// DisplayName strips suffix from the end of a group name, ignoring case.
func DisplayName(group, suffix string) string {
	return textutil.TrimSuffixFold(group, suffix)
}

// FindAllResponses returns every response whose text contains query as a
// substring, ignoring case. Groups without a match are left out and each
// group keeps corpus order. Results stay keyed by the original group name;
// Display carries the name with suffix removed. An empty query matches every
// response. Nothing matching yields an empty result, never an error.
func FindAllResponses(c *corpus.Corpus, query, hero, suffix string) domain.GroupedResponses {
	out := domain.GroupedResponses{}
	if c == nil {
		return out
	}
	needle := textutil.Fold(query)
	filter := textutil.Fold(hero)
	for g := range c.Groups() {
		if !groupSelected(g, filter) {
			continue
		}
		var matched []domain.Response
		for i := 0; i < g.Len(); i++ {
			if strings.Contains(g.FoldedText(i), needle) {
				matched = append(matched, g.Response(i))
			}
		}
		if len(matched) == 0 {
			continue
		}
		out = append(out, domain.GroupMatches{
			Group:     g.Name(),
			Display:   DisplayName(g.Name(), suffix),
			Responses: matched,
		})
	}
	return out
}
