package matcher

import (
	"strings"

	"dotaresponses/internal/corpus"
	"dotaresponses/internal/domain"
	"dotaresponses/internal/textutil"
)

// FindBestResponse returns the response whose text matches the most distinct
// query words. Only a strictly higher score replaces the current best, so the
// earliest response in group-then-record order wins ties. A response needs at
// least one matching word; the boolean is false when nothing qualifies.
//
// An empty hero matches every group; otherwise only groups whose name
// contains hero, ignoring case, are scanned.
func FindBestResponse(c *corpus.Corpus, query, hero string) (domain.Match, bool) {
	tokens := Tokens(query)
	if len(tokens) == 0 || c == nil {
		return domain.Match{}, false
	}
	filter := textutil.Fold(hero)

	var (
		best      domain.Match
		bestScore int
	)
	for g := range c.Groups() {
		if !groupSelected(g, filter) {
			continue
		}
		for i := 0; i < g.Len(); i++ {
			score := countWords(tokens, g.FoldedText(i))
			if score > bestScore {
				bestScore = score
				best = domain.Match{Group: g.Name(), Response: g.Response(i), Score: score}
				if bestScore == len(tokens) {
					// nothing later can beat a full match
					return best, true
				}
			}
		}
	}
	return best, bestScore > 0
}

// groupSelected applies the character filter. filter must already be folded.
func groupSelected(g *corpus.Group, filter string) bool {
	return filter == "" || strings.Contains(g.FoldedName(), filter)
}
