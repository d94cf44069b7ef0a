package domain

import "strings"

// Response is one spoken line and a reference to its audio clip.
// Fields missing from the source document are left empty.
type Response struct {
	Text string `json:"text" yaml:"text" msgpack:"text"`
	URL  string `json:"url" yaml:"url" msgpack:"url"`
}

// HasText reports whether the response carries a non-blank transcript.
func (r Response) HasText() bool { return strings.TrimSpace(r.Text) != "" }

// AudioRef returns the audio reference, or "" when the record has none.
func (r Response) AudioRef() string { return r.URL }

// Match is the single best response found for a query.
type Match struct {
	Group    string
	Response Response
	Score    int
}

// GroupMatches holds every matching response of one group, in corpus order.
type GroupMatches struct {
	Group     string     `json:"group"`
	Display   string     `json:"display"`
	Responses []Response `json:"responses"`
}

// GroupedResponses is the result of an all-responses query, ordered like the corpus.
type GroupedResponses []GroupMatches

// Len returns the total number of responses across all groups.
func (g GroupedResponses) Len() int {
	n := 0
	for _, gm := range g {
		n += len(gm.Responses)
	}
	return n
}

// ByGroup returns the result keyed by original group name.
func (g GroupedResponses) ByGroup() map[string][]Response {
	out := make(map[string][]Response, len(g))
	for _, gm := range g {
		out[gm.Group] = gm.Responses
	}
	return out
}

// ByDisplayName returns the result keyed by display name. A group whose key
// collides with any other key is keyed by its original group name instead,
// repeated until every key is distinct, so groups are never merged.
func (g GroupedResponses) ByDisplayName() map[string][]Response {
	keys := make([]string, len(g))
	for i, gm := range g {
		keys[i] = gm.Display
	}
	for changed := true; changed; {
		changed = false
		seen := make(map[string]int, len(keys))
		for _, k := range keys {
			seen[k]++
		}
		for i, k := range keys {
			if seen[k] > 1 && k != g[i].Group {
				keys[i] = g[i].Group
				changed = true
			}
		}
	}
	out := make(map[string][]Response, len(g))
	for i, gm := range g {
		out[keys[i]] = gm.Responses
	}
	return out
}

// Truncate returns a copy holding at most limit responses in total. A limit
// of zero or less returns the result unchanged.
func (g GroupedResponses) Truncate(limit int) GroupedResponses {
	if limit <= 0 || g.Len() <= limit {
		return g
	}
	out := make(GroupedResponses, 0, len(g))
	for _, gm := range g {
		if limit == 0 {
			break
		}
		if len(gm.Responses) > limit {
			gm.Responses = gm.Responses[:limit]
		}
		limit -= len(gm.Responses)
		out = append(out, gm)
	}
	return out
}

// Query is an already-split request: free text plus an optional character filter.
type Query struct {
	Text string
	Hero string
}

// ResponseFinder defines the read operations exposed by the application core.
type ResponseFinder interface {
	Best(q Query) (Match, bool)
	All(q Query) GroupedResponses
}
