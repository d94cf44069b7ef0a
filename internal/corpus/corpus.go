// Package corpus holds the loaded response corpus: an ordered, immutable
// mapping from group name (a hero or pack) to its response lines.
package corpus

import (
	"iter"
	"slices"

	"dotaresponses/internal/domain"
	"dotaresponses/internal/textutil"
)

// Group is the ordered set of responses belonging to one hero or pack.
type Group struct {
	name       string
	foldedName string
	responses  []domain.Response
	foldedText []string
}

// Name returns the group name exactly as it appears in the source document.
func (g *Group) Name() string { return g.name }

// FoldedName returns the case-folded group name.
func (g *Group) FoldedName() string { return g.foldedName }

// Len returns the number of responses in the group.
func (g *Group) Len() int { return len(g.responses) }

// Response returns the i-th response in document order.
func (g *Group) Response(i int) domain.Response { return g.responses[i] }

// FoldedText returns the case-folded text of the i-th response.
func (g *Group) FoldedText(i int) string { return g.foldedText[i] }

// Responses returns a copy of the group's responses.
func (g *Group) Responses() []domain.Response { return slices.Clone(g.responses) }

// Corpus is an immutable snapshot of every group. It is safe for concurrent
// readers because nothing mutates it after Build.
type Corpus struct {
	groups []*Group
	index  map[string]int
	size   int
}

// Empty returns a corpus without groups.
func Empty() *Corpus {
	return &Corpus{index: map[string]int{}}
}

// Groups iterates the groups in document order.
func (c *Corpus) Groups() iter.Seq[*Group] {
	return func(yield func(*Group) bool) {
		for _, g := range c.groups {
			if !yield(g) {
				return
			}
		}
	}
}

// Group looks up a group by its exact name.
func (c *Corpus) Group(name string) (*Group, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.groups[i], true
}

// Names returns the group names in document order.
func (c *Corpus) Names() []string {
	out := make([]string, len(c.groups))
	for i, g := range c.groups {
		out[i] = g.name
	}
	return out
}

// Len returns the number of groups.
func (c *Corpus) Len() int { return len(c.groups) }

// Size returns the number of responses across all groups.
func (c *Corpus) Size() int { return c.size }

// Builder assembles a Corpus. It is not safe for concurrent use and must not
// be reused after Build.
type Builder struct {
	names     []string
	responses map[string][]domain.Response
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{responses: map[string][]domain.Response{}}
}

// Set replaces the responses of a group. A group keeps the position of its
// first appearance, matching how a duplicate key behaves in a JSON object.
func (b *Builder) Set(name string, responses []domain.Response) {
	if _, ok := b.responses[name]; !ok {
		b.names = append(b.names, name)
	}
	b.responses[name] = slices.Clone(responses)
}

// Append adds responses to the end of a group, creating it on first use.
func (b *Builder) Append(name string, responses ...domain.Response) {
	if _, ok := b.responses[name]; !ok {
		b.names = append(b.names, name)
	}
	b.responses[name] = append(b.responses[name], responses...)
}

// Build freezes the collected groups into a Corpus and precomputes the folded
// text used by the matcher.
func (b *Builder) Build() *Corpus {
	c := &Corpus{
		groups: make([]*Group, 0, len(b.names)),
		index:  make(map[string]int, len(b.names)),
	}
	for _, name := range b.names {
		rs := b.responses[name]
		if rs == nil {
			rs = []domain.Response{}
		}
		folded := make([]string, len(rs))
		for i, r := range rs {
			folded[i] = textutil.Fold(r.Text)
		}
		c.index[name] = len(c.groups)
		c.groups = append(c.groups, &Group{
			name:       name,
			foldedName: textutil.Fold(name),
			responses:  rs,
			foldedText: folded,
		})
		c.size += len(rs)
	}
	return c
}
