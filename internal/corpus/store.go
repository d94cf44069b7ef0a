package corpus

import "sync/atomic"

// Store publishes the current corpus snapshot. Readers take a snapshot and
// scan it without locks; a reload builds a fresh Corpus and swaps the pointer.
type Store struct {
	current atomic.Pointer[Corpus]
}

// NewStore returns a store serving c, or an empty corpus when c is nil.
func NewStore(c *Corpus) *Store {
	s := &Store{}
	if c == nil {
		c = Empty()
	}
	s.current.Store(c)
	return s
}

// Snapshot returns the corpus currently being served.
func (s *Store) Snapshot() *Corpus { return s.current.Load() }

// Swap publishes c and returns the previous snapshot.
func (s *Store) Swap(c *Corpus) *Corpus {
	if c == nil {
		c = Empty()
	}
	return s.current.Swap(c)
}

// Reload loads path into a new snapshot and swaps it in. On failure the
// current snapshot stays in place.
func (s *Store) Reload(path string, format Format) (*Corpus, error) {
	c, err := LoadFormat(path, format)
	if err != nil {
		return nil, err
	}
	s.Swap(c)
	return c, nil
}
