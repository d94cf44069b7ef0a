package service

import (
	"fmt"
	"log/slog"

	"dotaresponses/internal/corpus"
	"dotaresponses/internal/domain"
	"dotaresponses/internal/matcher"
)

// ResponseService answers queries against the current corpus snapshot. It
// holds no per-query state, so one instance serves any number of goroutines.
type ResponseService struct {
	store       *corpus.Store
	groupSuffix string
	maxResults  int
}

// NewResponseService wires a service to a store. maxResults caps All; zero
// means unlimited.
func NewResponseService(store *corpus.Store, groupSuffix string, maxResults int) *ResponseService {
	if store == nil {
		store = corpus.NewStore(nil)
	}
	return &ResponseService{store: store, groupSuffix: groupSuffix, maxResults: maxResults}
}

// Best returns the best-matching response for q.
func (s *ResponseService) Best(q domain.Query) (domain.Match, bool) {
	return matcher.FindBestResponse(s.store.Snapshot(), q.Text, q.Hero)
}

// All returns every response containing q.Text, capped at the configured
// maximum.
func (s *ResponseService) All(q domain.Query) domain.GroupedResponses {
	return s.AllN(q, s.maxResults)
}

// AllN is All with an explicit cap; zero means unlimited.
func (s *ResponseService) AllN(q domain.Query, limit int) domain.GroupedResponses {
	res := matcher.FindAllResponses(s.store.Snapshot(), q.Text, q.Hero, s.groupSuffix)
	return res.Truncate(limit)
}

// DisplayName strips the configured suffix from a group name.
func (s *ResponseService) DisplayName(group string) string {
	return matcher.DisplayName(group, s.groupSuffix)
}

// Stats describes the corpus currently being served.
type Stats struct {
	Groups    int
	Responses int
}

// Stats reports the size of the current snapshot.
func (s *ResponseService) Stats() Stats {
	c := s.store.Snapshot()
	return Stats{Groups: c.Len(), Responses: c.Size()}
}

// Store exposes the underlying snapshot store, e.g. for a reload watcher.
func (s *ResponseService) Store() *corpus.Store { return s.store }

// OpenStore loads the corpus for serving. When required is false a load
// failure is logged and an empty corpus is served; otherwise the error is
// returned.
func OpenStore(path string, format corpus.Format, required bool, logger *slog.Logger) (*corpus.Store, error) {
	c, err := corpus.LoadOrEmpty(path, format)
	if err != nil {
		if required {
			return nil, fmt.Errorf("open corpus: %w", err)
		}
		logger.Error("cannot load corpus, serving empty corpus", "path", path, "err", err)
		return corpus.NewStore(c), nil
	}
	logger.Info("corpus loaded", "path", path, "groups", c.Len(), "responses", c.Size())
	return corpus.NewStore(c), nil
}
