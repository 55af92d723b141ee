package service

import (
	"fmt"

	"github.com/sahilm/fuzzy"
)

// queryList implements fuzzy.Source over the remembered queries
type queryList []string

func (q queryList) String(i int) string { return q[i] }
func (q queryList) Len() int            { return len(q) }

// RecentQueries returns remembered queries matching pattern, best match
// first. An empty pattern returns the whole history, most recent first.
func (s *SearchService) RecentQueries(pattern string) []string {
	s.mu.Lock()
	queries := append(queryList(nil), s.queries...)
	s.mu.Unlock()

	if pattern == "" {
		return queries
	}

	matches := fuzzy.FindFrom(pattern, queries)
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.Str
	}
	return out
}

// ClearHistory forgets every remembered query
func (s *SearchService) ClearHistory() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveSearchHistory([]string{}); err != nil {
		return fmt.Errorf("failed to clear search history: %w", err)
	}
	s.queries = nil
	return nil
}
