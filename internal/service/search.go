package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/cinepick/internal/domain"
)

// SearchHistoryLimit caps the number of remembered queries
const SearchHistoryLimit = 10

// searcher is the part of the gateway search needs
type searcher interface {
	FetchSearchResults(ctx context.Context, query string, mediaType domain.MediaType) domain.Page
	Suggest(ctx context.Context, query string) []domain.Title
}

type searchHistoryStore interface {
	GetSearchHistory() ([]string, bool)
	SaveSearchHistory(queries []string) error
}

// SearchService runs title searches and remembers recent queries
type SearchService struct {
	catalog searcher
	store   searchHistoryStore
	logger  *slog.Logger

	mu      sync.Mutex
	queries []string // most recent first
}

// NewSearchService creates a search service, loading the persisted history
func NewSearchService(catalog searcher, store searchHistoryStore, logger *slog.Logger) *SearchService {
	if logger == nil {
		logger = slog.Default()
	}
	queries, _ := store.GetSearchHistory()
	return &SearchService{
		catalog: catalog,
		store:   store,
		logger:  logger,
		queries: queries,
	}
}

// Search records the query and returns the filtered results for one media
// type. An empty media type searches movies.
func (s *SearchService) Search(ctx context.Context, query string, mediaType domain.MediaType) (domain.Page, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return domain.Page{}, domain.ErrEmptyQuery
	}
	if mediaType == "" {
		mediaType = domain.MediaTypeMovie
	}

	if err := s.remember(q); err != nil {
		// History is a convenience, the search still runs
		s.logger.Warn("failed to save search history", "error", err)
	}

	page := s.catalog.FetchSearchResults(ctx, q, mediaType)
	s.logger.Debug("search complete", "query", q, "mediaType", mediaType, "results", len(page.Results))
	return page, nil
}

// Suggest returns gateway suggestions ordered by how close each title's
// name is to the query. Equal distances keep the gateway order.
func (s *SearchService) Suggest(ctx context.Context, query string) []domain.Title {
	titles := s.catalog.Suggest(ctx, query)
	if len(titles) < 2 {
		return titles
	}

	q := strings.ToLower(strings.TrimSpace(query))
	distances := make(map[int]int, len(titles))
	for _, t := range titles {
		distances[t.ID] = closeness(q, t)
	}
	sort.SliceStable(titles, func(i, j int) bool {
		return distances[titles[i].ID] < distances[titles[j].ID]
	})
	return titles
}

// closeness is the smallest edit distance between the query and any of the
// title's names. Names containing the query rank ahead of the rest.
func closeness(q string, t domain.Title) int {
	names := append([]string{t.Name, t.OriginalName}, t.AltNames...)

	best := -1
	for _, name := range names {
		if name == "" {
			continue
		}
		lower := strings.ToLower(name)
		d := fuzzy.LevenshteinDistance(q, lower)
		if !fuzzy.MatchFold(q, lower) {
			d += len(lower) + len(q)
		}
		if best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return len(q)
	}
	return best
}

// remember puts q at the front of the search history
func (s *SearchService) remember(q string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]string, 0, SearchHistoryLimit)
	next = append(next, q)
	for _, prev := range s.queries {
		if len(next) == SearchHistoryLimit {
			break
		}
		if !strings.EqualFold(prev, q) {
			next = append(next, prev)
		}
	}
	s.queries = next
	if err := s.store.SaveSearchHistory(next); err != nil {
		return fmt.Errorf("failed to persist search history: %w", err)
	}
	return nil
}
