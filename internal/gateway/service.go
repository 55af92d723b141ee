// Package gateway wraps the metadata API with forced safety parameters,
// the content filter and response memoization.
package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/cinepick/internal/cache"
	"github.com/mmcdole/cinepick/internal/domain"
)

const (
	// DefaultSearchReadyWait bounds how long a search waits for the keyword list
	DefaultSearchReadyWait = 500 * time.Millisecond

	suggestMinRunes   = 2
	suggestPerType    = 3
	suggestTotalLimit = 5
)

// contentFilter is the safety predicate (consumer-defined interface)
type contentFilter interface {
	Allowed(t *domain.Title) bool
	Titles(titles []domain.Title) []domain.Title
	BlocksQuery(query string) bool
}

// readiness reports whether the remote keyword list has finished loading
type readiness interface {
	WaitReady(ctx context.Context, wait time.Duration) bool
}

// Options tune a gateway Service
type Options struct {
	// Cache memoizes responses; nil uses the gateway preset
	Cache *cache.Bounded

	// SearchReadyWait is how long a search waits for the keyword list
	// before giving up with empty results
	SearchReadyWait time.Duration
}

// Service is the content gateway
type Service struct {
	catalog   domain.CatalogRepository
	filter    contentFilter
	keywords  readiness
	cache     *cache.Bounded
	readyWait time.Duration
	logger    *slog.Logger
}

// NewService creates a gateway over the metadata API
func NewService(catalog domain.CatalogRepository, filter contentFilter, keywords readiness, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewGateway()
	}
	if opts.SearchReadyWait <= 0 {
		opts.SearchReadyWait = DefaultSearchReadyWait
	}
	return &Service{
		catalog:   catalog,
		filter:    filter,
		keywords:  keywords,
		cache:     opts.Cache,
		readyWait: opts.SearchReadyWait,
		logger:    logger,
	}
}

// FetchListing returns the filtered results of a listing endpoint such as
// "/movie/popular?page=2". Any caller-supplied include_adult is dropped.
// Failures are logged and yield an empty page.
func (s *Service) FetchListing(ctx context.Context, endpoint string) domain.Page {
	path, query, err := normalizeEndpoint(endpoint)
	if err != nil {
		s.logger.Warn("invalid listing endpoint", "endpoint", endpoint, "error", err)
		return domain.Page{}
	}

	key := "movies_" + cleanEndpoint(path, query)
	if v, ok := s.cache.Get(key); ok {
		return *v.(*domain.Page)
	}

	page, err := s.catalog.GetListing(ctx, path, query)
	if err != nil {
		s.logger.Error("failed to fetch listing", "endpoint", path, "error", err)
		return domain.Page{}
	}

	filtered := s.filterPage(page)
	s.cache.Set(key, filtered)
	return *filtered
}

// FetchDetail returns a title's full record. Unlike listings, failures are
// returned; a record rejected by the content filter yields domain.ErrBlocked.
func (s *Service) FetchDetail(ctx context.Context, id int, mediaType domain.MediaType) (*domain.TitleDetail, error) {
	key := fmt.Sprintf("detail_%s_%d", mediaType, id)

	var detail *domain.TitleDetail
	if v, ok := s.cache.Get(key); ok {
		detail = v.(*domain.TitleDetail)
	} else {
		d, err := s.catalog.GetDetail(ctx, id, mediaType)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s %d: %w", mediaType, id, err)
		}
		d.Recommendations = s.filter.Titles(d.Recommendations)
		d.Similar = s.filter.Titles(d.Similar)
		s.cache.Set(key, d)
		detail = d
	}

	// Checked on every call: the keyword list may have loaded since caching
	if !s.filter.Allowed(&detail.Title) {
		s.logger.Info("detail blocked by content filter", "titleID", id, "mediaType", mediaType)
		return nil, domain.ErrBlocked
	}
	return detail, nil
}

// FetchSeasonEpisodes returns one season's episode list
func (s *Service) FetchSeasonEpisodes(ctx context.Context, tvID, seasonNumber int) (*domain.Season, error) {
	key := fmt.Sprintf("season_%d_%d", tvID, seasonNumber)
	if v, ok := s.cache.Get(key); ok {
		return v.(*domain.Season), nil
	}

	season, err := s.catalog.GetSeason(ctx, tvID, seasonNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch season %d of %d: %w", seasonNumber, tvID, err)
	}
	s.cache.Set(key, season)
	return season, nil
}

// FetchSearchResults searches one media type. It returns an empty page when
// the keyword list is not ready in time, when the query is empty or contains
// a banned keyword, and on any failure.
func (s *Service) FetchSearchResults(ctx context.Context, query string, mediaType domain.MediaType) domain.Page {
	q := strings.TrimSpace(query)
	if q == "" {
		return domain.Page{}
	}

	if s.keywords != nil && !s.keywords.WaitReady(ctx, s.readyWait) {
		s.logger.Warn("keyword list not ready, skipping search", "mediaType", mediaType)
		return domain.Page{}
	}
	if s.filter.BlocksQuery(q) {
		s.logger.Info("search query blocked by content filter", "mediaType", mediaType)
		return domain.Page{}
	}

	key := fmt.Sprintf("search_%s_%s", mediaType, url.QueryEscape(strings.ToLower(q)))
	if v, ok := s.cache.Get(key); ok {
		return *v.(*domain.Page)
	}

	page, err := s.catalog.Search(ctx, q, mediaType)
	if err != nil {
		s.logger.Error("failed to search", "mediaType", mediaType, "error", err)
		return domain.Page{}
	}

	filtered := s.filterPage(page)
	s.cache.Set(key, filtered)
	return *filtered
}

// FetchMulti fetches several listing endpoints concurrently and merges
// their results in endpoint order, keeping the first occurrence of each id
func (s *Service) FetchMulti(ctx context.Context, endpoints ...string) []domain.Title {
	pages := make([]domain.Page, len(endpoints))

	g, gctx := errgroup.WithContext(ctx)
	for i, ep := range endpoints {
		g.Go(func() error {
			pages[i] = s.FetchListing(gctx, ep)
			return nil
		})
	}
	_ = g.Wait() // FetchListing never fails

	lists := make([][]domain.Title, len(pages))
	for i := range pages {
		lists[i] = pages[i].Results
	}
	return MergeUnique(lists...)
}

// Suggest returns up to five search suggestions, the top three movies
// followed by the top three series
func (s *Service) Suggest(ctx context.Context, query string) []domain.Title {
	q := strings.TrimSpace(query)
	if utf8.RuneCountInString(q) < suggestMinRunes {
		return nil
	}

	var movies, shows domain.Page
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		movies = s.FetchSearchResults(gctx, q, domain.MediaTypeMovie)
		return nil
	})
	g.Go(func() error {
		shows = s.FetchSearchResults(gctx, q, domain.MediaTypeTV)
		return nil
	})
	_ = g.Wait()

	merged := MergeUnique(firstN(movies.Results, suggestPerType), firstN(shows.Results, suggestPerType))
	return firstN(merged, suggestTotalLimit)
}

// MergeUnique concatenates lists in order, dropping repeated ids
func MergeUnique(lists ...[]domain.Title) []domain.Title {
	seen := make(map[int]bool)
	var out []domain.Title
	for _, list := range lists {
		for _, t := range list {
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			out = append(out, t)
		}
	}
	return out
}

func (s *Service) filterPage(page *domain.Page) *domain.Page {
	if page == nil {
		return &domain.Page{}
	}
	filtered := *page
	filtered.Results = s.filter.Titles(page.Results)
	return &filtered
}

// normalizeEndpoint splits an endpoint into its path and query, dropping
// include_adult so the client's forced value is the only one sent
func normalizeEndpoint(endpoint string) (string, url.Values, error) {
	path, rawQuery, _ := strings.Cut(strings.TrimSpace(endpoint), "?")
	if path == "" {
		return "", nil, fmt.Errorf("empty endpoint path")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse endpoint query: %w", err)
	}
	query.Del("include_adult")
	return path, query, nil
}

func cleanEndpoint(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}

func firstN(titles []domain.Title, n int) []domain.Title {
	if len(titles) > n {
		return titles[:n]
	}
	return titles
}
