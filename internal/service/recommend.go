package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mmcdole/cinepick/internal/domain"
	"github.com/mmcdole/cinepick/internal/recommend"
)

const (
	// DefaultRecommendEndpoint is the listing personalized results are drawn from
	DefaultRecommendEndpoint = "/movie/popular"

	todayRankLimit = 20
	todayListLimit = 10
)

// TodayEndpoints are merged, in order, into the daily candidate pool
var TodayEndpoints = []string{"/trending/movie/day", "/movie/popular", "/movie/top_rated"}

// listingFetcher is the part of the gateway recommendations need
type listingFetcher interface {
	FetchListing(ctx context.Context, endpoint string) domain.Page
	FetchMulti(ctx context.Context, endpoints ...string) []domain.Title
}

type profiler interface {
	Profile(ctx context.Context, userID string) domain.PreferenceProfile
}

type dislikeStore interface {
	GetDislikedIDs() ([]int, bool)
	SaveDislikedIDs(ids []int) error
}

// Recommendation is a ranked title with the line explaining it
type Recommendation struct {
	Title  domain.Title
	Reason string
}

// DailyPick is the "today" recommendation and the list it was picked from
type DailyPick struct {
	Pick         Recommendation
	List         []domain.Title
	Personalized bool
}

// RecommendService produces personalized and daily recommendations
type RecommendService struct {
	catalog listingFetcher
	prefs   profiler
	store   dislikeStore
	logger  *slog.Logger

	mu       sync.Mutex
	disliked []int
}

// NewRecommendService creates a recommendation service, loading the
// persisted disliked ids
func NewRecommendService(catalog listingFetcher, prefs profiler, store dislikeStore, logger *slog.Logger) *RecommendService {
	if logger == nil {
		logger = slog.Default()
	}
	disliked, _ := store.GetDislikedIDs()
	return &RecommendService{
		catalog:  catalog,
		prefs:    prefs,
		store:    store,
		logger:   logger,
		disliked: disliked,
	}
}

// Personalized ranks a listing endpoint against the user's profile.
// With genreBased set only titles carrying one of the profile's top genres
// are considered.
func (s *RecommendService) Personalized(ctx context.Context, userID, endpoint string, limit int, genreBased bool) []Recommendation {
	if endpoint == "" {
		endpoint = DefaultRecommendEndpoint
	}
	page := s.catalog.FetchListing(ctx, endpoint)
	candidates := s.withoutDisliked(page.Results)
	p := s.prefs.Profile(ctx, userID)

	var ranked []domain.Title
	if genreBased {
		ranked = recommend.GenreBased(candidates, p, limit)
	} else {
		ranked = recommend.Rank(candidates, p, limit)
	}

	out := make([]Recommendation, len(ranked))
	for i, t := range ranked {
		out[i] = Recommendation{Title: t, Reason: recommend.Explain(t, p)}
	}
	return out
}

// Today picks one title for the day from trending, popular and top rated
// listings. Returns domain.ErrNotFound when no candidate survives.
func (s *RecommendService) Today(ctx context.Context, userID string) (DailyPick, error) {
	candidates := s.withoutDisliked(s.catalog.FetchMulti(ctx, TodayEndpoints...))
	p := s.prefs.Profile(ctx, userID)

	personalized := p.HasData()
	if personalized {
		candidates = recommend.Rank(candidates, p, todayRankLimit)
	}
	if len(candidates) > todayListLimit {
		candidates = candidates[:todayListLimit]
	}
	if len(candidates) == 0 {
		return DailyPick{}, fmt.Errorf("failed to pick today's title: %w", domain.ErrNotFound)
	}

	pick := Recommendation{Title: candidates[0]}
	if personalized {
		pick.Reason = recommend.Explain(pick.Title, p)
	} else {
		pick.Reason = recommend.DailyReason(pick.Title)
	}
	return DailyPick{Pick: pick, List: candidates, Personalized: personalized}, nil
}

// Dislike hides a title from future recommendations
func (s *RecommendService) Dislike(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.disliked {
		if d == id {
			return nil
		}
	}
	next := append(append([]int(nil), s.disliked...), id)
	if err := s.store.SaveDislikedIDs(next); err != nil {
		return fmt.Errorf("failed to save disliked ids: %w", err)
	}
	s.disliked = next
	s.logger.Info("disliked title", "titleID", id)
	return nil
}

// DislikedIDs returns the hidden title ids in the order they were added
func (s *RecommendService) DislikedIDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.disliked...)
}

func (s *RecommendService) withoutDisliked(titles []domain.Title) []domain.Title {
	s.mu.Lock()
	hidden := make(map[int]bool, len(s.disliked))
	for _, id := range s.disliked {
		hidden[id] = true
	}
	s.mu.Unlock()

	out := make([]domain.Title, 0, len(titles))
	for _, t := range titles {
		if !hidden[t.ID] {
			out = append(out, t)
		}
	}
	return out
}
