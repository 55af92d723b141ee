// Package service holds the user-facing operations built on top of the
// gateway, the watch history and the document store.
package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/mmcdole/cinepick/internal/domain"
	"github.com/mmcdole/cinepick/internal/recommend"
)

const (
	// ProfileHistoryLimit is how many history entries feed a profile
	ProfileHistoryLimit = 20

	detailConcurrency = 4
)

// detailFetcher resolves a title's full record
type detailFetcher interface {
	FetchDetail(ctx context.Context, id int, mediaType domain.MediaType) (*domain.TitleDetail, error)
}

// recentHistory lists the latest movie and series entries
type recentHistory interface {
	RecentTitles(limit int) []domain.WatchProgress
}

// PreferenceService builds preference profiles for a user
type PreferenceService struct {
	catalog   detailFetcher
	history   recentHistory
	favorites domain.FavoriteRepository
	comments  domain.CommentRepository
	logger    *slog.Logger
}

// NewPreferenceService creates a preference service. The favorite and
// comment repositories may be nil when the document store is unreachable.
func NewPreferenceService(catalog detailFetcher, history recentHistory, favorites domain.FavoriteRepository, comments domain.CommentRepository, logger *slog.Logger) *PreferenceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PreferenceService{
		catalog:   catalog,
		history:   history,
		favorites: favorites,
		comments:  comments,
		logger:    logger,
	}
}

// Profile analyzes the user's recent history, favorites and comments.
// Sources that fail are logged and left out of the profile.
func (s *PreferenceService) Profile(ctx context.Context, userID string) domain.PreferenceProfile {
	watched := s.watchedTitles(ctx)

	var favorites []domain.Favorite
	if s.favorites != nil {
		var err error
		favorites, err = s.favorites.ListFavorites(ctx, userID)
		if err != nil {
			s.logger.Warn("failed to load favorites", "userID", userID, "error", err)
		}
	}

	var comments []domain.Comment
	if s.comments != nil {
		var err error
		comments, err = s.comments.ListUserComments(ctx, userID)
		if err != nil {
			s.logger.Warn("failed to load comments", "userID", userID, "error", err)
		}
	}

	p := recommend.Analyze(watched, favorites, comments)
	s.logger.Debug("built preference profile",
		"userID", userID,
		"watched", p.TotalWatched,
		"liked", p.TotalLiked,
		"genres", len(p.Genres))
	return p
}

// watchedTitles resolves recent history entries into detail records,
// keeping history order and skipping entries that fail to resolve
func (s *PreferenceService) watchedTitles(ctx context.Context) []domain.Title {
	entries := s.history.RecentTitles(ProfileHistoryLimit)
	if len(entries) == 0 {
		return nil
	}

	resolved := make([]*domain.Title, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(detailConcurrency)
	for i, e := range entries {
		g.Go(func() error {
			d, err := s.catalog.FetchDetail(gctx, e.TitleID, e.MediaType)
			if err != nil {
				s.logger.Debug("skipping history entry", "titleID", e.TitleID, "error", err)
				return nil
			}
			resolved[i] = &d.Title
			return nil
		})
	}
	_ = g.Wait()

	out := make([]domain.Title, 0, len(resolved))
	for _, t := range resolved {
		if t != nil {
			out = append(out, *t)
		}
	}
	return out
}
