package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/cinepick/internal/domain"
)

// FavoritesService toggles and lists a user's favorites
type FavoritesService struct {
	repo   domain.FavoriteRepository
	logger *slog.Logger
}

// NewFavoritesService creates a favorites service. A nil repository makes
// every call fail with domain.ErrDocStoreUnavailable.
func NewFavoritesService(repo domain.FavoriteRepository, logger *slog.Logger) *FavoritesService {
	if logger == nil {
		logger = slog.Default()
	}
	return &FavoritesService{repo: repo, logger: logger}
}

// Toggle adds the title to the user's favorites, or removes it if it is
// already there. Returns true when the title ended up favorited.
func (s *FavoritesService) Toggle(ctx context.Context, userID string, t domain.Title) (bool, error) {
	if s.repo == nil {
		return false, domain.ErrDocStoreUnavailable
	}

	liked, err := s.IsFavorite(ctx, userID, t.ID)
	if err != nil {
		return false, err
	}
	if liked {
		if err := s.repo.DeleteFavorite(ctx, userID, t.ID); err != nil {
			return false, fmt.Errorf("failed to remove favorite: %w", err)
		}
		s.logger.Info("removed favorite", "userID", userID, "titleID", t.ID)
		return false, nil
	}

	if err := s.repo.SaveFavorite(ctx, userID, domain.Favorite{Title: t}); err != nil {
		return false, fmt.Errorf("failed to save favorite: %w", err)
	}
	s.logger.Info("added favorite", "userID", userID, "titleID", t.ID)
	return true, nil
}

// IsFavorite reports whether the user has favorited the title
func (s *FavoritesService) IsFavorite(ctx context.Context, userID string, titleID int) (bool, error) {
	favorites, err := s.List(ctx, userID)
	if err != nil {
		return false, err
	}
	for _, f := range favorites {
		if f.ID == titleID {
			return true, nil
		}
	}
	return false, nil
}

// List returns the user's favorites, most recently added first
func (s *FavoritesService) List(ctx context.Context, userID string) ([]domain.Favorite, error) {
	if s.repo == nil {
		return nil, domain.ErrDocStoreUnavailable
	}
	favorites, err := s.repo.ListFavorites(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}
