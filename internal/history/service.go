// Package history tracks playback progress per movie and per episode,
// persisted through domain.Store with an in-memory mirror for reads.
package history

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/cinepick/internal/domain"
)

// ListLimit caps the number of entries ListHistory returns
const ListLimit = 50

// ProgressUpdate is one playback position report
type ProgressUpdate struct {
	TitleID         int
	MediaType       domain.MediaType
	SeasonNumber    int // TV only
	EpisodeNumber   int // TV only, starts at 1
	PositionSeconds float64
	DurationSeconds float64
}

// Service is the watch history store
type Service struct {
	store  domain.Store
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	entries map[string]domain.WatchProgress
}

// NewService loads the persisted history into memory
func NewService(store domain.Store, logger *slog.Logger) (*Service, error) {
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := store.LoadWatchHistory()
	if err != nil {
		return nil, fmt.Errorf("failed to load watch history: %w", err)
	}
	return &Service{
		store:   store,
		logger:  logger,
		now:     time.Now,
		entries: entries,
	}, nil
}

// RecordProgress upserts the entry for a movie or episode. For episodes the
// series pointer is updated in the same write.
func (s *Service) RecordProgress(u ProgressUpdate) (domain.WatchProgress, error) {
	if u.TitleID <= 0 {
		return domain.WatchProgress{}, fmt.Errorf("invalid title id: %d", u.TitleID)
	}
	if !isFinite(u.PositionSeconds) || !isFinite(u.DurationSeconds) {
		return domain.WatchProgress{}, fmt.Errorf("position and duration must be finite numbers, got %v and %v", u.PositionSeconds, u.DurationSeconds)
	}

	entry := domain.WatchProgress{
		TitleID:         u.TitleID,
		MediaType:       u.MediaType,
		ProgressSeconds: math.Max(0, u.PositionSeconds),
		DurationSeconds: math.Max(0, u.DurationSeconds),
		ProgressPercent: domain.ProgressPercent(u.PositionSeconds, u.DurationSeconds),
		LastWatchedAt:   s.now().UTC(),
	}

	var writes []domain.WatchProgress
	switch u.MediaType {
	case domain.MediaTypeMovie:
		entry.Key = domain.MovieKey(u.TitleID)
		writes = append(writes, entry)
	case domain.MediaTypeTV:
		if u.EpisodeNumber <= 0 || u.SeasonNumber < 0 {
			return domain.WatchProgress{}, fmt.Errorf("episode progress for %d needs a season and episode number", u.TitleID)
		}
		ref := domain.EpisodeRef{SeasonNumber: u.SeasonNumber, EpisodeNumber: u.EpisodeNumber}
		entry.Key = domain.EpisodeKey(u.TitleID, u.SeasonNumber, u.EpisodeNumber)
		entry.Episode = &ref

		// The pointer mirrors its last episode so listings can band it
		pointer := entry
		pointer.Key = domain.ShowKey(u.TitleID)
		pointer.Episode = nil
		pointer.LastEpisode = &ref
		writes = append(writes, entry, pointer)
	default:
		return domain.WatchProgress{}, fmt.Errorf("unknown media type: %q", u.MediaType)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.SaveWatchProgress(writes...); err != nil {
		s.logger.Error("failed to save watch progress", "key", entry.Key, "error", err)
		return domain.WatchProgress{}, fmt.Errorf("failed to save watch progress: %w", err)
	}
	for _, w := range writes {
		s.entries[w.Key] = w
	}
	return entry, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// GetProgress returns the entry for a movie, or for one episode of a series
func (s *Service) GetProgress(titleID int, mediaType domain.MediaType, seasonNumber, episodeNumber int) (domain.WatchProgress, bool) {
	key := domain.MovieKey(titleID)
	if mediaType == domain.MediaTypeTV {
		key = domain.EpisodeKey(titleID, seasonNumber, episodeNumber)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	wp, ok := s.entries[key]
	return wp, ok
}

// GetShowProgress returns the series pointer entry
func (s *Service) GetShowProgress(titleID int) (domain.WatchProgress, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wp, ok := s.entries[domain.ShowKey(titleID)]
	return wp, ok
}

// NextEpisode returns the episode after the series' last watched one, but
// only once that episode is completed
func (s *Service) NextEpisode(titleID int) (domain.EpisodeRef, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pointer, ok := s.entries[domain.ShowKey(titleID)]
	if !ok || pointer.LastEpisode == nil {
		return domain.EpisodeRef{}, false
	}
	last := *pointer.LastEpisode
	ep, ok := s.entries[domain.EpisodeKey(titleID, last.SeasonNumber, last.EpisodeNumber)]
	if !ok || !ep.IsCompleted() {
		return domain.EpisodeRef{}, false
	}
	return domain.EpisodeRef{SeasonNumber: last.SeasonNumber, EpisodeNumber: last.EpisodeNumber + 1}, true
}

// ListHistory returns up to ListLimit movie and series entries in the
// filter's band, most recently watched first. Episode entries are
// represented by their series pointer.
func (s *Service) ListHistory(filter domain.HistoryFilter) []domain.WatchProgress {
	s.mu.RLock()
	list := make([]domain.WatchProgress, 0, len(s.entries))
	for _, wp := range s.entries {
		if wp.Episode != nil {
			continue
		}
		if !filter.Matches(wp.ProgressPercent) {
			continue
		}
		list = append(list, wp)
	}
	s.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		if list[i].LastWatchedAt.Equal(list[j].LastWatchedAt) {
			return list[i].Key < list[j].Key
		}
		return list[i].LastWatchedAt.After(list[j].LastWatchedAt)
	})
	if len(list) > ListLimit {
		list = list[:ListLimit]
	}
	return list
}

// ComputeStats aggregates the history. Movies and series are counted once
// each; completion bands and watch time cover movies and episodes.
func (s *Service) ComputeStats() domain.WatchStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats domain.WatchStats
	var watchedSeconds float64
	for _, wp := range s.entries {
		switch {
		case wp.MediaType == domain.MediaTypeMovie:
			stats.MoviesCount++
		case wp.IsShowPointer():
			stats.ShowsCount++
			continue
		}

		if domain.IsCompleted(wp.ProgressPercent) {
			stats.CompletedCount++
		} else if domain.IsInProgress(wp.ProgressPercent) {
			stats.InProgressCount++
		}
		if wp.DurationSeconds > 0 {
			watchedSeconds += wp.ProgressSeconds
		}
	}

	stats.TotalItems = stats.MoviesCount + stats.ShowsCount
	stats.WatchedMinutes = int(math.Floor(watchedSeconds / 60))
	stats.WatchedHours = int(math.Floor(watchedSeconds / 3600))
	return stats
}

// RemoveEntry deletes a movie entry, or a series pointer together with all
// of its episode entries
func (s *Service) RemoveEntry(titleID int, mediaType domain.MediaType) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []string
	if mediaType == domain.MediaTypeTV {
		showKey := domain.ShowKey(titleID)
		for key := range s.entries {
			if key == showKey || strings.HasPrefix(key, showKey+"_") {
				keys = append(keys, key)
			}
		}
	} else if _, ok := s.entries[domain.MovieKey(titleID)]; ok {
		keys = append(keys, domain.MovieKey(titleID))
	}
	if len(keys) == 0 {
		return domain.ErrNotFound
	}

	if err := s.store.DeleteWatchProgress(keys...); err != nil {
		return fmt.Errorf("failed to remove history entry: %w", err)
	}
	for _, key := range keys {
		delete(s.entries, key)
	}
	s.logger.Info("removed history entry", "titleID", titleID, "mediaType", mediaType, "keys", len(keys))
	return nil
}

// RecentTitles returns the most recently watched movie and series entries
func (s *Service) RecentTitles(limit int) []domain.WatchProgress {
	list := s.ListHistory(domain.HistoryAll)
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}
