package domain

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// CompletedThreshold is the playback percent at which a title counts as watched.
// Resume logic, badges, listings and stats all go through IsCompleted.
const CompletedThreshold = 90.0

// IsCompleted reports whether a progress percent counts as finished
func IsCompleted(percent float64) bool {
	return percent >= CompletedThreshold
}

// IsInProgress reports whether a progress percent is started but not finished
func IsInProgress(percent float64) bool {
	return percent > 0 && percent < CompletedThreshold
}

// ProgressPercent computes a clamped percent from position and duration.
// A zero (or negative) duration yields 0, as does any non-finite ratio.
func ProgressPercent(position, duration float64) float64 {
	if duration <= 0 {
		return 0
	}
	p := position / duration * 100
	switch {
	case math.IsNaN(p), math.IsInf(p, 0), p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

// EpisodeRef identifies an episode within a series
type EpisodeRef struct {
	SeasonNumber  int `json:"season_number"`
	EpisodeNumber int `json:"episode_number"`
}

// WatchProgress is one durable playback record.
// Movies and episodes carry position data; the show-level pointer record
// (Key "tv_{id}") only carries LastEpisode.
type WatchProgress struct {
	Key             string      `json:"key"`
	TitleID         int         `json:"title_id"`
	MediaType       MediaType   `json:"media_type"`
	Episode         *EpisodeRef `json:"episode,omitempty"`      // Set on episode records
	LastEpisode     *EpisodeRef `json:"last_episode,omitempty"` // Set on show pointer records
	ProgressSeconds float64     `json:"progress_seconds"`
	DurationSeconds float64     `json:"duration_seconds"`
	ProgressPercent float64     `json:"progress_percent"`
	LastWatchedAt   time.Time   `json:"last_watched_at"`
}

// IsShowPointer returns true for the series-level aggregate record
func (w WatchProgress) IsShowPointer() bool {
	return w.MediaType == MediaTypeTV && w.Episode == nil
}

// IsCompleted reports whether the record counts as finished
func (w WatchProgress) IsCompleted() bool { return IsCompleted(w.ProgressPercent) }

// ShouldResume returns true if playback should resume from the saved position
func (w WatchProgress) ShouldResume() bool {
	return w.ProgressSeconds > 0 && !w.IsCompleted()
}

// MovieKey returns the history key for a movie
func MovieKey(titleID int) string { return strconv.Itoa(titleID) }

// ShowKey returns the history key for a series pointer record
func ShowKey(titleID int) string { return fmt.Sprintf("tv_%d", titleID) }

// EpisodeKey returns the history key for a single episode
func EpisodeKey(titleID, season, episode int) string {
	return fmt.Sprintf("tv_%d_s%d_e%d", titleID, season, episode)
}

// HistoryFilter selects a progress band when listing history
type HistoryFilter string

const (
	HistoryAll        HistoryFilter = "all"
	HistoryInProgress HistoryFilter = "in_progress"
	HistoryCompleted  HistoryFilter = "completed"
)

// ParseHistoryFilter converts a CLI string into a HistoryFilter
func ParseHistoryFilter(s string) (HistoryFilter, error) {
	switch HistoryFilter(s) {
	case "", HistoryAll:
		return HistoryAll, nil
	case HistoryInProgress, HistoryCompleted:
		return HistoryFilter(s), nil
	default:
		return "", fmt.Errorf("unknown history filter: %q", s)
	}
}

// Matches reports whether a percent falls into the filter's band
func (f HistoryFilter) Matches(percent float64) bool {
	switch f {
	case HistoryInProgress:
		return IsInProgress(percent)
	case HistoryCompleted:
		return IsCompleted(percent)
	default:
		return true
	}
}

// WatchStats summarizes the watch history
type WatchStats struct {
	TotalItems      int
	MoviesCount     int
	ShowsCount      int
	CompletedCount  int
	InProgressCount int
	WatchedMinutes  int
	WatchedHours    int
}
