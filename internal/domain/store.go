package domain

// Store handles durable client-local state (BoltDB + memory).
// Every bucket name carries a version suffix; there is no migration scheme.
type Store interface {
	// === Watch history (one key per movie, episode or series pointer) ===
	LoadWatchHistory() (map[string]WatchProgress, error)
	SaveWatchProgress(entries ...WatchProgress) error
	DeleteWatchProgress(keys ...string) error

	// === Search history (most recent first) ===
	GetSearchHistory() ([]string, bool)
	SaveSearchHistory(queries []string) error

	// === Disliked title ids ===
	GetDislikedIDs() ([]int, bool)
	SaveDislikedIDs(ids []int) error

	Reset() error
	Close() error
}
