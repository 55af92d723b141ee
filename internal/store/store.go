package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/cinepick/internal/domain"
)

// Bucket names. The version suffix is the only migration scheme.
var (
	bucketWatchHistory  = []byte("watch_history_v1")
	bucketSearchHistory = []byte("search_history_v1")
	bucketDisliked      = []byte("disliked_movie_ids_v1")
)

var allBuckets = [][]byte{bucketWatchHistory, bucketSearchHistory, bucketDisliked}

const (
	dbFileName = "cinepick.db"
	listKey    = "list"
)

// LocalStore implements domain.Store using BoltDB.
type LocalStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory mirror for reads (promoted on access)
	cache map[string][]byte
}

// NewLocalStore opens the store under dir. An empty dir keeps everything
// in memory for the life of the process.
func NewLocalStore(dir string) (*LocalStore, error) {
	if dir == "" {
		// Memory-only mode (no persistence)
		return &LocalStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store dir: %w", err)
	}

	dbPath := filepath.Join(dir, dbFileName)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &LocalStore{db: db, cache: make(map[string][]byte)}, nil
}

func (s *LocalStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func cacheKey(bucket []byte, key string) string {
	return string(bucket) + ":" + key
}

func (s *LocalStore) get(bucket []byte, key string, dest interface{}) bool {
	ck := cacheKey(bucket, key)

	s.mu.RLock()
	if data, ok := s.cache[ck]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	s.mu.Lock()
	s.cache[ck] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

// put writes several keys of one bucket in a single transaction
func (s *LocalStore) put(bucket []byte, values map[string]interface{}) error {
	encoded := make(map[string][]byte, len(values))
	for key, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to marshal %s: %w", key, err)
		}
		encoded[key] = data
	}

	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucket)
			for key, data := range encoded {
				if err := b.Put([]byte(key), data); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", bucket, err)
		}
	}

	s.mu.Lock()
	for key, data := range encoded {
		s.cache[cacheKey(bucket, key)] = data
	}
	s.mu.Unlock()
	return nil
}

func (s *LocalStore) delete(bucket []byte, keys ...string) error {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.cache, cacheKey(bucket, key))
	}
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		for _, key := range keys {
			if err := b.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

// scan returns every raw value in a bucket, keyed by its key
func (s *LocalStore) scan(bucket []byte) (map[string][]byte, error) {
	out := make(map[string][]byte)

	if s.db == nil {
		prefix := string(bucket) + ":"
		s.mu.RLock()
		for k, v := range s.cache {
			if key, ok := strings.CutPrefix(k, prefix); ok {
				out[key] = v
			}
		}
		s.mu.RUnlock()
		return out, nil
	}

	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, v []byte) error {
			data := make([]byte, len(v))
			copy(data, v)
			out[string(k)] = data
			return nil
		})
	})
	return out, err
}

// === Watch history ===

func (s *LocalStore) LoadWatchHistory() (map[string]domain.WatchProgress, error) {
	raw, err := s.scan(bucketWatchHistory)
	if err != nil {
		return nil, fmt.Errorf("failed to read watch history: %w", err)
	}

	entries := make(map[string]domain.WatchProgress, len(raw))
	for key, data := range raw {
		var wp domain.WatchProgress
		if err := json.Unmarshal(data, &wp); err != nil {
			// A corrupt record must not hide the rest of the history
			continue
		}
		wp.Key = key
		entries[key] = wp
	}
	return entries, nil
}

// SaveWatchProgress upserts entries atomically (an episode and its series
// pointer are written together)
func (s *LocalStore) SaveWatchProgress(entries ...domain.WatchProgress) error {
	values := make(map[string]interface{}, len(entries))
	for _, e := range entries {
		if e.Key == "" {
			return fmt.Errorf("watch progress for title %d has no key", e.TitleID)
		}
		values[e.Key] = e
	}
	return s.put(bucketWatchHistory, values)
}

func (s *LocalStore) DeleteWatchProgress(keys ...string) error {
	if err := s.delete(bucketWatchHistory, keys...); err != nil {
		return fmt.Errorf("failed to delete watch progress: %w", err)
	}
	return nil
}

// === Search history ===

func (s *LocalStore) GetSearchHistory() ([]string, bool) {
	var queries []string
	ok := s.get(bucketSearchHistory, listKey, &queries)
	return queries, ok
}

func (s *LocalStore) SaveSearchHistory(queries []string) error {
	return s.put(bucketSearchHistory, map[string]interface{}{listKey: queries})
}

// === Disliked ids ===

func (s *LocalStore) GetDislikedIDs() ([]int, bool) {
	var ids []int
	ok := s.get(bucketDisliked, listKey, &ids)
	return ids, ok
}

func (s *LocalStore) SaveDislikedIDs(ids []int) error {
	return s.put(bucketDisliked, map[string]interface{}{listKey: ids})
}

// Reset wipes every bucket: watch history, search history and dislikes
func (s *LocalStore) Reset() error {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range allBuckets {
			b := tx.Bucket(bucket)
			if b == nil {
				continue
			}
			// Collect first: deleting under a live cursor skips keys
			var keys [][]byte
			b.ForEach(func(k, _ []byte) error {
				keys = append(keys, append([]byte(nil), k...))
				return nil
			})
			for _, k := range keys {
				if err := b.Delete(k); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to reset local store: %w", err)
	}
	return nil
}
