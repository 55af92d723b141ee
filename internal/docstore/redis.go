// Package docstore is the Redis-backed document store holding the banned
// keyword document and per-user favorites and comments.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mmcdole/cinepick/internal/domain"
)

// Key layout
const (
	keyBannedKeywords = "adultFilters:default"
	keyFavoritesFmt   = "users:%s:favorites"
	keyUserCommentFmt = "users:%s:comments"
	keyCommentsFmt    = "comments:%d:items"
)

// Config holds Redis connection configuration
type Config struct {
	Addr     string // host:port
	Password string
	DB       int
}

// Store implements domain.KeywordSource, domain.FavoriteRepository and
// domain.CommentRepository
type Store struct {
	client *redis.Client
	logger *slog.Logger
	now    func() time.Time
}

type keywordDocument struct {
	BannedKeywords []string `json:"bannedKeywords"`
}

// Open connects to Redis and verifies the connection
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	s := New(client, logger)
	s.logger.Info("connected to document store", "addr", cfg.Addr, "db", cfg.DB)
	return s, nil
}

// New wraps an existing client
func New(client *redis.Client, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{client: client, logger: logger, now: time.Now}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// BannedKeywords returns the remote keyword list, or domain.ErrNotFound
// when the document does not exist
func (s *Store) BannedKeywords(ctx context.Context) ([]string, error) {
	data, err := s.client.Get(ctx, keyBannedKeywords).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read keyword document: %w", err)
	}

	var doc keywordDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse keyword document: %w", err)
	}
	return doc.BannedKeywords, nil
}

// SaveBannedKeywords replaces the keyword document
func (s *Store) SaveBannedKeywords(ctx context.Context, keywords []string) error {
	data, err := json.Marshal(keywordDocument{BannedKeywords: keywords})
	if err != nil {
		return fmt.Errorf("failed to marshal keyword document: %w", err)
	}
	if err := s.client.Set(ctx, keyBannedKeywords, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save keyword document: %w", err)
	}
	return nil
}

// ListFavorites returns a user's favorites, most recently added first
func (s *Store) ListFavorites(ctx context.Context, userID string) ([]domain.Favorite, error) {
	raw, err := s.client.HGetAll(ctx, fmt.Sprintf(keyFavoritesFmt, userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	favs := make([]domain.Favorite, 0, len(raw))
	for field, v := range raw {
		var f domain.Favorite
		if err := json.Unmarshal([]byte(v), &f); err != nil {
			s.logger.Warn("skipping malformed favorite", "userID", userID, "field", field, "error", err)
			continue
		}
		favs = append(favs, f)
	}
	sort.SliceStable(favs, func(i, j int) bool {
		if favs[i].AddedAt.Equal(favs[j].AddedAt) {
			return favs[i].ID < favs[j].ID
		}
		return favs[i].AddedAt.After(favs[j].AddedAt)
	})
	return favs, nil
}

// SaveFavorite upserts a favorite. A zero AddedAt is set to now.
func (s *Store) SaveFavorite(ctx context.Context, userID string, fav domain.Favorite) error {
	if fav.AddedAt.IsZero() {
		fav.AddedAt = s.now().UTC()
	}
	data, err := json.Marshal(fav)
	if err != nil {
		return fmt.Errorf("failed to marshal favorite: %w", err)
	}
	key := fmt.Sprintf(keyFavoritesFmt, userID)
	if err := s.client.HSet(ctx, key, strconv.Itoa(fav.ID), data).Err(); err != nil {
		return fmt.Errorf("failed to save favorite: %w", err)
	}
	return nil
}

// DeleteFavorite removes a favorite; removing a missing one is not an error
func (s *Store) DeleteFavorite(ctx context.Context, userID string, titleID int) error {
	key := fmt.Sprintf(keyFavoritesFmt, userID)
	if err := s.client.HDel(ctx, key, strconv.Itoa(titleID)).Err(); err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return nil
}

// ListComments returns a title's comments, newest first
func (s *Store) ListComments(ctx context.Context, titleID int) ([]domain.Comment, error) {
	return s.listComments(ctx, fmt.Sprintf(keyCommentsFmt, titleID))
}

// ListUserComments returns every comment the user wrote, newest first
func (s *Store) ListUserComments(ctx context.Context, userID string) ([]domain.Comment, error) {
	return s.listComments(ctx, fmt.Sprintf(keyUserCommentFmt, userID))
}

// AddComment stores a comment under both its title and its author.
// The returned comment carries the assigned ID and creation time.
func (s *Store) AddComment(ctx context.Context, c domain.Comment) (domain.Comment, error) {
	c.ID = uuid.NewString()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now().UTC()
	}

	data, err := json.Marshal(c)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("failed to marshal comment: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, fmt.Sprintf(keyCommentsFmt, c.TitleID), c.ID, data)
		if c.UserID != "" {
			pipe.HSet(ctx, fmt.Sprintf(keyUserCommentFmt, c.UserID), c.ID, data)
		}
		return nil
	})
	if err != nil {
		return domain.Comment{}, fmt.Errorf("failed to save comment: %w", err)
	}
	return c, nil
}

func (s *Store) listComments(ctx context.Context, key string) ([]domain.Comment, error) {
	raw, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := make([]domain.Comment, 0, len(raw))
	for id, v := range raw {
		var c domain.Comment
		if err := json.Unmarshal([]byte(v), &c); err != nil {
			s.logger.Warn("skipping malformed comment", "key", key, "commentID", id, "error", err)
			continue
		}
		comments = append(comments, c)
	}
	sort.SliceStable(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}
