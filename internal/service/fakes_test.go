package service

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cinepick/internal/docstore"
	"github.com/mmcdole/cinepick/internal/domain"
	"github.com/mmcdole/cinepick/internal/store"
)

type fakeGateway struct {
	mu       sync.Mutex
	details  map[int]*domain.TitleDetail
	listings map[string][]domain.Title
	search   map[domain.MediaType][]domain.Title
	suggest  []domain.Title

	multiCalls  [][]string
	searchCalls []string
}

func (f *fakeGateway) FetchDetail(_ context.Context, id int, _ domain.MediaType) (*domain.TitleDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.details[id]; ok {
		return d, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeGateway) FetchListing(_ context.Context, endpoint string) domain.Page {
	f.mu.Lock()
	defer f.mu.Unlock()
	return domain.Page{Page: 1, Results: append([]domain.Title(nil), f.listings[endpoint]...)}
}

func (f *fakeGateway) FetchMulti(_ context.Context, endpoints ...string) []domain.Title {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.multiCalls = append(f.multiCalls, endpoints)

	seen := make(map[int]bool)
	var out []domain.Title
	for _, e := range endpoints {
		for _, t := range f.listings[e] {
			if !seen[t.ID] {
				seen[t.ID] = true
				out = append(out, t)
			}
		}
	}
	return out
}

func (f *fakeGateway) FetchSearchResults(_ context.Context, query string, mediaType domain.MediaType) domain.Page {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchCalls = append(f.searchCalls, query)
	return domain.Page{Page: 1, Results: f.search[mediaType]}
}

func (f *fakeGateway) Suggest(_ context.Context, _ string) []domain.Title {
	return append([]domain.Title(nil), f.suggest...)
}

type fakeHistory []domain.WatchProgress

func (h fakeHistory) RecentTitles(limit int) []domain.WatchProgress {
	if len(h) > limit {
		return h[:limit]
	}
	return h
}

func newMemoryStore(t *testing.T) *store.LocalStore {
	t.Helper()
	st, err := store.NewLocalStore("")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func newDocStore(t *testing.T) *docstore.Store {
	t.Helper()
	mr := miniredis.RunT(t)
	ds := docstore.New(redis.NewClient(&redis.Options{Addr: mr.Addr()}), nil)
	t.Cleanup(func() { ds.Close() })
	return ds
}

func detail(id int, genre domain.Genre, date string) *domain.TitleDetail {
	return &domain.TitleDetail{Title: domain.Title{
		ID:          id,
		Type:        domain.MediaTypeMovie,
		Name:        "title",
		Genres:      []domain.Genre{genre},
		ReleaseDate: date,
	}}
}
