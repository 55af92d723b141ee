package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cinepick/internal/domain"
)

func TestSearchRejectsBlankQuery(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewSearchService(gw, newMemoryStore(t), nil)

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := svc.Search(context.Background(), q, domain.MediaTypeMovie)
		assert.ErrorIs(t, err, domain.ErrEmptyQuery)
	}
	assert.Empty(t, gw.searchCalls)
	assert.Empty(t, svc.RecentQueries(""))
}

func TestSearchDelegatesAndRemembers(t *testing.T) {
	gw := &fakeGateway{search: map[domain.MediaType][]domain.Title{
		domain.MediaTypeMovie: {{ID: 1, Name: "인셉션"}},
		domain.MediaTypeTV:    {{ID: 2, Name: "인간수업"}},
	}}
	svc := NewSearchService(gw, newMemoryStore(t), nil)

	page, err := svc.Search(context.Background(), "  인셉션 ", "")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, titleIDs(page.Results))
	assert.Equal(t, []string{"인셉션"}, gw.searchCalls)

	page, err = svc.Search(context.Background(), "인간", domain.MediaTypeTV)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, titleIDs(page.Results))

	assert.Equal(t, []string{"인간", "인셉션"}, svc.RecentQueries(""))
}

func TestSearchHistoryDedupAndLimit(t *testing.T) {
	st := newMemoryStore(t)
	svc := NewSearchService(&fakeGateway{}, st, nil)
	ctx := context.Background()

	for i := 0; i < SearchHistoryLimit+3; i++ {
		_, err := svc.Search(ctx, fmt.Sprintf("query %d", i), domain.MediaTypeMovie)
		require.NoError(t, err)
	}
	_, err := svc.Search(ctx, "Query 5", domain.MediaTypeMovie)
	require.NoError(t, err)

	recent := svc.RecentQueries("")
	require.Len(t, recent, SearchHistoryLimit)
	assert.Equal(t, "Query 5", recent[0])
	assert.Equal(t, "query 12", recent[1])
	assert.NotContains(t, recent, "query 5", "case-insensitive duplicates collapse")

	persisted, ok := st.GetSearchHistory()
	require.True(t, ok)
	assert.Equal(t, recent, persisted)

	reloaded := NewSearchService(&fakeGateway{}, st, nil)
	assert.Equal(t, recent, reloaded.RecentQueries(""))
}

func TestRecentQueriesFuzzy(t *testing.T) {
	svc := NewSearchService(&fakeGateway{}, newMemoryStore(t), nil)
	for _, q := range []string{"avatar", "interstellar", "inception"} {
		_, err := svc.Search(context.Background(), q, domain.MediaTypeMovie)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"inception"}, svc.RecentQueries("incp"))
	assert.Empty(t, svc.RecentQueries("zzz"))
}

func TestClearHistory(t *testing.T) {
	st := newMemoryStore(t)
	svc := NewSearchService(&fakeGateway{}, st, nil)
	_, err := svc.Search(context.Background(), "dune", domain.MediaTypeMovie)
	require.NoError(t, err)

	require.NoError(t, svc.ClearHistory())
	assert.Empty(t, svc.RecentQueries(""))
	persisted, _ := st.GetSearchHistory()
	assert.Empty(t, persisted)
}

func TestSuggestOrdersByCloseness(t *testing.T) {
	gw := &fakeGateway{suggest: []domain.Title{
		{ID: 1, Name: "The Dark Knight Rises"},
		{ID: 2, Name: "Dunkirk"},
		{ID: 3, Name: "Dune"},
		{ID: 4, Name: "듄", OriginalName: "Dune: Part Two"},
	}}
	svc := NewSearchService(gw, newMemoryStore(t), nil)

	got := svc.Suggest(context.Background(), "dune")
	require.Len(t, got, 4)
	assert.Equal(t, 3, got[0].ID, "exact name first")
	assert.Equal(t, 4, got[1].ID, "original name contains the query")
}
