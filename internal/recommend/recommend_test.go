package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/cinepick/internal/domain"
)

func TestAnalyzeEmpty(t *testing.T) {
	p := Analyze(nil, nil, nil)
	assert.Equal(t, domain.PreferenceProfile{
		Genres:  map[string]int{},
		Years:   map[int]int{},
		Ratings: []float64{},
	}, p)
	assert.False(t, p.HasData())

	assert.Equal(t, p, Analyze([]domain.Title{}, []domain.Favorite{}, []domain.Comment{}))
}

func TestAnalyzeWeights(t *testing.T) {
	drama := domain.Title{ID: 1, Genres: []domain.Genre{{ID: 18, Name: "드라마"}}, ReleaseDate: "2021-03-04"}
	p := Analyze(
		[]domain.Title{drama},
		[]domain.Favorite{{Title: domain.Title{ID: 2, Genres: []domain.Genre{{ID: 18, Name: "드라마"}}}}},
		nil,
	)

	// 2 from history + 3 from the favorite
	assert.Equal(t, 5, p.Genres["드라마"])
	assert.Equal(t, map[int]int{2021: 1}, p.Years)
	assert.Equal(t, 1, p.TotalWatched)
	assert.Equal(t, 1, p.TotalLiked)
	assert.True(t, p.HasData())
}

func TestFavoriteWeighsOneAndAHalfTimesHistory(t *testing.T) {
	action := domain.Title{GenreIDs: []int{28}}

	fromHistory := Analyze([]domain.Title{action}, nil, nil)
	fromFavorite := Analyze(nil, []domain.Favorite{{Title: action}}, nil)

	require.Equal(t, WatchedGenreWeight, fromHistory.Genres["액션"])
	require.Equal(t, FavoriteGenreWeight, fromFavorite.Genres["액션"])
	assert.Equal(t, 1.5, float64(fromFavorite.Genres["액션"])/float64(fromHistory.Genres["액션"]))
}

func TestAnalyzeRatings(t *testing.T) {
	p := Analyze(nil, nil, []domain.Comment{{Rating: 8}, {Rating: 0}, {Rating: 6}, {Text: "no rating"}})
	assert.Equal(t, []float64{8, 6}, p.Ratings)
	assert.Equal(t, 7.0, p.AvgRating)
}

func TestAnalyzeUnknownGenreIDName(t *testing.T) {
	p := Analyze([]domain.Title{{Genres: []domain.Genre{{ID: 4242}}}}, nil, nil)
	assert.Equal(t, 2, p.Genres["4242"])
}

func scenarioProfile() domain.PreferenceProfile {
	p := domain.NewPreferenceProfile()
	p.Genres["액션"] = 5
	p.Years[2020] = 1
	p.AvgRating = 8.5
	return p
}

func TestScoreScenario(t *testing.T) {
	candidate := domain.Title{VoteAverage: 9.0, GenreIDs: []int{28}, Popularity: 50, ReleaseDate: "2020-01-01"}
	assert.InDelta(t, 28.5, Score(candidate, scenarioProfile()), 1e-9)
}

func TestScoreComponents(t *testing.T) {
	p := domain.NewPreferenceProfile()
	p.Genres["액션"] = 2
	p.Genres["모험"] = 3

	tests := []struct {
		name  string
		title domain.Title
		want  float64
	}{
		{"rating only", domain.Title{VoteAverage: 6}, 12},
		{"each matching genre adds five", domain.Title{GenreIDs: []int{28, 12, 35}}, 10},
		{"unmapped genre ids ignored", domain.Title{GenreIDs: []int{867}}, 0},
		{"popularity capped", domain.Title{Popularity: 9000}, 5},
		{"no year bonus without years", domain.Title{ReleaseDate: "2020-01-01"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Score(tt.title, p), 1e-9)
		})
	}
}

func TestScoreRatingCloseness(t *testing.T) {
	p := domain.NewPreferenceProfile()
	p.AvgRating = 7

	assert.InDelta(t, 16+3, Score(domain.Title{VoteAverage: 8}, p), 1e-9)
	assert.InDelta(t, 18.2, Score(domain.Title{VoteAverage: 9.1}, p), 1e-9)

	p.AvgRating = 0
	assert.InDelta(t, 14, Score(domain.Title{VoteAverage: 7}, p), 1e-9)
}

func TestRankBoundsAndOrder(t *testing.T) {
	candidates := []domain.Title{
		{ID: 1, VoteAverage: 5},
		{ID: 2, VoteAverage: 9},
		{ID: 3, VoteAverage: 7},
		{ID: 4, VoteAverage: 9},
	}
	p := domain.NewPreferenceProfile()

	got := Rank(candidates, p, 3)
	require.Len(t, got, 3)
	// Ties keep input order
	assert.Equal(t, []int{2, 4, 3}, ids(got))

	all := Rank(candidates, p, 10)
	assert.Len(t, all, 4)
	inputIDs := ids(candidates)
	for _, t2 := range all {
		assert.Contains(t, inputIDs, t2.ID)
	}

	assert.Nil(t, Rank(nil, p, 5))
	assert.Nil(t, Rank(candidates, p, 0))
}

func TestExplainPriority(t *testing.T) {
	p := scenarioProfile()

	tests := []struct {
		name  string
		title domain.Title
		want  string
	}{
		{"genre wins over rating", domain.Title{GenreIDs: []int{35, 28}, VoteAverage: 9}, "당신이 좋아하는 액션 장르의 작품이에요."},
		{"high rating", domain.Title{VoteAverage: 8.0, Popularity: 900}, "높은 평점을 받은 작품이에요."},
		{"moderate rating", domain.Title{VoteAverage: 7.2, Popularity: 900}, "괜찮은 평점을 받은 작품이에요."},
		{"trending", domain.Title{VoteAverage: 5, Popularity: 501, ReleaseDate: "2020-01-01"}, "지금 많은 사람들이 보고 있어요."},
		{"year", domain.Title{VoteAverage: 5, Popularity: 500, ReleaseDate: "2020-06-01"}, "2020년 작품을 좋아하시는 것 같아요."},
		{"fallback", domain.Title{VoteAverage: 5, ReleaseDate: "1999-01-01"}, "당신의 취향에 맞을 것 같아요."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Explain(tt.title, p))
		})
	}
}

func TestDailyReason(t *testing.T) {
	assert.Equal(t, "평점과 반응이 좋아 오늘 한 편으로 골랐어요.", DailyReason(domain.Title{VoteAverage: 8.1, Popularity: 1000}))
	assert.Equal(t, "지금 가장 많이 보는 흐름이라 먼저 추천해요.", DailyReason(domain.Title{VoteAverage: 6, Popularity: 800}))
	assert.Equal(t, "2018년 작품 중 요즘 다시 자주 언급되는 편이에요.", DailyReason(domain.Title{ReleaseDate: "2018-09-09"}))
	assert.Equal(t, "오늘 분위기에 부담 없이 보기 좋은 한 편이에요.", DailyReason(domain.Title{}))
}

func TestGenreBased(t *testing.T) {
	p := domain.NewPreferenceProfile()
	p.Genres["액션"] = 9
	p.Genres["드라마"] = 6
	p.Genres["코미디"] = 4
	p.Genres["공포"] = 1 // outside the top three

	candidates := []domain.Title{
		{ID: 1, GenreIDs: []int{27}, VoteAverage: 9},
		{ID: 2, GenreIDs: []int{18}, VoteAverage: 6},
		{ID: 3, GenreIDs: []int{28, 35}, VoteAverage: 7},
		{ID: 4, VoteAverage: 10},
	}

	got := GenreBased(candidates, p, 5)
	assert.Equal(t, []int{3, 2}, ids(got))

	assert.Nil(t, GenreBased(candidates, domain.NewPreferenceProfile(), 5))
}

func TestTopGenres(t *testing.T) {
	p := domain.NewPreferenceProfile()
	p.Genres["액션"] = 4
	p.Genres["SF"] = 4
	p.Genres["드라마"] = 9

	assert.Equal(t, []string{"드라마", "SF", "액션"}, TopGenres(p, 3))
	assert.Equal(t, []string{"드라마"}, TopGenres(p, 1))
}

func ids(titles []domain.Title) []int {
	out := make([]int, len(titles))
	for i, t := range titles {
		out[i] = t.ID
	}
	return out
}
