package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressPercentClamps(t *testing.T) {
	tests := []struct {
		name     string
		position float64
		duration float64
		want     float64
	}{
		{"zero duration", 30, 0, 0},
		{"negative duration", 30, -5, 0},
		{"half", 50, 100, 50},
		{"past end", 150, 100, 100},
		{"negative position", -10, 100, 0},
		{"nan position", math.NaN(), 100, 0},
		{"nan duration", 50, math.NaN(), 0},
		{"infinite position", math.Inf(1), 100, 0},
		{"infinite both", math.Inf(1), math.Inf(1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProgressPercent(tt.position, tt.duration))
		})
	}
}

func TestCompletedBand(t *testing.T) {
	assert.False(t, IsCompleted(89.9))
	assert.True(t, IsCompleted(90))
	assert.True(t, IsCompleted(100))

	assert.False(t, IsInProgress(0))
	assert.True(t, IsInProgress(0.1))
	assert.True(t, IsInProgress(89.9))
	assert.False(t, IsInProgress(90))

	for _, p := range []float64{0, 1, 45, 89.99, 90, 99, 100} {
		assert.False(t, IsCompleted(p) && IsInProgress(p), "bands overlap at %v", p)
	}
}

func TestHistoryKeys(t *testing.T) {
	assert.Equal(t, "42", MovieKey(42))
	assert.Equal(t, "tv_7", ShowKey(7))
	assert.Equal(t, "tv_7_s2_e10", EpisodeKey(7, 2, 10))
}

func TestParseHistoryFilter(t *testing.T) {
	f, err := ParseHistoryFilter("")
	assert.NoError(t, err)
	assert.Equal(t, HistoryAll, f)

	f, err = ParseHistoryFilter("completed")
	assert.NoError(t, err)
	assert.Equal(t, HistoryCompleted, f)

	_, err = ParseHistoryFilter("paused")
	assert.Error(t, err)
}

func TestTitleReleaseYear(t *testing.T) {
	assert.Equal(t, 2020, Title{ReleaseDate: "2020-01-01"}.ReleaseYear())
	assert.Equal(t, 0, Title{}.ReleaseYear())
	assert.Equal(t, 0, Title{ReleaseDate: "n/a"}.ReleaseYear())
}

func TestTitleGenreNames(t *testing.T) {
	detail := Title{Genres: []Genre{{ID: 28, Name: "액션"}, {ID: 99}}}
	assert.Equal(t, []string{"액션", "99"}, detail.GenreNames())

	listing := Title{GenreIDs: []int{28, 18, 123456}}
	assert.Equal(t, []string{"액션", "드라마"}, listing.GenreNames())
}

func TestParseMediaType(t *testing.T) {
	mt, err := ParseMediaType("TV")
	assert.NoError(t, err)
	assert.Equal(t, MediaTypeTV, mt)

	_, err = ParseMediaType("book")
	assert.Error(t, err)
}
