package recommend

import (
	"fmt"
	"math"
	"sort"

	"github.com/mmcdole/cinepick/internal/domain"
)

// Scoring weights
const (
	ratingMultiplier  = 2.0
	genreMatchBonus   = 5.0
	yearMatchBonus    = 2.0
	ratingCloseBonus  = 3.0
	ratingCloseWindow = 1.0
	popularityDivisor = 100.0
	popularityCap     = 5.0

	// GenreBased considers this many of the profile's heaviest genres
	topGenreCount = 3
)

// Reason thresholds
const (
	highRating     = 8.0
	moderateRating = 7.0
	trendingPop    = 500.0
)

type scoredTitle struct {
	title domain.Title
	score float64
}

// Score rates a candidate against a profile
func Score(t domain.Title, p domain.PreferenceProfile) float64 {
	score := t.VoteAverage * ratingMultiplier

	score += genreMatchBonus * float64(len(matchedGenres(t, p)))

	if year := t.ReleaseYear(); year > 0 && p.Years[year] > 0 {
		score += yearMatchBonus
	}

	if p.AvgRating > 0 && t.VoteAverage > 0 && math.Abs(t.VoteAverage-p.AvgRating) <= ratingCloseWindow {
		score += ratingCloseBonus
	}

	if t.Popularity > 0 {
		score += math.Min(t.Popularity/popularityDivisor, popularityCap)
	}
	return score
}

// Rank returns at most limit candidates ordered by descending score.
// Equal scores keep their input order.
func Rank(candidates []domain.Title, p domain.PreferenceProfile, limit int) []domain.Title {
	if len(candidates) == 0 || limit <= 0 {
		return nil
	}

	scored := make([]scoredTitle, len(candidates))
	for i, t := range candidates {
		scored[i] = scoredTitle{title: t, score: Score(t, p)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	out := make([]domain.Title, len(scored))
	for i, s := range scored {
		out[i] = s.title
	}
	return out
}

// Explain returns the single most relevant reason a title was picked
func Explain(t domain.Title, p domain.PreferenceProfile) string {
	if genres := matchedGenres(t, p); len(genres) > 0 {
		return fmt.Sprintf("당신이 좋아하는 %s 장르의 작품이에요.", genres[0])
	}
	switch {
	case t.VoteAverage >= highRating:
		return "높은 평점을 받은 작품이에요."
	case t.VoteAverage >= moderateRating:
		return "괜찮은 평점을 받은 작품이에요."
	}
	if t.Popularity > trendingPop {
		return "지금 많은 사람들이 보고 있어요."
	}
	if year := t.ReleaseYear(); year > 0 && p.Years[year] > 0 {
		return fmt.Sprintf("%d년 작품을 좋아하시는 것 같아요.", year)
	}
	return "당신의 취향에 맞을 것 같아요."
}

// GenreBased ranks the candidates that carry one of the profile's three
// heaviest genres
func GenreBased(candidates []domain.Title, p domain.PreferenceProfile, limit int) []domain.Title {
	ids := make(map[int]bool)
	for _, name := range TopGenres(p, topGenreCount) {
		if id, ok := domain.GenreID(name); ok {
			ids[id] = true
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var matching []domain.Title
	for _, t := range candidates {
		for _, id := range t.GenreIDs {
			if ids[id] {
				matching = append(matching, t)
				break
			}
		}
	}
	return Rank(matching, p, limit)
}

// TopGenres returns up to n genre names by descending weight, ties by name
func TopGenres(p domain.PreferenceProfile, n int) []string {
	names := make([]string, 0, len(p.Genres))
	for name := range p.Genres {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		wi, wj := p.Genres[names[i]], p.Genres[names[j]]
		if wi != wj {
			return wi > wj
		}
		return names[i] < names[j]
	})
	if len(names) > n {
		names = names[:n]
	}
	return names
}

// matchedGenres returns the names of the title's genre ids that the profile
// has weight for, in the title's order
func matchedGenres(t domain.Title, p domain.PreferenceProfile) []string {
	var out []string
	for _, id := range t.GenreIDs {
		if name, ok := domain.GenreName(id); ok && p.Genres[name] > 0 {
			out = append(out, name)
		}
	}
	return out
}
