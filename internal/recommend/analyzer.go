// Package recommend derives preference profiles and ranks candidate titles
// against them.
package recommend

import "github.com/mmcdole/cinepick/internal/domain"

// Genre weights per occurrence. A favorite counts 1.5x a watched title.
const (
	WatchedGenreWeight  = 2
	FavoriteGenreWeight = 3
)

// Analyze builds a preference profile from watched title details,
// favorites and the user's comments. Nil inputs yield a zeroed profile.
func Analyze(watched []domain.Title, favorites []domain.Favorite, comments []domain.Comment) domain.PreferenceProfile {
	p := domain.NewPreferenceProfile()

	for _, t := range watched {
		for _, g := range t.GenreNames() {
			p.Genres[g] += WatchedGenreWeight
		}
		if year := t.ReleaseYear(); year > 0 {
			p.Years[year]++
		}
		p.TotalWatched++
	}

	for _, f := range favorites {
		for _, g := range f.GenreNames() {
			p.Genres[g] += FavoriteGenreWeight
		}
		p.TotalLiked++
	}

	var sum float64
	for _, c := range comments {
		if c.Rating > 0 {
			p.Ratings = append(p.Ratings, c.Rating)
			sum += c.Rating
		}
	}
	if len(p.Ratings) > 0 {
		p.AvgRating = sum / float64(len(p.Ratings))
	}
	return p
}
