package domain

// PreferenceProfile is the genre/year/rating weighting derived from a user's activity.
// It is rebuilt on demand and never persisted.
type PreferenceProfile struct {
	Genres       map[string]int // genre name -> weight
	Years        map[int]int    // release year -> count
	Ratings      []float64
	TotalWatched int
	TotalLiked   int
	AvgRating    float64
}

// NewPreferenceProfile returns a zeroed profile
func NewPreferenceProfile() PreferenceProfile {
	return PreferenceProfile{
		Genres:  map[string]int{},
		Years:   map[int]int{},
		Ratings: []float64{},
	}
}

// HasData returns true if any activity contributed to the profile
func (p PreferenceProfile) HasData() bool {
	return p.TotalWatched > 0 || p.TotalLiked > 0 || len(p.Ratings) > 0
}
