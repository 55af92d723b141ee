package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MediaType distinguishes content types
type MediaType string

const (
	MediaTypeMovie MediaType = "movie"
	MediaTypeTV    MediaType = "tv"
)

// ParseMediaType converts an API or CLI string into a MediaType
func ParseMediaType(s string) (MediaType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies":
		return MediaTypeMovie, nil
	case "tv", "show", "shows":
		return MediaTypeTV, nil
	default:
		return "", fmt.Errorf("unknown media type: %q", s)
	}
}

// String returns the API path segment for the media type
func (m MediaType) String() string { return string(m) }

// Genre is a catalog genre tag
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Title represents a movie or TV series record from the metadata API
type Title struct {
	ID           int       `json:"id"`
	Type         MediaType `json:"type"`          // Movie or TV
	Name         string    `json:"name"`          // Display title (movie title or series name)
	OriginalName string    `json:"original_name"` // Title in original language
	Overview     string    `json:"overview"`      // Plot synopsis
	AltNames     []string  `json:"alt_names,omitempty"`

	// Image paths (relative to the image CDN)
	PosterPath   string `json:"poster_path,omitempty"`
	BackdropPath string `json:"backdrop_path,omitempty"`

	VoteAverage      float64 `json:"vote_average"` // 0-10 community rating
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language"`
	Adult            bool    `json:"adult"`

	GenreIDs []int   `json:"genre_ids,omitempty"`
	Genres   []Genre `json:"genres,omitempty"` // Only populated on detail records

	// Release date for movies, first air date for series ("YYYY-MM-DD")
	ReleaseDate string `json:"release_date,omitempty"`
}

// ReleaseYear returns the release year, or 0 if unknown
func (t Title) ReleaseYear() int {
	if len(t.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(t.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// HasArtwork returns true if the title has a poster or a backdrop
func (t Title) HasArtwork() bool {
	return t.PosterPath != "" || t.BackdropPath != ""
}

// SearchableText returns the lowercased text the content filter inspects
func (t Title) SearchableText() string {
	parts := append([]string{t.Name, t.OriginalName}, t.AltNames...)
	parts = append(parts, t.Overview)
	return strings.ToLower(strings.Join(parts, "\n"))
}

// GenreNames returns the names of the title's genre tags.
// Detail records carry names directly; listing records only carry ids,
// which are resolved through the fixed genre table.
func (t Title) GenreNames() []string {
	if len(t.Genres) > 0 {
		names := make([]string, 0, len(t.Genres))
		for _, g := range t.Genres {
			if g.Name != "" {
				names = append(names, g.Name)
			} else {
				names = append(names, strconv.Itoa(g.ID))
			}
		}
		return names
	}
	names := make([]string, 0, len(t.GenreIDs))
	for _, id := range t.GenreIDs {
		if name, ok := GenreName(id); ok {
			names = append(names, name)
		}
	}
	return names
}

// Video is a trailer or clip attached to a detail record
type Video struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// SeasonSummary is a season entry embedded in a series detail record
type SeasonSummary struct {
	SeasonNumber int    `json:"season_number"`
	Name         string `json:"name"`
	EpisodeCount int    `json:"episode_count"`
	AirDate      string `json:"air_date,omitempty"`
	PosterPath   string `json:"poster_path,omitempty"`
}

// CastMember is a credited performer
type CastMember struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
}

// TitleDetail is the full record for a single movie or series
type TitleDetail struct {
	Title

	Runtime         int             `json:"runtime,omitempty"` // Minutes (movies)
	NumberOfSeasons int             `json:"number_of_seasons,omitempty"`
	Seasons         []SeasonSummary `json:"seasons,omitempty"`
	Videos          []Video         `json:"videos,omitempty"`

	// Series only
	Cast            []CastMember `json:"cast,omitempty"`
	Recommendations []Title      `json:"recommendations,omitempty"`
	Similar         []Title      `json:"similar,omitempty"`
}

// Episode represents a single episode in a season
type Episode struct {
	ID            int     `json:"id"`
	SeasonNumber  int     `json:"season_number"`
	EpisodeNumber int     `json:"episode_number"`
	Name          string  `json:"name"`
	Overview      string  `json:"overview"`
	Runtime       int     `json:"runtime,omitempty"` // Minutes
	StillPath     string  `json:"still_path,omitempty"`
	AirDate       string  `json:"air_date,omitempty"`
	VoteAverage   float64 `json:"vote_average"`
}

// EpisodeCode returns the formatted episode code (e.g., "S01E05")
func (e Episode) EpisodeCode() string {
	return fmt.Sprintf("S%02dE%02d", e.SeasonNumber, e.EpisodeNumber)
}

// Season is one season of a series with its episode list
type Season struct {
	ID           int       `json:"id"`
	ShowID       int       `json:"show_id"`
	SeasonNumber int       `json:"season_number"`
	Name         string    `json:"name"`
	Overview     string    `json:"overview"`
	AirDate      string    `json:"air_date,omitempty"`
	Episodes     []Episode `json:"episodes"`
}

// DisplayTitle returns the display title for the season
func (s Season) DisplayTitle() string {
	if s.SeasonNumber == 0 {
		return "Specials"
	}
	if s.Name != "" && s.Name != fmt.Sprintf("Season %d", s.SeasonNumber) {
		return fmt.Sprintf("Season %d: %s", s.SeasonNumber, s.Name)
	}
	return fmt.Sprintf("Season %d", s.SeasonNumber)
}

// Page is a paginated listing or search response
type Page struct {
	Page         int     `json:"page"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
	Results      []Title `json:"results"`
}

// Favorite is a title the user has liked, as stored in the document store
type Favorite struct {
	Title
	AddedAt time.Time `json:"added_at"`
}

// Comment is a user comment with an optional rating (0 = no rating)
type Comment struct {
	ID        string    `json:"id"`
	TitleID   int       `json:"title_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Text      string    `json:"text"`
	Rating    float64   `json:"rating"`
	IsSpoiler bool      `json:"is_spoiler"`
	CreatedAt time.Time `json:"created_at"`
}
