package tmdb

// TMDb JSON response structures

// TitleDTO is a movie or series record as returned by listings, search and detail
type TitleDTO struct {
	ID               int        `json:"id"`
	MediaType        string     `json:"media_type,omitempty"` // Present on trending/multi results
	Title            string     `json:"title,omitempty"`      // Movies
	OriginalTitle    string     `json:"original_title,omitempty"`
	Name             string     `json:"name,omitempty"` // Series
	OriginalName     string     `json:"original_name,omitempty"`
	Overview         string     `json:"overview"`
	PosterPath       *string    `json:"poster_path"`
	BackdropPath     *string    `json:"backdrop_path"`
	VoteAverage      float64    `json:"vote_average"`
	Popularity       float64    `json:"popularity"`
	OriginalLanguage string     `json:"original_language"`
	Adult            bool       `json:"adult"`
	GenreIDs         []int      `json:"genre_ids,omitempty"`
	Genres           []GenreDTO `json:"genres,omitempty"`
	ReleaseDate      string     `json:"release_date,omitempty"`
	FirstAirDate     string     `json:"first_air_date,omitempty"`
}

// GenreDTO is a genre tag on a detail record
type GenreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// PageDTO is a paginated listing or search response
type PageDTO struct {
	Page         int        `json:"page"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
	Results      []TitleDTO `json:"results"`
}

// DetailDTO is a detail response with appended sub-resources
type DetailDTO struct {
	TitleDTO
	Runtime         int         `json:"runtime"`
	NumberOfSeasons int         `json:"number_of_seasons"`
	Seasons         []SeasonDTO `json:"seasons"`
	Videos          struct {
		Results []VideoDTO `json:"results"`
	} `json:"videos"`
	Credits struct {
		Cast []CastDTO `json:"cast"`
	} `json:"credits"`
	Recommendations PageDTO `json:"recommendations"`
	Similar         PageDTO `json:"similar"`
}

// VideoDTO is an appended video entry
type VideoDTO struct {
	Key  string `json:"key"`
	Site string `json:"site"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// CastDTO is an appended credit entry
type CastDTO struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Character string `json:"character"`
}

// SeasonDTO is a season, either embedded in a series detail or fetched on its own
type SeasonDTO struct {
	ID           int          `json:"id"`
	SeasonNumber int          `json:"season_number"`
	Name         string       `json:"name"`
	Overview     string       `json:"overview"`
	AirDate      string       `json:"air_date"`
	EpisodeCount int          `json:"episode_count"`
	PosterPath   *string      `json:"poster_path"`
	Episodes     []EpisodeDTO `json:"episodes,omitempty"`
}

// EpisodeDTO is one episode of a season
type EpisodeDTO struct {
	ID            int     `json:"id"`
	SeasonNumber  int     `json:"season_number"`
	EpisodeNumber int     `json:"episode_number"`
	Name          string  `json:"name"`
	Overview      string  `json:"overview"`
	Runtime       int     `json:"runtime"`
	StillPath     *string `json:"still_path"`
	AirDate       string  `json:"air_date"`
	VoteAverage   float64 `json:"vote_average"`
}
