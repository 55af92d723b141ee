package tmdb

import (
	"strings"

	"github.com/mmcdole/cinepick/internal/domain"
)

// MapTitle converts a TMDb record into a domain.Title.
// The record's own media_type wins over the fallback inferred from the endpoint.
func MapTitle(dto TitleDTO, fallback domain.MediaType) domain.Title {
	mediaType := fallback
	if mt, err := domain.ParseMediaType(dto.MediaType); err == nil {
		mediaType = mt
	}
	if mediaType == "" {
		// Series records carry name/first_air_date instead of title/release_date
		if dto.Name != "" || dto.FirstAirDate != "" {
			mediaType = domain.MediaTypeTV
		} else {
			mediaType = domain.MediaTypeMovie
		}
	}

	if mediaType == domain.MediaTypeTV {
		return mapShow(dto)
	}
	return mapMovie(dto)
}

func mapMovie(dto TitleDTO) domain.Title {
	t := baseTitle(dto, domain.MediaTypeMovie)
	t.Name = firstNonEmpty(dto.Title, dto.Name)
	t.OriginalName = firstNonEmpty(dto.OriginalTitle, dto.OriginalName)
	t.ReleaseDate = firstNonEmpty(dto.ReleaseDate, dto.FirstAirDate)
	t.AltNames = altNames(dto, t)
	return t
}

func mapShow(dto TitleDTO) domain.Title {
	t := baseTitle(dto, domain.MediaTypeTV)
	t.Name = firstNonEmpty(dto.Name, dto.Title)
	t.OriginalName = firstNonEmpty(dto.OriginalName, dto.OriginalTitle)
	t.ReleaseDate = firstNonEmpty(dto.FirstAirDate, dto.ReleaseDate)
	t.AltNames = altNames(dto, t)
	return t
}

// altNames keeps every name variant the record carried that did not become
// Name or OriginalName, so the content filter still sees it
func altNames(dto TitleDTO, t domain.Title) []string {
	var alts []string
	for _, n := range []string{dto.Title, dto.OriginalTitle, dto.Name, dto.OriginalName} {
		if n == "" || n == t.Name || n == t.OriginalName {
			continue
		}
		alts = append(alts, n)
	}
	return alts
}

func baseTitle(dto TitleDTO, mediaType domain.MediaType) domain.Title {
	t := domain.Title{
		ID:               dto.ID,
		Type:             mediaType,
		Overview:         dto.Overview,
		PosterPath:       deref(dto.PosterPath),
		BackdropPath:     deref(dto.BackdropPath),
		VoteAverage:      dto.VoteAverage,
		Popularity:       dto.Popularity,
		OriginalLanguage: dto.OriginalLanguage,
		Adult:            dto.Adult,
		GenreIDs:         dto.GenreIDs,
	}

	if len(dto.Genres) > 0 {
		t.Genres = make([]domain.Genre, len(dto.Genres))
		ids := make([]int, len(dto.Genres))
		for i, g := range dto.Genres {
			t.Genres[i] = domain.Genre{ID: g.ID, Name: g.Name}
			ids[i] = g.ID
		}
		if len(t.GenreIDs) == 0 {
			t.GenreIDs = ids
		}
	}
	return t
}

// MapTitles converts a slice of TMDb records
func MapTitles(dtos []TitleDTO, fallback domain.MediaType) []domain.Title {
	titles := make([]domain.Title, len(dtos))
	for i, dto := range dtos {
		titles[i] = MapTitle(dto, fallback)
	}
	return titles
}

// MapPage converts a TMDb page
func MapPage(dto PageDTO, fallback domain.MediaType) *domain.Page {
	return &domain.Page{
		Page:         dto.Page,
		TotalPages:   dto.TotalPages,
		TotalResults: dto.TotalResults,
		Results:      MapTitles(dto.Results, fallback),
	}
}

// MapDetail converts a detail response
func MapDetail(dto DetailDTO, mediaType domain.MediaType) *domain.TitleDetail {
	d := &domain.TitleDetail{
		Title:           MapTitle(dto.TitleDTO, mediaType),
		Runtime:         dto.Runtime,
		NumberOfSeasons: dto.NumberOfSeasons,
	}
	// The detail endpoint is authoritative about what it returned
	d.Type = mediaType

	for _, s := range dto.Seasons {
		d.Seasons = append(d.Seasons, domain.SeasonSummary{
			SeasonNumber: s.SeasonNumber,
			Name:         s.Name,
			EpisodeCount: s.EpisodeCount,
			AirDate:      s.AirDate,
			PosterPath:   deref(s.PosterPath),
		})
	}
	for _, v := range dto.Videos.Results {
		d.Videos = append(d.Videos, domain.Video{Key: v.Key, Site: v.Site, Type: v.Type, Name: v.Name})
	}
	if mediaType == domain.MediaTypeTV {
		for _, c := range dto.Credits.Cast {
			d.Cast = append(d.Cast, domain.CastMember{ID: c.ID, Name: c.Name, Character: c.Character})
		}
		d.Recommendations = MapTitles(dto.Recommendations.Results, mediaType)
		d.Similar = MapTitles(dto.Similar.Results, mediaType)
	}
	return d
}

// MapSeason converts a season response
func MapSeason(dto SeasonDTO, showID int) *domain.Season {
	s := &domain.Season{
		ID:           dto.ID,
		ShowID:       showID,
		SeasonNumber: dto.SeasonNumber,
		Name:         dto.Name,
		Overview:     dto.Overview,
		AirDate:      dto.AirDate,
		Episodes:     make([]domain.Episode, 0, len(dto.Episodes)),
	}
	for _, e := range dto.Episodes {
		s.Episodes = append(s.Episodes, domain.Episode{
			ID:            e.ID,
			SeasonNumber:  e.SeasonNumber,
			EpisodeNumber: e.EpisodeNumber,
			Name:          e.Name,
			Overview:      e.Overview,
			Runtime:       e.Runtime,
			StillPath:     deref(e.StillPath),
			AirDate:       e.AirDate,
			VoteAverage:   e.VoteAverage,
		})
	}
	return s
}

// mediaTypeFromPath infers the media type from a listing path like /tv/popular
func mediaTypeFromPath(path string) domain.MediaType {
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		switch seg {
		case "tv":
			return domain.MediaTypeTV
		case "movie":
			return domain.MediaTypeMovie
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
