// Package safety implements the content filter applied to every title record
// and the loader for its remotely maintained keyword list.
package safety

import (
	"strings"

	"github.com/mmcdole/cinepick/internal/domain"
)

// builtinKeywords is always applied, whether or not the remote list loaded.
// Entries are lowercase; surrounding spaces are significant.
var builtinKeywords = []string{
	"sex", "섹스", "sensual", "erotic", "fetish",
	"porn", "porno", "pornography",
	"av ", "av-", " jav", "nude", "누드", "노출",
	"19금", "18+", "성인", "에로",
}

// deniedLanguages are original-language codes excluded from the catalog
var deniedLanguages = map[string]bool{
	"ja": true,
	"zh": true,
	"jp": true,
	"cn": true,
}

// bannedGenres are genre ids excluded from the catalog
var bannedGenres = map[int]bool{
	867: true,
}

// keywordProvider supplies the remote keyword list (consumer-defined interface)
type keywordProvider interface {
	Keywords() []string
}

// Filter is the single content-safety predicate
type Filter struct {
	remote keywordProvider
}

// NewFilter creates a filter that combines the built-in list with the
// provider's keywords. A nil provider applies the built-in list only.
func NewFilter(remote keywordProvider) *Filter {
	return &Filter{remote: remote}
}

// Allowed reports whether a title may be shown
func (f *Filter) Allowed(t *domain.Title) bool {
	if t == nil {
		return false
	}
	if t.Adult {
		return false
	}
	if deniedLanguages[strings.ToLower(t.OriginalLanguage)] {
		return false
	}
	if !t.HasArtwork() {
		return false
	}
	for _, id := range t.GenreIDs {
		if bannedGenres[id] {
			return false
		}
	}
	for _, g := range t.Genres {
		if bannedGenres[g.ID] {
			return false
		}
	}
	return !f.containsKeyword(t.SearchableText())
}

// Titles returns the allowed subset, preserving order
func (f *Filter) Titles(titles []domain.Title) []domain.Title {
	out := make([]domain.Title, 0, len(titles))
	for i := range titles {
		if f.Allowed(&titles[i]) {
			out = append(out, titles[i])
		}
	}
	return out
}

// BlocksQuery reports whether a search query contains a banned keyword
func (f *Filter) BlocksQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return false
	}
	return f.containsKeyword(q)
}

func (f *Filter) containsKeyword(text string) bool {
	for _, k := range builtinKeywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	if f.remote == nil {
		return false
	}
	for _, k := range f.remote.Keywords() {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
