package domain

import (
	"context"
	"net/url"
)

// CatalogRepository provides access to the metadata API (implemented by metadata clients).
// Implementations append the API key, locale and the forced "exclude adult" flag.
type CatalogRepository interface {
	// GetListing fetches a listing endpoint such as /movie/popular
	GetListing(ctx context.Context, path string, query url.Values) (*Page, error)

	// GetDetail fetches a single title's full record
	GetDetail(ctx context.Context, id int, mediaType MediaType) (*TitleDetail, error)

	// GetSeason fetches one season's episode list
	GetSeason(ctx context.Context, tvID, seasonNumber int) (*Season, error)

	// Search performs a title search for one media type
	Search(ctx context.Context, query string, mediaType MediaType) (*Page, error)
}

// KeywordSource provides the remote banned-keyword document.
// Returns ErrNotFound when the document does not exist.
type KeywordSource interface {
	BannedKeywords(ctx context.Context) ([]string, error)
}

// FavoriteRepository provides per-user favorites
type FavoriteRepository interface {
	ListFavorites(ctx context.Context, userID string) ([]Favorite, error)
	SaveFavorite(ctx context.Context, userID string, fav Favorite) error
	DeleteFavorite(ctx context.Context, userID string, titleID int) error
}

// CommentRepository provides per-title comments
type CommentRepository interface {
	// ListComments returns all comments for a title, newest first
	ListComments(ctx context.Context, titleID int) ([]Comment, error)

	// ListUserComments returns every comment a user has written, newest first
	ListUserComments(ctx context.Context, userID string) ([]Comment, error)

	// AddComment stores a comment and returns it with its assigned ID
	AddComment(ctx context.Context, c Comment) (Comment, error)
}
