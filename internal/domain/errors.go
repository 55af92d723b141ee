package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = errors.New("not found")

	// ErrBlocked indicates the content filter rejected a record.
	// Callers render a dedicated "unavailable" state for it.
	ErrBlocked = errors.New("content blocked by safety filter")

	// ErrServerOffline indicates the metadata API is unreachable
	ErrServerOffline = errors.New("metadata API is unreachable")

	// ErrAuthFailed indicates the API key was rejected
	ErrAuthFailed = errors.New("API key is invalid")

	// ErrEmptyQuery indicates a search was attempted with a blank query
	ErrEmptyQuery = errors.New("search query is empty")

	// ErrEmptyComment indicates a comment was submitted without text
	ErrEmptyComment = errors.New("comment text is empty")

	// ErrInvalidRating indicates a rating outside the 0-10 range
	ErrInvalidRating = errors.New("rating must be between 0 and 10")

	// ErrDocStoreUnavailable indicates the document store was not reachable at start-up
	ErrDocStoreUnavailable = errors.New("document store is unavailable")
)
