package backend

import "errors"

var (
	// ErrNotFound indicates the backend returned 404 for the resource.
	ErrNotFound = errors.New("backend resource not found")

	// ErrRateLimited indicates the backend rejected the call with 429.
	ErrRateLimited = errors.New("backend rate limit exceeded")

	// ErrInvalidResponse indicates the backend returned a body that could
	// not be decoded.
	ErrInvalidResponse = errors.New("invalid response from backend")
)
