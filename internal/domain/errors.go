package domain

import "errors"

var (
	// ErrNoIconMatch is returned when no catalog entry clears the acceptance rules
	ErrNoIconMatch = errors.New("no icon matches ingredient")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCatalogUnavailable is returned when the icon catalog cannot be loaded
	ErrCatalogUnavailable = errors.New("icon catalog unavailable")

	// ErrCatalogFetchFailure is returned when the remote catalog request fails
	ErrCatalogFetchFailure = errors.New("catalog request failed")

	// ErrCacheUnavailable is returned when cache service is unavailable
	ErrCacheUnavailable = errors.New("cache service unavailable")
)
