package types

import "errors"

// Error taxonomy for the itinerary pipeline. Handlers translate these into
// structured JSON responses; raw provider errors never reach the caller.
var (
	// ErrSearchNotConfigured means the search-provider credential is absent.
	// Fatal to the operation that needed it, never to the process.
	ErrSearchNotConfigured = errors.New("search provider is not configured")

	// ErrModelProvider wraps failures of the language-model call (auth, quota,
	// timeout). Fatal to the generation request.
	ErrModelProvider = errors.New("language model request failed")

	// ErrSearchProvider wraps failures of the search call. Recovered locally:
	// enrichment degrades to an empty digest.
	ErrSearchProvider = errors.New("search provider request failed")

	// ErrValidation marks malformed input rejected before any external call.
	ErrValidation = errors.New("invalid request")

	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)
