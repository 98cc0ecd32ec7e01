package domain

import "errors"

// Sentinel errors for search operations
var (
	// ErrEmptyQuery indicates a submission with no query text
	ErrEmptyQuery = errors.New("search query is empty")

	// ErrNetwork indicates a transport failure or a non-success provider response
	ErrNetwork = errors.New("failed to fetch images")

	// ErrNoResults indicates a successful response that contained no images
	ErrNoResults = errors.New("no images match the search query")

	// ErrFetchInFlight indicates a search was requested while another is still loading
	ErrFetchInFlight = errors.New("a search is already in progress")

	// ErrNoMorePages indicates load more was requested without a full last page
	ErrNoMorePages = errors.New("no more pages to load")

	// ErrInvalidPage indicates a page number below 1
	ErrInvalidPage = errors.New("page must be 1 or greater")
)
