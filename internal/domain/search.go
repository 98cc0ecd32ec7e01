package domain

import "context"

// SearchClient performs image searches against a remote provider.
// Each call issues exactly one request; retries and concurrency control are the caller's concern.
type SearchClient interface {
	Search(ctx context.Context, query string, page int) ([]ResultItem, error)
}
