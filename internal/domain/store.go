package domain

import "time"

// HistoryEntry is one remembered search query.
type HistoryEntry struct {
	Query    string    `json:"query"`
	Count    int       `json:"count"`
	LastUsed time.Time `json:"last_used"`
}

// HistoryStore remembers recently submitted queries.
// Only query strings are kept; result pages are never stored.
type HistoryStore interface {
	// Add records a query, bumping its count and recency
	Add(query string) error

	// Recent returns up to limit entries, most recently used first (limit <= 0 = all)
	Recent(limit int) ([]HistoryEntry, error)

	// Clear removes every entry
	Clear() error

	Close() error
}
