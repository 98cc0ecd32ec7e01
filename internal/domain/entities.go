package domain

import (
	"fmt"
	"strings"
)

// ResultItem is one image returned by the search provider.
// Values are never mutated after they are received.
type ResultItem struct {
	ID           string   // Provider-specific unique identifier
	ThumbnailURL string   // Web-sized preview (gallery card)
	FullImageURL string   // Full resolution asset (modal)
	PageURL      string   // Provider landing page
	Tags         []string // Normalized, lowercase tags
	User         string   // Uploader display name

	// Full resolution dimensions in pixels
	Width  int
	Height int

	// Engagement counters
	Likes     int
	Views     int
	Downloads int
}

// Title returns a short human readable label built from the first tags.
func (r ResultItem) Title() string {
	if len(r.Tags) == 0 {
		return "#" + r.ID
	}
	limit := len(r.Tags)
	if limit > 3 {
		limit = 3
	}
	return strings.Join(r.Tags[:limit], ", ")
}

// Resolution returns "W×H" or an empty string when unknown.
func (r ResultItem) Resolution() string {
	if r.Width <= 0 || r.Height <= 0 {
		return ""
	}
	return fmt.Sprintf("%d×%d", r.Width, r.Height)
}

// HasTag reports whether the item carries the given tag (case-insensitive).
func (r ResultItem) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range r.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// FormatCount renders a counter compactly (1234 -> "1.2k").
func FormatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}
