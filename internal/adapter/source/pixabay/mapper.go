package pixabay

import (
	"strconv"
	"strings"

	"github.com/mmcdole/picta/internal/domain"
)

// MapHits converts Pixabay hits to domain result items, preserving order and count.
// Missing image URLs fall back to the other sizes; a hit with none keeps empty URLs.
func MapHits(hits []Hit) []domain.ResultItem {
	items := make([]domain.ResultItem, len(hits))
	for i, h := range hits {
		items[i] = mapHit(h)
	}
	return items
}

// firstNonEmpty returns the first non-empty string
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func mapHit(h Hit) domain.ResultItem {
	thumb := firstNonEmpty(h.WebformatURL, h.PreviewURL, h.LargeImageURL)
	full := firstNonEmpty(h.LargeImageURL, thumb)

	return domain.ResultItem{
		ID:           strconv.Itoa(h.ID),
		ThumbnailURL: thumb,
		FullImageURL: full,
		PageURL:      h.PageURL,
		Tags:         splitTags(h.Tags),
		User:         h.User,
		Width:        h.ImageWidth,
		Height:       h.ImageHeight,
		Likes:        h.Likes,
		Views:        h.Views,
		Downloads:    h.Downloads,
	}
}

// splitTags turns "cat, kitten, Pet" into [cat kitten pet]
func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.ToLower(strings.TrimSpace(p))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
