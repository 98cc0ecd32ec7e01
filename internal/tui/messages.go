package tui

import (
	"image"

	"github.com/mmcdole/picta/internal/session"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// SearchSettledMsg carries the result of a search fetch
type SearchSettledMsg struct {
	Settlement session.Settlement
}

// ThumbnailLoadedMsg signals that a card thumbnail was downloaded
type ThumbnailLoadedMsg struct {
	ID    string
	Image image.Image
	Err   error
}

// FullImageLoadedMsg signals that the modal image was downloaded
type FullImageLoadedMsg struct {
	ID    string
	Image image.Image
	Err   error
}

// HistoryLoadedMsg carries recent queries for the search form
type HistoryLoadedMsg struct {
	Queries []string
}
