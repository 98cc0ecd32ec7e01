package session

import "github.com/mmcdole/picta/internal/domain"

// KeyEscape is the key name that dismisses the modal.
const KeyEscape = "esc"

// Modal is the lightbox lifecycle:
//
//	Closed -> Open(item, loaded=false) -> Open(item, loaded=true) -> Closed
//
// Selecting while open replaces the item and resets loaded.
type Modal struct {
	open     bool
	selected domain.ResultItem
	loaded   bool
}

// IsOpen reports whether the modal is shown
func (m Modal) IsOpen() bool {
	return m.open
}

// Selected returns the displayed item; ok is false when closed.
func (m Modal) Selected() (domain.ResultItem, bool) {
	if !m.open {
		return domain.ResultItem{}, false
	}
	return m.selected, true
}

// FullImageReady reports whether the full resolution asset finished loading
func (m Modal) FullImageReady() bool {
	return m.open && m.loaded
}

// Select opens the modal on item.
func (m Modal) Select(item domain.ResultItem) Modal {
	return Modal{open: true, selected: item}
}

// Close dismisses the modal. Closing a closed modal is a no-op.
func (m Modal) Close() Modal {
	return Modal{}
}

// KeyDown closes the modal on Escape and ignores every other key.
func (m Modal) KeyDown(key string) Modal {
	if key == KeyEscape {
		return m.Close()
	}
	return m
}

// FullImageLoaded marks the image with the given id as loaded.
// Load events that arrive after dismissal, or for an item that is no longer
// selected, leave the modal unchanged.
func (m Modal) FullImageLoaded(id string) Modal {
	if !m.open || m.selected.ID != id {
		return m
	}
	m.loaded = true
	return m
}
