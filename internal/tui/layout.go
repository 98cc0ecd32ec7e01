package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/picta/internal/tui/components"
)

// Fixed chrome heights
const (
	HeaderHeight = 1
	StatusHeight = 1
	MinGallery   = 4
)

// screenLayout holds the first row and height of each region, used by
// View and by mouse hit-testing
type screenLayout struct {
	searchTop      int
	searchHeight   int
	statusTop      int
	galleryTop     int
	galleryHeight  int
	loadMoreTop    int
	loadMoreHeight int
	footerTop      int
	footerHeight   int
}

// calculateLayout stacks the regions top to bottom
func (m Model) calculateLayout() screenLayout {
	var l screenLayout

	l.searchTop = HeaderHeight
	l.searchHeight = m.SearchForm.Height()
	l.statusTop = l.searchTop + l.searchHeight
	l.galleryTop = l.statusTop + StatusHeight

	l.footerHeight = max(lipgloss.Height(m.Toasts.View()), 1)
	if m.LoadMore.IsVisible() {
		l.loadMoreHeight = components.LoadMoreHeight
	}

	l.galleryHeight = max(m.Height-l.galleryTop-l.loadMoreHeight-l.footerHeight, MinGallery)
	l.loadMoreTop = l.galleryTop + l.galleryHeight
	l.footerTop = l.loadMoreTop + l.loadMoreHeight
	return l
}

// applyLayout sizes every component for the current window
func (m *Model) applyLayout() {
	if !m.Ready {
		return
	}
	m.SearchForm.SetWidth(min(m.Width, 72))
	m.Toasts.SetWidth(min(m.Width/2, 60))
	m.LoadMore.SetWidth(m.Width)
	m.ImageModal.SetSize(m.Width, m.Height)

	m.layout = m.calculateLayout()
	m.Gallery.SetSize(m.Width, m.layout.galleryHeight)
}
