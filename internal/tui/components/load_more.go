package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/picta/internal/tui/styles"
)

// LoadMoreHeight is the rendered height of the button including its border
const LoadMoreHeight = 3

// LoadMoreButton requests the next page of results
type LoadMoreButton struct {
	visible bool
	focused bool
	width   int
}

// NewLoadMoreButton creates a hidden button
func NewLoadMoreButton() LoadMoreButton {
	return LoadMoreButton{}
}

// SetVisible shows or hides the button
func (b *LoadMoreButton) SetVisible(v bool) {
	b.visible = v
	if !v {
		b.focused = false
	}
}

// IsVisible returns whether the button is shown
func (b LoadMoreButton) IsVisible() bool {
	return b.visible
}

// SetFocused sets the focus state; a hidden button cannot take focus
func (b *LoadMoreButton) SetFocused(focused bool) {
	b.focused = focused && b.visible
}

// IsFocused returns the focus state
func (b LoadMoreButton) IsFocused() bool {
	return b.focused
}

// SetWidth sets the width the button is centered in
func (b *LoadMoreButton) SetWidth(width int) {
	b.width = width
}

// buttonWidth returns the outer width of the rendered button
func (b LoadMoreButton) buttonWidth() int {
	return lipgloss.Width(b.button())
}

func (b LoadMoreButton) button() string {
	style := styles.ButtonStyle
	if b.focused {
		style = styles.ButtonFocusedStyle
	}
	return style.Render("Load more")
}

// Contains hit-tests a point relative to the button row's top-left corner
func (b LoadMoreButton) Contains(x, y int) bool {
	if !b.visible || y < 0 || y >= LoadMoreHeight {
		return false
	}
	left := max((b.width-b.buttonWidth())/2, 0)
	return x >= left && x < left+b.buttonWidth()
}

// View renders the centered button, or nothing when hidden
func (b LoadMoreButton) View() string {
	if !b.visible {
		return ""
	}
	return lipgloss.PlaceHorizontal(b.width, lipgloss.Center, b.button())
}
