package components

import (
	"fmt"
	"image"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/picta/internal/domain"
)

func cards(n int, tags ...string) []domain.ResultItem {
	out := make([]domain.ResultItem, n)
	for i := range out {
		out[i] = domain.ResultItem{ID: fmt.Sprintf("id-%d", i), Tags: tags, User: "user"}
	}
	return out
}

func newSizedGallery(items []domain.ResultItem) Gallery {
	g := NewGallery(4)
	g.SetSize(120, 40)
	g.SetFocused(true)
	g.SetItems(items)
	return g
}

func press(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestGalleryColumns(t *testing.T) {
	g := NewGallery(4)
	g.SetSize(120, 40)
	assert.Equal(t, 4, g.Columns())
	assert.Equal(t, 30, g.CardWidth())

	g.SetSize(40, 40)
	assert.Equal(t, 2, g.Columns())

	g.SetSize(10, 40)
	assert.Equal(t, 1, g.Columns())
}

func TestGalleryNavigation(t *testing.T) {
	g := newSizedGallery(cards(10))

	g, _, _ = g.Update(press("right"))
	assert.Equal(t, 1, g.Cursor())

	g, _, _ = g.Update(press("down"))
	assert.Equal(t, 5, g.Cursor())

	g, _, _ = g.Update(press("down"))
	assert.Equal(t, 9, g.Cursor())
	assert.True(t, g.OnLastRow())

	g, _, _ = g.Update(press("g"))
	assert.Equal(t, 0, g.Cursor())

	g, _, _ = g.Update(press("G"))
	assert.Equal(t, 9, g.Cursor())
}

func TestGalleryDownMovesToLastCardOnShortRow(t *testing.T) {
	g := newSizedGallery(cards(6))
	g.SetCursor(3)

	g, _, _ = g.Update(press("down"))
	assert.Equal(t, 5, g.Cursor())
}

func TestGalleryEnterOpensSelected(t *testing.T) {
	g := newSizedGallery(cards(3))
	g.SetCursor(2)

	g, _, opened := g.Update(press("enter"))
	require.True(t, opened)
	item, ok := g.Selected()
	require.True(t, ok)
	assert.Equal(t, "id-2", item.ID)
}

func TestGalleryIgnoresKeysWhenBlurred(t *testing.T) {
	g := newSizedGallery(cards(3))
	g.SetFocused(false)

	g, _, opened := g.Update(press("enter"))
	assert.False(t, opened)
	g, _, _ = g.Update(press("right"))
	assert.Equal(t, 0, g.Cursor())
}

func TestGallerySetItemsKeepsCursorWhenExtending(t *testing.T) {
	first := cards(12)
	g := newSizedGallery(first)
	g.SetCursor(7)
	g.SetThumbnail("id-0", image.NewRGBA(image.Rect(0, 0, 4, 4)))

	extended := append(append([]domain.ResultItem{}, first...), domain.ResultItem{ID: "more"})
	g.SetItems(extended)
	assert.Equal(t, 7, g.Cursor())
	assert.True(t, g.HasThumbnail("id-0"))

	g.SetItems([]domain.ResultItem{{ID: "new"}})
	assert.Equal(t, 0, g.Cursor())
	assert.False(t, g.HasThumbnail("id-0"))
}

func TestGalleryFilterByTag(t *testing.T) {
	items := append(cards(3, "cat", "kitten"), domain.ResultItem{ID: "dog", Tags: []string{"dog", "puppy"}})
	g := newSizedGallery(items)

	g, _, _ = g.Update(press("/"))
	require.True(t, g.IsFiltering())
	for _, r := range "pup" {
		g, _, _ = g.Update(press(string(r)))
	}
	assert.Equal(t, 1, g.VisibleCount())
	item, ok := g.Selected()
	require.True(t, ok)
	assert.Equal(t, "dog", item.ID)

	g, _, _ = g.Update(press("enter"))
	assert.False(t, g.IsFiltering())
	assert.Equal(t, 1, g.VisibleCount(), "filter stays applied")
	assert.Len(t, g.Items(), 4)

	g, _, _ = g.Update(press("esc"))
	assert.Equal(t, 4, g.VisibleCount())
}

func TestGalleryFilterNoMatches(t *testing.T) {
	g := newSizedGallery(cards(2, "cat"))
	g, _, _ = g.Update(press("/"))
	for _, r := range "zebra" {
		g, _, _ = g.Update(press(string(r)))
	}
	assert.Zero(t, g.VisibleCount())
	_, ok := g.Selected()
	assert.False(t, ok)
	assert.Contains(t, g.View(), "No cards match")
}

func TestGalleryItemAt(t *testing.T) {
	g := newSizedGallery(cards(6))
	h := g.CardHeight()

	item, pos, ok := g.ItemAt(0, 0)
	require.True(t, ok)
	assert.Equal(t, 0, pos)
	assert.Equal(t, "id-0", item.ID)

	item, pos, ok = g.ItemAt(g.CardWidth()+1, h+1)
	require.True(t, ok)
	assert.Equal(t, 5, pos)
	assert.Equal(t, "id-5", item.ID)

	_, _, ok = g.ItemAt(g.CardWidth()*2+1, h+1)
	assert.False(t, ok, "past the last card")

	_, _, ok = g.ItemAt(-1, 0)
	assert.False(t, ok)
}

func TestGalleryViewRendersCards(t *testing.T) {
	g := newSizedGallery(cards(2, "sunset", "beach"))
	g.SetThumbnail("id-0", image.NewRGBA(image.Rect(0, 0, 16, 9)))

	view := g.View()
	assert.Equal(t, 2, strings.Count(view, "sunset, beach"))
	assert.Contains(t, view, "░", "missing thumbnail renders a placeholder")
}
