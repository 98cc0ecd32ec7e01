package components

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/picta/internal/domain"
	"github.com/mmcdole/picta/internal/preview"
	"github.com/mmcdole/picta/internal/tui/styles"
)

// Layout constants for gallery cards
const (
	// Border adds 1 cell on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Title and stats lines under the thumbnail
	CardTextLines = 2

	MinCardWidth  = 16
	MinThumbRows  = 3
	FilterBarRows = 1
)

// Gallery renders results as a grid of cards
type Gallery struct {
	items  []domain.ResultItem
	thumbs map[string]image.Image
	art    map[string]string // rendered thumbnails for the current card size

	// Selection, as an index into visible()
	cursor    int
	rowOffset int

	// Dimensions
	width      int
	height     int
	maxColumns int
	focused    bool

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into items
}

// NewGallery creates a gallery with at most maxColumns cards per row
func NewGallery(maxColumns int) Gallery {
	ti := textinput.New()
	ti.Placeholder = "filter by tag or user..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.AccentStyle

	return Gallery{
		thumbs:      make(map[string]image.Image),
		art:         make(map[string]string),
		maxColumns:  max(maxColumns, 1),
		filterInput: ti,
	}
}

// SetItems replaces the displayed results.
// When items extend the current list the cursor and thumbnails are kept.
func (g *Gallery) SetItems(items []domain.ResultItem) {
	extends := len(g.items) > 0 && len(items) >= len(g.items) && items[0].ID == g.items[0].ID
	g.items = items
	if !extends {
		g.cursor = 0
		g.rowOffset = 0
		g.thumbs = make(map[string]image.Image)
		g.art = make(map[string]string)
		g.clearFilter()
		return
	}
	g.applyFilter()
}

// Items returns every result, ignoring the filter
func (g Gallery) Items() []domain.ResultItem {
	return g.items
}

// SetThumbnail stores the decoded thumbnail for id
func (g *Gallery) SetThumbnail(id string, img image.Image) {
	if img == nil {
		return
	}
	g.thumbs[id] = img
	delete(g.art, id)
}

// HasThumbnail reports whether a thumbnail for id has been stored
func (g Gallery) HasThumbnail(id string) bool {
	_, ok := g.thumbs[id]
	return ok
}

// SetSize updates the component dimensions
func (g *Gallery) SetSize(width, height int) {
	if width != g.width {
		g.art = make(map[string]string)
	}
	g.width = width
	g.height = height
	g.ensureVisible()
}

// SetFocused sets the focus state
func (g *Gallery) SetFocused(focused bool) {
	g.focused = focused
}

// IsFocused returns the focus state
func (g Gallery) IsFocused() bool {
	return g.focused
}

// IsFiltering returns whether the filter input is capturing keys
func (g Gallery) IsFiltering() bool {
	return g.filterActive
}

// Columns returns the number of cards per row at the current width
func (g Gallery) Columns() int {
	if g.width <= 0 {
		return g.maxColumns
	}
	return max(min(g.maxColumns, g.width/MinCardWidth), 1)
}

// CardWidth returns the outer width of one card
func (g Gallery) CardWidth() int {
	return max(g.width/g.Columns(), MinCardWidth)
}

// ThumbSize returns the cell size of a thumbnail
func (g Gallery) ThumbSize() (cols, rows int) {
	cols = g.CardWidth() - BorderWidth
	// Landscape photos are roughly 16:9 and a cell is two pixels tall
	rows = max(cols*9/32, MinThumbRows)
	return cols, rows
}

// CardHeight returns the outer height of one card
func (g Gallery) CardHeight() int {
	_, rows := g.ThumbSize()
	return rows + CardTextLines + BorderHeight
}

func (g Gallery) headerRows() int {
	if g.filterActive || g.filterQuery != "" {
		return FilterBarRows
	}
	return 0
}

// visibleRows returns how many card rows fit
func (g Gallery) visibleRows() int {
	return max((g.height-g.headerRows())/g.CardHeight(), 1)
}

// visible returns item indices after filtering
func (g Gallery) visible() []int {
	if g.filterQuery != "" {
		return g.filteredIdx
	}
	idx := make([]int, len(g.items))
	for i := range g.items {
		idx[i] = i
	}
	return idx
}

// VisibleCount returns the number of cards after filtering
func (g Gallery) VisibleCount() int {
	if g.filterQuery != "" {
		return len(g.filteredIdx)
	}
	return len(g.items)
}

// Cursor returns the cursor position among visible cards
func (g Gallery) Cursor() int {
	return g.cursor
}

// SetCursor moves the cursor, clamped to the visible cards
func (g *Gallery) SetCursor(pos int) {
	n := g.VisibleCount()
	if n == 0 {
		g.cursor = 0
		return
	}
	g.cursor = min(max(pos, 0), n-1)
	g.ensureVisible()
}

// Selected returns the result under the cursor
func (g Gallery) Selected() (domain.ResultItem, bool) {
	vis := g.visible()
	if g.cursor < 0 || g.cursor >= len(vis) {
		return domain.ResultItem{}, false
	}
	return g.items[vis[g.cursor]], true
}

// OnLastRow reports whether the cursor is on the final row of cards
func (g Gallery) OnLastRow() bool {
	n := g.VisibleCount()
	if n == 0 {
		return true
	}
	cols := g.Columns()
	return g.cursor/cols == (n-1)/cols
}

func (g *Gallery) ensureVisible() {
	row := g.cursor / g.Columns()
	rows := g.visibleRows()
	if row < g.rowOffset {
		g.rowOffset = row
	}
	if row >= g.rowOffset+rows {
		g.rowOffset = row - rows + 1
	}
	if g.rowOffset < 0 {
		g.rowOffset = 0
	}
}

// ItemAt hit-tests a point relative to the gallery's top-left corner
func (g Gallery) ItemAt(x, y int) (domain.ResultItem, int, bool) {
	y -= g.headerRows()
	if x < 0 || y < 0 || x >= g.Columns()*g.CardWidth() {
		return domain.ResultItem{}, 0, false
	}
	row := y/g.CardHeight() + g.rowOffset
	if row >= g.rowOffset+g.visibleRows() {
		return domain.ResultItem{}, 0, false
	}
	pos := row*g.Columns() + x/g.CardWidth()
	vis := g.visible()
	if pos >= len(vis) {
		return domain.ResultItem{}, 0, false
	}
	return g.items[vis[pos]], pos, true
}

// Update handles navigation and filter keys, returns (gallery, cmd, opened)
func (g Gallery) Update(msg tea.Msg) (Gallery, tea.Cmd, bool) {
	if !g.focused {
		return g, nil, false
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return g, nil, false
	}

	if g.filterActive {
		switch keyMsg.String() {
		case "esc":
			g.clearFilter()
			return g, nil, false
		case "enter":
			g.filterActive = false
			g.filterInput.Blur()
			return g, nil, false
		}
		var cmd tea.Cmd
		g.filterInput, cmd = g.filterInput.Update(msg)
		if q := g.filterInput.Value(); q != g.filterQuery {
			g.filterQuery = q
			g.applyFilter()
		}
		return g, cmd, false
	}

	cols := g.Columns()
	switch keyMsg.String() {
	case "left", "h":
		g.SetCursor(g.cursor - 1)
	case "right", "l":
		g.SetCursor(g.cursor + 1)
	case "up", "k":
		if g.cursor >= cols {
			g.SetCursor(g.cursor - cols)
		}
	case "down", "j":
		if g.cursor+cols < g.VisibleCount() {
			g.SetCursor(g.cursor + cols)
		} else if !g.OnLastRow() {
			g.SetCursor(g.VisibleCount() - 1)
		}
	case "pgup":
		g.SetCursor(g.cursor - cols*g.visibleRows())
	case "pgdown":
		g.SetCursor(g.cursor + cols*g.visibleRows())
	case "home", "g":
		g.SetCursor(0)
	case "end", "G":
		g.SetCursor(g.VisibleCount() - 1)
	case "enter":
		_, ok := g.Selected()
		return g, nil, ok
	case "/":
		g.filterActive = true
		return g, g.filterInput.Focus(), false
	case "esc":
		if g.filterQuery != "" {
			g.clearFilter()
		}
	}
	return g, nil, false
}

func (g *Gallery) applyFilter() {
	if g.filterQuery == "" {
		g.filteredIdx = nil
		g.SetCursor(g.cursor)
		return
	}
	g.filteredIdx = g.filteredIdx[:0]
	for i, item := range g.items {
		target := strings.Join(item.Tags, " ") + " " + item.User
		if fuzzy.MatchNormalizedFold(g.filterQuery, target) {
			g.filteredIdx = append(g.filteredIdx, i)
		}
	}
	g.SetCursor(g.cursor)
}

func (g *Gallery) clearFilter() {
	g.filterActive = false
	g.filterQuery = ""
	g.filteredIdx = nil
	g.filterInput.SetValue("")
	g.filterInput.Blur()
	g.SetCursor(g.cursor)
}

// View renders the visible rows of cards
func (g Gallery) View() string {
	var sections []string

	if g.filterActive {
		sections = append(sections, g.filterInput.View())
	} else if g.filterQuery != "" {
		sections = append(sections, styles.DimStyle.Render(
			fmt.Sprintf("/ %s (%d of %d) · esc to clear", g.filterQuery, g.VisibleCount(), len(g.items))))
	}

	vis := g.visible()
	if len(vis) == 0 {
		if len(g.items) > 0 {
			sections = append(sections, styles.DimStyle.Render("No cards match the filter."))
		}
		return lipgloss.JoinVertical(lipgloss.Left, sections...)
	}

	cols := g.Columns()
	start := g.rowOffset * cols
	end := min(start+cols*g.visibleRows(), len(vis))

	for rowStart := start; rowStart < end; rowStart += cols {
		cards := make([]string, 0, cols)
		for pos := rowStart; pos < min(rowStart+cols, end); pos++ {
			cards = append(cards, g.renderCard(g.items[vis[pos]], pos == g.cursor && g.focused))
		}
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (g Gallery) renderCard(item domain.ResultItem, selected bool) string {
	cols, rows := g.ThumbSize()

	thumb, ok := g.art[item.ID]
	if !ok {
		if img, has := g.thumbs[item.ID]; has {
			thumb = lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, preview.Render(img, cols, rows))
			g.art[item.ID] = thumb
		} else {
			thumb = placeholder(cols, rows)
		}
	}

	title := styles.TitleStyle.Render(styles.Pad(styles.Truncate(item.Title(), cols), cols))
	stats := fmt.Sprintf("♥ %s  ⬇ %s", domain.FormatCount(item.Likes), domain.FormatCount(item.Downloads))
	stats = styles.DimStyle.Render(styles.Pad(styles.Truncate(stats, cols), cols))

	style := styles.CardStyle
	if selected {
		style = styles.CardSelectedStyle
	}
	return style.Width(cols).Render(lipgloss.JoinVertical(lipgloss.Left, thumb, title, stats))
}

func placeholder(cols, rows int) string {
	line := styles.CardPlaceholderStyle.Render(strings.Repeat("░", cols))
	lines := make([]string, rows)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
