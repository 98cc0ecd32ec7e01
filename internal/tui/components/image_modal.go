package components

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/mmcdole/picta/internal/domain"
	"github.com/mmcdole/picta/internal/preview"
	"github.com/mmcdole/picta/internal/tui/styles"
)

// Modal chrome: border + padding on each side, plus title and metadata lines
const (
	modalChromeWidth  = 2 + 4
	modalChromeHeight = 2 + 2
	modalTextLines    = 4
)

// ImageModal shows the selected image at full size
type ImageModal struct {
	visible bool
	item    domain.ResultItem
	loaded  bool
	err     error

	img  image.Image
	art  string // img rendered at artW x artH
	artW int
	artH int

	spinner spinner.Model
	width   int
	height  int
}

// NewImageModal creates a hidden modal
func NewImageModal() ImageModal {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = styles.SpinnerStyle
	return ImageModal{spinner: s}
}

// Show opens the modal on item with the full image not yet loaded
func (m *ImageModal) Show(item domain.ResultItem) tea.Cmd {
	m.visible = true
	m.item = item
	m.loaded = false
	m.err = nil
	m.img = nil
	m.art = ""
	return m.spinner.Tick
}

// Hide dismisses the modal and drops the image
func (m *ImageModal) Hide() {
	m.visible = false
	m.loaded = false
	m.img = nil
	m.art = ""
	m.err = nil
}

// IsVisible returns whether the modal is shown
func (m ImageModal) IsVisible() bool {
	return m.visible
}

// Item returns the displayed item
func (m ImageModal) Item() domain.ResultItem {
	return m.item
}

// SetImage marks the full image for id as loaded
func (m *ImageModal) SetImage(id string, img image.Image) {
	if !m.visible || m.item.ID != id {
		return
	}
	m.img = img
	m.loaded = true
	m.render()
}

// render caches the image at the current art size
func (m *ImageModal) render() {
	if m.img == nil {
		m.art = ""
		return
	}
	cols, rows := m.ArtSize()
	if m.art != "" && m.artW == cols && m.artH == rows {
		return
	}
	m.art = preview.Render(m.img, cols, rows)
	m.artW, m.artH = cols, rows
}

// SetError records a failed full image load for id
func (m *ImageModal) SetError(id string, err error) {
	if !m.visible || m.item.ID != id {
		return
	}
	m.err = err
}

// IsLoaded returns whether the full image is displayed
func (m ImageModal) IsLoaded() bool {
	return m.loaded
}

// SetSize sets the screen size the modal is centered in
func (m *ImageModal) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.render()
}

// ArtSize returns the cell area available for the image
func (m ImageModal) ArtSize() (cols, rows int) {
	cols = max(m.width-modalChromeWidth-4, 10)
	rows = max(m.height-modalChromeHeight-modalTextLines-2, 4)
	return cols, rows
}

// Update advances the spinner while loading
func (m ImageModal) Update(msg tea.Msg) (ImageModal, tea.Cmd) {
	if !m.visible || m.loaded || m.err != nil {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// View renders the modal box
func (m ImageModal) View() string {
	if !m.visible {
		return ""
	}

	cols, rows := m.ArtSize()
	var body string
	switch {
	case m.loaded && m.art != "":
		body = m.art
	case m.err != nil:
		body = lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center,
			styles.ErrorStyle.Render("Could not load the full image."))
	default:
		body = lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" "+styles.DimStyle.Render("Loading full image..."))
	}

	contentWidth := max(lipgloss.Width(body), 30)
	title := styles.ModalTitleStyle.Render(styles.Truncate(m.item.Title(), contentWidth))

	var meta []string
	if m.item.User != "" {
		meta = append(meta, "by "+m.item.User)
	}
	if res := m.item.Resolution(); res != "" {
		meta = append(meta, res)
	}
	meta = append(meta,
		fmt.Sprintf("♥ %s", domain.FormatCount(m.item.Likes)),
		fmt.Sprintf("◉ %s", domain.FormatCount(m.item.Views)),
		fmt.Sprintf("⬇ %s", domain.FormatCount(m.item.Downloads)),
	)
	info := styles.SubtitleStyle.Render(wordwrap.String(strings.Join(meta, "  "), contentWidth))

	var tags string
	if len(m.item.Tags) > 0 {
		tags = styles.DimStyle.Render(wordwrap.String("#"+strings.Join(m.item.Tags, " #"), contentWidth))
	}

	hint := styles.HelpItem("esc", "close") + "  " + styles.HelpDescStyle.Render("click anywhere to close")

	parts := []string{title, body, "", info}
	if tags != "" {
		parts = append(parts, tags)
	}
	if m.item.PageURL != "" {
		parts = append(parts, styles.DimStyle.Render(styles.Truncate(m.item.PageURL, contentWidth)))
	}
	parts = append(parts, "", hint)

	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
