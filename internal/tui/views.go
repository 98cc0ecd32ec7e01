package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/picta/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.ShowHelp {
		return m.renderHelp()
	}

	// The modal covers the whole screen; clicks anywhere close it
	if m.Controller.Modal().IsOpen() {
		return lipgloss.Place(m.Width, m.Height,
			lipgloss.Center, lipgloss.Center,
			m.ImageModal.View())
	}

	l := m.layout
	gallery := lipgloss.NewStyle().
		Height(l.galleryHeight).
		MaxHeight(l.galleryHeight).
		Render(m.Gallery.View())

	sections := []string{
		m.renderHeader(),
		m.SearchForm.View(),
		m.renderStatus(),
		gallery,
	}
	if l.loadMoreHeight > 0 {
		sections = append(sections, m.LoadMore.View())
	}
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the wordmark and the right-aligned help hint
func (m Model) renderHeader() string {
	right := styles.HelpItem("?", "help")
	gap := max(m.Width-lipgloss.Width(styles.Logo)-lipgloss.Width(right), 1)
	return styles.Logo + strings.Repeat(" ", gap) + right
}

// renderStatus renders the spinner while loading, otherwise a result summary
func (m Model) renderStatus() string {
	state := m.Controller.State()
	switch {
	case state.Loading && state.Page > 1:
		return m.Loader.View(fmt.Sprintf("Loading page %d of %q...", state.Page, state.Query))
	case state.Loading:
		return m.Loader.View(fmt.Sprintf("Searching for %q...", state.Query))
	case state.Err != nil && len(state.Results) == 0:
		return styles.ErrorStyle.Render("Search failed. Press enter to try again.")
	case state.Query != "" && len(state.Results) == 0:
		return styles.DimStyle.Render(fmt.Sprintf("No images for %q.", state.Query))
	case len(state.Results) > 0:
		summary := fmt.Sprintf("%d images for %q", len(state.Results), state.Query)
		if state.Page > 1 {
			summary += fmt.Sprintf(" · %d pages", state.Page)
		}
		if !state.CanLoadMore() {
			summary += " · end of results"
		}
		return styles.SubtitleStyle.Render(summary)
	default:
		return styles.DimStyle.Render("Type a query and press enter.")
	}
}

// renderFooter renders toasts when present, otherwise context key hints
func (m Model) renderFooter() string {
	if toasts := m.Toasts.View(); toasts != "" {
		return lipgloss.PlaceHorizontal(m.Width, lipgloss.Right, toasts)
	}

	var hints []string
	switch m.Focus {
	case FocusSearch:
		hints = []string{
			styles.HelpItem("enter", "search"),
			styles.HelpItem("↑/↓", "history"),
			styles.HelpItem("tab", "results"),
		}
	case FocusGallery:
		if m.Gallery.IsFiltering() {
			hints = []string{styles.HelpItem("enter", "apply"), styles.HelpItem("esc", "clear")}
		} else {
			hints = []string{
				styles.HelpItem("←↑↓→", "move"),
				styles.HelpItem("enter", "open"),
				styles.HelpItem("/", "filter"),
				styles.HelpItem("s", "search"),
			}
			if m.LoadMore.IsVisible() {
				hints = append(hints, styles.HelpItem("m", "load more"))
			}
			hints = append(hints, styles.HelpItem("q", "quit"))
		}
	case FocusLoadMore:
		hints = []string{styles.HelpItem("enter", "load more"), styles.HelpItem("↑", "results")}
	}
	return styles.Truncate(strings.Join(hints, "  "), m.Width)
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	help := `
SEARCH                          RESULTS
  enter      Search               ←↑↓→/hjkl  Move
  ↑/↓        Pick from history    enter      Open image
  →          Accept suggestion    /          Filter by tag
  tab        Next section         m          Load more
  esc        Go to results        s          Back to search

IMAGE                           OTHER
  esc        Close                ?          This help
  click      Close                q / C-c    Quit

Press any key to return...
`

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(help))
}
