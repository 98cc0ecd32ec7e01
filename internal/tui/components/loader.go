package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/picta/internal/tui/styles"
)

// Loader is a labelled spinner
type Loader struct {
	spinner spinner.Model
}

// NewLoader creates a loader
func NewLoader() Loader {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle
	return Loader{spinner: s}
}

// Tick starts the animation
func (l Loader) Tick() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the animation on its own tick messages
func (l Loader) Update(msg tea.Msg) (Loader, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

// View renders the spinner followed by label
func (l Loader) View(label string) string {
	if label == "" {
		return l.spinner.View()
	}
	return l.spinner.View() + " " + styles.DimStyle.Render(label)
}
