package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/picta/internal/tui/styles"
)

// MaxSuggestions is the number of history rows shown under the search box
const MaxSuggestions = 5

// SearchForm is the query input with recent-search suggestions
type SearchForm struct {
	input   textinput.Model
	focused bool
	width   int

	history     []string
	suggestions []fuzzy.Match
	selected    int // index into suggestions, -1 = none
}

// NewSearchForm creates the search input
func NewSearchForm() SearchForm {
	ti := textinput.New()
	ti.Placeholder = "Search images..."
	ti.CharLimit = 100
	ti.Prompt = "⌕ "
	ti.PromptStyle = styles.AccentStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return SearchForm{
		input:    ti,
		width:    40,
		selected: -1,
	}
}

// Focus gives the input keyboard focus
func (f *SearchForm) Focus() tea.Cmd {
	f.focused = true
	f.refreshSuggestions()
	return f.input.Focus()
}

// Blur removes keyboard focus and hides suggestions
func (f *SearchForm) Blur() {
	f.focused = false
	f.input.Blur()
}

// Focused returns whether the input has focus
func (f SearchForm) Focused() bool {
	return f.focused
}

// Value returns the raw input text
func (f SearchForm) Value() string {
	return f.input.Value()
}

// SetValue replaces the input text
func (f *SearchForm) SetValue(v string) {
	f.input.SetValue(v)
	f.input.CursorEnd()
	f.refreshSuggestions()
}

// SetWidth sets the rendered width including the border
func (f *SearchForm) SetWidth(width int) {
	f.width = width
	// border + padding + prompt
	f.input.Width = max(width-6, 1)
}

// SetHistory sets the recent queries, most recent first
func (f *SearchForm) SetHistory(queries []string) {
	f.history = queries
	f.refreshSuggestions()
}

// Suggestions returns the visible suggestion strings in rank order
func (f SearchForm) Suggestions() []string {
	out := make([]string, len(f.suggestions))
	for i, s := range f.suggestions {
		out[i] = s.Str
	}
	return out
}

// refreshSuggestions ranks history against the current input.
// An empty input lists the most recent queries.
func (f *SearchForm) refreshSuggestions() {
	f.selected = -1
	f.suggestions = nil

	value := strings.TrimSpace(f.input.Value())
	if value == "" {
		for i, q := range f.history {
			if i >= MaxSuggestions {
				break
			}
			f.suggestions = append(f.suggestions, fuzzy.Match{Str: q, Index: i})
		}
		return
	}

	matches := fuzzy.Find(strings.ToLower(value), lowered(f.history))
	for _, m := range matches {
		if strings.EqualFold(f.history[m.Index], value) {
			continue
		}
		m.Str = f.history[m.Index]
		f.suggestions = append(f.suggestions, m)
		if len(f.suggestions) == MaxSuggestions {
			break
		}
	}
}

func lowered(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}

// Update handles input events, returns (form, cmd, submitted).
// Enter submits the input text, or the highlighted suggestion when one is chosen.
func (f SearchForm) Update(msg tea.Msg) (SearchForm, tea.Cmd, bool) {
	if !f.focused {
		return f, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			if f.selected >= 0 && f.selected < len(f.suggestions) {
				f.SetValue(f.suggestions[f.selected].Str)
			}
			return f, nil, true
		case "down", "ctrl+n":
			if len(f.suggestions) > 0 {
				f.selected = (f.selected + 1) % len(f.suggestions)
			}
			return f, nil, false
		case "up", "ctrl+p":
			if len(f.suggestions) > 0 {
				f.selected--
				if f.selected < -1 {
					f.selected = len(f.suggestions) - 1
				}
			}
			return f, nil, false
		case "right":
			// Accept the highlighted suggestion when the cursor is at the end
			if f.selected >= 0 && f.input.Position() == len([]rune(f.input.Value())) {
				f.SetValue(f.suggestions[f.selected].Str)
				return f, nil, false
			}
		}
	}

	before := f.input.Value()
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() != before {
		f.refreshSuggestions()
	}
	return f, cmd, false
}

// Height returns the number of lines View will render
func (f SearchForm) Height() int {
	h := 3
	if f.focused {
		h += len(f.suggestions)
	}
	return h
}

// View renders the search box and, when focused, the suggestion list
func (f SearchForm) View() string {
	boxStyle := styles.SearchBoxStyle
	if f.focused {
		boxStyle = styles.SearchBoxFocusedStyle
	}
	box := boxStyle.Width(max(f.width-2, 1)).Render(f.input.View())

	if !f.focused || len(f.suggestions) == 0 {
		return box
	}

	rows := make([]string, 0, len(f.suggestions)+1)
	rows = append(rows, box)
	for i, s := range f.suggestions {
		style := styles.SuggestionStyle
		if i == f.selected {
			style = styles.SuggestionSelectedStyle
		}
		text := highlightMatches(styles.Truncate(s.Str, f.width-4), s.MatchedIndexes, i == f.selected)
		rows = append(rows, style.Width(f.width).Render("↺ "+text))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// highlightMatches bolds the bytes fuzzy matched against the query.
// matched holds byte offsets into s.
func highlightMatches(s string, matched []int, selected bool) string {
	if len(matched) == 0 {
		return s
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}
	style := styles.MatchHighlightStyle
	if selected {
		style = style.Background(styles.SlateLight)
	}

	var sb strings.Builder
	for i, r := range s {
		if hit[i] {
			sb.WriteString(style.Render(string(r)))
		} else {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
