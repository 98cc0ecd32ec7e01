package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// Color palette
var (
	Accent     = lipgloss.Color("#2EC66B")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	HighlightStyle = lipgloss.NewStyle().
			Foreground(SlateDark).
			Background(Accent).
			Padding(0, 1)
)

// Logo is the header wordmark
var Logo = lipgloss.NewStyle().
	Foreground(SlateDark).
	Background(Accent).
	Bold(true).
	Padding(0, 1).
	Render("picta")

// Search form styles
var (
	SearchBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)

	SearchBoxFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Accent).
				Padding(0, 1)

	SuggestionStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)

	SuggestionSelectedStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	MatchHighlightStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true)
)

// Grid cell styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray)

	CardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Accent)

	CardPlaceholderStyle = lipgloss.NewStyle().
				Foreground(SlateLight)
)

// Button styles
var (
	ButtonStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 2)

	ButtonFocusedStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Accent).
				Padding(0, 2)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Padding(1, 2).
			Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)
)

// Toast styles
var (
	ToastInfoStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(SlateLight).
			Padding(0, 1)

	ToastFailureStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(Red).
				Padding(0, 1)
)

// Help styles
var (
	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(Accent)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(DimGray)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Accent)
)

// Filter styles
var (
	FilterPromptStyle = lipgloss.NewStyle().
				Foreground(Accent).
				Bold(true)
)

// Truncate shortens s to width terminal cells with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	if width == 1 {
		return truncate.String(s, 1)
	}
	return truncate.StringWithTail(s, uint(width), "…")
}

// Pad pads or truncates s to exactly width terminal cells
func Pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return truncate.String(s, uint(max(width, 0)))
	}
	return s + strings.Repeat(" ", width-w)
}

// HelpItem renders a "key desc" hint
func HelpItem(key, desc string) string {
	return HelpKeyStyle.Render(key) + " " + HelpDescStyle.Render(desc)
}
