package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/mmcdole/picta/internal/domain"
	"github.com/mmcdole/picta/internal/tui/styles"
)

// MaxToasts is the number of notifications kept on screen
const MaxToasts = 3

// ToastExpiredMsg removes the toast with ID
type ToastExpiredMsg struct {
	ID int
}

// Toast is one timed notification
type Toast struct {
	ID      int
	Kind    domain.NotifyKind
	Message string
}

// Toasts is the notification stack. It implements domain.Notifier;
// expiry timers queued by Notify are collected with Flush.
type Toasts struct {
	items    []Toast
	nextID   int
	duration time.Duration
	width    int
	pending  []tea.Cmd
}

// NewToasts creates a stack whose toasts expire after duration
func NewToasts(duration time.Duration) *Toasts {
	if duration <= 0 {
		duration = 4 * time.Second
	}
	return &Toasts{duration: duration, width: 40}
}

// Notify pushes a toast and queues its expiry
func (t *Toasts) Notify(kind domain.NotifyKind, message string) {
	t.nextID++
	id := t.nextID
	t.items = append(t.items, Toast{ID: id, Kind: kind, Message: message})
	if len(t.items) > MaxToasts {
		t.items = t.items[len(t.items)-MaxToasts:]
	}
	t.pending = append(t.pending, tea.Tick(t.duration, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	}))
}

// Flush returns the expiry timers queued since the last call
func (t *Toasts) Flush() tea.Cmd {
	if len(t.pending) == 0 {
		return nil
	}
	cmd := tea.Batch(t.pending...)
	t.pending = nil
	return cmd
}

// Expire removes the toast with id; unknown ids are ignored
func (t *Toasts) Expire(id int) {
	for i, item := range t.items {
		if item.ID == id {
			t.items = append(t.items[:i:i], t.items[i+1:]...)
			return
		}
	}
}

// Items returns the visible toasts, oldest first
func (t *Toasts) Items() []Toast {
	return t.items
}

// SetWidth sets the maximum toast width
func (t *Toasts) SetWidth(width int) {
	t.width = max(width, 10)
}

// View renders the stack, newest at the bottom
func (t *Toasts) View() string {
	if len(t.items) == 0 {
		return ""
	}
	rows := make([]string, 0, len(t.items))
	for _, item := range t.items {
		style := styles.ToastInfoStyle
		if item.Kind == domain.NotifyFailure {
			style = styles.ToastFailureStyle
		}
		// padding takes two cells
		text := wordwrap.String(item.Message, t.width-2)
		rows = append(rows, style.Render(text))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rows...)
}

var _ domain.Notifier = (*Toasts)(nil)
