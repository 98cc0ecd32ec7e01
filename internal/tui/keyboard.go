package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, Keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.ShowHelp {
		m.ShowHelp = false
		return m, nil
	}

	// The modal swallows every key; only Escape has an effect
	if m.Controller.Modal().IsOpen() {
		m.Controller.KeyDown(msg.String())
		if !m.Controller.Modal().IsOpen() {
			m.ImageModal.Hide()
		}
		return m, nil
	}

	switch m.Focus {
	case FocusSearch:
		return m.handleSearchKey(msg)
	case FocusLoadMore:
		return m.handleLoadMoreKey(msg)
	default:
		return m.handleGalleryKey(msg)
	}
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.NextFocus):
		return m, m.cycleFocus(true)
	case key.Matches(msg, Keys.PrevFocus):
		return m, m.cycleFocus(false)
	case key.Matches(msg, Keys.Escape):
		if m.canFocus(FocusGallery) {
			return m, m.setFocus(FocusGallery)
		}
		return m, nil
	}

	var cmd tea.Cmd
	var submitted bool
	m.SearchForm, cmd, submitted = m.SearchForm.Update(msg)
	if submitted {
		next, fetchCmd := m.submitSearch()
		return next, tea.Batch(cmd, fetchCmd)
	}
	return m, cmd
}

func (m Model) handleGalleryKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	// The filter input captures everything while active
	if !m.Gallery.IsFiltering() {
		switch {
		case key.Matches(msg, Keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, Keys.Help):
			m.ShowHelp = true
			return m, nil
		case key.Matches(msg, Keys.NextFocus):
			return m, m.cycleFocus(true)
		case key.Matches(msg, Keys.PrevFocus):
			return m, m.cycleFocus(false)
		case key.Matches(msg, Keys.Search):
			return m, m.setFocus(FocusSearch)
		case key.Matches(msg, Keys.LoadMore):
			return m.loadMore()
		case key.Matches(msg, Keys.Down) && m.Gallery.OnLastRow() && m.LoadMore.IsVisible():
			return m, m.setFocus(FocusLoadMore)
		case key.Matches(msg, Keys.Up) && m.Gallery.Cursor() < m.Gallery.Columns():
			return m, m.setFocus(FocusSearch)
		}
	}

	var cmd tea.Cmd
	var opened bool
	m.Gallery, cmd, opened = m.Gallery.Update(msg)
	if opened {
		if item, ok := m.Gallery.Selected(); ok {
			return m.openImage(item)
		}
	}
	return m, cmd
}

func (m Model) handleLoadMoreKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, Keys.Help):
		m.ShowHelp = true
	case key.Matches(msg, Keys.Enter), msg.String() == " ", key.Matches(msg, Keys.LoadMore):
		return m.loadMore()
	case key.Matches(msg, Keys.Up), key.Matches(msg, Keys.PrevFocus):
		return m, m.setFocus(FocusGallery)
	case key.Matches(msg, Keys.NextFocus):
		return m, m.cycleFocus(true)
	case key.Matches(msg, Keys.Search):
		return m, m.setFocus(FocusSearch)
	}
	return m, nil
}

// isClick reports whether msg is a button press other than the wheel
func isClick(msg tea.MouseMsg) bool {
	ev := tea.MouseEvent(msg)
	return ev.Action == tea.MouseActionPress && !ev.IsWheel() && ev.Button != tea.MouseButtonNone
}

// handleMouseMsg hit-tests clicks against the screen layout
func (m Model) handleMouseMsg(msg tea.MouseMsg) (Model, tea.Cmd) {
	// Any click while the modal is open lands on the overlay and closes it
	if m.Controller.Modal().IsOpen() {
		if isClick(msg) {
			m.closeModal()
		}
		return m, nil
	}
	if m.ShowHelp {
		if isClick(msg) {
			m.ShowHelp = false
		}
		return m, nil
	}

	ev := tea.MouseEvent(msg)
	if ev.IsWheel() {
		step := m.Gallery.Columns()
		switch ev.Button {
		case tea.MouseButtonWheelUp:
			m.Gallery.SetCursor(m.Gallery.Cursor() - step)
		case tea.MouseButtonWheelDown:
			m.Gallery.SetCursor(m.Gallery.Cursor() + step)
		}
		return m, nil
	}
	if !isClick(msg) || ev.Button != tea.MouseButtonLeft {
		return m, nil
	}

	l := m.layout
	switch {
	case msg.Y >= l.searchTop && msg.Y < l.searchTop+l.searchHeight:
		return m, m.setFocus(FocusSearch)

	case msg.Y >= l.galleryTop && msg.Y < l.galleryTop+l.galleryHeight:
		_, pos, ok := m.Gallery.ItemAt(msg.X, msg.Y-l.galleryTop)
		if !ok {
			return m, nil
		}
		focusCmd := m.setFocus(FocusGallery)
		m.Gallery.SetCursor(pos)
		item, _ := m.Gallery.Selected()
		next, cmd := m.openImage(item)
		return next, tea.Batch(focusCmd, cmd)

	case l.loadMoreHeight > 0 && m.LoadMore.Contains(msg.X, msg.Y-l.loadMoreTop):
		focusCmd := m.setFocus(FocusLoadMore)
		next, cmd := m.loadMore()
		return next, tea.Batch(focusCmd, cmd)
	}
	return m, nil
}
