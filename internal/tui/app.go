package tui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/picta/internal/domain"
	"github.com/mmcdole/picta/internal/session"
	"github.com/mmcdole/picta/internal/tui/components"
)

// Focus identifies the component receiving keyboard input
type Focus int

const (
	FocusSearch Focus = iota
	FocusGallery
	FocusLoadMore
)

// Options configures a Model
type Options struct {
	Client        domain.SearchClient
	Images        ImageLoader
	History       domain.HistoryStore // nil disables suggestions
	Logger        *slog.Logger
	GridColumns   int
	ToastDuration time.Duration
	HistoryLimit  int
	InitialQuery  string
}

// Model is the main Bubble Tea model for the application
type Model struct {
	// Services
	Controller *session.Controller
	Images     ImageLoader
	History    domain.HistoryStore
	Logger     *slog.Logger

	// UI Components
	SearchForm components.SearchForm
	Gallery    components.Gallery
	LoadMore   components.LoadMoreButton
	ImageModal components.ImageModal
	Loader     components.Loader
	Toasts     *components.Toasts

	// UI state
	Focus    Focus
	ShowHelp bool
	Ready    bool

	// Dimensions
	Width  int
	Height int

	historyLimit int
	initialQuery string
	layout       screenLayout
}

// NewModel creates the root model. The Toasts stack is the controller's notifier.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limit := opts.HistoryLimit
	if limit <= 0 {
		limit = components.MaxSuggestions * 4
	}

	toasts := components.NewToasts(opts.ToastDuration)
	ctrlOpts := []session.Option{session.WithLogger(logger)}
	if opts.History != nil {
		ctrlOpts = append(ctrlOpts, session.WithHistory(opts.History))
	}

	m := Model{
		Controller:   session.NewController(opts.Client, toasts, ctrlOpts...),
		Images:       opts.Images,
		History:      opts.History,
		Logger:       logger,
		SearchForm:   components.NewSearchForm(),
		Gallery:      components.NewGallery(opts.GridColumns),
		LoadMore:     components.NewLoadMoreButton(),
		ImageModal:   components.NewImageModal(),
		Loader:       components.NewLoader(),
		Toasts:       toasts,
		historyLimit: limit,
		initialQuery: opts.InitialQuery,
	}
	m.SearchForm.Focus()
	if opts.InitialQuery != "" {
		m.SearchForm.SetValue(opts.InitialQuery)
	}
	return m
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		m.Loader.Tick(),
		LoadHistoryCmd(m.History, m.historyLimit),
	}
	if m.initialQuery != "" {
		fetch, _ := m.Controller.SubmitQuery(m.initialQuery)
		cmds = append(cmds, RunFetchCmd(fetch), m.Toasts.Flush())
	}
	return tea.Batch(cmds...)
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.applyLayout()
	return next, tea.Batch(cmd, next.Toasts.Flush())
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case SearchSettledMsg:
		return m.handleSettled(msg.Settlement)

	case ThumbnailLoadedMsg:
		if msg.Err != nil {
			m.Logger.Debug("thumbnail failed", "id", msg.ID, "error", msg.Err)
			return m, nil
		}
		m.Gallery.SetThumbnail(msg.ID, msg.Image)
		return m, nil

	case FullImageLoadedMsg:
		if msg.Err != nil {
			m.Logger.Warn("full image failed", "id", msg.ID, "error", msg.Err)
			m.ImageModal.SetError(msg.ID, msg.Err)
			return m, nil
		}
		m.Controller.FullImageLoaded(msg.ID)
		if m.Controller.Modal().FullImageReady() {
			m.ImageModal.SetImage(msg.ID, msg.Image)
		}
		return m, nil

	case HistoryLoadedMsg:
		m.SearchForm.SetHistory(msg.Queries)
		return m, nil

	case components.ToastExpiredMsg:
		m.Toasts.Expire(msg.ID)
		return m, nil

	case ErrMsg:
		m.Logger.Warn("background task failed", "context", msg.Context, "error", msg.Err)
		return m, nil

	case spinner.TickMsg:
		var cmds []tea.Cmd
		var cmd tea.Cmd
		m.Loader, cmd = m.Loader.Update(msg)
		cmds = append(cmds, cmd)
		m.ImageModal, cmd = m.ImageModal.Update(msg)
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Cursor blink and other component-internal messages
	var cmd tea.Cmd
	m.SearchForm, cmd, _ = m.SearchForm.Update(msg)
	return m, cmd
}

// submitSearch starts a page-1 search for the search form text
func (m Model) submitSearch() (Model, tea.Cmd) {
	fetch, err := m.Controller.SubmitQuery(m.SearchForm.Value())
	if err != nil {
		if !errors.Is(err, domain.ErrEmptyQuery) {
			m.Logger.Debug("submit ignored", "error", err)
		}
		return m, nil
	}
	m.syncResults()
	return m, RunFetchCmd(fetch)
}

// loadMore requests the next page
func (m Model) loadMore() (Model, tea.Cmd) {
	fetch, err := m.Controller.LoadMore()
	if err != nil {
		m.Logger.Debug("load more ignored", "error", err)
		return m, nil
	}
	m.syncResults()
	return m, RunFetchCmd(fetch)
}

// handleSettled applies a finished search and requests thumbnails for new cards
func (m Model) handleSettled(s session.Settlement) (Model, tea.Cmd) {
	outcome := m.Controller.Settle(s)
	if outcome == session.OutcomeIgnored {
		return m, nil
	}
	m.syncResults()

	var cmds []tea.Cmd
	if outcome == session.OutcomeLoaded {
		cmds = append(cmds, m.thumbnailCmds(s.Items)...)
		if !s.Request.Appends() {
			cmds = append(cmds, LoadHistoryCmd(m.History, m.historyLimit))
			if m.Focus == FocusSearch {
				m.setFocus(FocusGallery)
			}
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) thumbnailCmds(items []domain.ResultItem) []tea.Cmd {
	if m.Images == nil {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(items))
	for _, item := range items {
		if item.ThumbnailURL == "" || m.Gallery.HasThumbnail(item.ID) {
			continue
		}
		cmds = append(cmds, LoadThumbnailCmd(m.Images, item))
	}
	return cmds
}

// syncResults pushes the controller state into the gallery and button
func (m *Model) syncResults() {
	state := m.Controller.State()
	m.Gallery.SetItems(state.Results)
	m.LoadMore.SetVisible(state.CanLoadMore() && !state.Loading)
	if m.Focus == FocusLoadMore && !m.LoadMore.IsVisible() {
		m.setFocus(FocusGallery)
	}
	if m.Focus == FocusGallery && len(state.Results) == 0 && !state.Loading {
		m.setFocus(FocusSearch)
	}
}

// openImage opens the modal on item and starts the full image download
func (m Model) openImage(item domain.ResultItem) (Model, tea.Cmd) {
	m.Controller.SelectImage(item)
	cmds := []tea.Cmd{m.ImageModal.Show(item)}
	if m.Images != nil {
		cmds = append(cmds, LoadFullImageCmd(m.Images, item))
	}
	return m, tea.Batch(cmds...)
}

// closeModal dismisses the modal
func (m *Model) closeModal() {
	m.Controller.CloseModal()
	m.ImageModal.Hide()
}

// canFocus reports whether f can take keyboard focus right now
func (m Model) canFocus(f Focus) bool {
	switch f {
	case FocusGallery:
		return len(m.Gallery.Items()) > 0
	case FocusLoadMore:
		return m.LoadMore.IsVisible()
	default:
		return true
	}
}

// setFocus moves keyboard focus, falling back to the search form
func (m *Model) setFocus(f Focus) tea.Cmd {
	if f == FocusLoadMore && !m.canFocus(f) {
		f = FocusGallery
	}
	if !m.canFocus(f) {
		f = FocusSearch
	}

	m.Focus = f
	m.Gallery.SetFocused(f == FocusGallery)
	m.LoadMore.SetFocused(f == FocusLoadMore)
	if f == FocusSearch {
		return m.SearchForm.Focus()
	}
	m.SearchForm.Blur()
	return nil
}

// cycleFocus moves focus to the next focusable component, wrapping around
func (m *Model) cycleFocus(forward bool) tea.Cmd {
	order := []Focus{FocusSearch, FocusGallery, FocusLoadMore}
	cur := int(m.Focus)
	for range order {
		if forward {
			cur = (cur + 1) % len(order)
		} else {
			cur = (cur + len(order) - 1) % len(order)
		}
		if m.canFocus(order[cur]) {
			return m.setFocus(order[cur])
		}
	}
	return nil
}
