package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmcdole/picta/internal/domain"
)

// User-facing notification messages
const (
	MsgEnterQuery  = "Enter your search query."
	MsgFetchFailed = "Failed to fetch images. Please try again."
)

// noResultsMessage is surfaced when the provider answers with zero items
func noResultsMessage(query string) string {
	return fmt.Sprintf("No images match %q. Try another query.", query)
}

// Settlement is the result of running a Fetch.
type Settlement struct {
	Request Request
	Items   []domain.ResultItem
	Err     error
}

// Fetch performs the single network call for an accepted request.
// The controller never runs it itself; callers decide where it blocks.
type Fetch func(ctx context.Context) Settlement

// Controller owns a session and its modal, and drives the search client.
// It is not safe for concurrent use: all calls belong to one event loop.
type Controller struct {
	client   domain.SearchClient
	notifier domain.Notifier
	history  domain.HistoryStore
	logger   *slog.Logger

	state State
	modal Modal
}

// Option configures optional controller collaborators
type Option func(*Controller)

// WithHistory records successful searches into store.
func WithHistory(store domain.HistoryStore) Option {
	return func(c *Controller) {
		c.history = store
	}
}

// WithLogger sets the controller logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewController creates a controller with an empty session.
func NewController(client domain.SearchClient, notifier domain.Notifier, opts ...Option) *Controller {
	if notifier == nil {
		notifier = domain.NoOpNotifier{}
	}
	c := &Controller{
		client:   client,
		notifier: notifier,
		logger:   slog.Default(),
		state:    NewState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current session snapshot
func (c *Controller) State() State {
	return c.state
}

// Modal returns the current modal snapshot
func (c *Controller) Modal() Modal {
	return c.modal
}

// SubmitQuery starts a page-1 search for text.
// The returned error explains why no fetch was issued; the user has already
// been notified where that applies, so callers may ignore it.
func (c *Controller) SubmitQuery(text string) (Fetch, error) {
	next, req, err := c.state.Submit(text)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuery) {
			c.notifier.Notify(domain.NotifyInfo, MsgEnterQuery)
		}
		c.logger.Debug("search rejected", "error", err)
		return nil, err
	}
	c.state = next
	c.logger.Debug("search submitted", "query", req.Query)
	return c.fetch(req), nil
}

// LoadMore requests the next page of the current query.
func (c *Controller) LoadMore() (Fetch, error) {
	next, req, err := c.state.LoadMore()
	if err != nil {
		c.logger.Debug("load more rejected", "error", err)
		return nil, err
	}
	c.state = next
	c.logger.Debug("load more", "query", req.Query, "page", req.Page)
	return c.fetch(req), nil
}

// Settle applies a finished fetch and emits the matching notification.
func (c *Controller) Settle(s Settlement) Outcome {
	next, outcome := c.state.Settle(s.Request, s.Items, s.Err)
	c.state = next

	switch outcome {
	case OutcomeLoaded:
		c.logger.Debug("search settled",
			"query", s.Request.Query, "page", s.Request.Page,
			"items", len(s.Items), "total", len(next.Results))
		if !s.Request.Appends() {
			c.remember(s.Request.Query)
		}
	case OutcomeEmpty:
		c.logger.Debug("search returned no items", "query", s.Request.Query, "page", s.Request.Page)
		c.notifier.Notify(domain.NotifyInfo, noResultsMessage(s.Request.Query))
	case OutcomeFailed:
		c.logger.Error("search failed", "query", s.Request.Query, "page", s.Request.Page, "error", s.Err)
		c.notifier.Notify(domain.NotifyFailure, MsgFetchFailed)
	case OutcomeIgnored:
		c.logger.Warn("stale settlement ignored", "query", s.Request.Query, "page", s.Request.Page)
	}
	return outcome
}

// SelectImage opens the modal on item
func (c *Controller) SelectImage(item domain.ResultItem) {
	c.modal = c.modal.Select(item)
}

// CloseModal dismisses the modal
func (c *Controller) CloseModal() {
	c.modal = c.modal.Close()
}

// KeyDown forwards a key press to the modal
func (c *Controller) KeyDown(key string) {
	c.modal = c.modal.KeyDown(key)
}

// FullImageLoaded marks the selected image as loaded
func (c *Controller) FullImageLoaded(id string) {
	c.modal = c.modal.FullImageLoaded(id)
}

func (c *Controller) fetch(req Request) Fetch {
	client := c.client
	return func(ctx context.Context) Settlement {
		items, err := client.Search(ctx, req.Query, req.Page)
		return Settlement{Request: req, Items: items, Err: err}
	}
}

func (c *Controller) remember(query string) {
	if c.history == nil {
		return
	}
	if err := c.history.Add(query); err != nil {
		c.logger.Warn("failed to record search history", "query", query, "error", err)
	}
}
