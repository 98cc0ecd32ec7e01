// Package session holds the search session state machine.
//
// State and Modal are immutable snapshots: every transition returns a new
// value and leaves the receiver untouched, so the TUI and tests can drive
// them without a rendering surface. Controller wraps both snapshots and
// connects them to a search client and a notifier.
package session

import (
	"strings"

	"github.com/mmcdole/picta/internal/domain"
)

// PageSize is the number of items the provider returns per page.
const PageSize = 12

// Outcome describes how a fetch settlement changed the session
type Outcome int

const (
	OutcomeIgnored Outcome = iota // settlement did not match the in-flight request
	OutcomeLoaded                 // items replaced or extended the results
	OutcomeEmpty                  // provider answered with zero items
	OutcomeFailed                 // transport or status failure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeLoaded:
		return "loaded"
	case OutcomeEmpty:
		return "empty"
	case OutcomeFailed:
		return "failed"
	default:
		return "ignored"
	}
}

// Request identifies one fetch: a query and the page to load.
type Request struct {
	Query string
	Page  int
}

// Appends reports whether the request extends existing results.
func (r Request) Appends() bool {
	return r.Page > 1
}

// State is a snapshot of one search session.
type State struct {
	Query   string
	Page    int
	Results []domain.ResultItem
	Loading bool
	Err     error

	pending Request // in-flight request, zero when idle
}

// NewState returns the session a UI starts with.
func NewState() State {
	return State{Page: 1}
}

// Pending returns the in-flight request, if any.
func (s State) Pending() (Request, bool) {
	return s.pending, s.Loading
}

// CanLoadMore reports whether the last fetch appears to have returned a full page.
// A total that happens to be a multiple of PageSize is indistinguishable from
// "more available"; the provider's total count is intentionally not consulted.
func (s State) CanLoadMore() bool {
	n := len(s.Results)
	return n > 0 && n%PageSize == 0
}

// Submit starts a new search for text.
// Blank text yields ErrEmptyQuery and a busy session yields ErrFetchInFlight;
// in both cases the returned state equals the receiver.
func (s State) Submit(text string) (State, Request, error) {
	query := strings.TrimSpace(text)
	if query == "" {
		return s, Request{}, domain.ErrEmptyQuery
	}
	if s.Loading {
		return s, Request{}, domain.ErrFetchInFlight
	}

	req := Request{Query: query, Page: 1}
	next := State{
		Query:   query,
		Page:    1,
		Results: nil,
		Loading: true,
		Err:     s.Err,
		pending: req,
	}
	return next, req, nil
}

// LoadMore requests the page after the current one.
func (s State) LoadMore() (State, Request, error) {
	if s.Loading {
		return s, Request{}, domain.ErrFetchInFlight
	}
	if !s.CanLoadMore() {
		return s, Request{}, domain.ErrNoMorePages
	}

	req := Request{Query: s.Query, Page: s.Page + 1}
	next := s
	next.Page = req.Page
	next.Loading = true
	next.pending = req
	return next, req, nil
}

// Settle applies the result of the in-flight request.
// Loading is false on every path except OutcomeIgnored, which leaves the state as is.
func (s State) Settle(req Request, items []domain.ResultItem, err error) (State, Outcome) {
	if !s.Loading || req != s.pending {
		return s, OutcomeIgnored
	}

	next := s
	next.Loading = false
	next.pending = Request{}

	switch {
	case err != nil:
		next.Err = err
		if req.Appends() {
			next.Page = req.Page - 1
		}
		return next, OutcomeFailed

	case len(items) == 0:
		// The empty page still counts as fetched
		next.Err = nil
		if !req.Appends() {
			next.Results = nil
		}
		return next, OutcomeEmpty

	default:
		next.Err = nil
		if req.Appends() {
			merged := make([]domain.ResultItem, 0, len(s.Results)+len(items))
			merged = append(merged, s.Results...)
			next.Results = append(merged, items...)
		} else {
			next.Results = append([]domain.ResultItem(nil), items...)
		}
		return next, OutcomeLoaded
	}
}
