package session

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/picta/internal/domain"
)

func makeItems(prefix string, n int) []domain.ResultItem {
	items := make([]domain.ResultItem, n)
	for i := range items {
		id := fmt.Sprintf("%s-%d", prefix, i)
		items[i] = domain.ResultItem{
			ID:           id,
			ThumbnailURL: "https://cdn.example/thumb/" + id,
			FullImageURL: "https://cdn.example/full/" + id,
		}
	}
	return items
}

func TestSubmitStartsPageOneFetch(t *testing.T) {
	s := NewState()

	next, req, err := s.Submit("  cats  ")
	require.NoError(t, err)
	assert.Equal(t, Request{Query: "cats", Page: 1}, req)
	assert.Equal(t, "cats", next.Query)
	assert.Equal(t, 1, next.Page)
	assert.True(t, next.Loading)
	assert.Empty(t, next.Results)

	pending, ok := next.Pending()
	assert.True(t, ok)
	assert.Equal(t, req, pending)

	// receiver untouched
	assert.False(t, s.Loading)
	assert.Empty(t, s.Query)
}

func TestSubmitRejectsBlankQuery(t *testing.T) {
	for _, text := range []string{"", " ", "\t\n"} {
		t.Run(fmt.Sprintf("%q", text), func(t *testing.T) {
			s := NewState()
			s, req, err := s.Submit("dogs")
			require.NoError(t, err)
			s, _ = s.Settle(req, makeItems("dog", 12), nil)

			next, req, err := s.Submit(text)
			assert.ErrorIs(t, err, domain.ErrEmptyQuery)
			assert.Equal(t, Request{}, req)
			assert.Equal(t, s, next)
		})
	}
}

func TestSubmitWhileLoadingIsRejected(t *testing.T) {
	s, _, err := NewState().Submit("cats")
	require.NoError(t, err)

	next, _, err := s.Submit("dogs")
	assert.ErrorIs(t, err, domain.ErrFetchInFlight)
	assert.Equal(t, s, next)
}

func TestSubmitClearsPreviousResults(t *testing.T) {
	s, req, _ := NewState().Submit("cats")
	s, _ = s.Settle(req, makeItems("cat", 12), nil)
	s, req, _ = s.LoadMore()
	s, _ = s.Settle(req, makeItems("cat2", 12), nil)
	require.Len(t, s.Results, 24)
	require.Equal(t, 2, s.Page)

	next, req, err := s.Submit("dogs")
	require.NoError(t, err)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, 1, next.Page)
	assert.Empty(t, next.Results)
}

func TestSettleReplacesResultsOnFirstPage(t *testing.T) {
	for _, n := range []int{1, 5, 12, 20} {
		t.Run(fmt.Sprintf("%d items", n), func(t *testing.T) {
			s, req, _ := NewState().Submit("cats")
			next, outcome := s.Settle(req, makeItems("cat", n), nil)
			assert.Equal(t, OutcomeLoaded, outcome)
			assert.Len(t, next.Results, n)
			assert.Equal(t, 1, next.Page)
			assert.False(t, next.Loading)
			assert.NoError(t, next.Err)
		})
	}
}

func TestLoadMoreAppendsInOrder(t *testing.T) {
	s, req, _ := NewState().Submit("cats")
	first := makeItems("p1", 12)
	s, _ = s.Settle(req, first, nil)

	s, req, err := s.LoadMore()
	require.NoError(t, err)
	assert.Equal(t, Request{Query: "cats", Page: 2}, req)
	assert.Equal(t, 2, s.Page)
	assert.True(t, s.Loading)

	second := makeItems("p2", 12)
	s, outcome := s.Settle(req, second, nil)
	require.Equal(t, OutcomeLoaded, outcome)
	assert.Equal(t, append(append([]domain.ResultItem{}, first...), second...), s.Results)
	assert.Equal(t, 2, s.Page)
	assert.False(t, s.Loading)
}

func TestLoadMoreDoesNotAliasPreviousSnapshot(t *testing.T) {
	s, req, _ := NewState().Submit("cats")
	s, _ = s.Settle(req, makeItems("p1", 12), nil)
	before := s

	s, req, _ = s.LoadMore()
	s, _ = s.Settle(req, makeItems("p2", 12), nil)

	assert.Len(t, before.Results, 12)
	assert.Len(t, s.Results, 24)
}

func TestLoadMoreKeepsDuplicates(t *testing.T) {
	s, req, _ := NewState().Submit("cats")
	page := makeItems("same", 12)
	s, _ = s.Settle(req, page, nil)
	s, req, _ = s.LoadMore()
	s, _ = s.Settle(req, page, nil)

	assert.Len(t, s.Results, 24)
	assert.Equal(t, s.Results[0], s.Results[12])
}

func TestLoadMoreRequiresFullPage(t *testing.T) {
	tests := []struct {
		name  string
		count int
		want  error
	}{
		{"no results", 0, domain.ErrNoMorePages},
		{"partial page", 5, domain.ErrNoMorePages},
		{"full page", 12, nil},
		{"two pages", 24, nil},
		{"page and a bit", 13, domain.ErrNoMorePages},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := State{Query: "cats", Page: 1, Results: makeItems("x", tt.count)}
			assert.Equal(t, tt.want == nil, s.CanLoadMore())

			_, _, err := s.LoadMore()
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestLoadMoreWhileLoadingIsRejected(t *testing.T) {
	s, req, _ := NewState().Submit("cats")
	s, _ = s.Settle(req, makeItems("p1", 12), nil)
	s, _, err := s.LoadMore()
	require.NoError(t, err)

	next, _, err := s.LoadMore()
	assert.ErrorIs(t, err, domain.ErrFetchInFlight)
	assert.Equal(t, s, next)
}

func TestSettleEmptyFirstPage(t *testing.T) {
	s, req, _ := NewState().Submit("zzzzxxxx")
	next, outcome := s.Settle(req, nil, nil)

	assert.Equal(t, OutcomeEmpty, outcome)
	assert.Empty(t, next.Results)
	assert.NoError(t, next.Err)
	assert.False(t, next.Loading)
}

func TestSettleEmptyLoadMoreKeepsResults(t *testing.T) {
	s, req, _ := NewState().Submit("cats")
	s, _ = s.Settle(req, makeItems("p1", 12), nil)
	s, req, _ = s.LoadMore()

	next, outcome := s.Settle(req, []domain.ResultItem{}, nil)
	assert.Equal(t, OutcomeEmpty, outcome)
	assert.Len(t, next.Results, 12)
	assert.Equal(t, 2, next.Page)
	assert.False(t, next.Loading)

	// The next request moves past the empty page instead of repeating it
	_, again, err := next.LoadMore()
	require.NoError(t, err)
	assert.Equal(t, 3, again.Page)
}

func TestSettleFailureRetainsResults(t *testing.T) {
	boom := fmt.Errorf("%w: connection refused", domain.ErrNetwork)

	t.Run("first page", func(t *testing.T) {
		s, req, _ := NewState().Submit("cats")
		next, outcome := s.Settle(req, nil, boom)
		assert.Equal(t, OutcomeFailed, outcome)
		assert.Empty(t, next.Results)
		assert.ErrorIs(t, next.Err, domain.ErrNetwork)
		assert.False(t, next.Loading)
		assert.Equal(t, 1, next.Page)
	})

	t.Run("load more rolls back page", func(t *testing.T) {
		s, req, _ := NewState().Submit("cats")
		s, _ = s.Settle(req, makeItems("p1", 12), nil)
		s, req, _ = s.LoadMore()
		require.Equal(t, 2, s.Page)

		next, outcome := s.Settle(req, nil, boom)
		assert.Equal(t, OutcomeFailed, outcome)
		assert.Len(t, next.Results, 12)
		assert.Equal(t, 1, next.Page)
		assert.Error(t, next.Err)
		assert.False(t, next.Loading)

		// retry requests the same page again
		_, retry, err := next.LoadMore()
		require.NoError(t, err)
		assert.Equal(t, 2, retry.Page)
	})
}

func TestSuccessClearsPreviousError(t *testing.T) {
	s, req, _ := NewState().Submit("cats")
	s, _ = s.Settle(req, nil, errors.New("boom"))
	require.Error(t, s.Err)

	s, req, _ = s.Submit("cats")
	s, outcome := s.Settle(req, makeItems("cat", 3), nil)
	assert.Equal(t, OutcomeLoaded, outcome)
	assert.NoError(t, s.Err)
}

func TestSettleIgnoresStaleRequests(t *testing.T) {
	idle := NewState()
	next, outcome := idle.Settle(Request{Query: "cats", Page: 1}, makeItems("c", 3), nil)
	assert.Equal(t, OutcomeIgnored, outcome)
	assert.Equal(t, idle, next)

	s, _, _ := NewState().Submit("cats")
	next, outcome = s.Settle(Request{Query: "dogs", Page: 1}, makeItems("d", 3), nil)
	assert.Equal(t, OutcomeIgnored, outcome)
	assert.True(t, next.Loading)
}

func TestLoadMoreScenario(t *testing.T) {
	s, req, _ := NewState().Submit("cats")
	s, _ = s.Settle(req, makeItems("p1", 12), nil)
	require.Len(t, s.Results, 12)
	require.True(t, s.CanLoadMore())

	s, req, err := s.LoadMore()
	require.NoError(t, err)
	s, _ = s.Settle(req, makeItems("p2", 5), nil)

	assert.Len(t, s.Results, 17)
	assert.False(t, s.CanLoadMore())
}
