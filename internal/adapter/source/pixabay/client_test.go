package pixabay

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/picta/internal/domain"
)

const catsPage = `{
  "total": 4692,
  "totalHits": 500,
  "hits": [
    {
      "id": 195893,
      "pageURL": "https://pixabay.com/en/blossom-bloom-flower-195893/",
      "type": "photo",
      "tags": "blossom, bloom, Flower",
      "webformatURL": "https://pixabay.com/get/35bbf209e13e39d2_640.jpg",
      "largeImageURL": "https://pixabay.com/get/ed6a99fd0a76647_1280.jpg",
      "imageWidth": 4000,
      "imageHeight": 2250,
      "views": 7671,
      "downloads": 6439,
      "likes": 5,
      "user": "Josch13"
    },
    {
      "id": 73424,
      "pageURL": "https://pixabay.com/en/cat-73424/",
      "tags": "cat",
      "webformatURL": "https://pixabay.com/get/cat_640.jpg",
      "largeImageURL": "https://pixabay.com/get/cat_1280.jpg",
      "imageWidth": 1920,
      "imageHeight": 1080,
      "user": "Hans"
    }
  ]
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewClient(Config{BaseURL: srv.URL + "/api/", APIKey: "secret-key"}, nil)
	return srv, client
}

func TestSearchSendsProviderParameters(t *testing.T) {
	var got *http.Request
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(catsPage))
	})

	items, err := client.Search(context.Background(), "yellow flowers", 3)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/api/", got.URL.Path)
	q := got.URL.Query()
	assert.Equal(t, "yellow flowers", q.Get("q"))
	assert.Equal(t, "3", q.Get("page"))
	assert.Equal(t, "secret-key", q.Get("key"))
	assert.Equal(t, "photo", q.Get("image_type"))
	assert.Equal(t, "horizontal", q.Get("orientation"))
	assert.Equal(t, "12", q.Get("per_page"))
	assert.False(t, q.Has("safesearch"))

	require.Len(t, items, 2)
	assert.Equal(t, "195893", items[0].ID)
	assert.Equal(t, "https://pixabay.com/get/35bbf209e13e39d2_640.jpg", items[0].ThumbnailURL)
	assert.Equal(t, "https://pixabay.com/get/ed6a99fd0a76647_1280.jpg", items[0].FullImageURL)
	assert.Equal(t, []string{"blossom", "bloom", "flower"}, items[0].Tags)
	assert.Equal(t, 4000, items[0].Width)
	assert.Equal(t, "Josch13", items[0].User)
	assert.Equal(t, "73424", items[1].ID)
}

func TestSearchSafeSearchAndCustomConfig(t *testing.T) {
	var query atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query.Store(r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"hits":[]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{
		BaseURL:     srv.URL,
		APIKey:      "k",
		ImageType:   "illustration",
		Orientation: "vertical",
		PerPage:     30,
		SafeSearch:  true,
	}, nil)

	_, err := client.Search(context.Background(), "cats", 1)
	require.NoError(t, err)

	raw, _ := query.Load().(string)
	assert.Contains(t, raw, "image_type=illustration")
	assert.Contains(t, raw, "orientation=vertical")
	assert.Contains(t, raw, "per_page=30")
	assert.Contains(t, raw, "safesearch=true")
}

func TestSearchEmptyHits(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"total":0,"totalHits":0,"hits":[]}`))
	})

	items, err := client.Search(context.Background(), "zzzzxxxx", 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestSearchFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"page out of range", http.StatusBadRequest, `[ERROR 400] "page" is out of valid range.`, domain.ErrNetwork},
		{"bad key", http.StatusUnauthorized, `[ERROR 400] Invalid API key`, domain.ErrNetwork},
		{"rate limited", http.StatusTooManyRequests, ``, domain.ErrNetwork},
		{"server error", http.StatusInternalServerError, `oops`, domain.ErrNetwork},
		{"malformed json", http.StatusOK, `{"hits": [`, domain.ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			items, err := client.Search(context.Background(), "cats", 1)
			assert.Nil(t, items)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSearchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(Config{BaseURL: url, APIKey: "secret-key", Timeout: time.Second}, nil)
	_, err := client.Search(context.Background(), "cats", 1)
	require.ErrorIs(t, err, domain.ErrNetwork)
	assert.NotContains(t, err.Error(), "secret-key")
}

func TestSearchRejectsInvalidPageWithoutRequest(t *testing.T) {
	var calls atomic.Int32
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	})

	for _, page := range []int{0, -1} {
		_, err := client.Search(context.Background(), "cats", page)
		assert.ErrorIs(t, err, domain.ErrInvalidPage)
	}
	assert.Zero(t, calls.Load())
}

func TestSearchOneRequestPerCall(t *testing.T) {
	var calls atomic.Int32
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.Search(context.Background(), "cats", 1)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSearchHonoursContext(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := client.Search(ctx, "cats", 1)
	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestSearchNeverLogsAPIKey(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(catsPage))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, APIKey: "secret-key"}, logger)
	_, err := client.Search(context.Background(), "cats", 1)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "pixabay request")
	assert.Contains(t, buf.String(), "REDACTED")
	assert.NotContains(t, buf.String(), "secret-key")
}

func TestMapHitsKeepsOrderAndCount(t *testing.T) {
	items := MapHits([]Hit{
		{ID: 1, WebformatURL: "thumb", LargeImageURL: "full"},
		{ID: 2},
		{ID: 3, PreviewURL: "preview"},
		{ID: 4, LargeImageURL: "full"},
	})

	require.Len(t, items, 4)
	tests := []struct {
		id, thumb, full string
	}{
		{"1", "thumb", "full"},
		{"2", "", ""},
		{"3", "preview", "preview"},
		{"4", "full", "full"},
	}
	for i, tt := range tests {
		assert.Equal(t, tt.id, items[i].ID)
		assert.Equal(t, tt.thumb, items[i].ThumbnailURL, "thumbnail of %s", tt.id)
		assert.Equal(t, tt.full, items[i].FullImageURL, "full image of %s", tt.id)
	}
}

func TestSearchKeepsFullPageWithMissingURLs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var resp SearchResponse
		for i := 0; i < DefaultPerPage; i++ {
			hit := Hit{ID: i + 1, WebformatURL: "https://cdn.example/t.jpg"}
			if i == 5 {
				hit.WebformatURL = ""
			}
			resp.Hits = append(resp.Hits, hit)
		}
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL, APIKey: "secret-key"}, logger)
	items, err := client.Search(context.Background(), "cats", 1)
	require.NoError(t, err)

	assert.Len(t, items, DefaultPerPage)
	assert.Equal(t, "6", items[5].ID)
	assert.Contains(t, buf.String(), "pixabay hit without image URLs")
}
