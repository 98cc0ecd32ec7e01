package pixabay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/mmcdole/picta/internal/domain"
)

const (
	DefaultBaseURL     = "https://pixabay.com/api/"
	DefaultImageType   = "photo"
	DefaultOrientation = "horizontal"
	DefaultPerPage     = 12
	defaultTimeout     = 15 * time.Second
	userAgent          = "Picta/1.0"
	maxErrorBody       = 512
)

// Config holds the provider parameters injected at construction
type Config struct {
	BaseURL     string
	APIKey      string
	ImageType   string
	Orientation string
	PerPage     int
	SafeSearch  bool
	Timeout     time.Duration
}

// withDefaults fills zero fields with the provider defaults
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.ImageType == "" {
		c.ImageType = DefaultImageType
	}
	if c.Orientation == "" {
		c.Orientation = DefaultOrientation
	}
	if c.PerPage <= 0 {
		c.PerPage = DefaultPerPage
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// Client implements domain.SearchClient for the Pixabay image API
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Pixabay API client
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults()
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger,
	}
}

// Search fetches one page of images for query.
// Exactly one request is made per call; failures are never retried.
func (c *Client) Search(ctx context.Context, query string, page int) ([]domain.ResultItem, error) {
	if page < 1 {
		return nil, domain.ErrInvalidPage
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("page", strconv.Itoa(page))
	params.Set("key", c.cfg.APIKey)
	params.Set("image_type", c.cfg.ImageType)
	params.Set("orientation", c.cfg.Orientation)
	params.Set("per_page", strconv.Itoa(c.cfg.PerPage))
	if c.cfg.SafeSearch {
		params.Set("safesearch", "true")
	}

	body, err := c.doRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("pixabay parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("%w: failed to parse response: %v", domain.ErrNetwork, err)
	}

	items := MapHits(resp.Hits)
	for _, item := range items {
		if item.ThumbnailURL == "" {
			c.logger.Warn("pixabay hit without image URLs", "id", item.ID, "query", query, "page", page)
		}
	}
	c.logger.Debug("pixabay search", "query", query, "page", page,
		"hits", len(resp.Hits), "totalHits", resp.TotalHits)
	return items, nil
}

// doRequest performs the GET and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context, params url.Values) ([]byte, error) {
	reqURL := c.cfg.BaseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("pixabay request", "url", redact(reqURL))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("pixabay request failed", "error", redactError(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, redactError(err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", domain.ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet := string(body)
		if len(snippet) > maxErrorBody {
			snippet = snippet[:maxErrorBody]
		}
		c.logger.Error("pixabay request error", "status", resp.StatusCode, "body", snippet)
		return nil, fmt.Errorf("%w: unexpected status code: %d", domain.ErrNetwork, resp.StatusCode)
	}

	return body, nil
}

// redact strips the API key from a request URL
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "<invalid url>"
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// redactError drops the request URL that net/http embeds in transport errors
func redactError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s %s: %w", uerr.Op, redact(uerr.URL), uerr.Err)
	}
	return err
}
