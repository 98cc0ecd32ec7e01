// Package preview downloads images and renders them as terminal half-block art.
package preview

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"time"

	_ "golang.org/x/image/webp"

	"github.com/mmcdole/picta/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Picta/1.0"

	// MaxImageBytes caps a single download
	MaxImageBytes = 32 << 20
)

// Loader fetches and decodes remote images
type Loader struct {
	httpClient *http.Client
	logger     *slog.Logger
}

// NewLoader creates a loader. timeout <= 0 uses a 30 second default.
func NewLoader(timeout time.Duration, logger *slog.Logger) *Loader {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Load downloads and decodes the image at url
func (l *Loader) Load(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := l.httpClient.Do(req)
	if err != nil {
		l.logger.Error("image download failed", "url", url, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		l.logger.Error("image download error", "url", url, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: unexpected status code: %d", domain.ErrNetwork, resp.StatusCode)
	}

	img, format, err := image.Decode(io.LimitReader(resp.Body, MaxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	b := img.Bounds()
	l.logger.Debug("image loaded", "url", url, "format", format,
		"width", b.Dx(), "height", b.Dy(), "duration", time.Since(start))
	return img, nil
}

// LoadRendered downloads the image at url and renders it to fit cols x rows cells
func (l *Loader) LoadRendered(ctx context.Context, url string, cols, rows int) (string, error) {
	img, err := l.Load(ctx, url)
	if err != nil {
		return "", err
	}
	return Render(img, cols, rows), nil
}
