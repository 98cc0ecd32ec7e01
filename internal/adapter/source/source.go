package source

import (
	"errors"
	"log/slog"

	"github.com/mmcdole/picta/internal/adapter"
	"github.com/mmcdole/picta/internal/adapter/source/pixabay"
	"github.com/mmcdole/picta/internal/domain"
)

// ErrMissingAPIKey is returned when the provider has no API key configured
var ErrMissingAPIKey = errors.New("provider API key is required")

// NewClient creates the image search backend described by cfg.
// perPage is the page size the session expects from every response.
func NewClient(cfg *adapter.ProviderConfig, perPage int, logger *slog.Logger) (domain.SearchClient, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if logger == nil {
		logger = adapter.NullLogger()
	}

	return pixabay.NewClient(pixabay.Config{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		ImageType:   cfg.ImageType,
		Orientation: cfg.Orientation,
		PerPage:     perPage,
		SafeSearch:  cfg.SafeSearch,
		Timeout:     cfg.Timeout,
	}, logger), nil
}
