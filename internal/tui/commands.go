package tui

import (
	"context"
	"image"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/picta/internal/domain"
	"github.com/mmcdole/picta/internal/preview"
	"github.com/mmcdole/picta/internal/session"
)

// Command factories for async operations

const (
	searchTimeout    = 30 * time.Second
	thumbnailTimeout = 20 * time.Second
	fullImageTimeout = 60 * time.Second

	// Decoded images are downscaled to these pixel bounds before they are kept
	thumbMaxWidth  = 96
	thumbMaxHeight = 54
	fullMaxWidth   = 480
	fullMaxHeight  = 320
)

// ImageLoader downloads and decodes images
type ImageLoader interface {
	Load(ctx context.Context, url string) (image.Image, error)
}

// RunFetchCmd runs a controller fetch off the event loop
func RunFetchCmd(fetch session.Fetch) tea.Cmd {
	if fetch == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()
		return SearchSettledMsg{Settlement: fetch(ctx)}
	}
}

// LoadThumbnailCmd downloads a card thumbnail and downscales it
func LoadThumbnailCmd(loader ImageLoader, item domain.ResultItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), thumbnailTimeout)
		defer cancel()

		img, err := loader.Load(ctx, item.ThumbnailURL)
		if err != nil {
			return ThumbnailLoadedMsg{ID: item.ID, Err: err}
		}
		return ThumbnailLoadedMsg{ID: item.ID, Image: downscale(img, thumbMaxWidth, thumbMaxHeight)}
	}
}

// LoadFullImageCmd downloads the full resolution asset for the modal
func LoadFullImageCmd(loader ImageLoader, item domain.ResultItem) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fullImageTimeout)
		defer cancel()

		img, err := loader.Load(ctx, item.FullImageURL)
		if err != nil {
			return FullImageLoadedMsg{ID: item.ID, Err: err}
		}
		return FullImageLoadedMsg{ID: item.ID, Image: downscale(img, fullMaxWidth, fullMaxHeight)}
	}
}

// downscale shrinks img to fit maxW x maxH pixels; smaller images are returned as is
func downscale(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return img
	}
	w, h := preview.Fit(b.Dx(), b.Dy(), maxW, maxH/2)
	if w == 0 || h == 0 {
		return img
	}
	return preview.Scale(img, w, h)
}

// LoadHistoryCmd reads recent queries from the history store
func LoadHistoryCmd(store domain.HistoryStore, limit int) tea.Cmd {
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := store.Recent(limit)
		if err != nil {
			return ErrMsg{Err: err, Context: "loading search history"}
		}
		queries := make([]string, len(entries))
		for i, e := range entries {
			queries[i] = e.Query
		}
		return HistoryLoadedMsg{Queries: queries}
	}
}
