package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmcdole/picta/internal/adapter"
	"github.com/mmcdole/picta/internal/adapter/source"
	"github.com/mmcdole/picta/internal/domain"
	"github.com/mmcdole/picta/internal/preview"
	"github.com/mmcdole/picta/internal/session"
	"github.com/mmcdole/picta/internal/store"
	"github.com/mmcdole/picta/internal/tui"
)

type rootOptions struct {
	configPath  string
	noAltScreen bool
}

func newRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "picta [QUERY]",
		Short:   "Search Pixabay images from the terminal",
		Version: version,
		Args:    cobra.ArbitraryArgs,
		// Errors are printed once by main
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts, strings.Join(args, " "))
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/picta/config.yaml)")
	cmd.Flags().BoolVar(&opts.noAltScreen, "no-alt-screen", false, "render inline instead of in the alternate screen")

	cmd.AddCommand(
		newSearchCmd(opts),
		newHistoryCmd(opts),
		newInitCmd(opts),
	)
	return cmd
}

// app holds everything built from the configuration
type app struct {
	cfg     *adapter.Config
	logger  *slog.Logger
	history *store.HistoryStore
	closers []io.Closer
}

// bootstrap loads config, sets up logging and opens the history store
func bootstrap(configPath string) (*app, error) {
	cfg, err := adapter.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger, logCloser, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger, logCloser = adapter.NullLogger(), io.NopCloser(nil)
	}
	slog.SetDefault(logger)

	a := &app{cfg: cfg, logger: logger, closers: []io.Closer{logCloser}}

	if cfg.History.Enabled {
		path, err := adapter.ExpandHome(cfg.History.Path)
		if err != nil {
			a.Close()
			return nil, err
		}
		history, err := store.NewHistoryStore(path, cfg.History.Limit)
		if err != nil {
			// History is optional
			logger.Warn("history unavailable", "path", path, "error", err)
		} else {
			a.history = history
			a.closers = append([]io.Closer{history}, a.closers...)
		}
	}
	return a, nil
}

// historyStore returns the store as the domain interface, nil when disabled
func (a *app) historyStore() domain.HistoryStore {
	if a.history == nil {
		return nil
	}
	return a.history
}

func (a *app) Close() {
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn("close failed", "error", err)
		}
	}
}

func runTUI(cmd *cobra.Command, opts *rootOptions, query string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) || !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("picta needs an interactive terminal; use 'picta search' for scripted output")
	}

	a, err := bootstrap(opts.configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	a.logger.Info("starting picta", "version", cmd.Version)

	if !a.cfg.IsConfigured() {
		if err := runSetupFlow(cmd, a.cfg, opts.configPath); err != nil {
			return err
		}
	}

	client, err := source.NewClient(&a.cfg.Provider, session.PageSize, a.logger)
	if err != nil {
		return err
	}

	model := tui.NewModel(tui.Options{
		Client:        client,
		Images:        preview.NewLoader(a.cfg.Provider.Timeout, a.logger),
		History:       a.historyStore(),
		Logger:        a.logger,
		GridColumns:   a.cfg.UI.GridColumns,
		ToastDuration: a.cfg.UI.ToastDuration,
		HistoryLimit:  a.cfg.History.Limit,
		InitialQuery:  query,
	})

	var programOpts []tea.ProgramOption
	if !opts.noAltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if a.cfg.UI.Mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}

	a.logger.Info("starting TUI")
	if _, err := tea.NewProgram(model, programOpts...).Run(); err != nil {
		a.logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	a.logger.Info("shutting down")
	return nil
}
