package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mmcdole/picta/internal/adapter/source"
	"github.com/mmcdole/picta/internal/domain"
	"github.com/mmcdole/picta/internal/preview"
	"github.com/mmcdole/picta/internal/session"
)

// errSearchFailed is returned after the failure notification was printed
var errSearchFailed = errors.New("search failed")

// Thumbnail size printed by --preview, in cells
const (
	previewCols = 32
	previewRows = 9
)

type searchOptions struct {
	pages   int
	tag     string
	preview bool
}

func newSearchCmd(opts *rootOptions) *cobra.Command {
	so := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search without the TUI and print one line per image",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(opts.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			client, err := source.NewClient(&a.cfg.Provider, session.PageSize, a.logger)
			if err != nil {
				if errors.Is(err, source.ErrMissingAPIKey) {
					return fmt.Errorf("%w; run 'picta init' first", err)
				}
				return err
			}

			ctrlOpts := []session.Option{session.WithLogger(a.logger)}
			if h := a.historyStore(); h != nil {
				ctrlOpts = append(ctrlOpts, session.WithHistory(h))
			}
			ctrl := session.NewController(client, stderrNotifier(cmd.ErrOrStderr()), ctrlOpts...)

			out := cmd.OutOrStdout()
			var loader *preview.Loader
			if so.preview {
				loader = preview.NewLoader(a.cfg.Provider.Timeout, a.logger)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			printed := 0
			err = runSearch(ctx, ctrl, strings.Join(args, " "), so.pages, func(item domain.ResultItem) {
				if so.tag != "" && !item.HasTag(so.tag) {
					return
				}
				printed++
				printResult(out, item)
				if loader == nil {
					return
				}
				art, err := loader.LoadRendered(ctx, item.ThumbnailURL, previewCols, previewRows)
				if err != nil {
					a.logger.Warn("thumbnail preview failed", "id", item.ID, "error", err)
					return
				}
				fmt.Fprintln(out, art)
			})
			if err != nil {
				return err
			}
			if printed == 0 {
				return domain.ErrNoResults
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&so.pages, "pages", 1, "number of pages to fetch")
	cmd.Flags().StringVar(&so.tag, "tag", "", "only print images carrying this tag")
	cmd.Flags().BoolVar(&so.preview, "preview", false, "render each thumbnail below its line")
	return cmd
}

func stderrNotifier(w io.Writer) domain.Notifier {
	return domain.NotifierFunc(func(kind domain.NotifyKind, message string) {
		fmt.Fprintf(w, "%s: %s\n", kind, message)
	})
}

// runSearch drives the controller for up to pages pages, passing each new item to emit
func runSearch(ctx context.Context, ctrl *session.Controller, query string, pages int, emit func(domain.ResultItem)) error {
	fetch, err := ctrl.SubmitQuery(query)
	for page := 1; ; page++ {
		if err != nil {
			return err
		}

		printed := len(ctrl.State().Results)
		outcome := session.OutcomeIgnored
		if fetch != nil {
			outcome = ctrl.Settle(fetch(ctx))
		}
		if outcome == session.OutcomeFailed {
			return errSearchFailed
		}
		for _, item := range ctrl.State().Results[printed:] {
			emit(item)
		}

		// An empty page ends the results
		if outcome == session.OutcomeEmpty || page >= pages || !ctrl.State().CanLoadMore() {
			return nil
		}
		fetch, err = ctrl.LoadMore()
	}
}

func printResult(out io.Writer, item domain.ResultItem) {
	fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", item.ID, item.Title(), item.Resolution(), item.PageURL)
}
