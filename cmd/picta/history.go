package main

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCmd(opts *rootOptions) *cobra.Command {
	var clearAll bool
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or clear recent searches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := bootstrap(opts.configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			if a.history == nil {
				return errors.New("search history is disabled")
			}

			if clearAll {
				if err := a.history.Clear(); err != nil {
					return fmt.Errorf("failed to clear history: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "✓ History cleared")
				return nil
			}

			if limit <= 0 {
				limit = a.cfg.History.Limit
			}
			entries, err := a.history.Recent(limit)
			if err != nil {
				return fmt.Errorf("failed to read history: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%d\t%s\n", e.Query, e.Count, e.LastUsed.Local().Format(time.DateTime))
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&clearAll, "clear", false, "delete all recorded searches")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of entries to show (default history.limit)")
	return cmd
}
