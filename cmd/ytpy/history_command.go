package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/robertrahardja/ytpy/internal/history"
)

func newHistoryCommand(cmdCtx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect the acquisition history",
	}

	historyCmd.AddCommand(newHistoryListCommand(cmdCtx))
	historyCmd.AddCommand(newHistoryStatsCommand(cmdCtx))
	historyCmd.AddCommand(newHistoryClearCommand(cmdCtx))

	return historyCmd
}

func (c *commandContext) withStore(fn func(*history.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(store)
}

func newHistoryListCommand(cmdCtx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show recent acquisitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withStore(func(store *history.Store) error {
				entries, err := store.Recent(cmd.Context(), limit)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No history yet")
					return nil
				}

				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					detail := entry.OutputPath
					if entry.Status == history.StatusFailed {
						detail = entry.ErrorMessage
					}
					rows = append(rows, []string{
						entry.VideoID,
						entry.Title,
						string(entry.Status),
						entry.CreatedAt.Local().Format(time.DateTime),
						detail,
					})
				}
				fmt.Fprintln(out, renderTable([]string{"Video", "Title", "Status", "When", "Detail"}, rows))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries to show")
	return cmd
}

func newHistoryStatsCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize the history by outcome",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmdCtx.withStore(func(store *history.Store) error {
				stats, err := store.Summarize(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Total:   %d\n", stats.Total)
				fmt.Fprintf(out, "Fetched: %d\n", stats.Fetched)
				fmt.Fprintf(out, "Failed:  %d\n", stats.Failed)
				fmt.Fprintf(out, "Skipped: %d\n", stats.Skipped)
				return nil
			})
		},
	}
}

func newHistoryClearCommand(cmdCtx *commandContext) *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all history entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return fmt.Errorf("refusing to clear history without --yes")
			}
			return cmdCtx.withStore(func(store *history.Store) error {
				if err := store.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared")
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&confirmed, "yes", "y", false, "Confirm deletion")
	return cmd
}
