package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tunematch/internal/state"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or prune the search cache",
	}
	cmd.AddCommand(newCacheStatsCommand(ctx))
	cmd.AddCommand(newCachePruneCommand(ctx))
	return cmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show search cache statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer ctx.close()

			st, err := ctx.openState()
			if err != nil {
				return err
			}
			stats, err := st.SearchCacheStats()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Field", "Value"},
				statsRows(stats),
				[]columnAlignment{alignLeft, alignRight},
			))
			return nil
		},
	}
}

func newCachePruneCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete cached searches older than the cache lifetime",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defer ctx.close()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			maxAge := cfg.CacheTTL()
			if cmd.Flags().Changed("older-than") {
				maxAge = olderThan
			}

			st, err := ctx.openState()
			if err != nil {
				return err
			}
			n, err := st.PruneSearchCache(maxAge)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s cached searches\n", humanize.Comma(n))
			return nil
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 0, "Maximum age to keep (default: cache_ttl_hours)")
	return cmd
}

func statsRows(stats state.CacheStats) [][]string {
	age := func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return humanize.Time(t)
	}
	return [][]string{
		{"Entries", humanize.Comma(int64(stats.Entries))},
		{"Results", humanize.Comma(int64(stats.Results))},
		{"Oldest", age(stats.Oldest)},
		{"Newest", age(stats.Newest)},
	}
}
