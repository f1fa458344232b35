package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/llehouerou/tunematch/internal/metadata"
	"github.com/llehouerou/tunematch/internal/provider"
	"github.com/llehouerou/tunematch/internal/scan"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var query string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "search DIR",
		Short: "Print the ranked metadata candidates for a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			log, err := ctx.logger()
			if err != nil {
				return err
			}

			listing, err := scan.New(log).Scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(listing.Files) == 0 && query == "" {
				return errors.New("no audio files to search for; use --query")
			}

			var cache provider.Cache
			if !noCache {
				st, err := ctx.openState()
				if err != nil {
					return err
				}
				cache = st
			}
			searcher, err := newSearcher(cfg, cache, log)
			if err != nil {
				return err
			}

			start := time.Now()
			var results []metadata.ProviderResult
			if query != "" {
				results, err = searcher.SearchManual(cmd.Context(), query, listing.Files)
			} else {
				results, err = searcher.Search(cmd.Context(), listing.Files)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(results) > 0 {
				fmt.Fprintln(out, renderTable(
					[]string{"Score", "Provider", "Artist", "Title", "Year", "Tracks"},
					resultRows(results),
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
				))
			}
			fmt.Fprintf(out, "%d candidates from %d files in %s\n",
				len(results), len(listing.Files),
				time.Since(start).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", `Free-form query, "artist - album"`)
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Bypass the search cache")
	return cmd
}

func resultRows(results []metadata.ProviderResult) [][]string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		tracks := ""
		if len(r.Tracks) > 0 {
			tracks = strconv.Itoa(len(r.Tracks))
		}
		rows = append(rows, []string{
			fmt.Sprintf("%.0f%%", r.Score*100),
			r.Provider,
			r.Artist,
			r.AlbumTitle(),
			r.Year,
			tracks,
		})
	}
	return rows
}
