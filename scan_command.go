package main

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tunematch/internal/metadata"
	"github.com/llehouerou/tunematch/internal/scan"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan DIR",
		Short: "List the audio files of a directory with their tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer ctx.close()

			log, err := ctx.logger()
			if err != nil {
				return err
			}
			listing, err := scan.New(log).Scan(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(listing.Files) > 0 {
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Title", "Artist", "Album", "Year", "File"},
					fileRows(listing.Files),
					[]columnAlignment{alignRight},
				))
			}
			fmt.Fprintf(out, "%s audio files, %s subdirectories\n",
				humanize.Comma(int64(len(listing.Files))),
				humanize.Comma(int64(len(listing.Directories))))
			return nil
		},
	}
}

func fileRows(files []metadata.MetadataItem) [][]string {
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		rows = append(rows, []string{
			f.Track, f.Title, f.Artist, f.Album, f.Year, filepath.Base(f.Path),
		})
	}
	return rows
}
