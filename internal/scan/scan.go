// Package scan lists a directory for review: its subdirectories and the
// tags of the audio files it holds.
package scan

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/tunematch/internal/metadata"
	"github.com/llehouerou/tunematch/internal/tags"
)

// Scanner reads directories from the local filesystem.
type Scanner struct {
	log     *zap.Logger
	workers int
}

// New creates a Scanner. A nil logger discards output.
func New(log *zap.Logger) *Scanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scanner{log: log, workers: runtime.NumCPU()}
}

// Scan lists path. Directories and files are sorted by path; hidden entries
// are skipped. Files whose tags cannot be read are listed with their file
// name as title. Only the directory listing itself can fail.
func (s *Scanner) Scan(ctx context.Context, path string) (metadata.Listing, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return metadata.Listing{}, err
	}

	var dirs, files []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		full := filepath.Join(path, name)

		isDir := e.IsDir()
		if e.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(full); err == nil {
				isDir = info.IsDir()
			}
		}

		switch {
		case isDir:
			dirs = append(dirs, full)
		case tags.IsAudioFile(full):
			files = append(files, full)
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)

	items, err := s.readTags(ctx, files)
	if err != nil {
		return metadata.Listing{}, err
	}

	s.log.Debug("scanned directory",
		zap.String("path", path),
		zap.Int("directories", len(dirs)),
		zap.Int("files", len(items)))

	return metadata.Listing{Directories: dirs, Files: items}, nil
}

// readTags reads every file concurrently, keeping the input order.
func (s *Scanner) readTags(ctx context.Context, files []string) ([]metadata.MetadataItem, error) {
	items := make([]metadata.MetadataItem, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(s.workers, 1))
	for i, f := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			item, err := tags.ItemOrName(f)
			if err != nil && !errors.Is(err, tags.ErrUnsupportedFormat) {
				s.log.Debug("tags unreadable, using file name",
					zap.String("path", f), zap.Error(err))
			}
			items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return items, nil
}
