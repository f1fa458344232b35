// Package apply writes an accepted candidate's metadata to the scanned
// files.
package apply

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/llehouerou/tunematch/internal/metadata"
	"github.com/llehouerou/tunematch/internal/provider/musicbrainz"
	"github.com/llehouerou/tunematch/internal/tags"
)

const defaultWorkers = 4

// ArtFinder returns cover art for a candidate, or nil when there is none.
type ArtFinder interface {
	Find(ctx context.Context, r metadata.ProviderResult, dir string) ([]byte, error)
}

// FileError is a failure to tag one file.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string {
	return filepath.Base(e.Path) + ": " + e.Err.Error()
}

func (e *FileError) Unwrap() error { return e.Err }

// Error reports the files that could not be written.
type Error struct {
	Total  int
	Failed []*FileError
}

func (e *Error) Error() string {
	msgs := make([]string, len(e.Failed))
	for i, f := range e.Failed {
		msgs[i] = f.Error()
	}
	return fmt.Sprintf("%d of %d files failed: %s", len(e.Failed), e.Total, strings.Join(msgs, "; "))
}

// Unwrap exposes the per-file errors to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	errs := make([]error, len(e.Failed))
	for i, f := range e.Failed {
		errs[i] = f
	}
	return errs
}

// Applier writes candidates to files.
type Applier struct {
	art     ArtFinder
	log     *zap.Logger
	workers int

	readTag  func(string) (*tags.Tag, error)
	writeTag func(string, *tags.Tag) error
}

// Option configures an Applier.
type Option func(*Applier)

// WithArtwork embeds cover art found by f.
func WithArtwork(f ArtFinder) Option {
	return func(a *Applier) { a.art = f }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(a *Applier) {
		if log != nil {
			a.log = log
		}
	}
}

// New creates an Applier.
func New(opts ...Option) *Applier {
	a := &Applier{
		log:      zap.NewNop(),
		workers:  defaultWorkers,
		readTag:  tags.Read,
		writeTag: tags.Write,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply writes r to files. Fields the candidate does not carry keep their
// current value. Every file is attempted; failures are reported together
// as an *Error.
func (a *Applier) Apply(ctx context.Context, r metadata.ProviderResult, files []metadata.MetadataItem) error {
	if len(files) == 0 {
		return nil
	}

	cover := a.findArtwork(ctx, r, filepath.Dir(files[0].Path))

	var (
		mu     sync.Mutex
		failed []*FileError
	)

	assignments := Assign(files, r.Tracks)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for _, as := range assignments {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := a.writeFile(as, r, cover); err != nil {
				a.log.Warn("write tags", zap.String("path", as.File.Path), zap.Error(err))
				mu.Lock()
				failed = append(failed, &FileError{Path: as.File.Path, Err: err})
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	a.log.Info("applied metadata",
		zap.String("provider", r.Provider),
		zap.String("title", r.Title),
		zap.Int("files", len(files)),
		zap.Int("failed", len(failed)),
		zap.Bool("artwork", cover != nil))

	if len(failed) > 0 {
		slices.SortFunc(failed, func(a, b *FileError) int {
			return strings.Compare(a.Path, b.Path)
		})
		return &Error{Total: len(files), Failed: failed}
	}
	return nil
}

func (a *Applier) findArtwork(ctx context.Context, r metadata.ProviderResult, dir string) []byte {
	if a.art == nil {
		return nil
	}
	data, err := a.art.Find(ctx, r, dir)
	if err != nil {
		a.log.Debug("no artwork", zap.String("title", r.Title), zap.Error(err))
		return nil
	}
	return data
}

func (a *Applier) writeFile(as Assignment, r metadata.ProviderResult, cover []byte) error {
	t, err := a.readTag(as.File.Path)
	if err != nil || t == nil {
		t = &tags.Tag{Path: as.File.Path}
	}

	merge(t, as, r)
	if cover != nil {
		t.CoverArt = cover
	}

	return a.writeTag(as.File.Path, t)
}

// merge overlays the candidate fields on t.
func merge(t *tags.Tag, as Assignment, r metadata.ProviderResult) {
	album := len(r.Tracks) > 0

	switch {
	case as.Track != nil && as.Track.Title != "":
		t.Title = as.Track.Title
	case !album && r.Title != "":
		t.Title = r.Title
	}

	if r.Artist != "" {
		t.Artist = r.Artist
		t.AlbumArtist = r.Artist
	}

	if album {
		t.Album = r.AlbumTitle()
		t.TotalTracks = len(r.Tracks)
	} else if r.Album != "" {
		t.Album = r.Album
	}

	if as.Number > 0 {
		t.TrackNumber = as.Number
	}

	if r.Year != "" && !strings.HasPrefix(t.Date, r.Year) {
		t.Date = r.Year
	}

	if r.Provider == musicbrainz.Name && album {
		t.MBReleaseID = r.ID
	}
}

