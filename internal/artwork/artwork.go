// Package artwork finds cover art for a candidate and scales it for
// embedding.
package artwork

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // PNG decoder for cover art

	"github.com/nfnt/resize"
	"go.uber.org/zap"

	"github.com/llehouerou/tunematch/internal/metadata"
	"github.com/llehouerou/tunematch/internal/tags"
)

const jpegQuality = 90

// Downloader fetches remote images. A missing image is (nil, nil).
type Downloader interface {
	GetBytes(ctx context.Context, url string) ([]byte, error)
}

// AlbumLookup resolves an album to an image URL.
type AlbumLookup interface {
	AlbumImageURL(artist, album string) (string, error)
}

// Finder tries the candidate's artwork URL, then the album lookup, then
// an image file next to the audio files.
type Finder struct {
	download Downloader
	lookup   AlbumLookup
	maxSize  int
	log      *zap.Logger
}

// Option configures a Finder.
type Option func(*Finder)

// WithAlbumLookup enables the album lookup fallback.
func WithAlbumLookup(l AlbumLookup) Option {
	return func(f *Finder) { f.lookup = l }
}

// WithMaxSize bounds the longest side of returned images. Zero keeps the
// original size.
func WithMaxSize(px int) Option {
	return func(f *Finder) { f.maxSize = px }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(f *Finder) {
		if log != nil {
			f.log = log
		}
	}
}

// NewFinder creates a Finder downloading through d.
func NewFinder(d Downloader, opts ...Option) *Finder {
	f := &Finder{download: d, log: zap.NewNop()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Find returns cover art for r, or nil when no source has any. Remote
// failures fall through to the next source; the last error is returned
// only when nothing was found.
func (f *Finder) Find(ctx context.Context, r metadata.ProviderResult, dir string) ([]byte, error) {
	var lastErr error

	if r.ArtworkURL != "" && f.download != nil {
		data, err := f.download.GetBytes(ctx, r.ArtworkURL)
		switch {
		case err != nil:
			f.log.Debug("download artwork", zap.String("url", r.ArtworkURL), zap.Error(err))
			lastErr = err
		case len(data) > 0:
			return f.fit(data)
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if f.lookup != nil && f.download != nil && r.Artist != "" && r.AlbumTitle() != "" {
		url, err := f.lookup.AlbumImageURL(r.Artist, r.AlbumTitle())
		if err == nil {
			var data []byte
			data, err = f.download.GetBytes(ctx, url)
			if err == nil && len(data) > 0 {
				return f.fit(data)
			}
		}
		if err != nil {
			f.log.Debug("album lookup artwork", zap.String("album", r.AlbumTitle()), zap.Error(err))
			lastErr = err
		}
	}

	if dir != "" {
		data, err := tags.FolderArt(dir)
		if err != nil {
			lastErr = err
		} else if len(data) > 0 {
			return f.fit(data)
		}
	}

	return nil, lastErr
}

func (f *Finder) fit(data []byte) ([]byte, error) {
	if f.maxSize <= 0 {
		return data, nil
	}
	return Fit(data, f.maxSize)
}

// Fit scales an image down so its longest side is at most maxSize pixels,
// re-encoding it as JPEG. Images already small enough are returned as is.
func Fit(data []byte, maxSize int) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if cfg.Width <= maxSize && cfg.Height <= maxSize {
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	// Thumbnail keeps the aspect ratio
	side := uint(maxSize) //nolint:gosec // maxSize is positive
	resized := resize.Thumbnail(side, side, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), nil
}
