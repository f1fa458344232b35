// Package provider queries remote metadata providers and aggregates their
// candidates into one ranked list.
package provider

import (
	"context"
	"strings"
	"time"

	"github.com/llehouerou/tunematch/internal/metadata"
)

// Provider is one remote metadata source.
type Provider interface {
	Name() string
	// SearchAlbum returns album candidates with their track listings.
	// artist may be empty.
	SearchAlbum(ctx context.Context, artist, album string) ([]metadata.ProviderResult, error)
	// SearchTrack returns single-track candidates. artist may be empty.
	SearchTrack(ctx context.Context, artist, title string) ([]metadata.ProviderResult, error)
}

// Mode selects which provider search a Query runs.
type Mode int

const (
	ModeAlbum Mode = iota
	ModeTrack
)

func (m Mode) String() string {
	if m == ModeTrack {
		return "track"
	}
	return "album"
}

// Query is one provider search. For ModeAlbum, Title is the album name.
type Query struct {
	Mode   Mode
	Artist string
	Title  string
}

// Key identifies the query for caching and deduplication.
func (q Query) Key() string {
	return q.Mode.String() + "|" + strings.ToLower(q.Artist) + "|" + strings.ToLower(q.Title)
}

func (q Query) run(ctx context.Context, p Provider) ([]metadata.ProviderResult, error) {
	if q.Mode == ModeTrack {
		return p.SearchTrack(ctx, q.Artist, q.Title)
	}
	return p.SearchAlbum(ctx, q.Artist, q.Title)
}

// Cache stores provider answers between runs.
type Cache interface {
	// LoadSearch returns the cached results for provider and key when they
	// are younger than maxAge.
	LoadSearch(provider, key string, maxAge time.Duration) ([]metadata.ProviderResult, bool, error)
	SaveSearch(provider, key string, results []metadata.ProviderResult) error
}
