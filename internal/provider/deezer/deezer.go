// Package deezer queries the Deezer public API.
package deezer

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/llehouerou/tunematch/internal/metadata"
	"github.com/llehouerou/tunematch/internal/provider/api"
)

// Name is the provider name reported on candidates.
const Name = "deezer"

const (
	defaultBaseURL = "https://api.deezer.com"
	userAgent      = "tunematch/0.1"
	searchLimit    = 5
)

// APIError is an error reported in a 200 response body.
type APIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("deezer %s (%d): %s", e.Type, e.Code, e.Message)
}

type artist struct {
	Name string `json:"name"`
}

type albumRef struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	CoverBig    string `json:"cover_big"`
	CoverXL     string `json:"cover_xl"`
	ReleaseDate string `json:"release_date"`
}

type album struct {
	albumRef
	Artist artist `json:"artist"`
}

type track struct {
	ID            int64    `json:"id"`
	Title         string   `json:"title"`
	TrackPosition int      `json:"track_position"`
	DiskNumber    int      `json:"disk_number"`
	Artist        artist   `json:"artist"`
	Album         albumRef `json:"album"`
}

// envelope carries either a data page or an error.
type envelope[T any] struct {
	Data  []T       `json:"data"`
	Error *APIError `json:"error"`
}

type albumDetails struct {
	albumRef
	Error *APIError `json:"error"`
}

// Provider searches the Deezer catalogue.
type Provider struct {
	api     *api.Client
	baseURL string
}

// Option configures a Provider.
type Option func(*Provider)

// WithBaseURL points the provider at another server.
func WithBaseURL(u string) Option {
	return func(p *Provider) { p.baseURL = strings.TrimRight(u, "/") }
}

// WithAPIClient replaces the HTTP layer.
func WithAPIClient(a *api.Client) Option {
	return func(p *Provider) { p.api = a }
}

// New creates a Deezer provider.
func New(opts ...Option) *Provider {
	p := &Provider{
		api:     api.New(userAgent),
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) Name() string { return Name }

// SearchAlbum searches albums and fetches the release date and tracks of
// each.
func (p *Provider) SearchAlbum(ctx context.Context, artistName, title string) ([]metadata.ProviderResult, error) {
	var found envelope[album]
	if err := p.get(ctx, "/search/album", query(artistName, title), &found, &found.Error); err != nil {
		return nil, fmt.Errorf("search albums: %w", err)
	}

	results := make([]metadata.ProviderResult, 0, len(found.Data))
	for _, a := range found.Data {
		var details albumDetails
		if err := p.get(ctx, "/album/"+strconv.FormatInt(a.ID, 10), nil, &details, &details.Error); err != nil {
			return nil, fmt.Errorf("get album %d: %w", a.ID, err)
		}
		tracks, err := p.albumTracks(ctx, a.ID)
		if err != nil {
			return nil, fmt.Errorf("get album %d tracks: %w", a.ID, err)
		}
		results = append(results, metadata.ProviderResult{
			Provider:   Name,
			ID:         strconv.FormatInt(a.ID, 10),
			Title:      a.Title,
			Artist:     a.Artist.Name,
			Album:      a.Title,
			Year:       year(details.ReleaseDate),
			Tracks:     tracks,
			ArtworkURL: cover(a.albumRef),
		})
	}
	return results, nil
}

// SearchTrack searches tracks.
func (p *Provider) SearchTrack(ctx context.Context, artistName, title string) ([]metadata.ProviderResult, error) {
	var found envelope[track]
	if err := p.get(ctx, "/search/track", query(artistName, title), &found, &found.Error); err != nil {
		return nil, fmt.Errorf("search tracks: %w", err)
	}

	results := make([]metadata.ProviderResult, 0, len(found.Data))
	for _, t := range found.Data {
		results = append(results, metadata.ProviderResult{
			Provider:   Name,
			ID:         strconv.FormatInt(t.ID, 10),
			Title:      t.Title,
			Artist:     t.Artist.Name,
			Album:      t.Album.Title,
			Year:       year(t.Album.ReleaseDate),
			ArtworkURL: cover(t.Album),
		})
	}
	return results, nil
}

func (p *Provider) albumTracks(ctx context.Context, id int64) ([]metadata.TrackInfo, error) {
	var page envelope[track]
	path := "/album/" + strconv.FormatInt(id, 10) + "/tracks"
	if err := p.get(ctx, path, url.Values{"limit": {"500"}}, &page, &page.Error); err != nil {
		return nil, err
	}

	tracks := make([]metadata.TrackInfo, 0, len(page.Data))
	for i, t := range page.Data {
		pos := t.TrackPosition
		if pos == 0 {
			pos = i + 1
		}
		tracks = append(tracks, metadata.TrackInfo{Position: strconv.Itoa(pos), Title: t.Title})
	}
	return tracks, nil
}

// get decodes path into v. Deezer reports failures with status 200 and an
// "error" object, which is returned through apiErr.
func (p *Provider) get(ctx context.Context, path string, params url.Values, v any, apiErr **APIError) error {
	reqURL := p.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}
	if err := p.api.GetJSON(ctx, reqURL, v); err != nil {
		return err
	}
	if *apiErr != nil {
		return *apiErr
	}
	return nil
}

func query(artistName, title string) url.Values {
	q := title
	if artistName != "" {
		q = artistName + " " + title
	}
	return url.Values{"q": {q}, "limit": {strconv.Itoa(searchLimit)}}
}

func cover(a albumRef) string {
	if a.CoverXL != "" {
		return a.CoverXL
	}
	return a.CoverBig
}

func year(date string) string {
	// Unknown dates are reported as 0000-00-00
	if y, _, _ := strings.Cut(date, "-"); len(y) == 4 && y != "0000" {
		return y
	}
	return ""
}
