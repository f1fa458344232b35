// Package itunes queries the iTunes Search API.
package itunes

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/llehouerou/tunematch/internal/metadata"
	"github.com/llehouerou/tunematch/internal/provider/api"
)

// Name is the provider name reported on candidates.
const Name = "itunes"

const (
	defaultBaseURL = "https://itunes.apple.com"
	userAgent      = "tunematch/0.1"
	searchLimit    = 5
	lookupLimit    = 200
)

type searchResponse struct {
	ResultCount int    `json:"resultCount"`
	Results     []item `json:"results"`
}

// item is an album (collection) or song (track) entry.
type item struct {
	WrapperType    string `json:"wrapperType"`
	Kind           string `json:"kind"`
	CollectionID   int64  `json:"collectionId"`
	TrackID        int64  `json:"trackId"`
	ArtistName     string `json:"artistName"`
	CollectionName string `json:"collectionName"`
	TrackName      string `json:"trackName"`
	TrackNumber    int    `json:"trackNumber"`
	DiscNumber     int    `json:"discNumber"`
	ReleaseDate    string `json:"releaseDate"`
	ArtworkURL100  string `json:"artworkUrl100"`
}

// Provider searches the iTunes catalogue.
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

// New creates an iTunes provider.
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

// SearchAlbum searches collections and looks up the songs of each.
func (p *Provider) SearchAlbum(ctx context.Context, artist, album string) ([]metadata.ProviderResult, error) {
	albums, err := p.search(ctx, term(artist, album), "album")
	if err != nil {
		return nil, fmt.Errorf("search albums: %w", err)
	}

	results := make([]metadata.ProviderResult, 0, len(albums))
	for _, a := range albums {
		tracks, err := p.lookupTracks(ctx, a.CollectionID)
		if err != nil {
			return nil, fmt.Errorf("lookup album %d: %w", a.CollectionID, err)
		}
		if len(tracks) == 0 {
			continue
		}
		results = append(results, metadata.ProviderResult{
			Provider:   Name,
			ID:         strconv.FormatInt(a.CollectionID, 10),
			Title:      a.CollectionName,
			Artist:     a.ArtistName,
			Album:      a.CollectionName,
			Year:       year(a.ReleaseDate),
			Tracks:     tracks,
			ArtworkURL: artworkURL(a.ArtworkURL100),
		})
	}
	return results, nil
}

// SearchTrack searches songs.
func (p *Provider) SearchTrack(ctx context.Context, artist, title string) ([]metadata.ProviderResult, error) {
	songs, err := p.search(ctx, term(artist, title), "song")
	if err != nil {
		return nil, fmt.Errorf("search songs: %w", err)
	}

	results := make([]metadata.ProviderResult, 0, len(songs))
	for _, s := range songs {
		results = append(results, metadata.ProviderResult{
			Provider:   Name,
			ID:         strconv.FormatInt(s.TrackID, 10),
			Title:      s.TrackName,
			Artist:     s.ArtistName,
			Album:      s.CollectionName,
			Year:       year(s.ReleaseDate),
			ArtworkURL: artworkURL(s.ArtworkURL100),
		})
	}
	return results, nil
}

func (p *Provider) search(ctx context.Context, q, entity string) ([]item, error) {
	params := url.Values{}
	params.Set("term", q)
	params.Set("media", "music")
	params.Set("entity", entity)
	params.Set("limit", strconv.Itoa(searchLimit))

	var resp searchResponse
	if err := p.api.GetJSON(ctx, p.baseURL+"/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// lookupTracks returns the songs of a collection ordered by disc and
// track number.
func (p *Provider) lookupTracks(ctx context.Context, collectionID int64) ([]metadata.TrackInfo, error) {
	params := url.Values{}
	params.Set("id", strconv.FormatInt(collectionID, 10))
	params.Set("entity", "song")
	params.Set("limit", strconv.Itoa(lookupLimit))

	var resp searchResponse
	if err := p.api.GetJSON(ctx, p.baseURL+"/lookup?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	// The first entry is the collection itself
	var songs []item
	for _, it := range resp.Results {
		if it.Kind == "song" {
			songs = append(songs, it)
		}
	}
	sort.SliceStable(songs, func(i, j int) bool {
		if songs[i].DiscNumber != songs[j].DiscNumber {
			return songs[i].DiscNumber < songs[j].DiscNumber
		}
		return songs[i].TrackNumber < songs[j].TrackNumber
	})

	tracks := make([]metadata.TrackInfo, 0, len(songs))
	for _, s := range songs {
		tracks = append(tracks, metadata.TrackInfo{
			Position: strconv.Itoa(s.TrackNumber),
			Title:    s.TrackName,
		})
	}
	return tracks, nil
}

func term(artist, title string) string {
	if artist == "" {
		return title
	}
	return artist + " " + title
}

func year(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return date
}

// artworkURL upgrades the 100px thumbnail URL to 600px.
func artworkURL(thumb string) string {
	return strings.Replace(thumb, "100x100", "600x600", 1)
}
