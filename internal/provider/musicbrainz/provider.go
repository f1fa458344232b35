package musicbrainz

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/llehouerou/tunematch/internal/metadata"
)

// Name is the provider name reported on candidates.
const Name = "musicbrainz"

const searchLimit = 5

// Provider adapts Client to the provider.Provider interface.
type Provider struct {
	client *Client
}

// NewProvider creates a MusicBrainz metadata provider.
func NewProvider(c *Client) *Provider {
	if c == nil {
		c = NewClient()
	}
	return &Provider{client: c}
}

func (p *Provider) Name() string { return Name }

// SearchAlbum searches releases and fetches the track listing of each.
func (p *Provider) SearchAlbum(ctx context.Context, artist, album string) ([]metadata.ProviderResult, error) {
	releases, err := p.client.SearchReleases(ctx, luceneQuery("release", album, artist), searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search releases: %w", err)
	}

	results := make([]metadata.ProviderResult, 0, len(releases))
	for _, rel := range releases {
		details, err := p.client.GetRelease(ctx, rel.ID)
		if err != nil {
			return nil, fmt.Errorf("get release %s: %w", rel.ID, err)
		}
		results = append(results, toProviderResult(details))
	}
	return results, nil
}

// SearchTrack searches recordings. Candidates carry no track listing.
func (p *Provider) SearchTrack(ctx context.Context, artist, title string) ([]metadata.ProviderResult, error) {
	recs, err := p.client.SearchRecordings(ctx, luceneQuery("recording", title, artist), searchLimit)
	if err != nil {
		return nil, fmt.Errorf("search recordings: %w", err)
	}

	results := make([]metadata.ProviderResult, 0, len(recs))
	for _, rec := range recs {
		r := metadata.ProviderResult{
			Provider: Name,
			ID:       rec.ID,
			Title:    rec.Title,
			Artist:   rec.Artist,
			Score:    float64(rec.Score) / 100,
		}
		if rec.Release != nil {
			r.Album = rec.Release.Title
			r.Year = extractYear(rec.Release.Date)
			r.ArtworkURL = CoverArtURL(rec.Release.ID)
		}
		results = append(results, r)
	}
	return results, nil
}

func toProviderResult(d *ReleaseDetails) metadata.ProviderResult {
	tracks := make([]metadata.TrackInfo, 0, len(d.Tracks))
	for _, t := range d.Tracks {
		pos := t.Number
		if pos == "" {
			pos = strconv.Itoa(t.Position)
		}
		tracks = append(tracks, metadata.TrackInfo{Position: pos, Title: t.Title})
	}
	return metadata.ProviderResult{
		Provider:   Name,
		ID:         d.ID,
		Title:      d.Title,
		Artist:     d.Artist,
		Album:      d.Title,
		Year:       extractYear(d.Date),
		Tracks:     tracks,
		ArtworkURL: CoverArtURL(d.ID),
	}
}

// luceneQuery builds `field:"value" AND artist:"artist"`.
func luceneQuery(field, value, artist string) string {
	q := field + ":" + quote(value)
	if artist != "" {
		q += " AND artist:" + quote(artist)
	}
	return q
}

var luceneEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func quote(s string) string {
	return `"` + luceneEscaper.Replace(s) + `"`
}
