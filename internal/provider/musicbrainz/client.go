package musicbrainz

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/llehouerou/tunematch/internal/provider/api"
)

const (
	defaultBaseURL  = "https://musicbrainz.org/ws/2"
	coverArtBaseURL = "https://coverartarchive.org"
	userAgent       = "tunematch/0.1 (https://github.com/llehouerou/tunematch)"
	rateLimitDur    = time.Second // MusicBrainz requires 1 request per second
)

// Client provides access to the MusicBrainz API.
type Client struct {
	api     *api.Client
	baseURL string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithAPIClient replaces the HTTP layer.
func WithAPIClient(a *api.Client) Option {
	return func(c *Client) { c.api = a }
}

// NewClient creates a new MusicBrainz API client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		api:     api.New(userAgent, api.WithRateLimit(rateLimitDur)),
		baseURL: defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SearchReleases searches for releases with a Lucene query.
func (c *Client) SearchReleases(ctx context.Context, query string, limit int) ([]Release, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("fmt", "json")
	params.Set("limit", fmt.Sprint(limit))

	var result searchResponse
	if err := c.api.GetJSON(ctx, c.baseURL+"/release?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	releases := make([]Release, 0, len(result.Releases))
	for i := range result.Releases {
		releases = append(releases, convertRelease(&result.Releases[i]))
	}
	return releases, nil
}

// GetRelease fetches detailed information about a specific release.
func (c *Client) GetRelease(ctx context.Context, mbid string) (*ReleaseDetails, error) {
	// Include recordings (tracks) in the response
	params := url.Values{}
	params.Set("fmt", "json")
	params.Set("inc", "recordings+artist-credits")

	var result releaseDetailsResponse
	reqURL := fmt.Sprintf("%s/release/%s?%s", c.baseURL, url.PathEscape(mbid), params.Encode())
	if err := c.api.GetJSON(ctx, reqURL, &result); err != nil {
		return nil, err
	}
	return convertReleaseDetails(result), nil
}

// SearchRecordings searches for recordings with a Lucene query.
func (c *Client) SearchRecordings(ctx context.Context, query string, limit int) ([]Recording, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("fmt", "json")
	params.Set("limit", fmt.Sprint(limit))

	var result recordingSearchResponse
	if err := c.api.GetJSON(ctx, c.baseURL+"/recording?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	recs := make([]Recording, 0, len(result.Recordings))
	for i := range result.Recordings {
		r := &result.Recordings[i]
		rec := Recording{
			ID:     r.ID,
			Title:  r.Title,
			Artist: extractArtist(r.ArtistCredit),
			Score:  r.Score,
		}
		if len(r.Releases) > 0 {
			rel := convertRelease(&r.Releases[0])
			rec.Release = &rel
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// CoverArtURL returns the Cover Art Archive front cover URL of a release,
// at 500px.
func CoverArtURL(releaseMBID string) string {
	return fmt.Sprintf("%s/release/%s/front-500", coverArtBaseURL, releaseMBID)
}

func convertRelease(r *releaseResult) Release {
	release := Release{
		ID:         r.ID,
		Title:      r.Title,
		Artist:     extractArtist(r.ArtistCredit),
		Date:       r.Date,
		Country:    r.Country,
		Score:      r.Score,
		TrackCount: r.TrackCount,
	}

	var formats []string
	if len(r.Media) > 0 {
		release.TrackCount = 0
	}
	for _, m := range r.Media {
		release.TrackCount += m.TrackCount
		if m.Format != "" {
			formats = append(formats, m.Format)
		}
	}
	release.Formats = strings.Join(formats, ", ")
	return release
}

// convertReleaseDetails converts a raw release details response.
func convertReleaseDetails(r releaseDetailsResponse) *ReleaseDetails {
	details := &ReleaseDetails{
		Release: Release{
			ID:      r.ID,
			Title:   r.Title,
			Artist:  extractArtist(r.ArtistCredit),
			Date:    r.Date,
			Country: r.Country,
		},
	}

	// Collect all tracks from all media
	var formats []string
	for _, m := range r.Media {
		details.TrackCount += len(m.Tracks)
		if m.Format != "" {
			formats = append(formats, m.Format)
		}
		for _, t := range m.Tracks {
			title := t.Title
			if title == "" && t.Recording != nil {
				title = t.Recording.Title
			}
			details.Tracks = append(details.Tracks, Track{
				Number:     t.Number,
				Position:   t.Position,
				DiscNumber: m.Position,
				Title:      title,
				Length:     t.Length,
			})
		}
	}
	details.Formats = strings.Join(formats, ", ")
	return details
}

// extractArtist extracts the artist name from artist credits.
func extractArtist(credits []artistCredit) string {
	if len(credits) == 0 {
		return ""
	}

	parts := make([]string, 0, len(credits))
	for _, c := range credits {
		name := c.Name
		if name == "" {
			name = c.Artist.Name
		}
		parts = append(parts, name+c.JoinPhrase)
	}
	return strings.Join(parts, "")
}

// extractYear returns the year portion of a date string (YYYY-MM-DD or YYYY).
func extractYear(date string) string {
	if len(date) >= 4 {
		return date[:4]
	}
	return date
}
