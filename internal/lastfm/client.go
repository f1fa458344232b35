// Package lastfm looks up album art through the Last.fm API.
package lastfm

import (
	"errors"
	"fmt"

	"github.com/shkh/lastfm-go/lastfm"
)

// ErrNoImage is returned when Last.fm knows the album but has no cover.
var ErrNoImage = errors.New("no album image")

// Client wraps the Last.fm API for album lookups.
type Client struct {
	api *lastfm.Api
}

// New creates a new Last.fm client with the given API credentials.
func New(apiKey, apiSecret string) *Client {
	return &Client{
		api: lastfm.New(apiKey, apiSecret),
	}
}

// AlbumInfo fetches album.getInfo for artist and album.
func (c *Client) AlbumInfo(artist, album string) (AlbumInfo, error) {
	params := lastfm.P{
		"artist":      artist,
		"album":       album,
		"autocorrect": 1,
	}

	result, err := c.api.Album.GetInfo(params)
	if err != nil {
		return AlbumInfo{}, fmt.Errorf("get album info: %w", err)
	}

	info := AlbumInfo{
		Name:   result.Name,
		Artist: result.Artist,
		MBID:   result.Mbid,
	}
	for _, img := range result.Images {
		info.Images = append(info.Images, Image{Size: img.Size, URL: img.Url})
	}
	return info, nil
}

// AlbumImageURL returns the URL of the largest cover Last.fm has for the
// album.
func (c *Client) AlbumImageURL(artist, album string) (string, error) {
	info, err := c.AlbumInfo(artist, album)
	if err != nil {
		return "", err
	}
	u := info.LargestImage()
	if u == "" {
		return "", ErrNoImage
	}
	return u, nil
}
