// Package metadata defines the records exchanged between the scanner, the
// metadata providers, the matching engine and the review session.
package metadata

import (
	"strconv"
	"strings"
)

// MetadataItem is a local audio file with the tags known for it.
// Every field is free text and may be empty.
type MetadataItem struct {
	Path   string `json:"path"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album"`
	Track  string `json:"track"`
	Year   string `json:"year"`
}

// TrackNumber parses the leading number of Track ("3", "03", "3/12").
// Returns 0 when Track carries no number.
func (m MetadataItem) TrackNumber() int {
	return ParsePosition(m.Track)
}

// TrackInfo is one entry of a candidate's track listing.
type TrackInfo struct {
	Position string `json:"position"` // "3", "A1", ...
	Title    string `json:"title"`
}

// ProviderResult is one candidate match returned by a metadata provider.
type ProviderResult struct {
	Provider   string      `json:"provider"`
	ID         string      `json:"id,omitempty"` // Provider-native identifier (MusicBrainz release ID, ...)
	Title      string      `json:"title"`
	Artist     string      `json:"artist"`
	Album      string      `json:"album"`
	Year       string      `json:"year"`
	Score      float64     `json:"score"` // 0..1, higher is better
	Tracks     []TrackInfo `json:"tracks"`
	ArtworkURL string      `json:"artwork_url,omitempty"`
}

// AlbumTitle returns the album name of the candidate, falling back to its
// title for album-level results that only carry a title.
func (r ProviderResult) AlbumTitle() string {
	if r.Album != "" {
		return r.Album
	}
	return r.Title
}

// Listing is the outcome of scanning one directory.
type Listing struct {
	Directories []string
	Files       []MetadataItem
}

// ParsePosition extracts the numeric part of a track position.
// "3" -> 3, "03/12" -> 3, "A1" -> 1, "" -> 0.
func ParsePosition(s string) int {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "/"); idx >= 0 {
		s = s[:idx]
	}
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return r < '0' || r > '9'
	})
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
