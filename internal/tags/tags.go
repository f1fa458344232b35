// Package tags reads and writes the tags of local audio files.
// It covers MP3, FLAC, M4A and Ogg; WAV files are listed but carry no
// writable tags.
package tags

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/llehouerou/tunematch/internal/metadata"
)

// File extensions recognized as audio.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtM4A  = ".m4a"
	ExtOGG  = ".ogg"
	ExtWAV  = ".wav"
)

// id3Magic is the magic bytes for ID3v2 header detection.
const id3Magic = "ID3"

// ErrUnsupportedFormat is returned for files whose tags cannot be handled.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Tag is the tag data read from or written to one file.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string
	Genre       string
	Date        string // YYYY or YYYY-MM-DD

	TrackNumber int
	TotalTracks int
	DiscNumber  int
	TotalDiscs  int

	MBReleaseID string

	// Write-only, not populated during read.
	CoverArt []byte
}

// Year returns the year part of Date.
func (t *Tag) Year() string {
	if len(t.Date) > 4 {
		return t.Date[:4]
	}
	return t.Date
}

// Item converts the tag to the record used by the matching engine.
func (t *Tag) Item() metadata.MetadataItem {
	track := ""
	if t.TrackNumber > 0 {
		track = strconv.Itoa(t.TrackNumber)
	}
	return metadata.MetadataItem{
		Path:   t.Path,
		Title:  t.Title,
		Artist: t.Artist,
		Album:  t.Album,
		Track:  track,
		Year:   t.Year(),
	}
}

// IsAudioFile reports whether path has one of the audio extensions,
// case-insensitively.
func IsAudioFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtMP3, ExtFLAC, ExtM4A, ExtOGG, ExtWAV:
		return true
	}
	return false
}

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string if not found.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// getInt returns the first value as an integer, or 0 if not found or invalid.
func (t taglibTags) getInt(key string) int {
	n, _ := parseNumberPair(t.get(key))
	return n
}

// parseNumberPair parses a track/disc number that may be "N" or "N/M" format.
func parseNumberPair(s string) (num, total int) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, 0
	}
	parts := strings.SplitN(s, "/", 2)
	num, _ = strconv.Atoi(strings.TrimSpace(parts[0]))
	if len(parts) == 2 {
		total, _ = strconv.Atoi(strings.TrimSpace(parts[1]))
	}
	return num, total
}
