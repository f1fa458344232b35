package tags

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"

	"github.com/llehouerou/tunematch/internal/metadata"
)

// Read reads the tags of an audio file. Fields missing from the file are
// left empty.
func Read(path string) (*Tag, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ExtWAV {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		switch ext {
		case ExtMP3:
			// dhowden/tag has issues with some UTF-16 encoded ID3 tags
			return readMP3WithID3v2(path)
		case ExtM4A, ExtFLAC, ExtOGG:
			return readWithTaglib(path)
		}
		return nil, err
	}

	track, totalTracks := m.Track()
	disc, totalDiscs := m.Disc()

	t := &Tag{
		Path:        path,
		Title:       m.Title(),
		Artist:      m.Artist(),
		AlbumArtist: m.AlbumArtist(),
		Album:       m.Album(),
		Genre:       m.Genre(),
		Date:        yearToDate(m.Year()),
		TrackNumber: track,
		TotalTracks: totalTracks,
		DiscNumber:  disc,
		TotalDiscs:  totalDiscs,
	}
	if raw := m.Raw(); raw != nil {
		t.MBReleaseID = rawString(raw, "musicbrainz_albumid", "MusicBrainz Album Id")
	}
	finish(t)
	return t, nil
}

// ItemOrName reads path and returns it as a metadata item for display.
// Files without a title, or whose tags cannot be read, are listed with
// their file name as title.
func ItemOrName(path string) (item metadata.MetadataItem, err error) {
	t, err := Read(path)
	if err != nil {
		return metadata.MetadataItem{Path: path, Title: filepath.Base(path)}, err
	}
	item = t.Item()
	if item.Title == "" {
		item.Title = filepath.Base(path)
	}
	return item, nil
}

// readMP3WithID3v2 reads MP3 tags using only the id3v2 library.
func readMP3WithID3v2(path string) (*Tag, error) {
	id3tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	defer id3tag.Close()

	track, totalTracks := parseNumberPair(getID3TextFrame(id3tag, "TRCK"))
	disc, totalDiscs := parseNumberPair(getID3TextFrame(id3tag, "TPOS"))


	t := &Tag{
		Path:        path,
		Title:       id3tag.Title(),
		Artist:      id3tag.Artist(),
		AlbumArtist: getID3TextFrame(id3tag, "TPE2"),
		Album:       id3tag.Album(),
		Genre:       id3tag.Genre(),
		Date:        id3Date(id3tag),
		TrackNumber: track,
		TotalTracks: totalTracks,
		DiscNumber:  disc,
		TotalDiscs:  totalDiscs,
		MBReleaseID: getID3TXXXFrame(id3tag, "MusicBrainz Album Id"),
	}
	finish(t)
	return t, nil
}

// readWithTaglib reads FLAC, M4A and Ogg tags through TagLib when
// dhowden/tag fails on them.
func readWithTaglib(path string) (*Tag, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(rawTags)

	track, totalTracks := parseNumberPair(tags.get(taglib.TrackNumber))
	if totalTracks == 0 {
		totalTracks = tags.getInt("TOTALTRACKS")
	}
	disc, totalDiscs := parseNumberPair(tags.get(taglib.DiscNumber))
	if totalDiscs == 0 {
		totalDiscs = tags.getInt("TOTALDISCS")
	}

	t := &Tag{
		Path:        path,
		Title:       tags.get(taglib.Title),
		Artist:      tags.get(taglib.Artist),
		AlbumArtist: tags.get(taglib.AlbumArtist),
		Album:       tags.get(taglib.Album),
		Genre:       tags.get(taglib.Genre),
		Date:        tags.get(taglib.Date, "YEAR"),
		TrackNumber: track,
		TotalTracks: totalTracks,
		DiscNumber:  disc,
		TotalDiscs:  totalDiscs,
		MBReleaseID: tags.get(taglib.MusicBrainzAlbumID, "MusicBrainz Album Id"),
	}
	finish(t)
	return t, nil
}

// finish normalizes the fields shared by every reader.
func finish(t *Tag) {
	t.Title = strings.TrimSpace(t.Title)
	t.Artist = strings.TrimSpace(t.Artist)
	t.Album = strings.TrimSpace(t.Album)
	if t.AlbumArtist == "" {
		t.AlbumArtist = t.Artist
	}
}

// id3Date returns the recording date: TDRC for ID3v2.4, else TYER with
// the DDMM of TDAT for ID3v2.3.
func id3Date(id3tag *id3v2.Tag) string {
	if date := getID3TextFrame(id3tag, "TDRC"); date != "" {
		return date
	}
	year := getID3TextFrame(id3tag, "TYER")
	if year == "" {
		return id3tag.Year()
	}
	if tdat := getID3TextFrame(id3tag, "TDAT"); len(tdat) == 4 {
		return year + "-" + tdat[2:4] + "-" + tdat[0:2]
	}
	return year
}

// getID3TextFrame reads a text frame value from an ID3v2 tag.
func getID3TextFrame(id3tag *id3v2.Tag, frameID string) string {
	frames := id3tag.GetFrames(frameID)
	if len(frames) == 0 {
		return ""
	}
	if tf, ok := frames[0].(id3v2.TextFrame); ok {
		return tf.Text
	}
	return ""
}

// getID3TXXXFrame reads a user-defined text frame (TXXX) value.
func getID3TXXXFrame(id3tag *id3v2.Tag, description string) string {
	for _, frame := range id3tag.GetFrames("TXXX") {
		if txxx, ok := frame.(id3v2.UserDefinedTextFrame); ok && txxx.Description == description {
			return txxx.Value
		}
	}
	return ""
}

// rawString returns the first string value of raw under any of keys.
func rawString(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := raw[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// yearToDate converts a year integer to a date string.
// Returns empty string for year 0.
func yearToDate(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}
