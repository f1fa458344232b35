package tags

import (
	"fmt"

	"go.senan.xyz/taglib"
)

// writeOggTags writes Vorbis comments to an Ogg file using TagLib.
func writeOggTags(path string, t *Tag) error {
	keys := map[string]string{
		"TITLE":               taglib.Title,
		"ARTIST":              taglib.Artist,
		"ALBUMARTIST":         taglib.AlbumArtist,
		"ALBUM":               taglib.Album,
		"GENRE":               taglib.Genre,
		"DATE":                taglib.Date,
		"TRACKNUMBER":         taglib.TrackNumber,
		"DISCNUMBER":          taglib.DiscNumber,
		"MUSICBRAINZ_ALBUMID": taglib.MusicBrainzAlbumID,
	}

	tags := make(map[string][]string)
	for _, kv := range vorbisFields(t) {
		key := kv[0]
		if k, ok := keys[key]; ok {
			key = k
		}
		tags[key] = []string{kv[1]}
	}

	// Clear removes any existing tags not in the map.
	if err := taglib.WriteTags(path, tags, taglib.Clear); err != nil {
		return fmt.Errorf("write tags: %w", err)
	}
	if len(t.CoverArt) > 0 {
		if err := taglib.WriteImage(path, t.CoverArt); err != nil {
			return fmt.Errorf("write cover art: %w", err)
		}
	}
	return nil
}
