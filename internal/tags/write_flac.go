package tags

import (
	"fmt"
	"strconv"

	"github.com/go-flac/flacpicture"
	"github.com/go-flac/flacvorbis"
	"github.com/go-flac/go-flac"
)

// writeFLACTags replaces the Vorbis comment block of a FLAC file and, when
// cover art is given, its picture blocks.
func writeFLACTags(path string, t *Tag) error {
	f, err := flac.ParseFile(path)
	if err != nil {
		return fmt.Errorf("parse file: %w", err)
	}

	cmts := flacvorbis.New()
	for _, kv := range vorbisFields(t) {
		if err := cmts.Add(kv[0], kv[1]); err != nil {
			return fmt.Errorf("add %s: %w", kv[0], err)
		}
	}
	cmtBlock := cmts.Marshal()

	meta := make([]*flac.MetaDataBlock, 0, len(f.Meta)+2)
	replaced := false
	for _, m := range f.Meta {
		switch {
		case m.Type == flac.VorbisComment:
			if !replaced {
				meta = append(meta, &cmtBlock)
				replaced = true
			}
		case m.Type == flac.Picture && len(t.CoverArt) > 0:
			// dropped, replaced below
		default:
			meta = append(meta, m)
		}
	}
	if !replaced {
		meta = append(meta, &cmtBlock)
	}

	if len(t.CoverArt) > 0 {
		pic, err := flacpicture.NewFromImageData(
			flacpicture.PictureTypeFrontCover,
			"Front Cover",
			t.CoverArt,
			detectMimeType(t.CoverArt),
		)
		if err != nil {
			return fmt.Errorf("create picture: %w", err)
		}
		picBlock := pic.Marshal()
		meta = append(meta, &picBlock)
	}
	f.Meta = meta

	if err := f.Save(path); err != nil {
		return fmt.Errorf("save file: %w", err)
	}
	return nil
}

// vorbisFields returns the non-empty Vorbis comments for t, in write order.
func vorbisFields(t *Tag) [][2]string {
	var out [][2]string
	add := func(key, value string) {
		if value != "" {
			out = append(out, [2]string{key, value})
		}
	}
	addInt := func(key string, value int) {
		if value > 0 {
			add(key, strconv.Itoa(value))
		}
	}

	add("TITLE", t.Title)
	add("ARTIST", t.Artist)
	add("ALBUMARTIST", t.AlbumArtist)
	add("ALBUM", t.Album)
	add("GENRE", t.Genre)
	add("DATE", t.Date)
	addInt("TRACKNUMBER", t.TrackNumber)
	addInt("TOTALTRACKS", t.TotalTracks)
	addInt("DISCNUMBER", t.DiscNumber)
	addInt("TOTALDISCS", t.TotalDiscs)
	add("MUSICBRAINZ_ALBUMID", t.MBReleaseID)
	return out
}
