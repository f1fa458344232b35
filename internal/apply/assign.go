package apply

import (
	"sort"

	"github.com/llehouerou/tunematch/internal/metadata"
)

// Assignment pairs a scanned file with the candidate track written to it.
type Assignment struct {
	File   metadata.MetadataItem
	Track  *metadata.TrackInfo // nil when the candidate has no track left for the file
	Number int                 // Track number to write, 0 when unknown
}

// Assign pairs files with tracks. A file whose track number matches a
// track position takes that track; the remaining files, in track number
// then path order, take the remaining tracks in listing order.
func Assign(files []metadata.MetadataItem, tracks []metadata.TrackInfo) []Assignment {
	ordered := append([]metadata.MetadataItem(nil), files...)
	sort.SliceStable(ordered, func(i, j int) bool {
		ni, nj := ordered[i].TrackNumber(), ordered[j].TrackNumber()
		if ni != nj {
			if ni == 0 || nj == 0 {
				return nj == 0
			}
			return ni < nj
		}
		return ordered[i].Path < ordered[j].Path
	})

	used := make([]bool, len(tracks))
	out := make([]Assignment, len(ordered))

	byNumber := make(map[int]int, len(tracks))
	for i := len(tracks) - 1; i >= 0; i-- {
		if n := metadata.ParsePosition(tracks[i].Position); n > 0 {
			byNumber[n] = i
		}
	}

	for i, f := range ordered {
		out[i].File = f
		if n := f.TrackNumber(); n > 0 {
			if ti, ok := byNumber[n]; ok && !used[ti] {
				used[ti] = true
				out[i].Track = &tracks[ti]
			}
		}
	}

	next := 0
	for i := range out {
		if out[i].Track != nil {
			continue
		}
		for next < len(tracks) && used[next] {
			next++
		}
		if next == len(tracks) {
			break
		}
		used[next] = true
		out[i].Track = &tracks[next]
	}

	for i := range out {
		switch {
		case out[i].Track == nil:
			out[i].Number = out[i].File.TrackNumber()
		default:
			if n := metadata.ParsePosition(out[i].Track.Position); n > 0 {
				out[i].Number = n
			} else {
				out[i].Number = trackIndex(tracks, out[i].Track) + 1
			}
		}
	}
	return out
}

func trackIndex(tracks []metadata.TrackInfo, t *metadata.TrackInfo) int {
	for i := range tracks {
		if &tracks[i] == t {
			return i
		}
	}
	return -1
}
