package match

import (
	"sort"

	"github.com/llehouerou/tunematch/internal/metadata"
)

// ScoreCandidate scores a provider result against the scanned files.
//
// A single file is compared on title and artist. Several files are compared
// as an album: the most common album and artist tags against the result's
// album and artist, averaged with the track listing score when the result
// carries one.
func ScoreCandidate(files []metadata.MetadataItem, r metadata.ProviderResult) float64 {
	switch len(files) {
	case 0:
		return 0.0
	case 1:
		return ScoreFields(ItemFields(files[0]), ResultFields(r))
	}

	album, artist := Consensus(files)
	source := nonEmpty(Fields{FieldTitle: album, FieldArtist: artist})
	target := nonEmpty(Fields{FieldTitle: r.AlbumTitle(), FieldArtist: r.Artist})
	record := ScoreFields(source, target)

	if len(r.Tracks) == 0 {
		return record
	}
	tracks := ScoreTracks(TrackFieldsFromItems(files), TrackFieldsFromResult(r))
	return (record + tracks) / 2
}

// Consensus returns the most common non-empty album and artist tags among
// files. Ties go to the value seen first.
func Consensus(files []metadata.MetadataItem) (album, artist string) {
	return mostCommon(files, func(m metadata.MetadataItem) string { return m.Album }),
		mostCommon(files, func(m metadata.MetadataItem) string { return m.Artist })
}

func mostCommon(files []metadata.MetadataItem, field func(metadata.MetadataItem) string) string {
	counts := make(map[string]int)
	best, bestCount := "", 0
	for _, f := range files {
		v := field(f)
		if v == "" {
			continue
		}
		counts[v]++
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

// Rank sorts results in place by descending score. Ties are ordered by
// provider, then title, so the ranking is deterministic.
func Rank(results []metadata.ProviderResult) {
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].Provider != results[j].Provider {
			return results[i].Provider < results[j].Provider
		}
		return results[i].Title < results[j].Title
	})
}
