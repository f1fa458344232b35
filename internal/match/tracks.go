package match

import (
	"math"
	"sort"

	"github.com/llehouerou/tunematch/internal/metadata"
)

// maxLengthGap is the largest relative track count disagreement for which
// listings are still compared element by element.
const maxLengthGap = 0.2

// ScoreTracks compares two ordered track listings by title.
//
// Tracks are paired by position only: source[i] is compared with target[i].
// Source slots without a counterpart in target contribute nothing. When the
// track counts differ by more than 20% of the source length the listings are
// considered unrelated and the score is 0.
func ScoreTracks(source, target []Fields) float64 {
	if len(source) == 0 {
		// No slot to compare: an empty source never claims a match.
		return 0.0
	}

	gap := math.Abs(float64(len(source)-len(target))) / float64(len(source))
	if gap > maxLengthGap {
		return 0.0
	}

	total := 0.0
	for _, s := range TrackScores(source, target) {
		total += s
	}
	return total / float64(len(source))
}

// TrackScores returns the per-slot title similarity of source against
// target, positionally. The result has len(source) entries; slots beyond
// target's length score 0.
func TrackScores(source, target []Fields) []float64 {
	scores := make([]float64, len(source))
	for i := range source {
		if i >= len(target) {
			break
		}
		scores[i] = scoreFieldSet(source[i], target[i], trackFields)
	}
	return scores
}

// TrackFieldsFromItems returns the title fields of local files ordered by
// track number. Files without a track number keep their path order after
// the numbered ones.
func TrackFieldsFromItems(items []metadata.MetadataItem) []Fields {
	sorted := SortByTrack(items)
	fields := make([]Fields, len(sorted))
	for i := range sorted {
		fields[i] = nonEmpty(Fields{FieldTitle: sorted[i].Title})
	}
	return fields
}

// TrackFieldsFromResult returns the title fields of a candidate's listing.
func TrackFieldsFromResult(r metadata.ProviderResult) []Fields {
	fields := make([]Fields, len(r.Tracks))
	for i, t := range r.Tracks {
		fields[i] = nonEmpty(Fields{FieldTitle: t.Title})
	}
	return fields
}

// SortByTrack returns a copy of items ordered by track number, then path.
// Items without a track number sort last.
func SortByTrack(items []metadata.MetadataItem) []metadata.MetadataItem {
	sorted := make([]metadata.MetadataItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i].TrackNumber(), sorted[j].TrackNumber()
		if (ti == 0) != (tj == 0) {
			return tj == 0
		}
		if ti != tj {
			return ti < tj
		}
		return sorted[i].Path < sorted[j].Path
	})
	return sorted
}
