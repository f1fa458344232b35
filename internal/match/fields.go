package match

import "github.com/llehouerou/tunematch/internal/metadata"

// Field names a metadata field the scorer can compare.
type Field string

const (
	FieldTitle  Field = "title"
	FieldArtist Field = "artist"
)

// scoredFields is the fixed set of fields compared for a whole record.
var scoredFields = []Field{FieldTitle, FieldArtist}

// trackFields restricts comparison to titles when scoring track listings.
var trackFields = []Field{FieldTitle}

// Fields holds the fields known on one side of a comparison.
// A missing key means the field is absent, not empty.
type Fields map[Field]string

// ItemFields returns the title and artist of a local file.
// Empty tags are treated as absent.
func ItemFields(item metadata.MetadataItem) Fields {
	return nonEmpty(Fields{
		FieldTitle:  item.Title,
		FieldArtist: item.Artist,
	})
}

// ResultFields returns the title and artist of a candidate.
// Empty values are treated as absent.
func ResultFields(r metadata.ProviderResult) Fields {
	return nonEmpty(Fields{
		FieldTitle:  r.Title,
		FieldArtist: r.Artist,
	})
}

// ScoreFields returns the mean similarity over the title and artist fields
// present on both sides. Fields present on only one side are skipped.
// With nothing to compare the score is 0.
func ScoreFields(source, target Fields) float64 {
	return scoreFieldSet(source, target, scoredFields)
}

func scoreFieldSet(source, target Fields, fields []Field) float64 {
	total := 0.0
	compared := 0
	for _, f := range fields {
		s, ok := source[f]
		if !ok {
			continue
		}
		t, ok := target[f]
		if !ok {
			continue
		}
		total += Similarity(s, t)
		compared++
	}
	if compared == 0 {
		return 0.0
	}
	return total / float64(compared)
}

func nonEmpty(f Fields) Fields {
	for k, v := range f {
		if v == "" {
			delete(f, k)
		}
	}
	return f
}
