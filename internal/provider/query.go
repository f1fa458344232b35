package provider

import (
	"regexp"
	"strings"

	"github.com/llehouerou/tunematch/internal/match"
	"github.com/llehouerou/tunematch/internal/metadata"
)

// BuildQueries derives the searches for a set of scanned files, most
// specific first. Several files are searched as an album using the most
// common album and artist tags, then as the first file's track. A single
// file is searched as a track, then as its album.
func BuildQueries(files []metadata.MetadataItem) []Query {
	if len(files) == 0 {
		return nil
	}

	first := files[0]
	track := Query{Mode: ModeTrack, Artist: first.Artist, Title: first.Title}

	var queries []Query
	if len(files) > 1 {
		album, artist := match.Consensus(files)
		if album != "" {
			queries = append(queries, Query{Mode: ModeAlbum, Artist: artist, Title: album})
		}
		if first.Title != "" {
			queries = append(queries, track)
		}
		return dedupe(queries)
	}

	if first.Title != "" {
		queries = append(queries, track)
	}
	if first.Album != "" {
		queries = append(queries, Query{Mode: ModeAlbum, Artist: first.Artist, Title: first.Album})
	}
	return dedupe(queries)
}

// Variation is one reading of a free-form search.
type Variation struct {
	Artist string
	Title  string
}

var separators = []string{" - ", " – ", " / ", " : ", " by ", "-", "–", "/", ":"}

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)

// ParseManual splits a free-form search into artist/title readings.
// "Artist - Title" yields both orders, followed by the cleaned terms.
// Without a separator, inputs of three or more words are also split in
// half both ways.
func ParseManual(input string) []Variation {
	input = strings.TrimSpace(strings.ReplaceAll(input, "_", " "))
	if input == "" {
		return nil
	}

	vars := []Variation{{Title: input}}

	split := false
	for _, sep := range separators {
		before, after, ok := strings.Cut(input, sep)
		if !ok {
			continue
		}
		split = true
		a, b := strings.TrimSpace(before), strings.TrimSpace(after)
		if a == "" || b == "" {
			break
		}
		vars = append(vars, Variation{Artist: a, Title: b}, Variation{Artist: b, Title: a})
		ca, cb := cleanTerm(a), cleanTerm(b)
		if ca != a || cb != b {
			vars = append(vars, Variation{Artist: ca, Title: cb}, Variation{Artist: cb, Title: ca})
		}
		break
	}

	if !split {
		if words := strings.Fields(input); len(words) > 2 {
			mid := len(words) / 2
			head, tail := strings.Join(words[:mid], " "), strings.Join(words[mid:], " ")
			vars = append(vars, Variation{Artist: tail, Title: head}, Variation{Artist: head, Title: tail})
		}
	}

	seen := make(map[string]bool, len(vars))
	out := vars[:0]
	for _, v := range vars {
		if v.Title == "" {
			continue
		}
		key := v.Artist + "-" + v.Title
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

// ManualQueries expands a free-form search into provider queries.
// With several files only album searches are run; otherwise a track
// search is tried before the album search for each reading.
func ManualQueries(input string, fileCount int) []Query {
	var queries []Query
	for _, v := range ParseManual(input) {
		if fileCount > 1 {
			if v.Artist != "" {
				queries = append(queries, Query{Mode: ModeAlbum, Artist: v.Artist, Title: v.Title})
			}
			queries = append(queries, Query{Mode: ModeAlbum, Title: v.Title})
			continue
		}
		if v.Artist != "" {
			queries = append(queries,
				Query{Mode: ModeTrack, Artist: v.Artist, Title: v.Title},
				Query{Mode: ModeAlbum, Artist: v.Artist, Title: v.Title})
		}
		queries = append(queries,
			Query{Mode: ModeTrack, Title: v.Title},
			Query{Mode: ModeAlbum, Title: v.Title})
	}
	return dedupe(queries)
}

var noiseWords = map[string]bool{"the": true, "a": true, "an": true, "by": true}

func cleanTerm(term string) string {
	words := strings.Fields(strings.ToLower(term))
	kept := words[:0]
	for _, w := range words {
		if !noiseWords[w] {
			kept = append(kept, w)
		}
	}
	cleaned := nonWord.ReplaceAllString(strings.Join(kept, " "), "")
	return strings.Join(strings.Fields(cleaned), " ")
}

func dedupe(queries []Query) []Query {
	seen := make(map[string]bool, len(queries))
	out := queries[:0]
	for _, q := range queries {
		k := q.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, q)
	}
	return out
}
