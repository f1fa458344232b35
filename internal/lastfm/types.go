package lastfm

// Image is one size of an album cover.
type Image struct {
	Size string // small, medium, large, extralarge, mega
	URL  string
}

// AlbumInfo is the subset of album.getInfo used for artwork.
type AlbumInfo struct {
	Name   string
	Artist string
	MBID   string
	Images []Image
}

var sizeRank = map[string]int{
	"small":      1,
	"medium":     2,
	"large":      3,
	"extralarge": 4,
	"mega":       5,
}

// LargestImage returns the URL of the biggest non-empty image.
// Unknown sizes rank below "small".
func (a AlbumInfo) LargestImage() string {
	best, bestRank := "", -1
	for _, img := range a.Images {
		if img.URL == "" {
			continue
		}
		if r := sizeRank[img.Size]; r > bestRank {
			best, bestRank = img.URL, r
		}
	}
	return best
}
