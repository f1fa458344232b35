// Package musicbrainz provides a client for the MusicBrainz API.
package musicbrainz

// Release represents a MusicBrainz release (album).
type Release struct {
	ID         string
	Title      string
	Artist     string // Extracted from artist-credit
	Date       string
	Country    string
	TrackCount int // Sum of track counts from media
	Score      int // Search relevance score (0-100)
	Formats    string
}

// Track represents a track on a release.
type Track struct {
	Number     string // Printed position ("3", "A1")
	Position   int
	DiscNumber int
	Title      string
	Length     int // Duration in milliseconds
}

// ReleaseDetails contains full release information including tracks.
type ReleaseDetails struct {
	Release
	Tracks []Track
}

// Recording is a single track found by a recording search.
type Recording struct {
	ID      string
	Title   string
	Artist  string
	Score   int
	Release *Release // First release the recording appears on, if any
}

// searchResponse is the raw response from MusicBrainz release search.
type searchResponse struct {
	Releases []releaseResult `json:"releases"`
}

// releaseResult is a single release from search results.
type releaseResult struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Score        int            `json:"score"`
	Date         string         `json:"date"`
	Country      string         `json:"country"`
	ArtistCredit []artistCredit `json:"artist-credit"`
	Media        []medium       `json:"media"`
	TrackCount   int            `json:"track-count"`
}

// artistCredit represents an artist contribution.
type artistCredit struct {
	Name   string `json:"name"`
	Artist struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"artist"`
	JoinPhrase string `json:"joinphrase"`
}

// medium represents a disc/medium in a release.
type medium struct {
	Position   int     `json:"position"`
	Format     string  `json:"format"`
	TrackCount int     `json:"track-count"`
	Tracks     []track `json:"tracks"`
}

// track is a raw track from the API.
type track struct {
	ID        string     `json:"id"`
	Number    string     `json:"number"`
	Position  int        `json:"position"`
	Title     string     `json:"title"`
	Length    int        `json:"length"`
	Recording *recording `json:"recording"`
}

type recording struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// releaseDetailsResponse is the response when fetching a single release.
type releaseDetailsResponse struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Date         string         `json:"date"`
	Country      string         `json:"country"`
	ArtistCredit []artistCredit `json:"artist-credit"`
	Media        []medium       `json:"media"`
}

// recordingSearchResponse is the raw response from MusicBrainz recording search.
type recordingSearchResponse struct {
	Recordings []recordingResult `json:"recordings"`
}

type recordingResult struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Score        int             `json:"score"`
	ArtistCredit []artistCredit  `json:"artist-credit"`
	Releases     []releaseResult `json:"releases"`
}
