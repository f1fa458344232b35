package itunes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tunematch/internal/provider/api"
)

const albumSearchJSON = `{"resultCount": 2, "results": [
  {"wrapperType": "collection", "collectionId": 1097861387, "artistName": "Radiohead",
   "collectionName": "OK Computer", "releaseDate": "1997-05-21T07:00:00Z",
   "artworkUrl100": "https://is1.mzstatic.com/image/thumb/x/100x100bb.jpg"},
  {"wrapperType": "collection", "collectionId": 42, "artistName": "Radiohead",
   "collectionName": "Empty", "releaseDate": "2000"}
]}`

const lookupJSON = `{"resultCount": 3, "results": [
  {"wrapperType": "collection", "collectionId": 1097861387, "collectionName": "OK Computer"},
  {"wrapperType": "track", "kind": "song", "trackName": "Paranoid Android", "trackNumber": 2, "discNumber": 1},
  {"wrapperType": "track", "kind": "song", "trackName": "Airbag", "trackNumber": 1, "discNumber": 1},
  {"wrapperType": "track", "kind": "music-video", "trackName": "Karma Police (Video)", "trackNumber": 3}
]}`

const songSearchJSON = `{"resultCount": 1, "results": [
  {"wrapperType": "track", "kind": "song", "trackId": 7, "artistName": "Radiohead",
   "collectionName": "OK Computer", "trackName": "Airbag", "releaseDate": "1997-05-21T07:00:00Z",
   "artworkUrl100": "https://example.com/100x100bb.jpg"}
]}`

func newTestProvider(t *testing.T) (*Provider, *[]string) {
	t.Helper()
	var terms []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case "/search":
			terms = append(terms, q.Get("term"))
			assert.Equal(t, "music", q.Get("media"))
			if q.Get("entity") == "album" {
				_, _ = io.WriteString(w, albumSearchJSON)
				return
			}
			_, _ = io.WriteString(w, songSearchJSON)
		case "/lookup":
			if q.Get("id") == "1097861387" {
				_, _ = io.WriteString(w, lookupJSON)
				return
			}
			_, _ = io.WriteString(w, `{"resultCount": 1, "results": [{"wrapperType": "collection"}]}`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return New(WithBaseURL(srv.URL), WithAPIClient(api.New("test"))), &terms
}

func TestProvider_SearchAlbum(t *testing.T) {
	p, terms := newTestProvider(t)

	results, err := p.SearchAlbum(context.Background(), "Radiohead", "OK Computer")
	require.NoError(t, err)
	require.Len(t, results, 1, "albums without songs are dropped")

	r := results[0]
	assert.Equal(t, Name, r.Provider)
	assert.Equal(t, "1097861387", r.ID)
	assert.Equal(t, "OK Computer", r.Title)
	assert.Equal(t, "1997", r.Year)
	assert.Equal(t, "https://is1.mzstatic.com/image/thumb/x/600x600bb.jpg", r.ArtworkURL)
	require.Len(t, r.Tracks, 2)
	assert.Equal(t, "Airbag", r.Tracks[0].Title)
	assert.Equal(t, "1", r.Tracks[0].Position)
	assert.Equal(t, "Paranoid Android", r.Tracks[1].Title)

	assert.Equal(t, []string{"Radiohead OK Computer"}, *terms)
}

func TestProvider_SearchTrack(t *testing.T) {
	p, terms := newTestProvider(t)

	results, err := p.SearchTrack(context.Background(), "", "Airbag")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "7", results[0].ID)
	assert.Equal(t, "OK Computer", results[0].Album)
	assert.Empty(t, results[0].Tracks)
	assert.Equal(t, []string{"Airbag"}, *terms)
}

func TestProvider_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	p := New(WithBaseURL(srv.URL), WithAPIClient(api.New("test")))
	_, err := p.SearchAlbum(context.Background(), "", "x")
	require.Error(t, err)
}
