package musicbrainz

import "testing"

func TestToProviderResult(t *testing.T) {
	d := &ReleaseDetails{
		Release: Release{ID: "rel-9", Title: "Kid A", Artist: "Radiohead", Date: "2000-10-02"},
		Tracks: []Track{
			{Number: "A1", Position: 1, Title: "Everything in Its Right Place"},
			{Position: 2, Title: "Kid A"},
		},
	}

	r := toProviderResult(d)

	if r.Provider != Name || r.ID != "rel-9" {
		t.Errorf("Provider/ID = %q/%q", r.Provider, r.ID)
	}
	if r.Title != "Kid A" || r.Album != "Kid A" || r.Artist != "Radiohead" {
		t.Errorf("result = %+v", r)
	}
	if r.Year != "2000" {
		t.Errorf("Year = %q, want 2000", r.Year)
	}
	if len(r.Tracks) != 2 {
		t.Fatalf("got %d tracks, want 2", len(r.Tracks))
	}
	if r.Tracks[0].Position != "A1" {
		t.Errorf("printed number should win, got %q", r.Tracks[0].Position)
	}
	if r.Tracks[1].Position != "2" {
		t.Errorf("missing number falls back to position, got %q", r.Tracks[1].Position)
	}
	if r.ArtworkURL != CoverArtURL("rel-9") {
		t.Errorf("ArtworkURL = %q", r.ArtworkURL)
	}
}
