package state

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/synctest"
	"time"

	_ "modernc.org/sqlite"

	"github.com/llehouerou/tunematch/internal/metadata"
)

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		t.Fatalf("failed to init schema: %v", err)
	}

	return db
}

func newTestManager(t *testing.T) (*Manager, *time.Time) {
	t.Helper()
	m, err := OpenPath(":memory:")
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	t.Cleanup(func() { m.Close() })

	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	return m, &now
}

func TestInitSchema_Idempotent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := initSchema(db); err != nil {
		t.Fatalf("second initSchema failed: %v", err)
	}

	var version int
	if err := db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&version); err != nil {
		t.Fatalf("query version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("version = %d, want %d", version, currentSchemaVersion)
	}
}

// TestGetNavigation_Empty tests getting navigation from empty database.
func TestGetNavigation_Empty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	nav, err := getNavigation(db)
	if err != nil {
		t.Fatalf("getNavigation failed: %v", err)
	}
	if nav != nil {
		t.Errorf("expected nil navigation on empty db, got %+v", nav)
	}
}

func TestSaveAndGetNavigation(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	state := NavigationState{CurrentPath: "/music/artist", SelectedName: "Some Album"}
	if err := saveNavigation(db, state); err != nil {
		t.Fatalf("saveNavigation failed: %v", err)
	}

	retrieved, err := getNavigation(db)
	if err != nil {
		t.Fatalf("getNavigation failed: %v", err)
	}
	if retrieved == nil || *retrieved != state {
		t.Errorf("getNavigation = %+v, want %+v", retrieved, state)
	}
}

// TestSaveNavigation_Update tests updating existing navigation state.
func TestSaveNavigation_Update(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	if err := saveNavigation(db, NavigationState{CurrentPath: "/initial/path", SelectedName: "a"}); err != nil {
		t.Fatalf("saveNavigation failed: %v", err)
	}
	if err := saveNavigation(db, NavigationState{CurrentPath: "/updated/path"}); err != nil {
		t.Fatalf("saveNavigation (update) failed: %v", err)
	}

	retrieved, _ := getNavigation(db)
	if retrieved.CurrentPath != "/updated/path" {
		t.Errorf("CurrentPath = %q, want /updated/path", retrieved.CurrentPath)
	}
	if retrieved.SelectedName != "" {
		t.Errorf("SelectedName = %q, want empty", retrieved.SelectedName)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM navigation_state`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("navigation_state rows = %d, want 1", count)
	}
}

func TestManager_SaveNavigation_Debounced(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		m, err := OpenPath(":memory:")
		if err != nil {
			t.Fatalf("OpenPath: %v", err)
		}
		defer m.Close()

		m.SaveNavigation(NavigationState{CurrentPath: "/a"})
		m.SaveNavigation(NavigationState{CurrentPath: "/b"})

		if nav, _ := m.GetNavigation(); nav != nil {
			t.Fatalf("state written before debounce: %+v", nav)
		}

		time.Sleep(saveDebounce + 10*time.Millisecond)
		synctest.Wait()

		nav, err := m.GetNavigation()
		if err != nil {
			t.Fatalf("GetNavigation: %v", err)
		}
		if nav == nil || nav.CurrentPath != "/b" {
			t.Errorf("GetNavigation = %+v, want /b", nav)
		}
	})
}

func TestManager_CloseFlushesPending(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "state", "tunematch.db")

	m, err := OpenPath(dbPath)
	if err != nil {
		t.Fatalf("OpenPath: %v", err)
	}
	m.SaveNavigation(NavigationState{CurrentPath: "/music"})
	if err := m.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	m, err = OpenPath(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer m.Close()

	nav, err := m.GetNavigation()
	if err != nil {
		t.Fatalf("GetNavigation: %v", err)
	}
	if nav == nil || nav.CurrentPath != "/music" {
		t.Errorf("GetNavigation = %+v, want /music", nav)
	}
}

var cached = []metadata.ProviderResult{{
	Provider: "musicbrainz",
	ID:       "rel-1",
	Title:    "OK Computer",
	Artist:   "Radiohead",
	Year:     "1997",
	Tracks:   []metadata.TrackInfo{{Position: "1", Title: "Airbag"}},
}}

func TestSearchCache_RoundTrip(t *testing.T) {
	m, _ := newTestManager(t)

	if _, ok, err := m.LoadSearch("musicbrainz", "album|radiohead|ok computer", time.Hour); err != nil || ok {
		t.Fatalf("LoadSearch on empty cache = (%v, %v)", ok, err)
	}

	if err := m.SaveSearch("musicbrainz", "album|radiohead|ok computer", cached); err != nil {
		t.Fatalf("SaveSearch: %v", err)
	}

	got, ok, err := m.LoadSearch("musicbrainz", "album|radiohead|ok computer", time.Hour)
	if err != nil || !ok {
		t.Fatalf("LoadSearch = (%v, %v)", ok, err)
	}
	if len(got) != 1 || got[0].ID != "rel-1" || len(got[0].Tracks) != 1 {
		t.Errorf("LoadSearch = %+v", got)
	}

	if _, ok, _ := m.LoadSearch("itunes", "album|radiohead|ok computer", time.Hour); ok {
		t.Error("entries are per provider")
	}
}

func TestSearchCache_EmptyResultIsCached(t *testing.T) {
	m, _ := newTestManager(t)

	if err := m.SaveSearch("deezer", "track||nothing", nil); err != nil {
		t.Fatalf("SaveSearch: %v", err)
	}
	got, ok, err := m.LoadSearch("deezer", "track||nothing", time.Hour)
	if err != nil || !ok {
		t.Fatalf("LoadSearch = (%v, %v)", ok, err)
	}
	if len(got) != 0 {
		t.Errorf("LoadSearch = %+v, want empty", got)
	}
}

func TestSearchCache_Expiry(t *testing.T) {
	m, now := newTestManager(t)

	if err := m.SaveSearch("musicbrainz", "k", cached); err != nil {
		t.Fatalf("SaveSearch: %v", err)
	}

	*now = now.Add(2 * time.Hour)
	if _, ok, _ := m.LoadSearch("musicbrainz", "k", time.Hour); ok {
		t.Error("expired entry returned")
	}
	if _, ok, _ := m.LoadSearch("musicbrainz", "k", 3*time.Hour); !ok {
		t.Error("fresh entry not returned")
	}
	if _, ok, _ := m.LoadSearch("musicbrainz", "k", 0); ok {
		t.Error("zero maxAge should disable the cache")
	}
}

func TestSearchCache_PruneAndStats(t *testing.T) {
	m, now := newTestManager(t)
	start := *now

	if err := m.SaveSearch("musicbrainz", "old", cached); err != nil {
		t.Fatal(err)
	}
	*now = start.Add(48 * time.Hour)
	if err := m.SaveSearch("deezer", "new", append(cached, cached...)); err != nil {
		t.Fatal(err)
	}

	stats, err := m.SearchCacheStats()
	if err != nil {
		t.Fatalf("SearchCacheStats: %v", err)
	}
	if stats.Entries != 2 || stats.Results != 3 {
		t.Errorf("stats = %+v, want 2 entries / 3 results", stats)
	}
	if !stats.Oldest.Equal(start) || !stats.Newest.Equal(*now) {
		t.Errorf("stats range = %v..%v", stats.Oldest, stats.Newest)
	}

	removed, err := m.PruneSearchCache(24 * time.Hour)
	if err != nil {
		t.Fatalf("PruneSearchCache: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	removed, err = m.PruneSearchCache(0)
	if err != nil || removed != 1 {
		t.Errorf("PruneSearchCache(0) = (%d, %v), want (1, nil)", removed, err)
	}

	stats, _ = m.SearchCacheStats()
	if stats.Entries != 0 || !stats.Oldest.IsZero() {
		t.Errorf("stats after clear = %+v", stats)
	}
}
