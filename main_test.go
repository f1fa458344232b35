package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/tunematch/internal/config"
	"github.com/llehouerou/tunematch/internal/metadata"
	"github.com/llehouerou/tunematch/internal/state"
)

func TestRenderTable(t *testing.T) {
	out := renderTable(
		[]string{"Score", "Artist"},
		[][]string{{"92%", "Radiohead"}, {"7%"}},
		[]columnAlignment{alignRight},
	)

	assert.Contains(t, out, "SCORE")
	assert.Contains(t, out, "Radiohead")
	assert.Contains(t, out, "92%")
	assert.Equal(t, 6, strings.Count(out, "\n")+1, "top, header, sep, 2 rows, bottom")
}

func TestRenderTableNoHeaders(t *testing.T) {
	assert.Empty(t, renderTable(nil, [][]string{{"x"}}, nil))
}

func TestNewProvider(t *testing.T) {
	for _, name := range config.KnownProviders {
		p, err := newProvider(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, p.Name())
	}

	_, err := newProvider("discogs")
	assert.ErrorContains(t, err, "discogs")
}

func TestNewSearcherKeepsConfiguredOrder(t *testing.T) {
	cfg := config.Default()
	cfg.Providers = []string{"deezer", "musicbrainz"}

	s, err := newSearcher(cfg, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"deezer", "musicbrainz"}, s.Providers())
}

type fakeNavigation struct {
	saved *state.NavigationState
	err   error
}

func (f fakeNavigation) GetNavigation() (*state.NavigationState, error) {
	return f.saved, f.err
}

func TestResolveStartPath(t *testing.T) {
	dir := t.TempDir()
	saved := filepath.Join(dir, "saved")
	fallback := filepath.Join(dir, "fallback")
	require.NoError(t, os.Mkdir(saved, 0o755))
	require.NoError(t, os.Mkdir(fallback, 0o755))
	file := filepath.Join(dir, "song.mp3")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	cfg := config.Default()
	cfg.DefaultFolder = fallback
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name         string
		args         []string
		nav          navigationSource
		cfg          *config.Config
		wantPath     string
		wantSelected string
		wantErr      bool
	}{
		{
			name:     "argument wins",
			args:     []string{saved},
			nav:      fakeNavigation{saved: &state.NavigationState{CurrentPath: fallback}},
			cfg:      cfg,
			wantPath: saved,
		},
		{
			name:    "argument is a file",
			args:    []string{file},
			wantErr: true,
		},
		{
			name:    "argument is missing",
			args:    []string{filepath.Join(dir, "nope")},
			wantErr: true,
		},
		{
			name:         "saved navigation",
			nav:          fakeNavigation{saved: &state.NavigationState{CurrentPath: saved, SelectedName: "a"}},
			cfg:          cfg,
			wantPath:     saved,
			wantSelected: "a",
		},
		{
			name:     "saved path gone",
			nav:      fakeNavigation{saved: &state.NavigationState{CurrentPath: filepath.Join(dir, "gone")}},
			cfg:      cfg,
			wantPath: fallback,
		},
		{
			name:     "navigation error",
			nav:      fakeNavigation{err: errors.New("locked")},
			cfg:      cfg,
			wantPath: fallback,
		},
		{
			name:     "working directory",
			wantPath: cwd,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, selected, err := resolveStartPath(tt.args, tt.nav, tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantSelected, selected)
		})
	}
}

func TestResultRows(t *testing.T) {
	rows := resultRows([]metadata.ProviderResult{
		{Provider: "deezer", Artist: "Air", Album: "Moon Safari", Year: "1998", Score: 0.876,
			Tracks: []metadata.TrackInfo{{Position: "1", Title: "La femme d'argent"}}},
		{Provider: "itunes", Artist: "Air", Title: "Sexy Boy", Score: 0.5},
	})

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"88%", "deezer", "Air", "Moon Safari", "1998", "1"}, rows[0])
	assert.Equal(t, "", rows[1][5])
}

func TestStatsRows(t *testing.T) {
	rows := statsRows(state.CacheStats{Entries: 1200, Results: 3})
	assert.Equal(t, []string{"Entries", "1,200"}, rows[0])
	assert.Equal(t, []string{"Oldest", "-"}, rows[2])

	rows = statsRows(state.CacheStats{Oldest: time.Now().Add(-2 * time.Hour)})
	assert.Equal(t, "2 hours ago", rows[2][1])
}

func TestScanCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Disc 2"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "01 intro.wav"), []byte("RIFF"), 0o644))
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"scan", dir})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "01 intro.wav")
	assert.Contains(t, out.String(), "1 audio files, 1 subdirectories")
}
