package app

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/llehouerou/tunematch/internal/keymap"
	"github.com/llehouerou/tunematch/internal/match"
	"github.com/llehouerou/tunematch/internal/review"
	"github.com/llehouerou/tunematch/internal/ui"
	"github.com/llehouerou/tunematch/internal/ui/cursor"
	"github.com/llehouerou/tunematch/internal/ui/headerbar"
	"github.com/llehouerou/tunematch/internal/ui/layout"
	"github.com/llehouerou/tunematch/internal/ui/render"
	"github.com/llehouerou/tunematch/internal/ui/styles"
)

const columnSep = " "

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.width < ui.MinWidth || m.height < ui.MinHeight {
		return styles.T().S().Warning.Render("Terminal too small")
	}

	header := headerbar.Render(m.session.State().String(), m.session.Path(), m.width)
	bodyHeight := layout.BodyHeight(m.height, headerbar.Height)

	var body string
	switch {
	case m.showHelp:
		body = lipgloss.Place(m.width, bodyHeight, lipgloss.Center, lipgloss.Center, m.help.View())
	case m.session.State() == review.StateResults:
		body = m.renderResults(m.width, bodyHeight)
	case m.session.State() == review.StateDetails:
		body = m.renderDetails(m.width, bodyHeight)
	default:
		body = m.renderNavigation(m.width, bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderStatus())
}

// listPanel renders rows in a bordered panel with a title line and an
// optional column header. Exactly the selected row is highlighted.
type listPanel struct {
	title    string
	header   string
	rows     []string
	prefixes []string // Drawn unhighlighted before each row, may be nil
	selected review.Selection
	focused  bool
}

func (p listPanel) render(width, height int) string {
	s := styles.T().S()
	innerW := max(width-2, 0)

	pos, hasSel := p.selected.Index()
	count := strconv.Itoa(len(p.rows))
	if hasSel {
		count = fmt.Sprintf("%d/%d", pos+1, len(p.rows))
	} else {
		pos = -1
	}

	lines := []string{render.Row(s.Header.Render(p.title), s.Muted.Render(count), innerW)}
	if p.header != "" {
		lines = append(lines, s.Muted.Render(render.TruncateAndPad(p.header, innerW)))
	}
	lines = append(lines, s.Subtle.Render(render.Separator(innerW)))

	listH := layout.ListHeight(height, len(lines))
	if len(p.rows) == 0 {
		lines = append(lines, s.Subtle.Render("(empty)"))
	}
	start, end := cursor.Window(pos, len(p.rows), listH, ui.ScrollMargin)
	for i := start; i < end; i++ {
		row := p.rows[i]
		if i == pos {
			row = s.Selected.Render(row)
		}
		if i < len(p.prefixes) {
			row = p.prefixes[i] + row
		}
		lines = append(lines, row)
	}

	content := strings.Join(render.FitLines(lines, max(height-ui.BorderHeight, 0)), "\n")
	return styles.Panel(content, width, height, p.focused)
}

func (m Model) renderNavigation(width, height int) string {
	s := m.session
	l := layout.BrowseLayout(width, height)
	dirW, rightW := l.DirWidth, l.RightWidth

	dirRows := make([]string, len(s.Directories()))
	for i, d := range s.Directories() {
		dirRows[i] = render.TruncateAndPad(filepath.Base(d)+"/", dirW-2)
	}
	dirs := listPanel{
		title:    "Directories",
		rows:     dirRows,
		selected: s.SelectedDirectory(),
		focused:  s.Focus() == review.FocusDirectory,
	}

	innerW := rightW - 2
	widths := fileColumns(innerW)
	fileRows := make([]string, len(s.Files()))
	for i, f := range s.Files() {
		title := f.Title
		if title == "" {
			title = filepath.Base(f.Path)
		}
		fileRows[i] = render.Columns(innerW, columnSep, widths, f.Track, title, f.Artist, f.Album)
	}
	files := listPanel{
		title:    "Files",
		header:   render.Columns(innerW, columnSep, widths, "#", "Title", "Artist", "Album"),
		rows:     fileRows,
		selected: s.SelectedFile(),
		focused:  s.Focus() == review.FocusFiles,
	}

	// Candidates of the last search; nothing is selected while navigating.
	candRows := make([]string, len(s.Results()))
	for i, r := range s.Results() {
		candRows[i] = render.TruncateAndPad(
			fmt.Sprintf("%3.0f%%  %s - %s", r.Score*100, r.Artist, r.Title), innerW)
	}
	cands := listPanel{
		title:   "Candidates",
		rows:    candRows,
		focused: s.Focus() == review.FocusResults,
	}

	right := lipgloss.JoinVertical(lipgloss.Left,
		files.render(rightW, l.FilesHeight),
		cands.render(rightW, l.CandidatesHeight))
	return lipgloss.JoinHorizontal(lipgloss.Top, dirs.render(dirW, height), right)
}

// fileColumns splits width into track, title, artist and album columns.
func fileColumns(width int) []int {
	rest := max(width-3-3*len(columnSep), 3)
	title := rest * 2 / 5
	artist := rest * 3 / 10
	return []int{3, title, artist, 0}
}

// resultColumns are the provider, year, tracks and title columns. The
// title takes the rest of the line; the score is drawn in front.
var resultColumns = []int{11, 4, 6, 0}

func (m Model) renderResults(width, height int) string {
	s := m.session
	l := layout.CandidatesLayout(width, height)
	innerW := l.TableWidth - 2

	const scoreW = 4 // "100%"
	restW := max(innerW-scoreW-1-len(columnSep), 0)
	widths := resultColumns

	rows := make([]string, len(s.Results()))
	scores := make([]string, len(s.Results()))
	for i, r := range s.Results() {
		tracks := ""
		if n := len(r.Tracks); n > 0 {
			tracks = strconv.Itoa(n) + " tr"
		}
		scores[i] = styles.RenderScore(r.Score) + " " + columnSep
		rows[i] = render.Columns(restW, columnSep, widths,
			r.Provider, r.Year, tracks, r.Artist+" - "+r.Title)
	}

	title := "Candidates"
	if s.Filtered() {
		title = fmt.Sprintf("Candidates ≥ %.0f%%", s.MinScore()*100)
	}
	table := listPanel{
		title:    title,
		header:   render.Pad("Score", scoreW+1) + columnSep + render.Columns(restW, columnSep, widths, "Provider", "Year", "Tracks", "Artist - Title"),
		rows:     rows,
		prefixes: scores,
		selected: s.SelectedResult(),
		focused:  true,
	}

	tableView := table.render(l.TableWidth, l.TableHeight)
	preview := m.renderPreview(l.PreviewWidth, l.PreviewHeight)
	if l.Stacked {
		return lipgloss.JoinVertical(lipgloss.Left, tableView, preview)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tableView, preview)
}

func (m Model) renderPreview(width, height int) string {
	s := styles.T().S()
	innerW := max(width-2, 0)

	r, ok := m.session.Selected()
	var lines []string
	lines = append(lines, s.Header.Render("Preview"), s.Subtle.Render(render.Separator(innerW)))
	if !ok {
		lines = append(lines, s.Subtle.Render(render.Truncate("Select a candidate with j/k", innerW)))
	} else {
		field := func(label, value string) {
			if value == "" {
				return
			}
			lines = append(lines, s.Muted.Render(render.Pad(label, 9))+render.Truncate(value, innerW-9))
		}
		field("Title", r.Title)
		field("Artist", r.Artist)
		field("Album", r.Album)
		field("Year", r.Year)
		field("Source", r.Provider)
		field("ID", r.ID)
		lines = append(lines, s.Muted.Render(render.Pad("Score", 9))+styles.RenderScore(r.Score))
		if len(r.Tracks) > 0 {
			lines = append(lines, "", s.Header.Render(fmt.Sprintf("%d tracks", len(r.Tracks))))
			for _, t := range r.Tracks {
				lines = append(lines, render.Truncate(t.Position+". "+t.Title, innerW))
			}
		}
	}

	content := strings.Join(render.FitLines(lines, max(height-ui.BorderHeight, 0)), "\n")
	return styles.Panel(content, width, height, false)
}

func (m Model) renderDetails(width, height int) string {
	s := styles.T().S()
	innerW := max(width-2, 0)

	r, ok := m.session.Selected()
	if !ok {
		return styles.Panel("", width, height, true)
	}

	head := []string{
		s.Title.Render(render.Truncate(r.Artist+" - "+r.Title, innerW)),
		s.Muted.Render(render.Truncate(strings.Join(nonEmpty(r.Album, r.Year, r.Provider), " · "), innerW-6)) +
			"  " + styles.RenderScore(r.Score),
		"",
	}

	const posW, simW = 4, 5
	rest := max(innerW-posW-simW-3*len(columnSep), 2)
	widths := []int{posW, rest / 2, rest - rest/2, simW}
	head = append(head,
		s.Muted.Render(render.Columns(innerW, columnSep, widths, "#", "Track", "Local file", "Match")),
		s.Subtle.Render(render.Separator(innerW)))

	files := match.SortByTrack(m.session.Files())
	sims := match.TrackScores(match.TrackFieldsFromResult(r), match.TrackFieldsFromItems(files))

	n := max(len(r.Tracks), len(files))
	listH := layout.ListHeight(height, len(head))
	start, end := cursor.Scroll(m.session.DetailsScroll(), n, listH)

	lines := head
	for i := start; i < end; i++ {
		var pos, title, local, sim string
		if i < len(r.Tracks) {
			pos, title = r.Tracks[i].Position, r.Tracks[i].Title
		}
		if i < len(files) {
			local = files[i].Title
			if local == "" {
				local = filepath.Base(files[i].Path)
			}
		}
		row := render.Columns(innerW-simW-len(columnSep), columnSep, widths[:3], pos, title, local)
		if i < len(r.Tracks) && i < len(files) {
			sim = styles.RenderScore(sims[i])
		}
		lines = append(lines, row+columnSep+sim)
	}

	content := strings.Join(render.FitLines(lines, max(height-ui.BorderHeight, 0)), "\n")
	return styles.Panel(content, width, height, true)
}

func (m Model) renderStatus() string {
	s := styles.T().S()
	if m.input.Active() {
		return ansi.Truncate(m.input.View(), m.width, "")
	}

	hint := m.keys.Hints(" · ", stateHints[m.session.State()]...)
	if lipgloss.Width(hint) > m.width/2 {
		hint = m.keys.Hints(" · ", keymap.Hint{Action: keymap.ActionHelp, Label: "help"})
	}
	right := s.Subtle.Render(hint)
	avail := max(m.width-lipgloss.Width(right)-1, 0)

	status := render.Sanitize(m.session.Status())
	var left string
	switch {
	case m.session.Busy() != review.CallNone:
		spin := m.spinner.View() + " "
		left = spin + s.Warning.Render(render.Truncate(status, avail-lipgloss.Width(spin)))
	case strings.HasPrefix(status, "Failed"):
		left = s.Error.Render(render.Truncate(status, avail))
	case status == review.StatusApplied:
		left = s.Success.Render(render.Truncate(status, avail))
	default:
		left = s.Base.Render(render.Truncate(status, avail))
	}
	return render.Row(left, right, m.width)
}

// stateHints are the key hints shown at the right of the status line.
var stateHints = map[review.State][]keymap.Hint{
	review.StateNavigation: {
		{Action: keymap.ActionSearch, Label: "search"},
		{Action: keymap.ActionManualSearch, Label: "query"},
		{Action: keymap.ActionHelp, Label: "help"},
	},
	review.StateResults: {
		{Action: keymap.ActionSelect, Label: "tracks"},
		{Action: keymap.ActionApply, Label: "apply"},
		{Action: keymap.ActionToggleFilter, Label: "filter"},
		{Action: keymap.ActionHelp, Label: "help"},
	},
	review.StateDetails: {
		{Action: keymap.ActionApply, Label: "apply"},
		{Action: keymap.ActionBack, Label: "back"},
		{Action: keymap.ActionHelp, Label: "help"},
	},
}

func nonEmpty(values ...string) []string {
	out := values[:0:0]
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
