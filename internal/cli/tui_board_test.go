package cli

import (
	"context"
	"testing"

	"github.com/alexanderramin/tidsplan/internal/app"
	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/teatest"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestBoard(t *testing.T) (*boardModel, *App) {
	t.Helper()
	a := testApp(t)
	seedBoard(t, a)
	tasks, err := a.Ctx.Tasks.List(context.Background(), "anna")
	require.NoError(t, err)

	m := newBoardModel(context.Background(), a, app.DefaultState(), false)
	m.Update(tasksMsg(tasks))
	return m, a
}

func TestBoardModel_SnapshotBuildsRows(t *testing.T) {
	m, _ := newTestBoard(t)
	require.Len(t, m.rows, 3)
	require.Len(t, m.groups, 2)
	view := m.View()
	assert.Contains(t, view, "Alfa")
	assert.Contains(t, view, "3/3")
}

func TestBoardModel_SearchFiltersLive(t *testing.T) {
	m, _ := newTestBoard(t)

	m.Update(keyRunes("/"))
	assert.True(t, m.searching)
	m.Update(keyRunes("g"))
	m.Update(keyRunes("a"))
	m.Update(keyRunes("m"))
	assert.Equal(t, "gam", m.state.Filters.Search)
	require.Len(t, m.rows, 1)
	assert.Equal(t, "Gamma", m.rows[0].Title)

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.searching)
	m.Update(keyRunes("c"))
	assert.Equal(t, "gam", m.state.Filters.Search, "clear keeps the search term")
}

func TestBoardModel_KeysDispatchIntents(t *testing.T) {
	m, _ := newTestBoard(t)

	m.Update(keyRunes("s"))
	assert.Equal(t, domain.SortEndDate, m.state.Sort)
	m.Update(keyRunes("s"))
	assert.Equal(t, domain.SortTitle, m.state.Sort)

	m.Update(keyRunes("z"))
	assert.Equal(t, domain.ZoomMonth, m.state.Zoom)

	m.Update(keyRunes("m"))
	assert.True(t, m.state.OnlyMine)
	assert.Empty(t, m.rows, "nobody is assigned as anna")

	m.Update(keyRunes("t"))
	assert.True(t, m.showTimeline)
}

func TestBoardModel_CursorStaysInRange(t *testing.T) {
	m, _ := newTestBoard(t)
	for range 10 {
		m.Update(keyRunes("j"))
	}
	assert.Equal(t, 2, m.cursor)

	m.Update(tasksMsg(m.tasks[:1]))
	assert.Equal(t, 0, m.cursor)
}

func TestBoardModel_ToggleDoneWritesThroughService(t *testing.T) {
	m, a := newTestBoard(t)

	_, cmd := m.Update(keyRunes("x"))
	require.NotNil(t, cmd)
	msg := cmd()
	done, ok := msg.(actionDoneMsg)
	require.True(t, ok)
	require.NoError(t, done.err)

	got, err := a.Ctx.Tasks.Get(context.Background(), "anna", m.rows[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, got.Status)
}

func TestBoardModel_DashboardTogglePersists(t *testing.T) {
	m, a := newTestBoard(t)

	_, cmd := m.Update(keyRunes("d"))
	require.NotNil(t, cmd)
	assert.Nil(t, cmd())
	assert.Contains(t, m.View(), "ÖVERSIKT")

	prefs, err := a.Ctx.Settings.Preferences(context.Background(), "anna")
	require.NoError(t, err)
	assert.True(t, prefs.DashboardOpen)
}

func TestBoardModel_ShiftReportsNewDates(t *testing.T) {
	m, _ := newTestBoard(t)
	_, cmd := m.Update(keyRunes(">"))
	require.NotNil(t, cmd)
	done := cmd().(actionDoneMsg)
	require.NoError(t, done.err)
	assert.Contains(t, done.text, "2024-06-04 → 2024-06-15")

	m.Update(done)
	assert.Contains(t, m.View(), "2024-06-04")
}


func TestBoardModel_DriverSession(t *testing.T) {
	a := testApp(t)
	seedBoard(t, a)
	tasks, err := a.Ctx.Tasks.List(context.Background(), "anna")
	require.NoError(t, err)

	d := teatest.New(t, newBoardModel(context.Background(), a, app.DefaultState(), false), 100, 30)
	d.Send(tasksMsg(tasks))
	assert.Contains(t, d.View(), "Beta")

	d.Type("/bet")
	d.Press(tea.KeyEnter)
	assert.Contains(t, d.View(), "Beta")
	assert.NotContains(t, d.View(), "Gamma")

	d.Type("x")
	assert.Contains(t, d.View(), "Beta → Klar")

	d.Type("q")
	assert.True(t, d.Quitting)
}
