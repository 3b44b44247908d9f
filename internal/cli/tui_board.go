package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tidsplan/internal/app"
	"github.com/alexanderramin/tidsplan/internal/cli/formatter"
	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/metrics"
	"github.com/alexanderramin/tidsplan/internal/pipeline"
	"github.com/alexanderramin/tidsplan/internal/timeline"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// tasksMsg carries a fresh snapshot from the live subscription.
type tasksMsg []domain.Task

// actionDoneMsg reports the outcome of a write started from the board.
type actionDoneMsg struct {
	text string
	err  error
}

type boardKeys struct {
	Up, Down, Search, Mine, Sort, Zoom key.Binding
	Timeline, Dashboard, Clear, Done   key.Binding
	Earlier, Later, Quit               key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Mine, k.Sort, k.Timeline, k.Dashboard, k.Done, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Search, k.Clear},
		{k.Mine, k.Sort, k.Zoom, k.Timeline, k.Dashboard},
		{k.Done, k.Earlier, k.Later, k.Quit},
	}
}

func defaultBoardKeys() boardKeys {
	return boardKeys{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Mine:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "only mine")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Zoom:      key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "zoom")),
		Timeline:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "timeline")),
		Dashboard: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dashboard")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		Done:      key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle done")),
		Earlier:   key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "day earlier")),
		Later:     key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "day later")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	sortCycle = []domain.SortKey{domain.SortStartDate, domain.SortEndDate, domain.SortTitle}
	zoomCycle = []domain.Zoom{domain.ZoomDay, domain.ZoomWeek, domain.ZoomMonth}
)

// boardModel is the live board. Every key press becomes an app.Intent so
// the board and the command-line flags share one state machine.
type boardModel struct {
	ctx   context.Context
	app   *App
	state app.State

	tasks  []domain.Task
	groups []pipeline.Group
	rows   []domain.Task
	cursor int

	search       textinput.Model
	searching    bool
	showTimeline bool
	showDash     bool

	keys     boardKeys
	help     help.Model
	viewport viewport.Model
	ready    bool
	status   string
}

func newBoardModel(ctx context.Context, a *App, s app.State, dashboardOpen bool) *boardModel {
	ti := textinput.New()
	ti.Placeholder = "sök titel, kund, fas, taggar…"
	ti.Prompt = "/ "
	ti.SetValue(s.Filters.Search)
	return &boardModel{
		ctx:      ctx,
		app:      a,
		state:    s,
		search:   ti,
		showDash: dashboardOpen,
		keys:     defaultBoardKeys(),
		help:     help.New(),
		viewport: viewport.New(80, 20),
	}
}

func (m *boardModel) Init() tea.Cmd { return nil }

func (m *boardModel) dispatch(in app.Intent) {
	m.state = app.Reduce(m.state, in)
	m.recompute()
}

func (m *boardModel) recompute() {
	opts := m.state.Options(m.app.Ctx.Config.Tokens(), m.app.Ctx.Today())
	m.groups = pipeline.Process(m.tasks, opts)
	m.rows = pipeline.Flatten(m.groups)
	m.cursor = min(m.cursor, max(len(m.rows)-1, 0))
	m.viewport.SetContent(m.body())
}

func (m *boardModel) selected() (domain.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return domain.Task{}, false
	}
	return m.rows[m.cursor], true
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-4, 3)
		m.help.Width = msg.Width
		m.ready = true
		m.viewport.SetContent(m.body())
		return m, nil

	case tasksMsg:
		m.tasks = msg
		m.recompute()
		return m, nil

	case actionDoneMsg:
		if msg.err != nil {
			m.status = formatter.StyleRed.Render(msg.err.Error())
		} else {
			m.status = msg.text
		}
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateKeys(msg)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *boardModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.dispatch(app.SetSearch{Term: m.search.Value()})
	return m, cmd
}

func (m *boardModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Mine):
		m.dispatch(app.SetOnlyMine{On: !m.state.OnlyMine})
	case key.Matches(msg, m.keys.Sort):
		m.dispatch(app.SetSort{Key: next(sortCycle, m.state.Sort)})
	case key.Matches(msg, m.keys.Zoom):
		m.dispatch(app.SetZoom{Zoom: next(zoomCycle, m.state.Zoom)})
	case key.Matches(msg, m.keys.Clear):
		m.dispatch(app.ClearFilters{})
	case key.Matches(msg, m.keys.Timeline):
		m.showTimeline = !m.showTimeline
	case key.Matches(msg, m.keys.Dashboard):
		m.showDash = !m.showDash
		return m, m.persistDashboard(m.showDash)
	case key.Matches(msg, m.keys.Done):
		if t, ok := m.selected(); ok {
			return m, m.toggleDone(t)
		}
	case key.Matches(msg, m.keys.Earlier):
		if t, ok := m.selected(); ok {
			return m, m.shift(t, -1)
		}
	case key.Matches(msg, m.keys.Later):
		if t, ok := m.selected(); ok {
			return m, m.shift(t, 1)
		}
	}
	m.viewport.SetContent(m.body())
	return m, nil
}

func next[T comparable](cycle []T, cur T) T {
	for i, v := range cycle {
		if v == cur {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

func (m *boardModel) toggleDone(t domain.Task) tea.Cmd {
	a, ctx := m.app, m.ctx
	status := domain.StatusDone
	if domain.IsDoneStatus(string(t.Status)) {
		status = domain.StatusPlanned
	}
	return func() tea.Msg {
		_, err := a.Ctx.Tasks.Update(ctx, a.Ctx.User(), t.ID, domain.TaskPatch{Status: domain.Ptr(status)})
		return actionDoneMsg{text: fmt.Sprintf("%s → %s", t.Title, status), err: err}
	}
}

func (m *boardModel) shift(t domain.Task, days int) tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		moved, err := a.Ctx.Tasks.Shift(ctx, a.Ctx.User(), t.ID, days)
		return actionDoneMsg{text: fmt.Sprintf("%s: %s", moved.Title, formatter.DateRange(moved.StartDate, moved.EndDate)), err: err}
	}
}

func (m *boardModel) persistDashboard(open bool) tea.Cmd {
	a, ctx := m.app, m.ctx
	return func() tea.Msg {
		if err := a.Ctx.Settings.SetDashboardOpen(ctx, a.Ctx.User(), open); err != nil {
			return actionDoneMsg{err: err}
		}
		return nil
	}
}

// body is the scrollable part of the screen.
func (m *boardModel) body() string {
	today := m.app.Ctx.Today()
	var b strings.Builder
	if m.showDash {
		sum := metrics.Build(m.tasks, today, m.state.WarningDays).Summary()
		b.WriteString(formatter.FormatDashboard(&sum))
		b.WriteString("\n")
	}
	if m.showTimeline {
		from, to := timeline.Window(m.state.Zoom, today)
		chart := timeline.Build(m.rows, m.state.Zoom, from, to, today)
		b.WriteString(formatter.FormatTimeline(&chart))
		return b.String()
	}
	b.WriteString(m.list(today))
	return b.String()
}

func (m *boardModel) list(today time.Time) string {
	if len(m.rows) == 0 {
		return formatter.FormatBoard(nil, len(m.tasks), 0, m.state.WarningDays, today)
	}
	var b strings.Builder
	i := 0
	for _, g := range m.groups {
		b.WriteString(formatter.Header(fmt.Sprintf("%s (%d)", g.Phase, len(g.Tasks))))
		b.WriteString("\n")
		for _, t := range g.Tasks {
			cursor := "  "
			if i == m.cursor {
				cursor = formatter.StyleHeader.Render("▸ ")
			}
			status, _ := domain.DisplayStatus(t, today)
			fmt.Fprintf(&b, "%s%s %s %s %s\n",
				cursor,
				formatter.StatusBadge(status),
				formatter.Truncate(t.Title, 40),
				formatter.Dim(formatter.DateRange(t.StartDate, t.EndDate)),
				formatter.DeadlineMark(t.TimeStatus(m.state.WarningDays, today)))
			i++
		}
	}
	return b.String()
}

func (m *boardModel) View() string {
	var b strings.Builder
	title := fmt.Sprintf("tidsplan · %s · %d/%d · sort %s · zoom %s",
		m.app.Ctx.User(), len(m.rows), len(m.tasks), m.state.Sort, m.state.Zoom)
	if m.state.OnlyMine {
		title += " · bara mina"
	}
	b.WriteString(formatter.StyleHeader.Render(title))
	b.WriteString("\n")
	if m.searching || m.state.Filters.Search != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	if m.ready {
		b.WriteString(m.viewport.View())
	} else {
		b.WriteString(m.body())
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// runBoardTUI shows the live board until the user quits.
func runBoardTUI(ctx context.Context, a *App, s app.State) error {
	prefs, err := a.Ctx.Settings.Preferences(ctx, a.Ctx.User())
	if err != nil {
		return err
	}
	m := newBoardModel(ctx, a, s, prefs.DashboardOpen)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	sess := app.NewSession(a.Ctx.Tasks)
	sess.SignIn(ctx, a.Ctx.User(), func(tasks []domain.Task) { p.Send(tasksMsg(tasks)) })
	defer sess.SignOut()

	_, err = p.Run()
	return err
}
