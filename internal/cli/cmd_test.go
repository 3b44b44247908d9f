package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/tidsplan/internal/app"
	"github.com/alexanderramin/tidsplan/internal/config"
	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *App {
	t.Helper()
	cfg, err := config.Parse([]byte("user: anna\n"))
	require.NoError(t, err)
	c := app.NewForDB(cfg, testutil.NewTestDB(t), nil, func() time.Time { return testNow })
	return &App{Ctx: c, IsInteractive: func() bool { return false }}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(a)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// seedTask creates a task through the service and returns it.
func seedTask(t *testing.T, a *App, title string, opts ...testutil.TaskOption) domain.Task {
	t.Helper()
	task := testutil.NewTestTask(title, opts...)
	created, err := a.Ctx.Tasks.Create(context.Background(), a.Ctx.User(), task)
	require.NoError(t, err)
	return created
}

// --- Tasks ---

func TestTaskAdd_RequiresTitleWithoutTerminal(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "task", "add", "--start", "2024-06-03", "--end", "2024-06-07")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--title is required")
}

func TestTaskAdd_AndList(t *testing.T) {
	a := testApp(t)
	out, err := executeCmd(t, a, "task", "add",
		"--title", "Bygglov", "--client", "Skanska", "--phase", "Förstudie",
		"--start", "2024-06-03", "--end", "2024-06-20", "--tag", "akut,kommun", "--cad", "Lars")
	require.NoError(t, err)
	assert.Contains(t, out, "Created task Bygglov")

	tasks, err := a.Ctx.Tasks.List(context.Background(), "anna")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Lars", tasks[0].CAD)
	assert.Equal(t, []string{"akut", "kommun"}, tasks[0].Tags)

	out, err = executeCmd(t, a, "task", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Bygglov")
	assert.Contains(t, out, "FÖRSTUDIE")
	assert.Contains(t, out, "Visar 1 av 1")
}

func TestTaskAdd_InvalidDatesReportsProblems(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "task", "add", "--title", "Fel", "--start", "2024-06-10", "--end", "2024-06-01")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before start date")
}

func TestTaskShow_RendersChecklistAndComments(t *testing.T) {
	a := testApp(t)
	task := seedTask(t, a, "Ritningar", testutil.WithSubtasks(testutil.NewTestSubtask("Fasad", "Lars", domain.PriorityHigh)))
	_, err := a.Ctx.Tasks.AddComment(context.Background(), "anna", task.ID, "anna", "Väntar på **kommunen**")
	require.NoError(t, err)

	out, err := executeCmd(t, a, "task", "show", task.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "Ritningar")
	assert.Contains(t, out, "Fasad")
	assert.Contains(t, out, "Lars")
	assert.Contains(t, out, "kommunen")
}

func TestTaskUpdate_OnlyChangedFlags(t *testing.T) {
	a := testApp(t)
	task := seedTask(t, a, "Original", testutil.WithClient("NCC"))

	_, err := executeCmd(t, a, "task", "update", task.ID, "--title", "Nytt namn")
	require.NoError(t, err)

	got, err := a.Ctx.Tasks.Get(context.Background(), "anna", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nytt namn", got.Title)
	assert.Equal(t, "NCC", got.Client)

	_, err = executeCmd(t, a, "task", "update", task.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

func TestTaskDoneAndShift(t *testing.T) {
	a := testApp(t)
	task := seedTask(t, a, "Klarmarkeras")

	out, err := executeCmd(t, a, "task", "done", task.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Done: Klarmarkeras")

	out, err = executeCmd(t, a, "task", "shift", task.ID, "3")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-06-06 → 2024-06-17")

	got, err := a.Ctx.Tasks.Get(context.Background(), "anna", task.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDone, got.Status)

	_, err = executeCmd(t, a, "task", "shift", task.ID, "tre")
	assert.Error(t, err)
}

func TestTaskTrashLifecycle(t *testing.T) {
	a := testApp(t)
	task := seedTask(t, a, "Slängd")

	_, err := executeCmd(t, a, "task", "rm", task.ID)
	require.NoError(t, err)

	out, err := executeCmd(t, a, "task", "trash")
	require.NoError(t, err)
	assert.Contains(t, out, "Slängd")

	_, err = executeCmd(t, a, "task", "restore", task.ID)
	require.NoError(t, err)
	out, err = executeCmd(t, a, "task", "trash")
	require.NoError(t, err)
	assert.Contains(t, out, "Papperskorgen är tom")

	_, err = executeCmd(t, a, "task", "rm", task.ID)
	require.NoError(t, err)
	_, err = executeCmd(t, a, "task", "purge", task.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--force")

	_, err = executeCmd(t, a, "task", "purge", task.ID, "--force")
	require.NoError(t, err)
	trash, err := a.Ctx.Tasks.Trash(context.Background(), "anna")
	require.NoError(t, err)
	assert.Empty(t, trash)
}

func TestResolveTaskID_UnknownAndPrefix(t *testing.T) {
	a := testApp(t)
	task := seedTask(t, a, "Prefix")

	id, err := resolveTaskID(context.Background(), a, task.ID[:6], false)
	require.NoError(t, err)
	assert.Equal(t, task.ID, id)

	_, err = resolveTaskID(context.Background(), a, "zzz", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMatchID_Ambiguous(t *testing.T) {
	_, err := matchID([]string{"abc1", "abc2"}, "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	id, err := matchID([]string{"abc", "abcd"}, "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
}

// --- Checklist and comments ---

func TestSubtaskCommands(t *testing.T) {
	a := testApp(t)
	task := seedTask(t, a, "Lista")

	out, err := executeCmd(t, a, "sub", "add", task.ID, "Beställ", "mätning", "--executor", "Eva", "--priority", "high")
	require.NoError(t, err)
	assert.Contains(t, out, `Added "Beställ mätning"`)

	got, err := a.Ctx.Tasks.Get(context.Background(), "anna", task.ID)
	require.NoError(t, err)
	require.Len(t, got.Checklist, 1)
	sub := got.Checklist[0]
	assert.Equal(t, domain.PriorityHigh, sub.Priority)

	_, err = executeCmd(t, a, "sub", "done", task.ID, sub.ID[:6])
	require.NoError(t, err)
	_, err = executeCmd(t, a, "sub", "archive", task.ID, sub.ID)
	require.NoError(t, err)

	got, err = a.Ctx.Tasks.Get(context.Background(), "anna", task.ID)
	require.NoError(t, err)
	assert.True(t, got.Checklist[0].Done)
	assert.True(t, got.Checklist[0].Archived)

	_, err = executeCmd(t, a, "sub", "rm", task.ID, sub.ID)
	require.NoError(t, err)
	_, err = executeCmd(t, a, "sub", "done", task.ID, sub.ID)
	require.Error(t, err)
}

func TestCommentCommands(t *testing.T) {
	a := testApp(t)
	task := seedTask(t, a, "Kommenterad")

	_, err := executeCmd(t, a, "comment", "add", task.ID, "Första", "versionen")
	require.NoError(t, err)
	got, err := a.Ctx.Tasks.Get(context.Background(), "anna", task.ID)
	require.NoError(t, err)
	require.Len(t, got.Comments, 1)
	c := got.Comments[0]
	assert.Equal(t, "Första versionen", c.Text)
	assert.Equal(t, "anna", c.Author)

	_, err = executeCmd(t, a, "comment", "edit", task.ID, c.ID, "Andra")
	require.NoError(t, err)
	got, err = a.Ctx.Tasks.Get(context.Background(), "anna", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Andra", got.Comments[0].Text)
	assert.NotNil(t, got.Comments[0].EditedAt)

	_, err = executeCmd(t, a, "comment", "rm", task.ID, c.ID)
	require.NoError(t, err)
	got, err = a.Ctx.Tasks.Get(context.Background(), "anna", task.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Comments)
}

// --- Board ---

func seedBoard(t *testing.T, a *App) {
	t.Helper()
	seedTask(t, a, "Alfa", testutil.WithClient("Skanska"), testutil.WithPhase("Bygg"), testutil.WithRole(domain.RoleCAD, "Lars"))
	seedTask(t, a, "Beta", testutil.WithClient("NCC"), testutil.WithPhase("Bygg"), testutil.WithTags("akut"))
	seedTask(t, a, "Gamma", testutil.WithClient("NCC"), testutil.WithPhase("Projektering"))
}

func TestBoard_Filters(t *testing.T) {
	a := testApp(t)
	seedBoard(t, a)

	out, err := executeCmd(t, a, "board", "--client", "NCC")
	require.NoError(t, err)
	assert.Contains(t, out, "Beta")
	assert.Contains(t, out, "Gamma")
	assert.NotContains(t, out, "Alfa")
	assert.Contains(t, out, "kund=NCC")

	out, err = executeCmd(t, a, "board", "--role", "CAD")
	require.NoError(t, err)
	assert.Contains(t, out, "Alfa")
	assert.NotContains(t, out, "Beta")

	out, err = executeCmd(t, a, "board", "--tag", "akut")
	require.NoError(t, err)
	assert.Contains(t, out, "Beta")
	assert.NotContains(t, out, "Gamma")

	out, err = executeCmd(t, a, "board", "--search", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, "Inga av 3 uppgifter matchar")
}

func TestBoard_UnknownRoleRejected(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "board", "--role", "chef")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}

func TestBoard_InteractiveNeedsTerminal(t *testing.T) {
	a := testApp(t)
	_, err := executeCmd(t, a, "board", "-i")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "terminal")
}

func TestViews_SaveApplyRemove(t *testing.T) {
	a := testApp(t)
	seedBoard(t, a)

	out, err := executeCmd(t, a, "view", "save", "ncc", "--client", "NCC", "--sort", "title")
	require.NoError(t, err)
	assert.Contains(t, out, `Saved view "ncc"`)

	out, err = executeCmd(t, a, "view", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ncc")
	assert.Contains(t, out, "kund=NCC")

	out, err = executeCmd(t, a, "view", "apply", "ncc", "--phase", "Projektering")
	require.NoError(t, err)
	assert.Contains(t, out, "Gamma")
	assert.NotContains(t, out, "Beta")

	out, err = executeCmd(t, a, "board", "--view", "ncc")
	require.NoError(t, err)
	assert.Contains(t, out, "Beta")
	assert.NotContains(t, out, "Alfa")

	_, err = executeCmd(t, a, "view", "rm", "ncc")
	require.NoError(t, err)
	_, err = executeCmd(t, a, "board", "--view", "ncc")
	assert.Error(t, err)
}

func TestDashboardWorkloadTimeline(t *testing.T) {
	a := testApp(t)
	seedTask(t, a, "Sen", testutil.WithDates("2024-06-01", "2024-06-05"),
		testutil.WithSubtasks(testutil.NewTestSubtask("Mät", "Eva", domain.PriorityHigh)))
	seedTask(t, a, "Snart", testutil.WithDates("2024-06-03", "2024-06-11"))

	out, err := executeCmd(t, a, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "ÖVERSIKT")
	assert.Contains(t, out, "Snart")

	out, err = executeCmd(t, a, "workload")
	require.NoError(t, err)
	assert.Contains(t, out, "HANDLÄGGARE")
	assert.Contains(t, out, "Eva")

	out, err = executeCmd(t, a, "workload", "--person", "eva")
	require.NoError(t, err)
	assert.Contains(t, out, "Mät")

	out, err = executeCmd(t, a, "workload", "--all")
	require.NoError(t, err)
	assert.Equal(t, len(domain.AllRoles), strings.Count(out, "BELASTNING:"))
	assert.Contains(t, out, "Eva")

	out, err = executeCmd(t, a, "timeline", "--zoom", "day")
	require.NoError(t, err)
	assert.Contains(t, out, "2024-06-08 – 2024-06-21")
	assert.Contains(t, out, "Snart")

	_, err = executeCmd(t, a, "timeline", "--from", "2024-06-01")
	assert.Error(t, err)
}

// --- Quick list, settings, digest ---

func TestQuickCommands(t *testing.T) {
	a := testApp(t)

	out, err := executeCmd(t, a, "quick", "add", "Ring", "kommunen")
	require.NoError(t, err)
	assert.Contains(t, out, "Ring kommunen")

	items, err := a.Ctx.Quick.List(context.Background(), "anna")
	require.NoError(t, err)
	require.Len(t, items, 1)

	out, err = executeCmd(t, a, "quick", "done", items[0].ID[:6])
	require.NoError(t, err)
	assert.Contains(t, out, "is done")

	out, err = executeCmd(t, a, "quick", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1")

	out, err = executeCmd(t, a, "quick")
	require.NoError(t, err)
	assert.Contains(t, out, "Snabblistan är tom")
}

func TestSettingsCommands(t *testing.T) {
	a := testApp(t)

	_, err := executeCmd(t, a, "settings", "theme", "dark")
	require.NoError(t, err)
	_, err = executeCmd(t, a, "settings", "theme", "neon")
	require.Error(t, err)
	_, err = executeCmd(t, a, "settings", "dashboard", "on")
	require.NoError(t, err)

	out, err := executeCmd(t, a, "settings")
	require.NoError(t, err)
	assert.Contains(t, out, "dark")
	assert.True(t, strings.Contains(out, "dashboard") && strings.Contains(out, "on"))
}

func TestDigest_PrintsAndNeedsWebhookToSend(t *testing.T) {
	a := testApp(t)
	seedTask(t, a, "Försenad sak", testutil.WithDates("2024-06-01", "2024-06-05"))

	out, err := executeCmd(t, a, "digest")
	require.NoError(t, err)
	assert.Contains(t, out, "Försenad sak")
	assert.Contains(t, out, "5 d sedan")

	_, err = executeCmd(t, a, "digest", "--send")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slack_webhook_url")
}

func TestBuildScheduler(t *testing.T) {
	a := testApp(t)
	sched, err := buildScheduler(a)
	require.NoError(t, err)
	assert.Equal(t, 1, sched.Len())

	a.Ctx.Config.SlackWebhookURL = "https://hooks.slack.test/services/x"
	sched, err = buildScheduler(a)
	require.NoError(t, err)
	assert.Equal(t, 2, sched.Len())
}
