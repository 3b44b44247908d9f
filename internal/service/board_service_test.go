package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/pipeline"
	"github.com/alexanderramin/tidsplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBoard(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()
	tasks := []domain.Task{
		testutil.NewTestTask("Ritningar", testutil.WithPhase("Projektering"), testutil.WithClient("Kommunen"),
			testutil.WithDates("2024-06-01", "2024-06-20"),
			testutil.WithSubtasks(
				testutil.NewTestSubtask("Plan", "Bo", "Hög"),
				testutil.NewTestSubtask("Fasad", "bo", "medel"),
				testutil.NewTestSubtask("Sektion", "", "low"),
			)),
		testutil.NewTestTask("Bygglov", testutil.WithPhase("Projektering"), testutil.WithRole(domain.RoleCAD, "Olle"),
			testutil.WithDates("2024-05-01", "2024-06-05"), testutil.WithStatus(domain.StatusInProgress)),
		testutil.NewTestTask("Besiktning", testutil.WithDates("2024-07-01", "2024-07-02"),
			testutil.WithSubtasks(testutil.NewTestSubtask("Protokoll", "Anna", ""))),
		testutil.NewTestTask("Arkiv", testutil.WithStatus(domain.StatusDone),
			testutil.WithSubtasks(testutil.NewTestSubtask("Glömd", "Bo", "Hög"))),
		testutil.NewTestTask("Borta", testutil.WithDeleted(testNow.Add(-time.Hour))),
	}
	for _, task := range tasks {
		require.NoError(t, f.tasks.Create(ctx, task))
	}
}

func TestBoardService_Board(t *testing.T) {
	f := newFixture(t)
	seedBoard(t, f)
	svc := NewBoardService(f.tasks, fixedClock)

	board, err := svc.Board(context.Background(), "anna", pipeline.Options{Sort: domain.SortTitle})
	require.NoError(t, err)
	assert.Equal(t, 4, board.Total)
	assert.Equal(t, 3, board.Shown, "done tasks leave the board")
	require.Len(t, board.Groups, 2)
	assert.Equal(t, domain.OtherPhase, board.Groups[0].Phase, "groups follow the first sorted task")
	assert.Equal(t, "Besiktning", board.Groups[0].Tasks[0].Title)
	for _, g := range board.Groups {
		for _, task := range g.Tasks {
			assert.NotEqual(t, "Arkiv", task.Title, "done task on the board")
		}
	}
	assert.Equal(t, "Projektering", board.Groups[1].Phase)
	assert.Equal(t, "Bygglov", board.Groups[1].Tasks[0].Title)
	assert.Equal(t, []string{"Kommunen"}, board.Facets.Clients)

	overdue, err := svc.Board(context.Background(), "anna", pipeline.Options{
		Filters: domain.FilterState{Status: domain.StatusOverdue},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, overdue.Shown)
	assert.Equal(t, "Bygglov", overdue.Groups[0].Tasks[0].Title)
}

func TestBoardService_DashboardAndWorkloadAgree(t *testing.T) {
	f := newFixture(t)
	seedBoard(t, f)
	svc := NewBoardService(f.tasks, fixedClock)
	ctx := context.Background()

	sum, err := svc.Dashboard(ctx, "anna", 1)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Tasks)
	assert.Equal(t, 1, sum.Trash)
	assert.Equal(t, 4, sum.ActiveSubtasks, "subtasks of done tasks do not count")
	assert.Equal(t, 1, sum.Priorities.High)
	assert.Equal(t, 2, sum.Priorities.Normal)
	assert.Equal(t, 1, sum.Priorities.Low)

	load, err := svc.Workload(ctx, "anna", domain.RoleExecutor, 1)
	require.NoError(t, err)
	assert.Equal(t, sum.Priorities.Total(), load.Total())
	assert.Equal(t, 1, load.Unassigned)

	drill, err := svc.Drilldown(ctx, "anna", "BO")
	require.NoError(t, err)
	assert.Len(t, drill.Rows, 2)
	assert.Equal(t, 1, drill.Priority.High)
	assert.Equal(t, 1, drill.Priority.Normal)
}

func TestBoardService_TimelineDefaultsWindow(t *testing.T) {
	f := newFixture(t)
	seedBoard(t, f)
	svc := NewBoardService(f.tasks, fixedClock)

	chart, err := svc.Timeline(context.Background(), "anna", pipeline.Options{}, domain.ZoomWeek, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", chart.From)
	assert.Len(t, chart.Columns, 42)
	assert.NotEmpty(t, chart.Bars)
}

func TestUseCaseObserver_LogsFailures(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(&buf, slog.LevelDebug)
	f := newFixture(t)
	svc := NewTaskService(f.tasks, fixedClock, nil, obs)

	_, err := svc.Create(context.Background(), "anna", domain.Task{})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "use_case=create-task")
	assert.Contains(t, buf.String(), "success=false")
	assert.Contains(t, buf.String(), "level=ERROR")
}

type recordingObserver struct {
	names []string
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.names = append(o.names, e.Name)
}

func TestBoardService_ReportsEveryReadToObserver(t *testing.T) {
	f := newFixture(t)
	seedBoard(t, f)
	obs := &recordingObserver{}
	svc := NewBoardService(f.tasks, fixedClock, obs)
	ctx := context.Background()

	_, err := svc.Workload(ctx, "anna", domain.RoleCAD, 1)
	require.NoError(t, err)
	reports, err := svc.Workloads(ctx, "anna", 1)
	require.NoError(t, err)
	assert.Len(t, reports, len(domain.AllRoles))
	_, err = svc.Drilldown(ctx, "anna", "Bo")
	require.NoError(t, err)
	_, err = svc.Timeline(ctx, "anna", pipeline.Options{}, domain.ZoomWeek, time.Time{}, time.Time{})
	require.NoError(t, err)

	assert.Equal(t, []string{"workload", "workloads", "drilldown", "timeline"}, obs.names)
}
