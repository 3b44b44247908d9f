package service

import (
	"testing"
	"time"

	"github.com/alexanderramin/tidsplan/internal/repository"
	"github.com/alexanderramin/tidsplan/internal/testutil"
)

var testNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

type fixture struct {
	tasks    repository.TaskRepo
	settings repository.SettingsRepo
	svc      TaskService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	tasks := repository.NewSQLiteTaskRepo(database, nil)
	return &fixture{
		tasks:    tasks,
		settings: repository.NewSQLiteSettingsRepo(database),
		svc:      NewTaskService(tasks, fixedClock, nil),
	}
}
