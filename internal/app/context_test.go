package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/tidsplan/internal/config"
	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte("store: local\nuser: anna\n"))
	require.NoError(t, err)
	cfg.LocalPath = filepath.Join(t.TempDir(), "local.json")
	return cfg
}

func TestOpen_LocalStoreShowsDemoNotice(t *testing.T) {
	cfg := localConfig(t)
	c, err := Open(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	ctx := context.Background()

	c.StartupNotices(ctx)
	toasts := c.Toasts.Drain()
	require.Len(t, toasts, 1)
	assert.Equal(t, WarningDemoMode, toasts[0].ID)
	assert.Equal(t, ToastWarning, toasts[0].Level)

	require.NoError(t, c.Settings.DismissWarning(ctx, c.User(), WarningDemoMode))
	c.StartupNotices(ctx)
	assert.Empty(t, c.Toasts.Drain())
}

func TestOpen_SQLiteStore(t *testing.T) {
	cfg, err := config.Parse([]byte("user: anna\n"))
	require.NoError(t, err)
	cfg.DBPath = filepath.Join(t.TempDir(), "tidsplan.db")

	c, err := Open(cfg, nil)
	require.NoError(t, err)
	ctx := context.Background()

	created, err := c.Tasks.Create(ctx, c.User(), domain.Task{Title: "Fil", StartDate: "2024-01-01", EndDate: "2024-01-05"})
	require.NoError(t, err)
	c.StartupNotices(ctx)
	assert.Empty(t, c.Toasts.Drain())
	require.NoError(t, c.Close())

	reopened, err := Open(cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { reopened.Close() })
	got, err := reopened.Tasks.Get(ctx, "anna", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Fil", got.Title)
}

func TestNewForDB(t *testing.T) {
	cfg, err := config.Parse(nil)
	require.NoError(t, err)
	c := NewForDB(cfg, testutil.NewTestDB(t), nil, nil)
	tasks, err := c.Tasks.List(context.Background(), cfg.User)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestToasts_Bounded(t *testing.T) {
	q := NewToasts(nil)
	for i := 0; i < maxToasts+5; i++ {
		q.Push(ToastInfo, "", "hej")
	}
	assert.Len(t, q.Drain(), maxToasts)
	assert.Empty(t, q.Drain())
}
