package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewService_SaveReplacesByName(t *testing.T) {
	f := newFixture(t)
	svc := NewViewService(f.settings, fixedClock)
	ctx := context.Background()

	_, err := svc.Save(ctx, "anna", domain.SavedView{Name: " "})
	assert.ErrorIs(t, err, ErrEmptyText)

	first, err := svc.Save(ctx, "anna", domain.SavedView{Name: "Mina", OnlyMine: true})
	require.NoError(t, err)
	assert.Equal(t, domain.ZoomWeek, first.Zoom)
	assert.True(t, first.SavedAt.Equal(testNow))

	_, err = svc.Save(ctx, "anna", domain.SavedView{
		Name:    "Mina",
		Zoom:    domain.ZoomMonth,
		Filters: domain.FilterState{Client: "Kommunen"},
	})
	require.NoError(t, err)
	_, err = svc.Save(ctx, "anna", domain.SavedView{Name: "Alla"})
	require.NoError(t, err)

	views, err := svc.List(ctx, "anna")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "Mina", views[0].Name)
	assert.Equal(t, domain.ZoomMonth, views[0].Zoom)
	assert.False(t, views[0].OnlyMine)

	got, err := svc.Get(ctx, "anna", "Mina")
	require.NoError(t, err)
	assert.Equal(t, "Kommunen", got.Filters.Client)

	require.NoError(t, svc.Delete(ctx, "anna", "Mina"))
	assert.ErrorIs(t, svc.Delete(ctx, "anna", "Mina"), repository.ErrNotFound)
	_, err = svc.Get(ctx, "anna", "Mina")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestViewService_CorruptValueReadsAsEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.settings.Set(ctx, "anna", KeySavedViews, json.RawMessage(`{"not":"a list"}`)))

	views, err := NewViewService(f.settings, fixedClock).List(ctx, "anna")
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestQuickListService(t *testing.T) {
	f := newFixture(t)
	svc := NewQuickListService(f.settings, fixedClock)
	ctx := context.Background()

	_, err := svc.Add(ctx, "anna", "")
	assert.ErrorIs(t, err, ErrEmptyText)

	milk, err := svc.Add(ctx, "anna", "Köp mjölk")
	require.NoError(t, err)
	call, err := svc.Add(ctx, "anna", "Ring Bo")
	require.NoError(t, err)

	toggled, err := svc.Toggle(ctx, "anna", milk.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Done)

	n, err := svc.ClearDone(ctx, "anna")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	items, err := svc.List(ctx, "anna")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, call.ID, items[0].ID)

	require.NoError(t, svc.Remove(ctx, "anna", call.ID))
	assert.ErrorIs(t, svc.Remove(ctx, "anna", call.ID), repository.ErrNotFound)
	_, err = svc.Toggle(ctx, "anna", "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSettingsService_Preferences(t *testing.T) {
	f := newFixture(t)
	svc := NewSettingsService(f.settings)
	ctx := context.Background()

	prefs, err := svc.Preferences(ctx, "anna")
	require.NoError(t, err)
	assert.False(t, prefs.DashboardOpen)
	assert.Equal(t, "light", prefs.Theme)
	assert.Empty(t, prefs.DismissedWarnings)

	require.NoError(t, svc.SetDashboardOpen(ctx, "anna", true))
	require.NoError(t, svc.SetTheme(ctx, "anna", "dark"))
	assert.Error(t, svc.SetTheme(ctx, "anna", "neon"))
	require.NoError(t, svc.DismissWarning(ctx, "anna", "demo-mode"))
	require.NoError(t, svc.DismissWarning(ctx, "anna", "demo-mode"))

	prefs, err = svc.Preferences(ctx, "anna")
	require.NoError(t, err)
	assert.True(t, prefs.DashboardOpen)
	assert.Equal(t, "dark", prefs.Theme)
	assert.Equal(t, []string{"demo-mode"}, prefs.DismissedWarnings)

	require.NoError(t, svc.ResetWarnings(ctx, "anna"))
	prefs, err = svc.Preferences(ctx, "anna")
	require.NoError(t, err)
	assert.Empty(t, prefs.DismissedWarnings)

	other, err := svc.Preferences(ctx, "bo")
	require.NoError(t, err)
	assert.False(t, other.DashboardOpen)
}
