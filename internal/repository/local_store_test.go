package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/tidsplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "local.json")
	ctx := context.Background()

	store, err := OpenLocalStore(path, nil)
	require.NoError(t, err)
	task := testutil.NewTestTask("Demo")
	require.NoError(t, store.Tasks().Create(ctx, task))
	require.NoError(t, store.Settings().Set(ctx, "anna", "dashboardOpen", json.RawMessage(`true`)))

	reopened, err := OpenLocalStore(path, nil)
	require.NoError(t, err)
	got, err := reopened.Tasks().Get(ctx, "anna", task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Demo", got.Title)

	v, err := reopened.Settings().Get(ctx, "anna", "dashboardOpen")
	require.NoError(t, err)
	assert.JSONEq(t, "true", string(v))
}

func TestLocalStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))

	_, err := OpenLocalStore(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding local store")
}

func TestLocalStore_DuplicateID(t *testing.T) {
	store, err := OpenLocalStore("", nil)
	require.NoError(t, err)
	task := testutil.NewTestTask("En")
	require.NoError(t, store.Tasks().Create(context.Background(), task))
	assert.Error(t, store.Tasks().Create(context.Background(), task))
}
