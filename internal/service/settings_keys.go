package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/tidsplan/internal/repository"
)

// Keys of the per-user settings store.
const (
	KeySavedViews        = "savedViews"
	KeyDashboardOpen     = "dashboardOpen"
	KeyTheme             = "theme"
	KeyDismissedWarnings = "dismissedWarnings"
	KeyQuickList         = "quickList"
)

// loadSetting decodes key into a T. A missing key yields def; so does an
// undecodable value, which is treated like a missing one.
func loadSetting[T any](ctx context.Context, repo repository.SettingsRepo, owner, key string, def T) (T, error) {
	raw, err := repo.Get(ctx, owner, key)
	if errors.Is(err, repository.ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def, nil
	}
	return v, nil
}

func saveSetting(ctx context.Context, repo repository.SettingsRepo, owner, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return repo.Set(ctx, owner, key, raw)
}
