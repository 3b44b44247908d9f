package service

import (
	"context"
	"fmt"
	"slices"

	"github.com/alexanderramin/tidsplan/internal/repository"
)

// Themes the UI knows about.
var Themes = []string{"light", "dark"}

type settingsService struct {
	settings repository.SettingsRepo
}

func NewSettingsService(settings repository.SettingsRepo) SettingsService {
	return &settingsService{settings: settings}
}

func (s *settingsService) Preferences(ctx context.Context, owner string) (Preferences, error) {
	var p Preferences
	var err error
	if p.DashboardOpen, err = loadSetting(ctx, s.settings, owner, KeyDashboardOpen, false); err != nil {
		return Preferences{}, err
	}
	if p.Theme, err = loadSetting(ctx, s.settings, owner, KeyTheme, Themes[0]); err != nil {
		return Preferences{}, err
	}
	if p.DismissedWarnings, err = loadSetting(ctx, s.settings, owner, KeyDismissedWarnings, []string{}); err != nil {
		return Preferences{}, err
	}
	return p, nil
}

func (s *settingsService) SetDashboardOpen(ctx context.Context, owner string, open bool) error {
	return saveSetting(ctx, s.settings, owner, KeyDashboardOpen, open)
}

func (s *settingsService) SetTheme(ctx context.Context, owner, theme string) error {
	if !slices.Contains(Themes, theme) {
		return fmt.Errorf("unknown theme %q (choose one of %v)", theme, Themes)
	}
	return saveSetting(ctx, s.settings, owner, KeyTheme, theme)
}

func (s *settingsService) DismissWarning(ctx context.Context, owner, id string) error {
	ids, err := loadSetting(ctx, s.settings, owner, KeyDismissedWarnings, []string{})
	if err != nil {
		return err
	}
	if slices.Contains(ids, id) {
		return nil
	}
	return saveSetting(ctx, s.settings, owner, KeyDismissedWarnings, append(ids, id))
}

func (s *settingsService) ResetWarnings(ctx context.Context, owner string) error {
	return s.settings.Delete(ctx, owner, KeyDismissedWarnings)
}
