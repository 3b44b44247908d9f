package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/repository"
)

type viewService struct {
	settings repository.SettingsRepo
	clock    Clock
	observer UseCaseObserver
}

func NewViewService(settings repository.SettingsRepo, clock Clock, observers ...UseCaseObserver) ViewService {
	if clock == nil {
		clock = time.Now
	}
	return &viewService{settings: settings, clock: clock, observer: useCaseObserverOrNoop(observers)}
}

func (s *viewService) List(ctx context.Context, owner string) ([]domain.SavedView, error) {
	return loadSetting(ctx, s.settings, owner, KeySavedViews, []domain.SavedView{})
}

func (s *viewService) Get(ctx context.Context, owner, name string) (domain.SavedView, error) {
	views, err := s.List(ctx, owner)
	if err != nil {
		return domain.SavedView{}, err
	}
	for _, v := range views {
		if v.Name == strings.TrimSpace(name) {
			return v, nil
		}
	}
	return domain.SavedView{}, fmt.Errorf("view %q: %w", name, repository.ErrNotFound)
}

// Save stores v, replacing any view with the same name.
func (s *viewService) Save(ctx context.Context, owner string, v domain.SavedView) (saved domain.SavedView, err error) {
	done := useCase(ctx, s.observer, "save-view", map[string]any{"owner": owner, "view": v.Name})
	defer func() { done(err) }()

	v.Name = strings.TrimSpace(v.Name)
	if v.Name == "" {
		return domain.SavedView{}, ErrEmptyText
	}
	if v.Zoom == "" {
		v.Zoom = domain.ZoomWeek
	}
	v.SavedAt = s.clock().UTC()

	views, err := s.List(ctx, owner)
	if err != nil {
		return domain.SavedView{}, err
	}
	replaced := false
	for i := range views {
		if views[i].Name == v.Name {
			views[i] = v
			replaced = true
		}
	}
	if !replaced {
		views = append(views, v)
	}
	if err = saveSetting(ctx, s.settings, owner, KeySavedViews, views); err != nil {
		return domain.SavedView{}, err
	}
	return v, nil
}

func (s *viewService) Delete(ctx context.Context, owner, name string) (err error) {
	done := useCase(ctx, s.observer, "delete-view", map[string]any{"owner": owner, "view": name})
	defer func() { done(err) }()

	views, err := s.List(ctx, owner)
	if err != nil {
		return err
	}
	kept := views[:0]
	for _, v := range views {
		if v.Name != name {
			kept = append(kept, v)
		}
	}
	if len(kept) == len(views) {
		return fmt.Errorf("view %q: %w", name, repository.ErrNotFound)
	}
	return saveSetting(ctx, s.settings, owner, KeySavedViews, kept)
}
