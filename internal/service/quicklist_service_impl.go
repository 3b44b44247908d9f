package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/repository"
	"github.com/google/uuid"
)

type quickListService struct {
	settings repository.SettingsRepo
	clock    Clock
}

func NewQuickListService(settings repository.SettingsRepo, clock Clock) QuickListService {
	if clock == nil {
		clock = time.Now
	}
	return &quickListService{settings: settings, clock: clock}
}

func (s *quickListService) List(ctx context.Context, owner string) ([]domain.QuickItem, error) {
	return loadSetting(ctx, s.settings, owner, KeyQuickList, []domain.QuickItem{})
}

func (s *quickListService) Add(ctx context.Context, owner, text string) (domain.QuickItem, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.QuickItem{}, ErrEmptyText
	}
	items, err := s.List(ctx, owner)
	if err != nil {
		return domain.QuickItem{}, err
	}
	item := domain.QuickItem{ID: uuid.New().String(), Text: text, CreatedAt: s.clock().UTC()}
	if err := saveSetting(ctx, s.settings, owner, KeyQuickList, append(items, item)); err != nil {
		return domain.QuickItem{}, err
	}
	return item, nil
}

func (s *quickListService) Toggle(ctx context.Context, owner, id string) (domain.QuickItem, error) {
	items, err := s.List(ctx, owner)
	if err != nil {
		return domain.QuickItem{}, err
	}
	for i := range items {
		if items[i].ID == id {
			items[i].Done = !items[i].Done
			if err := saveSetting(ctx, s.settings, owner, KeyQuickList, items); err != nil {
				return domain.QuickItem{}, err
			}
			return items[i], nil
		}
	}
	return domain.QuickItem{}, fmt.Errorf("quick item %s: %w", id, repository.ErrNotFound)
}

func (s *quickListService) Remove(ctx context.Context, owner, id string) error {
	items, err := s.List(ctx, owner)
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID == id {
			return saveSetting(ctx, s.settings, owner, KeyQuickList, append(items[:i], items[i+1:]...))
		}
	}
	return fmt.Errorf("quick item %s: %w", id, repository.ErrNotFound)
}

// ClearDone drops checked items and reports how many went.
func (s *quickListService) ClearDone(ctx context.Context, owner string) (int, error) {
	items, err := s.List(ctx, owner)
	if err != nil {
		return 0, err
	}
	kept := []domain.QuickItem{}
	for _, it := range items {
		if !it.Done {
			kept = append(kept, it)
		}
	}
	removed := len(items) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, saveSetting(ctx, s.settings, owner, KeyQuickList, kept)
}
