// Package app holds the per-user board state, the intents that change it,
// and the application context that owns every long-lived collaborator.
package app

import (
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/pipeline"
)

// State is everything the board view is parameterised by.
type State struct {
	Filters     domain.FilterState `json:"filters"`
	Sort        domain.SortKey     `json:"sort"`
	OnlyMine    bool               `json:"onlyMine"`
	Zoom        domain.Zoom        `json:"zoom"`
	WarningDays int                `json:"warningDays"`
}

// DefaultState is the board as first opened.
func DefaultState() State {
	return State{
		Sort:        domain.SortStartDate,
		Zoom:        domain.ZoomWeek,
		WarningDays: domain.DefaultWarningDays,
	}
}

// Options turns the state into pipeline options.
func (s State) Options(meTokens []string, today time.Time) pipeline.Options {
	return pipeline.Options{
		Filters:  s.Filters,
		Sort:     s.Sort,
		OnlyMine: s.OnlyMine,
		MeTokens: meTokens,
		Today:    today,
	}
}

// View captures the state as a saved view called name.
func (s State) View(name string) domain.SavedView {
	return domain.SavedView{
		Name:     name,
		Filters:  s.Filters,
		Zoom:     s.Zoom,
		Sort:     s.Sort,
		OnlyMine: s.OnlyMine,
	}
}

// Intent is a user action on the board. Intents are values; Reduce applies
// them.
type Intent interface {
	apply(State) State
}

type (
	SetSearch    struct{ Term string }
	SetClient    struct{ Client string }
	SetPhase     struct{ Phase string }
	SetStatus    struct{ Status domain.Status }
	ToggleRole   struct{ Role domain.Role }
	ToggleTag    struct{ Tag string }
	ClearFilters struct{}
	SetSort      struct{ Key domain.SortKey }
	SetOnlyMine  struct{ On bool }
	SetZoom      struct{ Zoom domain.Zoom }
	SetThreshold struct{ Days int }
	ApplyView    struct{ View domain.SavedView }
)

// Reduce returns the state after intent. It never modifies s.
func Reduce(s State, intent Intent) State {
	s.Filters.Roles = slices.Clone(s.Filters.Roles)
	s.Filters.Tags = slices.Clone(s.Filters.Tags)
	if intent == nil {
		return s
	}
	return intent.apply(s)
}

func (i SetSearch) apply(s State) State {
	s.Filters.Search = i.Term
	return s
}

func (i SetClient) apply(s State) State {
	s.Filters.Client = strings.TrimSpace(i.Client)
	return s
}

func (i SetPhase) apply(s State) State {
	s.Filters.Phase = strings.TrimSpace(i.Phase)
	return s
}

func (i SetStatus) apply(s State) State {
	if i.Status == "" {
		s.Filters.Status = ""
		return s
	}
	if domain.IsOverdueStatus(string(i.Status)) {
		s.Filters.Status = domain.StatusOverdue
		return s
	}
	s.Filters.Status = domain.NormalizeStatus(string(i.Status))
	return s
}

func (i ToggleRole) apply(s State) State {
	if idx := slices.Index(s.Filters.Roles, i.Role); idx >= 0 {
		s.Filters.Roles = slices.Delete(s.Filters.Roles, idx, idx+1)
		return s
	}
	s.Filters.Roles = append(s.Filters.Roles, i.Role)
	return s
}

func (i ToggleTag) apply(s State) State {
	tag := strings.TrimSpace(i.Tag)
	if tag == "" {
		return s
	}
	idx := slices.IndexFunc(s.Filters.Tags, func(t string) bool { return strings.EqualFold(t, tag) })
	if idx >= 0 {
		s.Filters.Tags = slices.Delete(s.Filters.Tags, idx, idx+1)
		return s
	}
	s.Filters.Tags = append(s.Filters.Tags, tag)
	return s
}

// ClearFilters resets the advanced filters. The search term stays.
func (ClearFilters) apply(s State) State {
	s.Filters = domain.FilterState{Search: s.Filters.Search}
	return s
}

func (i SetSort) apply(s State) State {
	s.Sort = domain.ParseSortKey(string(i.Key))
	return s
}

func (i SetOnlyMine) apply(s State) State {
	s.OnlyMine = i.On
	return s
}

func (i SetZoom) apply(s State) State {
	s.Zoom = domain.ParseZoom(string(i.Zoom))
	return s
}

func (i SetThreshold) apply(s State) State {
	s.WarningDays = domain.ClampWarningDays(i.Days)
	return s
}

// ApplyView replaces filters, sort, zoom and only-mine with the view's.
// The warning threshold is not part of a view.
func (i ApplyView) apply(s State) State {
	v := i.View
	s.Filters = v.Filters
	s.Filters.Roles = slices.Clone(v.Filters.Roles)
	s.Filters.Tags = slices.Clone(v.Filters.Tags)
	s.Sort = domain.ParseSortKey(string(v.Sort))
	s.Zoom = domain.ParseZoom(string(v.Zoom))
	s.OnlyMine = v.OnlyMine
	return s
}
