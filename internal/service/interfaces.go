package service

import (
	"context"
	"time"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/metrics"
	"github.com/alexanderramin/tidsplan/internal/pipeline"
	"github.com/alexanderramin/tidsplan/internal/timeline"
)

// Clock returns the current instant. Services take one so tests can pin
// "today".
type Clock func() time.Time

type TaskService interface {
	List(ctx context.Context, owner string) ([]domain.Task, error)
	Trash(ctx context.Context, owner string) ([]domain.Task, error)
	Get(ctx context.Context, owner, id string) (domain.Task, error)
	Create(ctx context.Context, owner string, t domain.Task) (domain.Task, error)
	Update(ctx context.Context, owner, id string, patch domain.TaskPatch) (domain.Task, error)
	Delete(ctx context.Context, owner, id string) error
	Restore(ctx context.Context, owner, id string) error
	Purge(ctx context.Context, owner, id string) error
	PurgeTrash(ctx context.Context, olderThan time.Duration) (int, error)
	Shift(ctx context.Context, owner, id string, days int) (domain.Task, error)

	AddSubtask(ctx context.Context, owner, taskID string, s domain.Subtask) (domain.Task, error)
	ToggleSubtask(ctx context.Context, owner, taskID, subtaskID string) (domain.Task, error)
	ArchiveSubtask(ctx context.Context, owner, taskID, subtaskID string) (domain.Task, error)
	RemoveSubtask(ctx context.Context, owner, taskID, subtaskID string) (domain.Task, error)

	AddComment(ctx context.Context, owner, taskID, author, text string) (domain.Task, error)
	EditComment(ctx context.Context, owner, taskID, commentID, text string) (domain.Task, error)
	DeleteComment(ctx context.Context, owner, taskID, commentID string) (domain.Task, error)

	// Subscribe delivers the owner's active tasks now and after every
	// write. The returned func unsubscribes and closes the channel.
	Subscribe(ctx context.Context, owner string) (<-chan []domain.Task, func())
}

type ViewService interface {
	List(ctx context.Context, owner string) ([]domain.SavedView, error)
	Get(ctx context.Context, owner, name string) (domain.SavedView, error)
	Save(ctx context.Context, owner string, v domain.SavedView) (domain.SavedView, error)
	Delete(ctx context.Context, owner, name string) error
}

type QuickListService interface {
	List(ctx context.Context, owner string) ([]domain.QuickItem, error)
	Add(ctx context.Context, owner, text string) (domain.QuickItem, error)
	Toggle(ctx context.Context, owner, id string) (domain.QuickItem, error)
	Remove(ctx context.Context, owner, id string) error
	ClearDone(ctx context.Context, owner string) (int, error)
}

// Preferences are the per-user UI flags kept in the settings store.
type Preferences struct {
	DashboardOpen     bool     `json:"dashboardOpen"`
	Theme             string   `json:"theme"`
	DismissedWarnings []string `json:"dismissedWarnings"`
}

type SettingsService interface {
	Preferences(ctx context.Context, owner string) (Preferences, error)
	SetDashboardOpen(ctx context.Context, owner string, open bool) error
	SetTheme(ctx context.Context, owner, theme string) error
	DismissWarning(ctx context.Context, owner, id string) error
	ResetWarnings(ctx context.Context, owner string) error
}

// Board is the filtered, sorted and grouped task view.
type Board struct {
	Groups []pipeline.Group `json:"groups"`
	Facets pipeline.Facets  `json:"facets"`
	Total  int              `json:"total"`
	Shown  int              `json:"shown"`
}

// Drilldown lists one person's active checklist rows.
type Drilldown struct {
	Person   string                       `json:"person"`
	Rows     []metrics.Row                `json:"rows"`
	Priority metrics.PriorityDistribution `json:"priority"`
}

type BoardService interface {
	Board(ctx context.Context, owner string, opts pipeline.Options) (*Board, error)
	Dashboard(ctx context.Context, owner string, warningDays int) (*metrics.Summary, error)
	Workload(ctx context.Context, owner string, role domain.Role, warningDays int) (*metrics.WorkloadReport, error)
	Workloads(ctx context.Context, owner string, warningDays int) ([]metrics.WorkloadReport, error)
	Drilldown(ctx context.Context, owner, person string) (*Drilldown, error)
	Timeline(ctx context.Context, owner string, opts pipeline.Options, zoom domain.Zoom, from, to time.Time) (*timeline.Chart, error)
}
