package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/alexanderramin/tidsplan/internal/domain"
)

var (
	// ErrNotFound is returned when a task or setting does not exist for the
	// requesting owner.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a document changed between read and
	// write. It is transient: the write can be retried against fresh data.
	ErrConflict = errors.New("concurrent modification")
)

// TaskRepo stores task documents scoped by owner. Reads return normalized
// tasks; writes never persist the derived overdue status.
type TaskRepo interface {
	List(ctx context.Context, owner string, includeDeleted bool) ([]domain.Task, error)
	Get(ctx context.Context, owner, id string) (domain.Task, error)
	Create(ctx context.Context, t domain.Task) error
	Update(ctx context.Context, owner, id string, patch domain.TaskPatch) (domain.Task, error)
	SoftDelete(ctx context.Context, owner, id string, at time.Time) error
	Restore(ctx context.Context, owner, id string, at time.Time) error
	PermanentlyDelete(ctx context.Context, owner, id string) error
	// PurgeDeletedBefore permanently removes every owner's tasks that were
	// soft-deleted before cutoff and reports how many went.
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int, error)
}

// SettingsRepo is a per-owner key/value store of JSON values.
type SettingsRepo interface {
	Get(ctx context.Context, owner, key string) (json.RawMessage, error)
	Set(ctx context.Context, owner, key string, value json.RawMessage) error
	Delete(ctx context.Context, owner, key string) error
}
