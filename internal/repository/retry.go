package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/cenkalti/backoff/v5"
)

// RetryPolicy bounds how hard the retrying repositories try.
type RetryPolicy struct {
	MaxTries        uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy suits a local SQLite file shared by a CLI and a server.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxTries: 5, InitialInterval: 50 * time.Millisecond, MaxInterval: time.Second}
}

func (p RetryPolicy) backOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	if p.InitialInterval > 0 {
		b.InitialInterval = p.InitialInterval
	}
	if p.MaxInterval > 0 {
		b.MaxInterval = p.MaxInterval
	}
	return b
}

// IsTransient reports whether err may succeed on retry: a busy or locked
// database, or a write that lost a race.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrConflict) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") ||
		strings.Contains(msg, "SQLITE_LOCKED") ||
		strings.Contains(msg, "database is locked")
}

func retry[T any](ctx context.Context, p RetryPolicy, log *slog.Logger, op string, fn func() (T, error)) (T, error) {
	tries := p.MaxTries
	if tries == 0 {
		tries = 1
	}
	attempt := 0
	return backoff.Retry(ctx, func() (T, error) {
		attempt++
		v, err := fn()
		if err == nil {
			return v, nil
		}
		if !IsTransient(err) {
			return v, backoff.Permanent(err)
		}
		log.Debug("retrying store operation", "op", op, "attempt", attempt, "error", err)
		return v, err
	}, backoff.WithBackOff(p.backOff()), backoff.WithMaxTries(tries))
}

func retryErr(ctx context.Context, p RetryPolicy, log *slog.Logger, op string, fn func() error) error {
	_, err := retry(ctx, p, log, op, func() (struct{}, error) { return struct{}{}, fn() })
	return err
}

// RetryingTaskRepo retries transient failures of the wrapped TaskRepo.
type RetryingTaskRepo struct {
	inner  TaskRepo
	policy RetryPolicy
	log    *slog.Logger
}

// NewRetryingTaskRepo wraps inner with policy.
func NewRetryingTaskRepo(inner TaskRepo, policy RetryPolicy, log *slog.Logger) *RetryingTaskRepo {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &RetryingTaskRepo{inner: inner, policy: policy, log: log}
}

func (r *RetryingTaskRepo) List(ctx context.Context, owner string, includeDeleted bool) ([]domain.Task, error) {
	return retry(ctx, r.policy, r.log, "list", func() ([]domain.Task, error) {
		return r.inner.List(ctx, owner, includeDeleted)
	})
}

func (r *RetryingTaskRepo) Get(ctx context.Context, owner, id string) (domain.Task, error) {
	return retry(ctx, r.policy, r.log, "get", func() (domain.Task, error) {
		return r.inner.Get(ctx, owner, id)
	})
}

func (r *RetryingTaskRepo) Create(ctx context.Context, t domain.Task) error {
	return retryErr(ctx, r.policy, r.log, "create", func() error { return r.inner.Create(ctx, t) })
}

func (r *RetryingTaskRepo) Update(ctx context.Context, owner, id string, patch domain.TaskPatch) (domain.Task, error) {
	return retry(ctx, r.policy, r.log, "update", func() (domain.Task, error) {
		return r.inner.Update(ctx, owner, id, patch)
	})
}

func (r *RetryingTaskRepo) SoftDelete(ctx context.Context, owner, id string, at time.Time) error {
	return retryErr(ctx, r.policy, r.log, "soft delete", func() error { return r.inner.SoftDelete(ctx, owner, id, at) })
}

func (r *RetryingTaskRepo) Restore(ctx context.Context, owner, id string, at time.Time) error {
	return retryErr(ctx, r.policy, r.log, "restore", func() error { return r.inner.Restore(ctx, owner, id, at) })
}

func (r *RetryingTaskRepo) PermanentlyDelete(ctx context.Context, owner, id string) error {
	return retryErr(ctx, r.policy, r.log, "delete", func() error { return r.inner.PermanentlyDelete(ctx, owner, id) })
}

func (r *RetryingTaskRepo) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	return retry(ctx, r.policy, r.log, "purge", func() (int, error) {
		return r.inner.PurgeDeletedBefore(ctx, cutoff)
	})
}

// RetryingSettingsRepo retries transient failures of the wrapped SettingsRepo.
type RetryingSettingsRepo struct {
	inner  SettingsRepo
	policy RetryPolicy
	log    *slog.Logger
}

// NewRetryingSettingsRepo wraps inner with policy.
func NewRetryingSettingsRepo(inner SettingsRepo, policy RetryPolicy, log *slog.Logger) *RetryingSettingsRepo {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &RetryingSettingsRepo{inner: inner, policy: policy, log: log}
}

func (r *RetryingSettingsRepo) Get(ctx context.Context, owner, key string) (json.RawMessage, error) {
	return retry(ctx, r.policy, r.log, "get setting", func() (json.RawMessage, error) {
		return r.inner.Get(ctx, owner, key)
	})
}

func (r *RetryingSettingsRepo) Set(ctx context.Context, owner, key string, value json.RawMessage) error {
	return retryErr(ctx, r.policy, r.log, "set setting", func() error { return r.inner.Set(ctx, owner, key, value) })
}

func (r *RetryingSettingsRepo) Delete(ctx context.Context, owner, key string) error {
	return retryErr(ctx, r.policy, r.log, "delete setting", func() error { return r.inner.Delete(ctx, owner, key) })
}

// Compile-time checks.
var (
	_ TaskRepo     = (*SQLiteTaskRepo)(nil)
	_ TaskRepo     = (*LocalTaskRepo)(nil)
	_ TaskRepo     = (*RetryingTaskRepo)(nil)
	_ SettingsRepo = (*SQLiteSettingsRepo)(nil)
	_ SettingsRepo = (*LocalSettingsRepo)(nil)
	_ SettingsRepo = (*RetryingSettingsRepo)(nil)
)
