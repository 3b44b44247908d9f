package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/tidsplan/internal/db"
	"github.com/alexanderramin/tidsplan/internal/domain"
)

// SQLiteTaskRepo implements TaskRepo as JSON documents in SQLite.
type SQLiteTaskRepo struct {
	db  db.DBTX
	uow db.UnitOfWork
	log *slog.Logger
	now func() time.Time
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo. When database is a
// *sql.DB, read-modify-write operations run in a transaction.
func NewSQLiteTaskRepo(database db.DBTX, log *slog.Logger) *SQLiteTaskRepo {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	r := &SQLiteTaskRepo{db: database, log: log, now: nowUTC}
	if sqlDB, ok := database.(*sql.DB); ok {
		r.uow = db.NewTxRunner(sqlDB)
	}
	return r
}

// atomically runs fn against a repo bound to one transaction, or against r
// itself when no unit of work is available.
func (r *SQLiteTaskRepo) atomically(ctx context.Context, fn func(ctx context.Context, repo *SQLiteTaskRepo) error) error {
	if r.uow == nil {
		return fn(ctx, r)
	}
	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &SQLiteTaskRepo{db: tx, log: r.log, now: r.now})
	})
}

func (r *SQLiteTaskRepo) List(ctx context.Context, owner string, includeDeleted bool) ([]domain.Task, error) {
	query := `SELECT doc FROM tasks WHERE owner = ? AND deleted = 0 ORDER BY created_at, id`
	if includeDeleted {
		query = `SELECT doc FROM tasks WHERE owner = ? ORDER BY created_at, id`
	}
	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	tasks := []domain.Task{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		t, err := r.decode(doc)
		if err != nil {
			r.log.Warn("skipping unreadable task document", "owner", owner, "error", err)
			continue
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

func (r *SQLiteTaskRepo) Get(ctx context.Context, owner, id string) (domain.Task, error) {
	t, _, err := r.get(ctx, owner, id)
	return t, err
}

func (r *SQLiteTaskRepo) get(ctx context.Context, owner, id string) (domain.Task, string, error) {
	var doc, updatedAt string
	err := r.db.QueryRowContext(ctx,
		`SELECT doc, updated_at FROM tasks WHERE owner = ? AND id = ?`, owner, id,
	).Scan(&doc, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, "", fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return domain.Task{}, "", fmt.Errorf("getting task: %w", err)
	}
	t, err := r.decode(doc)
	if err != nil {
		return domain.Task{}, "", fmt.Errorf("decoding task %s: %w", id, err)
	}
	return t, updatedAt, nil
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, t domain.Task) error {
	t = prepareCreate(t, r.now())
	doc, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encoding task: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, owner, doc, deleted, deleted_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID,
		t.Owner,
		string(doc),
		boolToInt(t.Deleted),
		nullableTimeToString(t.DeletedAt),
		formatTime(t.CreatedAt),
		formatTime(t.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, owner, id string, patch domain.TaskPatch) (domain.Task, error) {
	var next domain.Task
	err := r.atomically(ctx, func(ctx context.Context, repo *SQLiteTaskRepo) error {
		current, version, err := repo.get(ctx, owner, id)
		if err != nil {
			return err
		}
		next = applyUpdate(current, patch, repo.now())
		return repo.write(ctx, owner, next, version)
	})
	if err != nil {
		return domain.Task{}, err
	}
	return next, nil
}

func (r *SQLiteTaskRepo) SoftDelete(ctx context.Context, owner, id string, at time.Time) error {
	return r.mutate(ctx, owner, id, func(t *domain.Task) { t.MarkDeleted(at.UTC()) })
}

func (r *SQLiteTaskRepo) Restore(ctx context.Context, owner, id string, at time.Time) error {
	return r.mutate(ctx, owner, id, func(t *domain.Task) { t.Restore(at.UTC()) })
}

func (r *SQLiteTaskRepo) PermanentlyDelete(ctx context.Context, owner, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE owner = ? AND id = ?`, owner, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteTaskRepo) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tasks WHERE deleted = 1 AND deleted_at IS NOT NULL AND deleted_at < ?`,
		formatTime(cutoff))
	if err != nil {
		return 0, fmt.Errorf("purging trash: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting purged tasks: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteTaskRepo) mutate(ctx context.Context, owner, id string, fn func(*domain.Task)) error {
	return r.atomically(ctx, func(ctx context.Context, repo *SQLiteTaskRepo) error {
		current, version, err := repo.get(ctx, owner, id)
		if err != nil {
			return err
		}
		fn(&current)
		return repo.write(ctx, owner, current, version)
	})
}

// write stores t if the row still carries version as its updated_at.
func (r *SQLiteTaskRepo) write(ctx context.Context, owner string, t domain.Task, version string) error {
	doc, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encoding task: %w", err)
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET doc = ?, deleted = ?, deleted_at = ?, updated_at = ?
		WHERE owner = ? AND id = ? AND updated_at = ?`,
		string(doc),
		boolToInt(t.Deleted),
		nullableTimeToString(t.DeletedAt),
		formatTime(t.UpdatedAt),
		owner,
		t.ID,
		version,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("task %s: %w", t.ID, ErrConflict)
	}
	return nil
}

func (r *SQLiteTaskRepo) decode(doc string) (domain.Task, error) {
	var t domain.Task
	if err := json.Unmarshal([]byte(doc), &t); err != nil {
		return domain.Task{}, err
	}
	return normalizeRead(r.log, t), nil
}
