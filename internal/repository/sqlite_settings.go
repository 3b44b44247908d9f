package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alexanderramin/tidsplan/internal/db"
)

// SQLiteSettingsRepo implements SettingsRepo on the settings table.
type SQLiteSettingsRepo struct {
	db db.DBTX
}

// NewSQLiteSettingsRepo creates a new SQLiteSettingsRepo.
func NewSQLiteSettingsRepo(db db.DBTX) *SQLiteSettingsRepo {
	return &SQLiteSettingsRepo{db: db}
}

func (r *SQLiteSettingsRepo) Get(ctx context.Context, owner, key string) (json.RawMessage, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE owner = ? AND key = ?`, owner, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("setting %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting setting: %w", err)
	}
	return json.RawMessage(value), nil
}

func (r *SQLiteSettingsRepo) Set(ctx context.Context, owner, key string, value json.RawMessage) error {
	if !json.Valid(value) {
		return fmt.Errorf("setting %s: value is not valid JSON", key)
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO settings (owner, key, value, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(owner, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		owner, key, string(value), formatTime(nowUTC()))
	if err != nil {
		return fmt.Errorf("saving setting: %w", err)
	}
	return nil
}

func (r *SQLiteSettingsRepo) Delete(ctx context.Context, owner, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE owner = ? AND key = ?`, owner, key); err != nil {
		return fmt.Errorf("deleting setting: %w", err)
	}
	return nil
}
