package repository

import (
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/tidsplan/internal/domain"
)

// timeLayout is used for every timestamp column. It is fixed width and
// always UTC, so text order is time order in SQL comparisons; the
// nanoseconds keep updated_at usable as a write guard.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
func nullableTimeToString(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

// normalizeRead repairs a stored task and logs what was repaired.
func normalizeRead(log *slog.Logger, t domain.Task) domain.Task {
	out, issues := domain.NormalizeTask(t)
	if len(issues) > 0 {
		log.Warn("normalized stored task", "id", t.ID, "issues", strings.Join(issues, "; "))
	}
	return out
}

// prepareCreate readies a new task for storage.
func prepareCreate(t domain.Task, now time.Time) domain.Task {
	out := t.Clone()
	out.Status = domain.ResolveSaveStatus(out.Status, out.OriginalStatus)
	out.OriginalStatus = ""
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}
	out.UpdatedAt = now
	out, _ = domain.NormalizeTask(out)
	return out
}

// applyUpdate applies patch to current. A requested overdue status is
// swapped for the last stored one.
func applyUpdate(current domain.Task, patch domain.TaskPatch, now time.Time) domain.Task {
	if patch.Status != nil {
		lastKnown := current.Status
		if current.OriginalStatus != "" {
			lastKnown = current.OriginalStatus
		}
		resolved := domain.ResolveSaveStatus(*patch.Status, lastKnown)
		patch.Status = &resolved
	}
	out := patch.Apply(current)
	out.OriginalStatus = ""
	out.UpdatedAt = now
	return out
}
