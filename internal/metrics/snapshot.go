package metrics

import (
	"time"

	"github.com/alexanderramin/tidsplan/internal/calendar"
	"github.com/alexanderramin/tidsplan/internal/domain"
)

// Snapshot holds one aggregation pass over a task collection. All metric
// views hang off it so they share the same rows.
type Snapshot struct {
	tasks       []domain.Task
	rows        []Row
	today       time.Time
	warningDays int
}

// Build aggregates tasks as of today. warningDays is clamped to the
// supported range.
func Build(tasks []domain.Task, today time.Time, warningDays int) *Snapshot {
	return &Snapshot{
		tasks:       tasks,
		rows:        ActiveSubtaskRows(tasks),
		today:       calendar.Day(today),
		warningDays: domain.ClampWarningDays(warningDays),
	}
}

// Rows returns the active subtask rows.
func (s *Snapshot) Rows() []Row {
	return s.rows
}

// PriorityDistribution counts the rows per priority.
func (s *Snapshot) PriorityDistribution() PriorityDistribution {
	return Distribution(s.rows)
}

// PersonRows returns the rows whose executor matches name, compared
// case-insensitively. An empty name selects the rows with no executor.
func (s *Snapshot) PersonRows(name string) []Row {
	key := nameKey(name)
	var out []Row
	for _, r := range s.rows {
		switch {
		case r.Executor == nil && key == "":
			out = append(out, r)
		case r.Executor != nil && nameKey(*r.Executor) == key && key != "":
			out = append(out, r)
		}
	}
	return out
}
