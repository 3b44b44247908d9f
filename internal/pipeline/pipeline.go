// Package pipeline turns a task collection into the grouped, sorted list
// shown on the board: filter, then sort, then group by phase. It never
// modifies its input.
package pipeline

import (
	"time"

	"github.com/alexanderramin/tidsplan/internal/domain"
)

// DefaultMeTokens are the executor names that mean "me" when OnlyMine is
// set and no user name is configured.
var DefaultMeTokens = []string{"jag", "me", "i"}

// Options controls one pipeline run.
type Options struct {
	Filters  domain.FilterState
	Sort     domain.SortKey
	OnlyMine bool
	// MeTokens are compared case-insensitively with checklist executors.
	MeTokens []string
	Today    time.Time
}

// Group is one phase bucket.
type Group struct {
	Phase string        `json:"phase"`
	Tasks []domain.Task `json:"tasks"`
}

// Process filters, sorts and groups tasks.
func Process(tasks []domain.Task, opts Options) []Group {
	return GroupByPhase(Sort(Filter(tasks, opts), opts.Sort))
}

// Flatten returns the tasks of groups in display order.
func Flatten(groups []Group) []domain.Task {
	var out []domain.Task
	for _, g := range groups {
		out = append(out, g.Tasks...)
	}
	return out
}
