// Package metrics aggregates tasks into the numbers shown on the dashboard.
// Every subtask-level count is derived from ActiveSubtaskRows; the package
// offers no other way to count checklist items, so the workload, priority
// and drill-down views always agree.
package metrics

import (
	"strings"

	"github.com/alexanderramin/tidsplan/internal/domain"
)

// Row is one active checklist item together with its parent task.
type Row struct {
	Task      *domain.Task    `json:"-"`
	TaskID    string          `json:"taskId"`
	TaskTitle string          `json:"taskTitle"`
	SubtaskID string          `json:"subtaskId"`
	Text      string          `json:"text"`
	StartDate string          `json:"startDate,omitempty"`
	EndDate   string          `json:"endDate,omitempty"`
	Priority  domain.Priority `json:"priority"`
	Executor  *string         `json:"executor"`
	Phase     string          `json:"phase"`
	Client    string          `json:"client"`
}

// ActiveSubtaskRows flattens the active checklist items of every task that
// is neither deleted nor done. Row.Task points into tasks; nothing is
// modified.
func ActiveSubtaskRows(tasks []domain.Task) []Row {
	var rows []Row
	for i := range tasks {
		t := &tasks[i]
		if t.Deleted || domain.IsDoneStatus(string(t.Status)) {
			continue
		}
		for _, s := range t.Checklist {
			if !s.IsActive() {
				continue
			}
			rows = append(rows, Row{
				Task:      t,
				TaskID:    t.ID,
				TaskTitle: t.Title,
				SubtaskID: s.ID,
				Text:      s.Text,
				StartDate: s.StartDate,
				EndDate:   s.EndDate,
				Priority:  s.NormalizedPriority(),
				Executor:  domain.TrimmedOrNil(s.Executor),
				Phase:     t.Phase,
				Client:    t.Client,
			})
		}
	}
	return rows
}

// PriorityDistribution counts rows per priority bucket.
type PriorityDistribution struct {
	High   int `json:"high"`
	Normal int `json:"normal"`
	Low    int `json:"low"`
}

// Total is the number of rows counted.
func (d PriorityDistribution) Total() int {
	return d.High + d.Normal + d.Low
}

// Count returns the bucket for p.
func (d PriorityDistribution) Count(p domain.Priority) int {
	switch p {
	case domain.PriorityHigh:
		return d.High
	case domain.PriorityLow:
		return d.Low
	default:
		return d.Normal
	}
}

func (d *PriorityDistribution) add(p domain.Priority) {
	switch p {
	case domain.PriorityHigh:
		d.High++
	case domain.PriorityLow:
		d.Low++
	default:
		d.Normal++
	}
}

// Distribution counts rows per priority.
func Distribution(rows []Row) PriorityDistribution {
	var d PriorityDistribution
	for _, r := range rows {
		d.add(r.Priority)
	}
	return d
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
