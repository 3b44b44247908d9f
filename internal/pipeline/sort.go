package pipeline

import (
	"slices"
	"time"

	"github.com/alexanderramin/tidsplan/internal/calendar"
	"github.com/alexanderramin/tidsplan/internal/collation"
	"github.com/alexanderramin/tidsplan/internal/domain"
)

// Sort orders tasks, and the checklist of each task, by key. The sort is
// stable and missing dates go last. The returned tasks own their
// checklists.
func Sort(tasks []domain.Task, key domain.SortKey) []domain.Task {
	c := collation.New()
	out := make([]domain.Task, len(tasks))
	for i, t := range tasks {
		t = t.Clone()
		slices.SortStableFunc(t.Checklist, func(a, b domain.Subtask) int {
			return compare(c, key, a.StartDate, a.EndDate, a.Text, b.StartDate, b.EndDate, b.Text)
		})
		out[i] = t
	}
	slices.SortStableFunc(out, func(a, b domain.Task) int {
		return compare(c, key, a.StartDate, a.EndDate, a.Title, b.StartDate, b.EndDate, b.Title)
	})
	return out
}

func compare(c *collation.Collator, key domain.SortKey, aStart, aEnd, aTitle, bStart, bEnd, bTitle string) int {
	switch key {
	case domain.SortTitle:
		return c.Compare(aTitle, bTitle)
	case domain.SortEndDate:
		return sortDate(aEnd).Compare(sortDate(bEnd))
	default:
		return sortDate(aStart).Compare(sortDate(bStart))
	}
}

func sortDate(s string) time.Time {
	if d, ok := calendar.ParseISO(s); ok {
		return d
	}
	return calendar.MaxDay
}
