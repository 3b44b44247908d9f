package metrics

import (
	"slices"
	"strings"

	"github.com/alexanderramin/tidsplan/internal/calendar"
	"github.com/alexanderramin/tidsplan/internal/domain"
)

// Deadline is an upcoming task end date.
type Deadline struct {
	TaskID   string `json:"taskId"`
	Title    string `json:"title"`
	EndDate  string `json:"endDate"`
	DaysLeft int    `json:"daysLeft"`
}

// Summary is the dashboard overview.
type Summary struct {
	Tasks           int                   `json:"tasks"`
	ByStatus        map[domain.Status]int `json:"byStatus"`
	Trash           int                   `json:"trash"`
	OverdueTasks    int                   `json:"overdueTasks"`
	WarningTasks    int                   `json:"warningTasks"`
	ActiveSubtasks  int                   `json:"activeSubtasks"`
	OverdueSubtasks int                   `json:"overdueSubtasks"`
	WarningSubtasks int                   `json:"warningSubtasks"`
	Priorities      PriorityDistribution  `json:"priorities"`
	Upcoming        []Deadline            `json:"upcoming"`
}

// UpcomingLimit caps Summary.Upcoming.
const UpcomingLimit = 5

// Summary computes the dashboard overview.
func (s *Snapshot) Summary() Summary {
	sum := Summary{
		ByStatus: map[domain.Status]int{
			domain.StatusPlanned:    0,
			domain.StatusInProgress: 0,
			domain.StatusOverdue:    0,
			domain.StatusDone:       0,
		},
		ActiveSubtasks: len(s.rows),
		Priorities:     Distribution(s.rows),
	}

	for _, t := range s.tasks {
		if t.Deleted {
			sum.Trash++
			continue
		}
		sum.Tasks++
		status, _ := domain.DisplayStatus(t, s.today)
		sum.ByStatus[status]++

		ts := t.TimeStatus(s.warningDays, s.today)
		if ts.IsOverdue {
			sum.OverdueTasks++
		}
		if ts.IsWarning {
			sum.WarningTasks++
		}
		if status == domain.StatusDone {
			continue
		}
		if end, ok := calendar.ParseISO(t.EndDate); ok && !end.Before(s.today) {
			sum.Upcoming = append(sum.Upcoming, Deadline{
				TaskID:   t.ID,
				Title:    t.Title,
				EndDate:  calendar.FormatISO(end),
				DaysLeft: calendar.DaysBetween(s.today, end),
			})
		}
	}

	for _, r := range s.rows {
		ts := domain.TimeStatus(false, r.EndDate, s.warningDays, s.today)
		if ts.IsOverdue {
			sum.OverdueSubtasks++
		}
		if ts.IsWarning {
			sum.WarningSubtasks++
		}
	}

	slices.SortStableFunc(sum.Upcoming, func(a, b Deadline) int {
		if a.DaysLeft != b.DaysLeft {
			return a.DaysLeft - b.DaysLeft
		}
		return strings.Compare(a.Title, b.Title)
	})
	if len(sum.Upcoming) > UpcomingLimit {
		sum.Upcoming = sum.Upcoming[:UpcomingLimit]
	}
	return sum
}
