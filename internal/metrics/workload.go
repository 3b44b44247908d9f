package metrics

import (
	"slices"

	"github.com/alexanderramin/tidsplan/internal/collation"
	"github.com/alexanderramin/tidsplan/internal/domain"
)

// PersonLoad is one person's share of a role's workload.
type PersonLoad struct {
	Name     string               `json:"name"`
	Total    int                  `json:"total"`
	Priority PriorityDistribution `json:"priority"`
	Overdue  int                  `json:"overdue"`
	Warning  int                  `json:"warning"`
}

// WorkloadReport is the workload of one role.
//
// For RoleExecutor the unit is an active checklist item; for every other
// role it is a task that is neither done nor deleted. The two must not be
// added together.
type WorkloadReport struct {
	Role       domain.Role  `json:"role"`
	Unit       string       `json:"unit"`
	People     []PersonLoad `json:"people"`
	Unassigned int          `json:"unassigned"`
}

// Total is the sum of all people plus the unassigned count.
func (r WorkloadReport) Total() int {
	n := r.Unassigned
	for _, p := range r.People {
		n += p.Total
	}
	return n
}

const (
	UnitSubtask = "subtask"
	UnitTask    = "task"
)

// Workload aggregates the given role.
func (s *Snapshot) Workload(role domain.Role) WorkloadReport {
	if role == domain.RoleExecutor {
		return s.executorWorkload()
	}
	return s.taskRoleWorkload(role)
}

// Workloads aggregates every role in display order.
func (s *Snapshot) Workloads() []WorkloadReport {
	out := make([]WorkloadReport, 0, len(domain.AllRoles))
	for _, r := range domain.AllRoles {
		out = append(out, s.Workload(r))
	}
	return out
}

func (s *Snapshot) executorWorkload() WorkloadReport {
	g := newGrouper()
	report := WorkloadReport{Role: domain.RoleExecutor, Unit: UnitSubtask}
	for _, r := range s.rows {
		if r.Executor == nil {
			report.Unassigned++
			continue
		}
		p := g.person(*r.Executor)
		p.Total++
		p.Priority.add(r.Priority)
		ts := domain.TimeStatus(false, r.EndDate, s.warningDays, s.today)
		if ts.IsOverdue {
			p.Overdue++
		}
		if ts.IsWarning {
			p.Warning++
		}
	}
	report.People = g.sorted()
	return report
}

func (s *Snapshot) taskRoleWorkload(role domain.Role) WorkloadReport {
	g := newGrouper()
	report := WorkloadReport{Role: role, Unit: UnitTask}
	for _, t := range s.tasks {
		if t.Deleted || domain.IsDoneStatus(string(t.Status)) {
			continue
		}
		name := t.RoleValue(role)
		if name == "" {
			report.Unassigned++
			continue
		}
		p := g.person(name)
		p.Total++
		ts := t.TimeStatus(s.warningDays, s.today)
		if ts.IsOverdue {
			p.Overdue++
		}
		if ts.IsWarning {
			p.Warning++
		}
	}
	report.People = g.sorted()
	return report
}

// grouper folds names case-insensitively, keeping the first spelling seen.
type grouper struct {
	byKey map[string]*PersonLoad
	order []string
}

func newGrouper() *grouper {
	return &grouper{byKey: map[string]*PersonLoad{}}
}

func (g *grouper) person(name string) *PersonLoad {
	key := nameKey(name)
	if p, ok := g.byKey[key]; ok {
		return p
	}
	p := &PersonLoad{Name: name}
	g.byKey[key] = p
	g.order = append(g.order, key)
	return p
}

func (g *grouper) sorted() []PersonLoad {
	out := make([]PersonLoad, 0, len(g.order))
	for _, k := range g.order {
		out = append(out, *g.byKey[k])
	}
	c := collation.NewCaseInsensitive()
	slices.SortStableFunc(out, func(a, b PersonLoad) int {
		return c.Compare(a.Name, b.Name)
	})
	return out
}
