package pipeline

import (
	"testing"
	"time"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func opts() Options {
	return Options{Today: today}
}

func titles(tasks []domain.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func TestProcess_DeletedTaskDropsItsPhase(t *testing.T) {
	tasks := []domain.Task{
		{ID: "1", Title: "a", Phase: "A", Status: "Planerad"},
		{ID: "2", Title: "b", Phase: "B", Status: "Planerad", Deleted: true},
	}
	groups := Process(tasks, opts())
	require.Len(t, groups, 1)
	assert.Equal(t, "A", groups[0].Phase)
	assert.Len(t, groups[0].Tasks, 1)
}

func TestFilter_ExcludesDoneButKeepsOverdue(t *testing.T) {
	tasks := []domain.Task{
		{Title: "done", Status: domain.StatusDone, EndDate: "2020-01-01"},
		{Title: "late", Status: domain.StatusInProgress, EndDate: "2020-01-01"},
		{Title: "open", Status: domain.StatusPlanned},
	}
	assert.Equal(t, []string{"late", "open"}, titles(Filter(tasks, opts())))
}

func TestFilter_Search(t *testing.T) {
	tasks := []domain.Task{
		{Title: "Bygglov", Client: "Acme"},
		{Title: "Ritning", Phase: "Skiss"},
		{Title: "Övrigt", Checklist: []domain.Subtask{{Executor: "Karin"}}},
	}
	o := opts()
	o.Filters.Search = "ACME"
	assert.Equal(t, []string{"Bygglov"}, titles(Filter(tasks, o)))
	o.Filters.Search = "skiss"
	assert.Equal(t, []string{"Ritning"}, titles(Filter(tasks, o)))
	o.Filters.Search = "kar"
	assert.Equal(t, []string{"Övrigt"}, titles(Filter(tasks, o)))
	o.Filters.Search = "  "
	assert.Len(t, Filter(tasks, o), 3)
}

func TestFilter_OnlyMine(t *testing.T) {
	tasks := []domain.Task{
		{Title: "mine", Checklist: []domain.Subtask{{Executor: " Jag "}}},
		{Title: "english", Checklist: []domain.Subtask{{Executor: "me"}}},
		{Title: "theirs", Checklist: []domain.Subtask{{Executor: "Eva"}}},
		{Title: "nobody"},
	}
	o := opts()
	o.OnlyMine = true
	assert.Equal(t, []string{"mine", "english"}, titles(Filter(tasks, o)))

	o.MeTokens = []string{"Eva"}
	assert.Equal(t, []string{"theirs"}, titles(Filter(tasks, o)))
}

func TestFilter_Advanced(t *testing.T) {
	tasks := []domain.Task{
		{Title: "a", Client: "Acme", Phase: "P1", Tags: []string{"akut"}, CAD: "Olle"},
		{Title: "b", Client: "Acme", Phase: "P2", Reviewer: "Eva", EndDate: "2020-01-01", Status: domain.StatusInProgress},
		{Title: "c", Client: "Beta", Phase: "P1", Checklist: []domain.Subtask{{Executor: "Bo"}}},
	}

	o := opts()
	o.Filters = domain.FilterState{Client: "Acme"}
	assert.Equal(t, []string{"a", "b"}, titles(Filter(tasks, o)))

	o.Filters = domain.FilterState{Phase: "P1"}
	assert.Equal(t, []string{"a", "c"}, titles(Filter(tasks, o)))

	o.Filters = domain.FilterState{Status: domain.StatusOverdue}
	assert.Equal(t, []string{"b"}, titles(Filter(tasks, o)), "status filter uses display status")

	o.Filters = domain.FilterState{Status: domain.StatusInProgress}
	assert.Empty(t, Filter(tasks, o))

	o.Filters = domain.FilterState{Tags: []string{"AKUT", "vila"}}
	assert.Equal(t, []string{"a"}, titles(Filter(tasks, o)))

	o.Filters = domain.FilterState{Roles: []domain.Role{domain.RoleCAD, domain.RoleExecutor}}
	assert.Equal(t, []string{"a", "c"}, titles(Filter(tasks, o)), "roles are alternatives")

	o.Filters = domain.FilterState{Client: "Acme", Roles: []domain.Role{domain.RoleReviewer}}
	assert.Equal(t, []string{"b"}, titles(Filter(tasks, o)), "other filters still combine with AND")
}

func TestSort_ByStartDateMissingLast(t *testing.T) {
	tasks := []domain.Task{
		{Title: "none"},
		{Title: "late", StartDate: "2024-05-01"},
		{Title: "early", StartDate: "2024-01-01"},
		{Title: "bad", StartDate: "soon"},
	}
	assert.Equal(t, []string{"early", "late", "none", "bad"}, titles(Sort(tasks, domain.SortStartDate)))
}

func TestSort_ByEndDateIsStable(t *testing.T) {
	tasks := []domain.Task{
		{Title: "x", EndDate: "2024-02-01"},
		{Title: "y", EndDate: "2024-01-01"},
		{Title: "z", EndDate: "2024-02-01"},
	}
	assert.Equal(t, []string{"y", "x", "z"}, titles(Sort(tasks, domain.SortEndDate)))
}

func TestSort_ByTitleSwedish(t *testing.T) {
	tasks := []domain.Task{{Title: "Örnen"}, {Title: "Ärlan"}, {Title: "Zebra"}, {Title: "apa"}}
	assert.Equal(t, []string{"apa", "Zebra", "Ärlan", "Örnen"}, titles(Sort(tasks, domain.SortTitle)))
}

func TestSort_ChecklistSortedWithoutTouchingInput(t *testing.T) {
	tasks := []domain.Task{{
		Title: "t",
		Checklist: []domain.Subtask{
			{Text: "b", StartDate: ""},
			{Text: "a", StartDate: "2024-03-01"},
			{Text: "c", StartDate: "2024-01-01"},
		},
	}}
	sorted := Sort(tasks, domain.SortStartDate)
	var texts []string
	for _, s := range sorted[0].Checklist {
		texts = append(texts, s.Text)
	}
	assert.Equal(t, []string{"c", "a", "b"}, texts)
	assert.Equal(t, "b", tasks[0].Checklist[0].Text)
}

func TestGroupByPhase_FirstSeenOrderAndOther(t *testing.T) {
	tasks := []domain.Task{
		{Title: "1", Phase: "Skiss"},
		{Title: "2", Phase: ""},
		{Title: "3", Phase: "Bygg"},
		{Title: "4", Phase: "Skiss"},
		{Title: "5", Phase: "  "},
	}
	groups := GroupByPhase(tasks)
	require.Len(t, groups, 3)
	assert.Equal(t, "Skiss", groups[0].Phase)
	assert.Equal(t, []string{"1", "4"}, titles(groups[0].Tasks))
	assert.Equal(t, domain.OtherPhase, groups[1].Phase)
	assert.Equal(t, []string{"2", "5"}, titles(groups[1].Tasks))
	assert.Equal(t, "Bygg", groups[2].Phase)
}

func TestProcess_NeverDropsFilteredTasks(t *testing.T) {
	var tasks []domain.Task
	phases := []string{"A", "B", "", "C"}
	for i := 0; i < 30; i++ {
		tasks = append(tasks, domain.Task{
			ID:     string(rune('a' + i)),
			Title:  string(rune('z' - i%26)),
			Phase:  phases[i%len(phases)],
			Status: domain.SelectableStatuses[i%3],
		})
	}
	o := opts()
	o.Sort = domain.SortTitle
	filtered := Filter(tasks, o)
	groups := Process(tasks, o)

	seen := map[string]int{}
	for _, g := range groups {
		for _, task := range g.Tasks {
			seen[task.ID]++
		}
	}
	assert.Len(t, seen, len(filtered))
	for _, task := range filtered {
		assert.Equal(t, 1, seen[task.ID], "task %s", task.ID)
	}
	assert.Len(t, Flatten(groups), len(filtered))
}

func TestCollectFacets(t *testing.T) {
	f := CollectFacets([]domain.Task{
		{Client: "Beta", Phase: "P2", Tags: []string{"x"}},
		{Client: "Acme", Phase: "P1", Tags: []string{"y", "x"}},
		{Client: "Gone", Deleted: true},
	})
	assert.Equal(t, []string{"Acme", "Beta"}, f.Clients)
	assert.Equal(t, []string{"P1", "P2"}, f.Phases)
	assert.Equal(t, []string{"x", "y"}, f.Tags)
}

func TestCollectFacets_CaseVariantsHaveStableOrder(t *testing.T) {
	tasks := []domain.Task{
		{Client: "acme"}, {Client: "Beta"}, {Client: "Acme"}, {Client: "ACME"},
	}
	for range 20 {
		assert.Equal(t, []string{"ACME", "Acme", "acme", "Beta"}, CollectFacets(tasks).Clients)
	}
}
