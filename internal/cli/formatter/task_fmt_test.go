package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/metrics"
	"github.com/alexanderramin/tidsplan/internal/notify"
	"github.com/alexanderramin/tidsplan/internal/pipeline"
	"github.com/alexanderramin/tidsplan/internal/timeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

func sampleTask() domain.Task {
	return domain.Task{
		ID: "0123456789abcdef", Title: "Bygglov", Client: "Skanska", Phase: "Förstudie",
		CAD: "Lars", Tags: []string{"akut"},
		StartDate: "2024-06-03", EndDate: "2024-06-07", Status: domain.StatusInProgress,
		Checklist: []domain.Subtask{
			{ID: "s1", Text: "Mät", Executor: "Eva", Priority: domain.PriorityHigh, Done: true},
			{ID: "s2", Text: "Rita", Archived: true},
			{ID: "s3", Text: "Borta", Deleted: true},
		},
	}
}

func TestFormatBoard(t *testing.T) {
	groups := []pipeline.Group{{Phase: "Förstudie", Tasks: []domain.Task{sampleTask()}}}
	out := FormatBoard(groups, 4, 1, 1, today)
	assert.Contains(t, out, "FÖRSTUDIE (1)")
	assert.Contains(t, out, "01234567")
	assert.Contains(t, out, "Försenad", "end date passed")
	assert.Contains(t, out, "1/1", "archived and deleted items are not counted")
	assert.Contains(t, out, "Visar 1 av 4")

	assert.Contains(t, FormatBoard(nil, 0, 0, 1, today), "Inga uppgifter ännu")
	assert.Contains(t, FormatBoard(nil, 4, 0, 1, today), "Inga av 4")
}

func TestFormatTaskDetail(t *testing.T) {
	task := sampleTask()
	task.Comments = []domain.Comment{{ID: "c1", Text: "Hej **där**", Author: "anna", CreatedAt: today}}
	md, err := NewMarkdown("notty", 60)
	require.NoError(t, err)

	out := FormatTaskDetail(task, 1, today, md)
	assert.Contains(t, out, "Bygglov")
	assert.Contains(t, out, "slutdatum passerat")
	assert.Contains(t, out, "CAD")
	assert.Contains(t, out, "Lars")
	assert.Contains(t, out, "akut")
	assert.Contains(t, out, "Mät")
	assert.Contains(t, out, "(arkiverad)")
	assert.NotContains(t, out, "Borta")
	assert.Contains(t, out, "där")
}

func TestMarkdown_NilRendersSource(t *testing.T) {
	var md *Markdown
	assert.Equal(t, "plain *text*", md.Render("plain *text*"))
}

func TestFormatWorkload(t *testing.T) {
	r := &metrics.WorkloadReport{
		Role: domain.RoleCAD,
		Unit: metrics.UnitTask,
		People: []metrics.PersonLoad{
			{Name: "Lars", Total: 4, Overdue: 1},
			{Name: "Eva", Total: 1},
		},
		Unassigned: 2,
	}
	out := FormatWorkload(r)
	assert.Contains(t, out, "BELASTNING: CAD (UPPGIFTER)")
	assert.Contains(t, out, "Lars")
	assert.Contains(t, out, "2 utan tilldelning")

	assert.Contains(t, FormatWorkload(&metrics.WorkloadReport{Role: domain.RoleExecutor}), "Ingen belastning")
}

func TestLoadBar(t *testing.T) {
	assert.Equal(t, "", loadBar(0, 0, 10))
	assert.Contains(t, loadBar(1, 100, 10), "█", "non-zero load shows at least one cell")
}

func TestFormatTimeline(t *testing.T) {
	from := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 6)
	task := sampleTask()
	task.StartDate, task.EndDate = "2024-06-08", "2024-06-11"
	chart := timeline.Build([]domain.Task{task}, domain.ZoomWeek, from, to, today)

	out := FormatTimeline(&chart)
	assert.Contains(t, out, "2024-06-10 – 2024-06-16")
	assert.Contains(t, out, "Bygglov")
	assert.Contains(t, out, "◀", "bar starts before the window")

	empty := timeline.Build(nil, domain.ZoomWeek, from, to, today)
	assert.Contains(t, FormatTimeline(&empty), "Inga uppgifter i perioden")
}

func TestFormatQuickListAndViews(t *testing.T) {
	out := FormatQuickList([]domain.QuickItem{
		{ID: "1", Text: "klar sak", Done: true},
		{ID: "2", Text: "öppen sak"},
	})
	assert.Less(t, strings.Index(out, "öppen sak"), strings.Index(out, "klar sak"), "open items come first")

	views := FormatViews([]domain.SavedView{{
		Name:    "ncc",
		Filters: domain.FilterState{Client: "NCC", Roles: []domain.Role{domain.RoleCAD}, Tags: []string{"akut"}},
		SavedAt: today,
	}})
	assert.Contains(t, views, "kund=NCC, roll=CAD, #akut")
	assert.Equal(t, "bara mina", FilterSummary(domain.FilterState{}, true))
}

func TestFormatDigest(t *testing.T) {
	d := notify.Digest{Day: today, Overdue: []notify.DigestItem{{Title: "Sen", Client: "NCC", Days: -2}}}
	out := FormatDigest(d)
	assert.Contains(t, out, "Sen")
	assert.Contains(t, out, "2 d sedan")

	assert.Contains(t, FormatDigest(notify.Digest{Day: today}), "Inga deadlines")
}
