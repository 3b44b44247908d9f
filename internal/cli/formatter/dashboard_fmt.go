package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/metrics"
)

// FormatDashboard renders the headline counters and upcoming deadlines.
func FormatDashboard(s *metrics.Summary) string {
	var b strings.Builder

	counts := []string{
		fmt.Sprintf("%s %d", Bold("Uppgifter"), s.Tasks),
		fmt.Sprintf("%s %d", StatusStyle(domain.StatusPlanned).Render(string(domain.StatusPlanned)), s.ByStatus[domain.StatusPlanned]),
		fmt.Sprintf("%s %d", StatusStyle(domain.StatusInProgress).Render(string(domain.StatusInProgress)), s.ByStatus[domain.StatusInProgress]),
		fmt.Sprintf("%s %d", StatusStyle(domain.StatusDone).Render(string(domain.StatusDone)), s.ByStatus[domain.StatusDone]),
		fmt.Sprintf("%s %d", StatusStyle(domain.StatusOverdue).Render(string(domain.StatusOverdue)), s.ByStatus[domain.StatusOverdue]),
		fmt.Sprintf("%s %d", Dim("Papperskorg"), s.Trash),
	}
	b.WriteString(strings.Join(counts, "   "))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Deadlines: %s försenade, %s nära\n",
		StyleRed.Render(fmt.Sprint(s.OverdueTasks)), StyleYellow.Render(fmt.Sprint(s.WarningTasks))))
	b.WriteString(fmt.Sprintf("Checklista: %d aktiva, %s försenade, %s nära\n",
		s.ActiveSubtasks, StyleRed.Render(fmt.Sprint(s.OverdueSubtasks)), StyleYellow.Render(fmt.Sprint(s.WarningSubtasks))))
	b.WriteString("Prioritet: ")
	b.WriteString(FormatDistribution(s.Priorities))
	b.WriteString("\n")

	if len(s.Upcoming) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Kommande deadlines"))
		b.WriteString("\n")
		rows := make([][]string, 0, len(s.Upcoming))
		for _, d := range s.Upcoming {
			rows = append(rows, []string{Dim(ShortID(d.TaskID)), d.Title, d.EndDate, RelativeDays(d.DaysLeft)})
		}
		b.WriteString(RenderTable([]string{"ID", "TITEL", "SLUT", "KVAR"}, rows))
	}
	return RenderBox("Översikt", strings.TrimRight(b.String(), "\n")) + "\n"
}

// FormatDistribution renders a priority split such as "Hög 2 · Normal 5 · Låg 1".
func FormatDistribution(d metrics.PriorityDistribution) string {
	parts := make([]string, 0, len(domain.Priorities))
	for _, p := range domain.Priorities {
		parts = append(parts, PriorityStyle(p).Render(fmt.Sprintf("%s %d", p, d.Count(p))))
	}
	return strings.Join(parts, Dim(" · "))
}

// FormatWorkload renders one role's per-person load as a bar table.
func FormatWorkload(r *metrics.WorkloadReport) string {
	var b strings.Builder
	unit := "uppgifter"
	if r.Unit == metrics.UnitSubtask {
		unit = "punkter"
	}
	b.WriteString(Header(fmt.Sprintf("Belastning: %s (%s)", r.Role.Label(), unit)))
	b.WriteString("\n")
	if len(r.People) == 0 {
		b.WriteString(Dim("Ingen belastning.") + "\n")
		return b.String()
	}

	peak := 0
	for _, p := range r.People {
		peak = max(peak, p.Total)
	}
	rows := make([][]string, 0, len(r.People))
	for _, p := range r.People {
		rows = append(rows, []string{
			p.Name,
			fmt.Sprint(p.Total),
			loadBar(p.Total, peak, 20),
			FormatDistribution(p.Priority),
			StyleRed.Render(fmt.Sprint(p.Overdue)),
			StyleYellow.Render(fmt.Sprint(p.Warning)),
		})
	}
	b.WriteString(RenderTable([]string{"PERSON", "ANTAL", "", "PRIORITET", "FÖRSENADE", "NÄRA"}, rows))
	if r.Unassigned > 0 {
		b.WriteString(Dim(fmt.Sprintf("%d utan tilldelning\n", r.Unassigned)))
	}
	return b.String()
}

func loadBar(n, peak, width int) string {
	if peak == 0 {
		return ""
	}
	filled := n * width / peak
	if n > 0 && filled == 0 {
		filled = 1
	}
	return StyleBlue.Render(strings.Repeat("█", filled)) + Dim(strings.Repeat("░", width-filled))
}

// FormatDrilldown lists one person's active checklist rows.
func FormatDrilldown(person string, rows []metrics.Row, dist metrics.PriorityDistribution) string {
	var b strings.Builder
	b.WriteString(Header(person))
	b.WriteString("\n")
	if len(rows) == 0 {
		b.WriteString(Dim("Inga aktiva punkter.") + "\n")
		return b.String()
	}
	table := make([][]string, 0, len(rows))
	for _, r := range rows {
		table = append(table, []string{
			r.TaskTitle,
			r.Text,
			PriorityStyle(r.Priority).Render(string(r.Priority)),
			DateRange(r.StartDate, r.EndDate),
		})
	}
	b.WriteString(RenderTable([]string{"UPPGIFT", "PUNKT", "PRIO", "PERIOD"}, table))
	b.WriteString(FormatDistribution(dist))
	b.WriteString("\n")
	return b.String()
}
