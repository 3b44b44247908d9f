package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/pipeline"
)

// ShortID is the prefix of a task id shown in lists.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ChecklistProgress renders "done/total" over the active checklist items.
func ChecklistProgress(t domain.Task) string {
	var done, total int
	for _, s := range t.Checklist {
		if s.Deleted || s.Archived {
			continue
		}
		total++
		if s.Done {
			done++
		}
	}
	if total == 0 {
		return Dim("–")
	}
	return fmt.Sprintf("%d/%d", done, total)
}

// FormatBoard renders phase groups as one table per phase.
func FormatBoard(groups []pipeline.Group, total, shown, warningDays int, today time.Time) string {
	if shown == 0 {
		if total == 0 {
			return Dim("Inga uppgifter ännu. Skapa en med 'tidsplan task add'.") + "\n"
		}
		return Dim(fmt.Sprintf("Inga av %d uppgifter matchar filtret.", total)) + "\n"
	}

	var b strings.Builder
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header(fmt.Sprintf("%s (%d)", g.Phase, len(g.Tasks))))
		b.WriteString("\n")
		rows := make([][]string, 0, len(g.Tasks))
		for _, t := range g.Tasks {
			status, _ := domain.DisplayStatus(t, today)
			rows = append(rows, []string{
				Dim(ShortID(t.ID)),
				Truncate(t.Title, 40) + " " + DeadlineMark(t.TimeStatus(warningDays, today)),
				OrDash(t.Client),
				StatusBadge(status),
				DateRange(t.StartDate, t.EndDate),
				DueText(t.EndDate, today),
				ChecklistProgress(t),
			})
		}
		b.WriteString(RenderTable([]string{"ID", "TITEL", "KUND", "STATUS", "PERIOD", "SLUT", "LISTA"}, rows))
	}
	b.WriteString(Dim(fmt.Sprintf("\nVisar %d av %d uppgifter", shown, total)))
	b.WriteString("\n")
	return b.String()
}

// FormatTrash lists soft-deleted tasks.
func FormatTrash(tasks []domain.Task) string {
	if len(tasks) == 0 {
		return Dim("Papperskorgen är tom.") + "\n"
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		deleted := "–"
		if t.DeletedAt != nil {
			deleted = t.DeletedAt.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{Dim(ShortID(t.ID)), t.Title, OrDash(t.Phase), deleted})
	}
	return RenderTable([]string{"ID", "TITEL", "FAS", "RADERAD"}, rows)
}

// FormatTaskDetail renders everything about one task. Comments go through
// md when it is non-nil.
func FormatTaskDetail(t domain.Task, warningDays int, today time.Time, md *Markdown) string {
	var b strings.Builder
	status, reason := domain.DisplayStatus(t, today)

	b.WriteString(StyleBold.Render(t.Title))
	b.WriteString("  ")
	b.WriteString(StatusBadge(status))
	if reason == domain.ReasonDateOverdue {
		b.WriteString(Dim(" (slutdatum passerat)"))
	}
	b.WriteString("\n")
	b.WriteString(Dim(t.ID))
	b.WriteString("\n\n")

	field := func(label, value string) {
		b.WriteString(StyleDim.Width(12).Render(label) + " " + value + "\n")
	}
	field("Kund", OrDash(t.Client))
	field("Fas", OrDash(t.Phase))
	field("Period", DateRange(t.StartDate, t.EndDate))
	field("Slut", DueText(t.EndDate, today)+" "+DeadlineMark(t.TimeStatus(warningDays, today)))
	for _, r := range domain.TaskFieldRoles {
		if v := t.RoleValue(r); v != "" {
			field(r.Label(), v)
		}
	}
	if len(t.Tags) > 0 {
		field("Taggar", StylePurple.Render(strings.Join(t.Tags, ", ")))
	}

	b.WriteString("\n")
	b.WriteString(Header("Checklista"))
	b.WriteString("\n")
	b.WriteString(formatChecklist(t.Checklist, warningDays, today))

	b.WriteString("\n")
	b.WriteString(Header("Kommentarer"))
	b.WriteString("\n")
	if len(t.Comments) == 0 {
		b.WriteString(Dim("Inga kommentarer.") + "\n")
	}
	for _, c := range t.Comments {
		meta := fmt.Sprintf("%s · %s · %s", ShortID(c.ID), OrDash(c.Author), c.CreatedAt.Format("2006-01-02 15:04"))
		if c.EditedAt != nil {
			meta += " (redigerad)"
		}
		b.WriteString(Dim(meta))
		b.WriteString("\n")
		b.WriteString(md.Render(c.Text))
		b.WriteString("\n\n")
	}
	return b.String()
}

func formatChecklist(items []domain.Subtask, warningDays int, today time.Time) string {
	var rows [][]string
	for _, s := range items {
		if s.Deleted {
			continue
		}
		box := "[ ]"
		if s.Done {
			box = StyleGreen.Render("[x]")
		}
		text := s.Text
		if s.Archived {
			text = Dim(text + " (arkiverad)")
		}
		p := s.NormalizedPriority()
		rows = append(rows, []string{
			Dim(ShortID(s.ID)),
			box + " " + text + " " + DeadlineMark(s.TimeStatus(warningDays, today)),
			OrDash(s.Executor),
			PriorityStyle(p).Render(string(p)),
			DateRange(s.StartDate, s.EndDate),
		})
	}
	if len(rows) == 0 {
		return Dim("Inga punkter.") + "\n"
	}
	return RenderTable([]string{"ID", "PUNKT", "HANDLÄGGARE", "PRIO", "PERIOD"}, rows)
}
