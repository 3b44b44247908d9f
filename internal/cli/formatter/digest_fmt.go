package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tidsplan/internal/calendar"
	"github.com/alexanderramin/tidsplan/internal/notify"
)

// FormatDigest renders a deadline digest for the terminal.
func FormatDigest(d notify.Digest) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Deadlines %s", calendar.FormatISO(d.Day))))
	b.WriteString("\n")
	if d.Empty() {
		b.WriteString(StyleGreen.Render("Inga deadlines att bevaka.") + "\n")
		return b.String()
	}
	section := func(title string, items []notify.DigestItem, style func(string) string) {
		if len(items) == 0 {
			return
		}
		b.WriteString(Bold(title) + "\n")
		for _, it := range items {
			line := "  • " + it.Title
			if it.Client != "" {
				line += Dim(" (" + it.Client + ")")
			}
			b.WriteString(line + " " + style(RelativeDays(it.Days)) + "\n")
		}
	}
	section("Försenade", d.Overdue, func(s string) string { return StyleRed.Render(s) })
	section("Snart klara", d.DueSoon, func(s string) string { return StyleYellow.Render(s) })
	if d.OverdueSubtasks > 0 {
		b.WriteString(Dim(fmt.Sprintf("%d försenade checklistepunkter", d.OverdueSubtasks)) + "\n")
	}
	return b.String()
}
