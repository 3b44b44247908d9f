package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tidsplan/internal/domain"
)

// FormatQuickList renders the scratchpad with open items first.
func FormatQuickList(items []domain.QuickItem) string {
	if len(items) == 0 {
		return Dim("Snabblistan är tom.") + "\n"
	}
	var b strings.Builder
	for _, done := range []bool{false, true} {
		for _, it := range items {
			if it.Done != done {
				continue
			}
			if done {
				fmt.Fprintf(&b, "%s %s %s\n", StyleGreen.Render("[x]"), Dim(it.Text), Dim(ShortID(it.ID)))
			} else {
				fmt.Fprintf(&b, "[ ] %s %s\n", it.Text, Dim(ShortID(it.ID)))
			}
		}
	}
	return b.String()
}

// FormatViews lists saved views with a summary of their filters.
func FormatViews(views []domain.SavedView) string {
	if len(views) == 0 {
		return Dim("Inga sparade vyer.") + "\n"
	}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{
			Bold(v.Name),
			describeFilters(v.Filters),
			string(v.Sort),
			string(v.Zoom),
			v.SavedAt.Format("2006-01-02"),
		})
	}
	return RenderTable([]string{"NAMN", "FILTER", "SORTERING", "ZOOM", "SPARAD"}, rows)
}

// FilterSummary describes the active filters on one line.
func FilterSummary(f domain.FilterState, onlyMine bool) string {
	s := describeFilters(f)
	if onlyMine {
		if s == "" || s == Dim("inga") {
			return "bara mina"
		}
		s += ", bara mina"
	}
	return s
}

func describeFilters(f domain.FilterState) string {
	var parts []string
	if f.Search != "" {
		parts = append(parts, fmt.Sprintf("sök %q", f.Search))
	}
	if f.Client != "" {
		parts = append(parts, "kund="+f.Client)
	}
	if f.Phase != "" {
		parts = append(parts, "fas="+f.Phase)
	}
	if f.Status != "" {
		parts = append(parts, "status="+string(f.Status))
	}
	for _, r := range f.Roles {
		parts = append(parts, "roll="+r.Label())
	}
	for _, t := range f.Tags {
		parts = append(parts, "#"+t)
	}
	if len(parts) == 0 {
		return Dim("inga")
	}
	return strings.Join(parts, ", ")
}
