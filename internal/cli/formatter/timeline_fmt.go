package formatter

import (
	"strings"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/timeline"
)

const timelineLabelWidth = 24

// FormatTimeline draws a chart as one text row per bar. Day and week zoom
// use one cell per day; month zoom packs a week into each cell.
func FormatTimeline(c *timeline.Chart) string {
	perCell := 1
	if c.Zoom == domain.ZoomMonth {
		perCell = 7
	}
	cells := (len(c.Columns) + perCell - 1) / perCell

	var b strings.Builder
	b.WriteString(Header(c.From + " – " + c.To))
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", timelineLabelWidth+1))
	b.WriteString(ruler(c.Columns, perCell, cells))
	b.WriteString("\n")

	if len(c.Bars) == 0 {
		b.WriteString(Dim("Inga uppgifter i perioden.") + "\n")
		return b.String()
	}
	for _, bar := range c.Bars {
		label := Truncate(bar.Title, timelineLabelWidth)
		b.WriteString(label)
		b.WriteString(strings.Repeat(" ", timelineLabelWidth-len([]rune(label))+1))
		b.WriteString(drawBar(bar, c.Columns, perCell, cells))
		b.WriteString("\n")
	}
	return b.String()
}

// ruler marks week starts with their day number and today with a caret.
func ruler(cols []timeline.Column, perCell, cells int) string {
	out := make([]string, cells)
	for i := range out {
		out[i] = " "
	}
	for i, col := range cols {
		cell := i / perCell
		switch {
		case col.Today:
			out[cell] = StyleHeader.Render("▼")
		case col.Holiday != "" && perCell == 1:
			out[cell] = StyleRed.Render("*")
		case col.Weekend && perCell == 1:
			out[cell] = Dim("·")
		}
	}
	return strings.Join(out, "")
}

func drawBar(bar timeline.Bar, cols []timeline.Column, perCell, cells int) string {
	out := make([]string, cells)
	for i := range out {
		out[i] = " "
	}
	style := StatusStyle(bar.Status)
	first := bar.Offset / perCell
	last := (bar.Offset + bar.Span - 1) / perCell
	for cell := first; cell <= last && cell < cells; cell++ {
		out[cell] = style.Render("█")
	}
	if bar.StartsEarly && first < cells {
		out[first] = style.Render("◀")
	}
	if bar.EndsLate && last < cells {
		out[last] = style.Render("▶")
	}
	return strings.Join(out, "")
}
