// Package timeline lays tasks out on a day grid for the Gantt view.
package timeline

import (
	"time"

	"github.com/alexanderramin/tidsplan/internal/calendar"
	"github.com/alexanderramin/tidsplan/internal/domain"
)

// Column is one day of the grid.
type Column struct {
	Date    string `json:"date"`
	Weekend bool   `json:"weekend"`
	Holiday string `json:"holiday,omitempty"`
	Today   bool   `json:"today"`
}

// Bar is one task drawn on the grid. Offset and Span are in days relative
// to the first column.
type Bar struct {
	TaskID      string        `json:"taskId"`
	Title       string        `json:"title"`
	Phase       string        `json:"phase"`
	Status      domain.Status `json:"status"`
	Offset      int           `json:"offset"`
	Span        int           `json:"span"`
	StartsEarly bool          `json:"startsEarly"`
	EndsLate    bool          `json:"endsLate"`
}

// Chart is a rendered window of the timeline.
type Chart struct {
	From    string      `json:"from"`
	To      string      `json:"to"`
	Zoom    domain.Zoom `json:"zoom"`
	Columns []Column    `json:"columns"`
	Bars    []Bar       `json:"bars"`
}

// Window returns the default visible range for a zoom level around today.
func Window(zoom domain.Zoom, today time.Time) (from, to time.Time) {
	today = calendar.Day(today)
	switch zoom {
	case domain.ZoomDay:
		from = calendar.AddDays(today, -2)
		return from, calendar.AddDays(from, 13)
	case domain.ZoomMonth:
		from = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(0, 6, -1)
	default:
		offset := (int(today.Weekday()) + 6) % 7
		from = calendar.AddDays(today, -offset)
		return from, calendar.AddDays(from, 6*7-1)
	}
}

// Build lays out tasks between from and to inclusive. Tasks without any
// parseable date, or entirely outside the window, get no bar. A task with
// only one date is drawn as a single day.
func Build(tasks []domain.Task, zoom domain.Zoom, from, to, today time.Time) Chart {
	from, to, today = calendar.Day(from), calendar.Day(to), calendar.Day(today)
	chart := Chart{
		From: calendar.FormatISO(from),
		To:   calendar.FormatISO(to),
		Zoom: zoom,
	}
	for _, d := range calendar.DayRange(from, to) {
		name, _ := calendar.HolidayName(d)
		chart.Columns = append(chart.Columns, Column{
			Date:    calendar.FormatISO(d),
			Weekend: calendar.IsWeekend(d),
			Holiday: name,
			Today:   d.Equal(today),
		})
	}

	for _, t := range tasks {
		start, end, ok := span(t)
		if !ok || end.Before(from) || start.After(to) {
			continue
		}
		bar := Bar{TaskID: t.ID, Title: t.Title, Phase: t.Phase}
		bar.Status, _ = domain.DisplayStatus(t, today)
		if start.Before(from) {
			start, bar.StartsEarly = from, true
		}
		if end.After(to) {
			end, bar.EndsLate = to, true
		}
		bar.Offset = calendar.DaysBetween(from, start)
		bar.Span = calendar.DaysBetween(start, end) + 1
		chart.Bars = append(chart.Bars, bar)
	}
	return chart
}

func span(t domain.Task) (start, end time.Time, ok bool) {
	start, hasStart := calendar.ParseISO(t.StartDate)
	end, hasEnd := calendar.ParseISO(t.EndDate)
	switch {
	case hasStart && hasEnd:
		if end.Before(start) {
			start, end = end, start
		}
		return start, end, true
	case hasStart:
		return start, start, true
	case hasEnd:
		return end, end, true
	}
	return time.Time{}, time.Time{}, false
}

// Shift moves a task's start and end by days together, as a drag on the
// timeline does. Unparseable dates are left as they are.
func Shift(t domain.Task, days int) domain.Task {
	out := t.Clone()
	if d, ok := calendar.ParseISO(t.StartDate); ok {
		out.StartDate = calendar.FormatISO(calendar.AddDays(d, days))
	}
	if d, ok := calendar.ParseISO(t.EndDate); ok {
		out.EndDate = calendar.FormatISO(calendar.AddDays(d, days))
	}
	return out
}
