package timeline

import (
	"testing"
	"time"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWindow(t *testing.T) {
	wed := date(2024, 6, 19)

	from, to := Window(domain.ZoomWeek, wed)
	assert.Equal(t, date(2024, 6, 17), from, "weeks start on Monday")
	assert.Equal(t, date(2024, 7, 28), to)

	from, to = Window(domain.ZoomDay, wed)
	assert.Equal(t, date(2024, 6, 17), from)
	assert.Equal(t, date(2024, 6, 30), to)

	from, to = Window(domain.ZoomMonth, wed)
	assert.Equal(t, date(2024, 6, 1), from)
	assert.Equal(t, date(2024, 11, 30), to)
}

func TestBuild_ColumnsFlagWeekendHolidayToday(t *testing.T) {
	chart := Build(nil, domain.ZoomDay, date(2024, 6, 20), date(2024, 6, 23), date(2024, 6, 20))
	require.Len(t, chart.Columns, 4)
	assert.True(t, chart.Columns[0].Today)
	assert.Equal(t, "Midsommarafton", chart.Columns[1].Holiday)
	assert.True(t, chart.Columns[2].Weekend)
	assert.False(t, chart.Columns[0].Weekend)
}

func TestBuild_BarsClippedToWindow(t *testing.T) {
	tasks := []domain.Task{
		{ID: "inside", StartDate: "2024-06-03", EndDate: "2024-06-05"},
		{ID: "left", StartDate: "2024-05-20", EndDate: "2024-06-02"},
		{ID: "right", StartDate: "2024-06-09", EndDate: "2024-07-01"},
		{ID: "outside", StartDate: "2024-08-01", EndDate: "2024-08-02"},
		{ID: "undated"},
		{ID: "end-only", EndDate: "2024-06-04"},
	}
	chart := Build(tasks, domain.ZoomWeek, date(2024, 6, 1), date(2024, 6, 10), date(2024, 6, 1))

	bars := map[string]Bar{}
	for _, b := range chart.Bars {
		bars[b.TaskID] = b
	}
	require.Len(t, bars, 4)

	assert.Equal(t, 2, bars["inside"].Offset)
	assert.Equal(t, 3, bars["inside"].Span)

	assert.Equal(t, 0, bars["left"].Offset)
	assert.Equal(t, 2, bars["left"].Span)
	assert.True(t, bars["left"].StartsEarly)

	assert.Equal(t, 8, bars["right"].Offset)
	assert.Equal(t, 2, bars["right"].Span)
	assert.True(t, bars["right"].EndsLate)

	assert.Equal(t, 1, bars["end-only"].Span)
}

func TestShift_MovesBothDates(t *testing.T) {
	orig := domain.Task{StartDate: "2024-02-27", EndDate: "2024-03-01"}
	moved := Shift(orig, 3)
	assert.Equal(t, "2024-03-01", moved.StartDate)
	assert.Equal(t, "2024-03-04", moved.EndDate)
	assert.Equal(t, "2024-02-27", orig.StartDate)

	back := Shift(moved, -3)
	assert.Equal(t, orig.StartDate, back.StartDate)
	assert.Equal(t, orig.EndDate, back.EndDate)

	assert.Equal(t, "later", Shift(domain.Task{StartDate: "later"}, 1).StartDate)
}
