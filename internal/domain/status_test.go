package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var today = time.Date(2024, 1, 1, 14, 30, 0, 0, time.UTC)

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]Status{
		"Planerad":    StatusPlanned,
		"planned":     StatusPlanned,
		"PÅGÅENDE":    StatusInProgress,
		"in_progress": StatusInProgress,
		"In Progress": StatusInProgress,
		"Klar":        StatusDone,
		"done":        StatusDone,
		"":            StatusPlanned,
		"whatever":    StatusPlanned,
		"Försenad":    StatusPlanned,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeStatus(in), "input %q", in)
	}
}

func TestDisplayStatus_InProgressPastEndIsOverdue(t *testing.T) {
	task := Task{Status: "Pågående", EndDate: "2020-01-01"}
	status, reason := DisplayStatus(task, today)
	assert.Equal(t, StatusOverdue, status)
	assert.Equal(t, ReasonDateOverdue, reason)
}

func TestDisplayStatus_DoneNeverOverdue(t *testing.T) {
	for _, stored := range []Status{"Klar", "klar", "done", "DONE", "completed"} {
		task := Task{Status: stored, EndDate: "1999-01-01"}
		status, reason := DisplayStatus(task, today)
		assert.Equal(t, StatusDone, status, "stored %q", stored)
		assert.Equal(t, ReasonNone, reason)
	}
}

func TestDisplayStatus_NoEndDateUsesStored(t *testing.T) {
	for _, stored := range []Status{"Planerad", "Pågående", "", "garbage"} {
		status, reason := DisplayStatus(Task{Status: stored}, today)
		assert.Equal(t, NormalizeStatus(string(stored)), status)
		assert.Equal(t, ReasonNone, reason)
	}
}

func TestDisplayStatus_EndingTodayIsNotOverdue(t *testing.T) {
	status, _ := DisplayStatus(Task{Status: StatusPlanned, EndDate: "2024-01-01"}, today)
	assert.Equal(t, StatusPlanned, status)

	status, _ = DisplayStatus(Task{Status: StatusPlanned, EndDate: "2023-12-31"}, today)
	assert.Equal(t, StatusOverdue, status)
}

func TestDisplayStatus_MalformedEndDateIgnored(t *testing.T) {
	status, reason := DisplayStatus(Task{Status: StatusInProgress, EndDate: "soon"}, today)
	assert.Equal(t, StatusInProgress, status)
	assert.Equal(t, ReasonNone, reason)
}

func TestSubtaskDisplayStatus(t *testing.T) {
	s, _ := Subtask{Done: true, EndDate: "2000-01-01"}.DisplayStatus(today)
	assert.Equal(t, StatusDone, s)
	s, r := Subtask{EndDate: "2000-01-01"}.DisplayStatus(today)
	assert.Equal(t, StatusOverdue, s)
	assert.Equal(t, ReasonDateOverdue, r)
}

func TestResolveSaveStatus(t *testing.T) {
	assert.Equal(t, StatusInProgress, ResolveSaveStatus(StatusOverdue, StatusInProgress))
	assert.Equal(t, StatusPlanned, ResolveSaveStatus(StatusOverdue, ""))
	assert.Equal(t, StatusPlanned, ResolveSaveStatus("overdue", StatusOverdue))
	assert.Equal(t, StatusDone, ResolveSaveStatus("klar", StatusInProgress))
	assert.Equal(t, StatusPlanned, ResolveSaveStatus("", StatusInProgress))
}

func TestTimeStatus(t *testing.T) {
	cases := []struct {
		name      string
		done      bool
		end       string
		threshold int
		want      TimeState
	}{
		{"due today within default threshold", false, "2024-01-01", 1, TimeState{IsWarning: true}},
		{"due today with zero threshold", false, "2024-01-01", 0, TimeState{IsWarning: true}},
		{"due tomorrow", false, "2024-01-02", 1, TimeState{IsWarning: true}},
		{"due in two days", false, "2024-01-03", 1, TimeState{}},
		{"due in two days wide threshold", false, "2024-01-03", 7, TimeState{IsWarning: true}},
		{"past", false, "2023-12-31", 1, TimeState{IsOverdue: true}},
		{"done past", true, "2023-12-31", 1, TimeState{}},
		{"no end date", false, "", 1, TimeState{}},
		{"negative threshold clamps to zero", false, "2024-01-02", -5, TimeState{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TimeStatus(tc.done, tc.end, tc.threshold, today))
		})
	}
}

func TestTimeStatus_TaskAndSubtask(t *testing.T) {
	task := Task{Status: StatusDone, EndDate: "2023-01-01"}
	assert.Equal(t, TimeState{}, task.TimeStatus(1, today))

	sub := Subtask{Done: true, EndDate: "2023-01-01"}
	assert.Equal(t, TimeState{}, sub.TimeStatus(1, today))

	sub.Done = false
	assert.True(t, sub.TimeStatus(1, today).IsOverdue)
}

func TestClampWarningDays(t *testing.T) {
	assert.Equal(t, 0, ClampWarningDays(-1))
	assert.Equal(t, 3, ClampWarningDays(3))
	assert.Equal(t, MaxWarningDays, ClampWarningDays(99))
}
