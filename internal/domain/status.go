package domain

import (
	"time"

	"github.com/alexanderramin/tidsplan/internal/calendar"
)

// DefaultWarningDays is the deadline warning window used when none is
// configured. MaxWarningDays bounds the configurable range.
const (
	DefaultWarningDays = 1
	MaxWarningDays     = 14
)

var statusTokens = map[string]Status{
	"planned":     StatusPlanned,
	"planerad":    StatusPlanned,
	"planerat":    StatusPlanned,
	"todo":        StatusPlanned,
	"to do":       StatusPlanned,
	"inprogress":  StatusInProgress,
	"in progress": StatusInProgress,
	"in_progress": StatusInProgress,
	"in-progress": StatusInProgress,
	"ongoing":     StatusInProgress,
	"pågående":    StatusInProgress,
	"pagaende":    StatusInProgress,
	"påbörjad":    StatusInProgress,
	"done":        StatusDone,
	"completed":   StatusDone,
	"complete":    StatusDone,
	"klar":        StatusDone,
	"klart":       StatusDone,
	"avklarad":    StatusDone,
	"färdig":      StatusDone,
}

var overdueTokens = map[string]bool{
	"overdue":  true,
	"försenad": true,
	"forsenad": true,
}

// NormalizeStatus maps a stored status in any known vocabulary to one of
// the three storable statuses. Unknown or empty input becomes Planned.
func NormalizeStatus(raw string) Status {
	if s, ok := statusTokens[lower(raw)]; ok {
		return s
	}
	return StatusPlanned
}

// IsDoneStatus reports whether raw names the done state.
func IsDoneStatus(raw string) bool {
	return statusTokens[lower(raw)] == StatusDone
}

// IsOverdueStatus reports whether raw names the derived overdue state.
func IsOverdueStatus(raw string) bool {
	return overdueTokens[lower(raw)]
}

// DisplayStatus derives the status shown for a task. A done task is never
// overdue; otherwise an end date strictly before today wins; otherwise the
// stored status is shown.
func DisplayStatus(t Task, today time.Time) (Status, StatusReason) {
	if IsDoneStatus(string(t.Status)) {
		return StatusDone, ReasonNone
	}
	if end, ok := calendar.ParseISO(t.EndDate); ok && end.Before(calendar.Day(today)) {
		return StatusOverdue, ReasonDateOverdue
	}
	return NormalizeStatus(string(t.Status)), ReasonNone
}

// DisplayStatus derives the status shown for a checklist item. Items have
// no stored status beyond Done.
func (s Subtask) DisplayStatus(today time.Time) (Status, StatusReason) {
	if s.Done {
		return StatusDone, ReasonNone
	}
	if end, ok := calendar.ParseISO(s.EndDate); ok && end.Before(calendar.Day(today)) {
		return StatusOverdue, ReasonDateOverdue
	}
	return StatusPlanned, ReasonNone
}

// ResolveSaveStatus returns the status to persist when a user saves
// requested. Overdue is never stored: it is swapped for lastKnown, or
// Planned when lastKnown is missing or itself overdue.
func ResolveSaveStatus(requested, lastKnown Status) Status {
	if !IsOverdueStatus(string(requested)) {
		return NormalizeStatus(string(requested))
	}
	if lastKnown == "" || IsOverdueStatus(string(lastKnown)) {
		return StatusPlanned
	}
	return NormalizeStatus(string(lastKnown))
}

// TimeState flags an item whose deadline has passed or is close.
type TimeState struct {
	IsOverdue bool `json:"isOverdue"`
	IsWarning bool `json:"isWarning"`
}

// ClampWarningDays keeps a warning threshold inside 0..MaxWarningDays.
func ClampWarningDays(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxWarningDays {
		return MaxWarningDays
	}
	return n
}

// TimeStatus classifies a deadline relative to today. Done items and items
// without an end date are never flagged. An item due today is a warning,
// not overdue.
func TimeStatus(done bool, endDate string, thresholdDays int, today time.Time) TimeState {
	if done {
		return TimeState{}
	}
	end, ok := calendar.ParseISO(endDate)
	if !ok {
		return TimeState{}
	}
	diff := calendar.DaysBetween(today, end)
	switch {
	case diff < 0:
		return TimeState{IsOverdue: true}
	case diff <= ClampWarningDays(thresholdDays):
		return TimeState{IsWarning: true}
	default:
		return TimeState{}
	}
}

// TimeStatus applies TimeStatus to a task.
func (t Task) TimeStatus(thresholdDays int, today time.Time) TimeState {
	return TimeStatus(IsDoneStatus(string(t.Status)), t.EndDate, thresholdDays, today)
}

// TimeStatus applies TimeStatus to a checklist item.
func (s Subtask) TimeStatus(thresholdDays int, today time.Time) TimeState {
	return TimeStatus(s.Done, s.EndDate, thresholdDays, today)
}
