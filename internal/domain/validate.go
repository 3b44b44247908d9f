package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/tidsplan/internal/calendar"
)

// ValidateTask checks a task at the write boundary and returns every
// problem found. An empty result means the task may be saved.
func ValidateTask(t Task) []string {
	var problems []string

	if strings.TrimSpace(t.Title) == "" {
		problems = append(problems, "title is required")
	}

	start, startOK := validateDate("start date", t.StartDate, true, &problems)
	end, endOK := validateDate("end date", t.EndDate, true, &problems)
	if startOK && endOK && end.Before(start) {
		problems = append(problems, fmt.Sprintf("end date %s is before start date %s", t.EndDate, t.StartDate))
	}

	if IsOverdueStatus(string(t.Status)) {
		problems = append(problems, fmt.Sprintf("status %q cannot be saved", t.Status))
	}

	for i, s := range t.Checklist {
		problems = append(problems, validateSubtask(i+1, s)...)
	}
	return problems
}

func validateSubtask(n int, s Subtask) []string {
	var problems []string
	if strings.TrimSpace(s.Text) == "" {
		problems = append(problems, fmt.Sprintf("checklist item %d: text is required", n))
	}
	label := fmt.Sprintf("checklist item %d: ", n)
	start, startOK := validateDate(label+"start date", s.StartDate, false, &problems)
	end, endOK := validateDate(label+"end date", s.EndDate, false, &problems)
	if startOK && endOK && end.Before(start) {
		problems = append(problems, fmt.Sprintf("%send date %s is before start date %s", label, s.EndDate, s.StartDate))
	}
	return problems
}

func validateDate(field, value string, required bool, problems *[]string) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		if required {
			*problems = append(*problems, field+" is required")
		}
		return time.Time{}, false
	}
	parsed, ok := calendar.ParseISO(value)
	if !ok {
		*problems = append(*problems, fmt.Sprintf("%s %q is not a valid date (expected YYYY-MM-DD)", field, value))
		return time.Time{}, false
	}
	return parsed, true
}
