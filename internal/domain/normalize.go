package domain

import (
	"fmt"
	"strings"
	"time"
)

// NormalizeTask fills the defaults for a record read from a store. It never
// rejects input; every repair is reported as a human-readable issue so the
// caller can log it.
func NormalizeTask(t Task) (Task, []string) {
	out := t.Clone()
	var issues []string

	if strings.TrimSpace(out.ID) == "" {
		issues = append(issues, "missing id")
	}
	if strings.TrimSpace(out.Title) == "" {
		issues = append(issues, "missing title")
		out.Title = ""
	}

	switch {
	case IsOverdueStatus(string(out.Status)):
		issues = append(issues, "stored status was overdue; restored last known status")
		out.Status = ResolveSaveStatus(out.Status, out.OriginalStatus)
	case NormalizeStatus(string(out.Status)) != out.Status:
		if strings.TrimSpace(string(out.Status)) == "" {
			issues = append(issues, "missing status")
		} else if _, known := statusTokens[lower(string(out.Status))]; !known {
			issues = append(issues, fmt.Sprintf("unknown status %q", out.Status))
		}
		out.Status = NormalizeStatus(string(out.Status))
	}
	if IsOverdueStatus(string(out.OriginalStatus)) {
		out.OriginalStatus = ""
	}

	if out.Tags == nil {
		out.Tags = []string{}
	}
	if out.Checklist == nil {
		out.Checklist = []Subtask{}
	}
	if out.Comments == nil {
		out.Comments = []Comment{}
	}

	for i := range out.Checklist {
		s := &out.Checklist[i]
		if strings.TrimSpace(s.ID) == "" {
			s.ID = fmt.Sprintf("%s-%d", out.ID, i+1)
			issues = append(issues, fmt.Sprintf("checklist item %d: missing id", i+1))
		}
		s.Priority = NormalizePriority(string(s.Priority))
	}
	for i := range out.Comments {
		c := &out.Comments[i]
		if strings.TrimSpace(c.ID) == "" {
			c.ID = fmt.Sprintf("%s-c%d", out.ID, i+1)
			issues = append(issues, fmt.Sprintf("comment %d: missing id", i+1))
		}
	}

	if !out.Deleted {
		out.DeletedAt = nil
	} else if out.DeletedAt == nil {
		ts := out.UpdatedAt
		if ts.IsZero() {
			ts = out.CreatedAt
		}
		out.DeletedAt = &ts
		issues = append(issues, "deleted without deletedAt")
	}

	return out, issues
}

// NormalizeTasks normalizes every record and collects issues per task id.
func NormalizeTasks(tasks []Task) ([]Task, map[string][]string) {
	out := make([]Task, 0, len(tasks))
	issues := map[string][]string{}
	for _, t := range tasks {
		n, problems := NormalizeTask(t)
		if len(problems) > 0 {
			issues[t.ID] = problems
		}
		out = append(out, n)
	}
	return out, issues
}

// MarkDeleted flags t as soft-deleted at ts.
func (t *Task) MarkDeleted(ts time.Time) {
	t.Deleted = true
	t.DeletedAt = &ts
	t.UpdatedAt = ts
}

// Restore clears the soft-delete flag.
func (t *Task) Restore(ts time.Time) {
	t.Deleted = false
	t.DeletedAt = nil
	t.UpdatedAt = ts
}
