package domain

import (
	"strings"
	"time"
)

// Task is one scheduled work item. Dates are ISO strings because they come
// straight from the document store and may be missing or malformed.
type Task struct {
	ID     string `json:"id"`
	Owner  string `json:"owner,omitempty"`
	Title  string `json:"title"`
	Client string `json:"client"`
	Phase  string `json:"phase"`

	// Roles
	Assignee string `json:"assignee"`
	CAD      string `json:"cad"`
	Reviewer string `json:"reviewer"`
	Agent    string `json:"agent"`
	BE       string `json:"be"`
	PL       string `json:"pl"`

	Tags      []string `json:"tags"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`

	Status Status `json:"status"`
	// OriginalStatus is the last stored status seen while the task was
	// displayed as overdue. It lets a save restore that value instead of
	// persisting the derived one.
	OriginalStatus Status `json:"_originalStatus,omitempty"`

	Checklist []Subtask `json:"checklist"`
	Comments  []Comment `json:"comments"`

	Deleted   bool       `json:"deleted"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Subtask is a checklist item. It lives only inside its parent task.
type Subtask struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Done      bool     `json:"done"`
	StartDate string   `json:"startDate,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	Executor  string   `json:"executor,omitempty"`
	Priority  Priority `json:"priority,omitempty"`
	Archived  bool     `json:"archived,omitempty"`
	Deleted   bool     `json:"deleted,omitempty"`
}

// Comment is a note on a task. Only its text may change after creation.
type Comment struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	Author    string     `json:"author"`
	CreatedAt time.Time  `json:"createdAt"`
	EditedAt  *time.Time `json:"editedAt,omitempty"`
}

// RoleValue returns the trimmed value of a task-level role field. The
// executor role has no task-level value.
func (t Task) RoleValue(r Role) string {
	var v string
	switch r {
	case RoleAssignee:
		v = t.Assignee
	case RoleCAD:
		v = t.CAD
	case RoleReviewer:
		v = t.Reviewer
	case RoleAgent:
		v = t.Agent
	case RoleBE:
		v = t.BE
	case RolePL:
		v = t.PL
	}
	return strings.TrimSpace(v)
}

// HasRole reports whether the task fills role r. For RoleExecutor that
// means any checklist item names an executor.
func (t Task) HasRole(r Role) bool {
	if r == RoleExecutor {
		for _, s := range t.Checklist {
			if strings.TrimSpace(s.Executor) != "" {
				return true
			}
		}
		return false
	}
	return t.RoleValue(r) != ""
}

// HasTag reports whether the task carries tag, compared case-insensitively.
func (t Task) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if equalFold(have, tag) {
			return true
		}
	}
	return false
}

// Clone returns a copy whose slices can be modified without touching t.
func (t Task) Clone() Task {
	c := t
	if t.Tags != nil {
		c.Tags = append([]string{}, t.Tags...)
	}
	if t.Checklist != nil {
		c.Checklist = append([]Subtask{}, t.Checklist...)
	}
	if t.Comments != nil {
		c.Comments = append([]Comment{}, t.Comments...)
	}
	return c
}

// SubtaskIndex returns the position of the checklist item with id, or -1.
func (t Task) SubtaskIndex(id string) int {
	for i, s := range t.Checklist {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// CommentIndex returns the position of the comment with id, or -1.
func (t Task) CommentIndex(id string) int {
	for i, c := range t.Comments {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// IsActive reports whether the item counts toward workload metrics: not
// done, not deleted and not archived.
func (s Subtask) IsActive() bool {
	return !s.Done && !s.Deleted && !s.Archived
}

// NormalizedPriority returns the canonical priority of the item.
func (s Subtask) NormalizedPriority() Priority {
	return NormalizePriority(string(s.Priority))
}
