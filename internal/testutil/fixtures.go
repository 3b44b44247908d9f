package testutil

import (
	"fmt"
	"time"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/google/uuid"
)

// TaskOption customizes a fixture task.
type TaskOption func(*domain.Task)

func WithOwner(owner string) TaskOption {
	return func(t *domain.Task) { t.Owner = owner }
}

func WithDates(start, end string) TaskOption {
	return func(t *domain.Task) {
		t.StartDate = start
		t.EndDate = end
	}
}

func WithStatus(s domain.Status) TaskOption {
	return func(t *domain.Task) { t.Status = s }
}

func WithClient(c string) TaskOption {
	return func(t *domain.Task) { t.Client = c }
}

func WithPhase(p string) TaskOption {
	return func(t *domain.Task) { t.Phase = p }
}

func WithTags(tags ...string) TaskOption {
	return func(t *domain.Task) { t.Tags = tags }
}

func WithRole(r domain.Role, name string) TaskOption {
	return func(t *domain.Task) {
		switch r {
		case domain.RoleAssignee:
			t.Assignee = name
		case domain.RoleCAD:
			t.CAD = name
		case domain.RoleReviewer:
			t.Reviewer = name
		case domain.RoleAgent:
			t.Agent = name
		case domain.RoleBE:
			t.BE = name
		case domain.RolePL:
			t.PL = name
		}
	}
}

// WithSubtasks appends checklist items, numbering ids after the task.
func WithSubtasks(items ...domain.Subtask) TaskOption {
	return func(t *domain.Task) {
		for _, s := range items {
			if s.ID == "" {
				s.ID = fmt.Sprintf("%s-%d", t.ID, len(t.Checklist)+1)
			}
			t.Checklist = append(t.Checklist, s)
		}
	}
}

func WithDeleted(at time.Time) TaskOption {
	return func(t *domain.Task) { t.MarkDeleted(at) }
}

// NewTestTask builds a planned task with valid dates owned by "anna".
func NewTestTask(title string, opts ...TaskOption) domain.Task {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	t := domain.Task{
		ID:        uuid.New().String(),
		Owner:     "anna",
		Title:     title,
		StartDate: "2024-06-03",
		EndDate:   "2024-06-14",
		Status:    domain.StatusPlanned,
		Tags:      []string{},
		Checklist: []domain.Subtask{},
		Comments:  []domain.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// NewTestSubtask builds an open checklist item.
func NewTestSubtask(text, executor string, priority domain.Priority) domain.Subtask {
	return domain.Subtask{Text: text, Executor: executor, Priority: priority}
}
