package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/repository"
	"github.com/google/uuid"
)

// Checklist items and comments live inside their task, so every change
// rewrites the task's slice. Only the touched item is validated: legacy
// problems elsewhere in the task must not block a checkbox.

func (s *taskService) AddSubtask(ctx context.Context, owner, taskID string, sub domain.Subtask) (t domain.Task, err error) {
	done := useCase(ctx, s.observer, "add-subtask", map[string]any{"owner": owner, "task": taskID})
	defer func() { done(err) }()

	sub.Text = strings.TrimSpace(sub.Text)
	sub.Executor = strings.TrimSpace(sub.Executor)
	sub.Priority = domain.NormalizePriority(string(sub.Priority))
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	probe := domain.Task{Title: "-", StartDate: "2000-01-01", EndDate: "2000-01-01", Checklist: []domain.Subtask{sub}}
	if err = validationErr(domain.ValidateTask(probe)); err != nil {
		return domain.Task{}, err
	}
	return s.editChecklist(ctx, owner, taskID, func(items []domain.Subtask) ([]domain.Subtask, error) {
		return append(items, sub), nil
	})
}

func (s *taskService) ToggleSubtask(ctx context.Context, owner, taskID, subtaskID string) (t domain.Task, err error) {
	done := useCase(ctx, s.observer, "toggle-subtask", map[string]any{"owner": owner, "task": taskID, "subtask": subtaskID})
	defer func() { done(err) }()
	return s.editSubtask(ctx, owner, taskID, subtaskID, func(sub *domain.Subtask) { sub.Done = !sub.Done })
}

func (s *taskService) ArchiveSubtask(ctx context.Context, owner, taskID, subtaskID string) (t domain.Task, err error) {
	done := useCase(ctx, s.observer, "archive-subtask", map[string]any{"owner": owner, "task": taskID, "subtask": subtaskID})
	defer func() { done(err) }()
	return s.editSubtask(ctx, owner, taskID, subtaskID, func(sub *domain.Subtask) { sub.Archived = true })
}

func (s *taskService) RemoveSubtask(ctx context.Context, owner, taskID, subtaskID string) (t domain.Task, err error) {
	done := useCase(ctx, s.observer, "remove-subtask", map[string]any{"owner": owner, "task": taskID, "subtask": subtaskID})
	defer func() { done(err) }()
	return s.editSubtask(ctx, owner, taskID, subtaskID, func(sub *domain.Subtask) { sub.Deleted = true })
}

func (s *taskService) editSubtask(ctx context.Context, owner, taskID, subtaskID string, fn func(*domain.Subtask)) (domain.Task, error) {
	return s.editChecklist(ctx, owner, taskID, func(items []domain.Subtask) ([]domain.Subtask, error) {
		for i := range items {
			if items[i].ID == subtaskID && !items[i].Deleted {
				fn(&items[i])
				return items, nil
			}
		}
		return nil, fmt.Errorf("checklist item %s: %w", subtaskID, repository.ErrNotFound)
	})
}

func (s *taskService) editChecklist(ctx context.Context, owner, taskID string, fn func([]domain.Subtask) ([]domain.Subtask, error)) (domain.Task, error) {
	current, err := s.tasks.Get(ctx, owner, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	items, err := fn(append([]domain.Subtask{}, current.Checklist...))
	if err != nil {
		return domain.Task{}, err
	}
	return s.write(ctx, owner, taskID, domain.TaskPatch{Checklist: &items})
}

func (s *taskService) AddComment(ctx context.Context, owner, taskID, author, text string) (t domain.Task, err error) {
	done := useCase(ctx, s.observer, "add-comment", map[string]any{"owner": owner, "task": taskID})
	defer func() { done(err) }()

	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Task{}, ErrEmptyText
	}
	c := domain.Comment{ID: uuid.New().String(), Text: text, Author: strings.TrimSpace(author), CreatedAt: s.now()}
	return s.editComments(ctx, owner, taskID, func(items []domain.Comment) ([]domain.Comment, error) {
		return append(items, c), nil
	})
}

func (s *taskService) EditComment(ctx context.Context, owner, taskID, commentID, text string) (t domain.Task, err error) {
	done := useCase(ctx, s.observer, "edit-comment", map[string]any{"owner": owner, "task": taskID, "comment": commentID})
	defer func() { done(err) }()

	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Task{}, ErrEmptyText
	}
	now := s.now()
	return s.editComments(ctx, owner, taskID, func(items []domain.Comment) ([]domain.Comment, error) {
		for i := range items {
			if items[i].ID == commentID {
				items[i].Text = text
				items[i].EditedAt = &now
				return items, nil
			}
		}
		return nil, fmt.Errorf("comment %s: %w", commentID, repository.ErrNotFound)
	})
}

func (s *taskService) DeleteComment(ctx context.Context, owner, taskID, commentID string) (t domain.Task, err error) {
	done := useCase(ctx, s.observer, "delete-comment", map[string]any{"owner": owner, "task": taskID, "comment": commentID})
	defer func() { done(err) }()

	return s.editComments(ctx, owner, taskID, func(items []domain.Comment) ([]domain.Comment, error) {
		for i := range items {
			if items[i].ID == commentID {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, fmt.Errorf("comment %s: %w", commentID, repository.ErrNotFound)
	})
}

func (s *taskService) editComments(ctx context.Context, owner, taskID string, fn func([]domain.Comment) ([]domain.Comment, error)) (domain.Task, error) {
	current, err := s.tasks.Get(ctx, owner, taskID)
	if err != nil {
		return domain.Task{}, err
	}
	items, err := fn(append([]domain.Comment{}, current.Comments...))
	if err != nil {
		return domain.Task{}, err
	}
	return s.write(ctx, owner, taskID, domain.TaskPatch{Comments: &items})
}

// write stores an already validated patch and refreshes subscribers.
func (s *taskService) write(ctx context.Context, owner, id string, patch domain.TaskPatch) (domain.Task, error) {
	updated, err := s.tasks.Update(ctx, owner, id, patch)
	if err != nil {
		return domain.Task{}, err
	}
	s.notify(ctx, owner)
	return updated, nil
}
