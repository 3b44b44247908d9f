package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/tidsplan/internal/domain"
)

// resolveTaskID accepts a full task id or an unambiguous prefix of one.
// Trashed tasks are searched when trash is set.
func resolveTaskID(ctx context.Context, a *App, input string, trash bool) (string, error) {
	if input == "" {
		return "", fmt.Errorf("task ID is required")
	}

	list := a.Ctx.Tasks.List
	if trash {
		list = a.Ctx.Tasks.Trash
	}
	tasks, err := list(ctx, a.Ctx.User())
	if err != nil {
		return "", err
	}

	ids := make([]string, len(tasks))
	for i, t := range tasks {
		ids[i] = t.ID
	}
	id, err := matchID(ids, input)
	if err != nil {
		return "", fmt.Errorf("task %w", err)
	}
	return id, nil
}

// resolveSubtaskID finds a checklist item of t by id or prefix.
func resolveSubtaskID(t domain.Task, input string) (string, error) {
	var ids []string
	for _, s := range t.Checklist {
		if !s.Deleted {
			ids = append(ids, s.ID)
		}
	}
	id, err := matchID(ids, input)
	if err != nil {
		return "", fmt.Errorf("checklist item %w", err)
	}
	return id, nil
}

// resolveCommentID finds a comment of t by id or prefix.
func resolveCommentID(t domain.Task, input string) (string, error) {
	ids := make([]string, len(t.Comments))
	for i, c := range t.Comments {
		ids[i] = c.ID
	}
	id, err := matchID(ids, input)
	if err != nil {
		return "", fmt.Errorf("comment %w", err)
	}
	return id, nil
}

func matchID(ids []string, input string) (string, error) {
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}
