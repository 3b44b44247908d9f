package service

import (
	"errors"
	"strings"
)

// ValidationError lists everything wrong with a task a user tried to save.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid task: " + strings.Join(e.Problems, "; ")
}

var (
	// ErrEmptyText is returned when a checklist item, comment, quick item
	// or view name would be blank.
	ErrEmptyText = errors.New("text is required")

	// ErrNotInTrash is returned when purging a task that was never
	// soft-deleted.
	ErrNotInTrash = errors.New("task must be in the trash before it can be purged")
)

func validationErr(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Problems: problems}
}
