package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTask() Task {
	return Task{Title: "Bygglov", StartDate: "2024-01-01", EndDate: "2024-02-01", Status: StatusPlanned}
}

func TestValidateTask_Valid(t *testing.T) {
	assert.Empty(t, ValidateTask(validTask()))
}

func TestValidateTask_CollectsAllProblems(t *testing.T) {
	problems := ValidateTask(Task{Checklist: []Subtask{{Text: " "}}})
	assert.Contains(t, problems, "title is required")
	assert.Contains(t, problems, "start date is required")
	assert.Contains(t, problems, "end date is required")
	assert.Contains(t, problems, "checklist item 1: text is required")
}

func TestValidateTask_EndBeforeStart(t *testing.T) {
	task := validTask()
	task.EndDate = "2023-12-31"
	problems := ValidateTask(task)
	assert.Len(t, problems, 1)
	assert.Contains(t, problems[0], "before start date")
}

func TestValidateTask_SameDayIsValid(t *testing.T) {
	task := validTask()
	task.EndDate = task.StartDate
	assert.Empty(t, ValidateTask(task))
}

func TestValidateTask_BadDateFormat(t *testing.T) {
	task := validTask()
	task.StartDate = "01/02/2024"
	problems := ValidateTask(task)
	assert.Len(t, problems, 1)
	assert.Contains(t, problems[0], "not a valid date")
}

func TestValidateTask_OverdueRejected(t *testing.T) {
	task := validTask()
	task.Status = StatusOverdue
	assert.Len(t, ValidateTask(task), 1)
}

func TestValidateTask_SubtaskDates(t *testing.T) {
	task := validTask()
	task.Checklist = []Subtask{{Text: "ritning", StartDate: "2024-01-10", EndDate: "2024-01-05"}}
	problems := ValidateTask(task)
	assert.Len(t, problems, 1)
	assert.Contains(t, problems[0], "checklist item 1")
}
