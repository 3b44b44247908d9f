package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/repository"
	"github.com/alexanderramin/tidsplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTask(title string) domain.Task {
	return domain.Task{Title: title, StartDate: "2024-06-03", EndDate: "2024-06-14"}
}

func TestTaskService_CreateAssignsIdentity(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := validTask("  Bygglov  ")
	in.Checklist = []domain.Subtask{{Text: "Ritning", Priority: "high"}}
	created, err := f.svc.Create(ctx, "anna", in)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "anna", created.Owner)
	assert.Equal(t, "Bygglov", created.Title)
	assert.Equal(t, domain.StatusPlanned, created.Status)
	assert.True(t, created.CreatedAt.Equal(testNow))
	require.Len(t, created.Checklist, 1)
	assert.NotEmpty(t, created.Checklist[0].ID)
	assert.Equal(t, domain.PriorityHigh, created.Checklist[0].Priority)
}

func TestTaskService_CreateRejectsInvalid(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), "anna", domain.Task{StartDate: "2024-06-10", EndDate: "2024-06-01"})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Problems, "title is required")
	assert.Contains(t, verr.Error(), "end date 2024-06-01 is before start date 2024-06-10")

	tasks, err := f.svc.List(context.Background(), "anna")
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

// Saving a task displayed as overdue keeps the status it had before.
func TestTaskService_OverdueSaveRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	in := validTask("Sen rapport")
	in.StartDate, in.EndDate = "2024-05-01", "2024-05-31"
	in.Status = domain.StatusInProgress
	created, err := f.svc.Create(ctx, "anna", in)
	require.NoError(t, err)

	shown, reason := domain.DisplayStatus(created, testNow)
	require.Equal(t, domain.StatusOverdue, shown)
	require.Equal(t, domain.ReasonDateOverdue, reason)

	saved, err := f.svc.Update(ctx, "anna", created.ID, domain.TaskPatch{
		Title:  domain.Ptr("Sen rapport v2"),
		Status: domain.Ptr(shown),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, saved.Status)

	stored, err := f.tasks.Get(ctx, "anna", created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, stored.Status)
}

func TestTaskService_UpdateValidatesMergedTask(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, "anna", validTask("Datum"))
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, "anna", created.ID, domain.TaskPatch{EndDate: domain.Ptr("2024-05-01")})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = f.svc.Update(ctx, "anna", "missing", domain.TaskPatch{Title: domain.Ptr("x")})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskService_TrashLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, "anna", validTask("Skräp"))
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Purge(ctx, "anna", created.ID), ErrNotInTrash, "active tasks cannot be purged")

	require.NoError(t, f.svc.Delete(ctx, "anna", created.ID))
	active, err := f.svc.List(ctx, "anna")
	require.NoError(t, err)
	assert.Empty(t, active)

	trash, err := f.svc.Trash(ctx, "anna")
	require.NoError(t, err)
	require.Len(t, trash, 1)
	require.NotNil(t, trash[0].DeletedAt)

	require.NoError(t, f.svc.Restore(ctx, "anna", created.ID))
	active, err = f.svc.List(ctx, "anna")
	require.NoError(t, err)
	assert.Len(t, active, 1)

	require.NoError(t, f.svc.Delete(ctx, "anna", created.ID))
	require.NoError(t, f.svc.Purge(ctx, "anna", created.ID))
	_, err = f.svc.Get(ctx, "anna", created.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskService_PurgeTrashByAge(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	old := testutil.NewTestTask("Gammal", testutil.WithDeleted(testNow.AddDate(0, 0, -40)))
	recent := testutil.NewTestTask("Färsk", testutil.WithDeleted(testNow.AddDate(0, 0, -2)))
	require.NoError(t, f.tasks.Create(ctx, old))
	require.NoError(t, f.tasks.Create(ctx, recent))

	n, err := f.svc.PurgeTrash(ctx, 30*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	trash, err := f.svc.Trash(ctx, "anna")
	require.NoError(t, err)
	require.Len(t, trash, 1)
	assert.Equal(t, "Färsk", trash[0].Title)
}

func TestTaskService_Shift(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, "anna", validTask("Flytta"))
	require.NoError(t, err)

	moved, err := f.svc.Shift(ctx, "anna", created.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-10", moved.StartDate)
	assert.Equal(t, "2024-06-21", moved.EndDate)
}

func TestTaskService_SubtaskOperations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, "anna", validTask("Lista"))
	require.NoError(t, err)

	_, err = f.svc.AddSubtask(ctx, "anna", created.ID, domain.Subtask{Text: "  "})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	withSub, err := f.svc.AddSubtask(ctx, "anna", created.ID, domain.Subtask{Text: "Ritning", Executor: " Bo ", Priority: "låg"})
	require.NoError(t, err)
	require.Len(t, withSub.Checklist, 1)
	sub := withSub.Checklist[0]
	assert.Equal(t, "Bo", sub.Executor)
	assert.Equal(t, domain.PriorityLow, sub.Priority)

	toggled, err := f.svc.ToggleSubtask(ctx, "anna", created.ID, sub.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Checklist[0].Done)

	archived, err := f.svc.ArchiveSubtask(ctx, "anna", created.ID, sub.ID)
	require.NoError(t, err)
	assert.True(t, archived.Checklist[0].Archived)

	removed, err := f.svc.RemoveSubtask(ctx, "anna", created.ID, sub.ID)
	require.NoError(t, err)
	assert.True(t, removed.Checklist[0].Deleted)

	_, err = f.svc.ToggleSubtask(ctx, "anna", created.ID, sub.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound, "deleted items cannot be edited")
}

func TestTaskService_CommentOperations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, "anna", validTask("Prat"))
	require.NoError(t, err)

	_, err = f.svc.AddComment(ctx, "anna", created.ID, "Anna", " ")
	assert.ErrorIs(t, err, ErrEmptyText)

	withComment, err := f.svc.AddComment(ctx, "anna", created.ID, "Anna", "Ring kunden")
	require.NoError(t, err)
	require.Len(t, withComment.Comments, 1)
	c := withComment.Comments[0]
	assert.Equal(t, "Anna", c.Author)
	assert.Nil(t, c.EditedAt)

	edited, err := f.svc.EditComment(ctx, "anna", created.ID, c.ID, "Ring kunden i morgon")
	require.NoError(t, err)
	assert.Equal(t, "Ring kunden i morgon", edited.Comments[0].Text)
	assert.NotNil(t, edited.Comments[0].EditedAt)

	cleared, err := f.svc.DeleteComment(ctx, "anna", created.ID, c.ID)
	require.NoError(t, err)
	assert.Empty(t, cleared.Comments)

	_, err = f.svc.DeleteComment(ctx, "anna", created.ID, c.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskService_SubscribeReceivesSnapshots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ch, unsubscribe := f.svc.Subscribe(ctx, "anna")

	initial := <-ch
	assert.Empty(t, initial)

	_, err := f.svc.Create(ctx, "anna", validTask("Ny"))
	require.NoError(t, err)
	select {
	case tasks := <-ch:
		require.Len(t, tasks, 1)
		assert.Equal(t, "Ny", tasks[0].Title)
	case <-time.After(time.Second):
		t.Fatal("no snapshot after create")
	}

	_, err = f.svc.Create(ctx, "bo", validTask("Annans"))
	require.NoError(t, err)
	select {
	case <-ch:
		t.Fatal("other owners' writes must not be delivered")
	default:
	}

	unsubscribe()
	unsubscribe()
	_, open := <-ch
	assert.False(t, open)
}

func TestTaskService_SubscribeEndsWithContext(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())

	ch, _ := f.svc.Subscribe(ctx, "anna")
	<-ch
	cancel()

	select {
	case _, open := <-ch:
		assert.False(t, open)
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
