package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/repository"
	"github.com/alexanderramin/tidsplan/internal/timeline"
	"github.com/google/uuid"
)

type taskService struct {
	tasks    repository.TaskRepo
	clock    Clock
	hub      *broadcaster
	log      *slog.Logger
	observer UseCaseObserver
}

func NewTaskService(tasks repository.TaskRepo, clock Clock, log *slog.Logger, observers ...UseCaseObserver) TaskService {
	if clock == nil {
		clock = time.Now
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &taskService{
		tasks:    tasks,
		clock:    clock,
		hub:      newBroadcaster(),
		log:      log,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taskService) now() time.Time {
	return s.clock().UTC()
}

func (s *taskService) List(ctx context.Context, owner string) ([]domain.Task, error) {
	return s.tasks.List(ctx, owner, false)
}

func (s *taskService) Trash(ctx context.Context, owner string) ([]domain.Task, error) {
	all, err := s.tasks.List(ctx, owner, true)
	if err != nil {
		return nil, err
	}
	trash := []domain.Task{}
	for _, t := range all {
		if t.Deleted {
			trash = append(trash, t)
		}
	}
	return trash, nil
}

func (s *taskService) Get(ctx context.Context, owner, id string) (domain.Task, error) {
	return s.tasks.Get(ctx, owner, id)
}

func (s *taskService) Create(ctx context.Context, owner string, t domain.Task) (created domain.Task, err error) {
	done := useCase(ctx, s.observer, "create-task", map[string]any{"owner": owner, "title": t.Title})
	defer func() { done(err) }()

	now := s.now()
	t = t.Clone()
	t.ID = uuid.New().String()
	t.Owner = owner
	t.Title = strings.TrimSpace(t.Title)
	t.Status = domain.ResolveSaveStatus(t.Status, t.OriginalStatus)
	t.OriginalStatus = ""
	t.Deleted, t.DeletedAt = false, nil
	t.CreatedAt, t.UpdatedAt = now, now
	for i := range t.Checklist {
		if t.Checklist[i].ID == "" {
			t.Checklist[i].ID = uuid.New().String()
		}
	}
	for i := range t.Comments {
		if t.Comments[i].ID == "" {
			t.Comments[i].ID = uuid.New().String()
		}
	}
	if err = validationErr(domain.ValidateTask(t)); err != nil {
		return domain.Task{}, err
	}
	if err = s.tasks.Create(ctx, t); err != nil {
		return domain.Task{}, err
	}
	created, err = s.tasks.Get(ctx, owner, t.ID)
	if err != nil {
		return domain.Task{}, err
	}
	s.notify(ctx, owner)
	return created, nil
}

func (s *taskService) Update(ctx context.Context, owner, id string, patch domain.TaskPatch) (updated domain.Task, err error) {
	done := useCase(ctx, s.observer, "update-task", map[string]any{"owner": owner, "task": id})
	defer func() { done(err) }()
	return s.update(ctx, owner, id, patch)
}

// update validates the patched task before handing the patch to the store.
func (s *taskService) update(ctx context.Context, owner, id string, patch domain.TaskPatch) (domain.Task, error) {
	if patch.IsEmpty() {
		return s.tasks.Get(ctx, owner, id)
	}
	current, err := s.tasks.Get(ctx, owner, id)
	if err != nil {
		return domain.Task{}, err
	}
	if patch.Title != nil {
		patch.Title = domain.Ptr(strings.TrimSpace(*patch.Title))
	}
	if patch.Status != nil {
		patch.Status = domain.Ptr(domain.ResolveSaveStatus(*patch.Status, current.Status))
	}
	if err := validationErr(domain.ValidateTask(patch.Apply(current))); err != nil {
		return domain.Task{}, err
	}
	return s.write(ctx, owner, id, patch)
}

func (s *taskService) Delete(ctx context.Context, owner, id string) (err error) {
	done := useCase(ctx, s.observer, "delete-task", map[string]any{"owner": owner, "task": id})
	defer func() { done(err) }()

	if err = s.tasks.SoftDelete(ctx, owner, id, s.now()); err != nil {
		return err
	}
	s.notify(ctx, owner)
	return nil
}

func (s *taskService) Restore(ctx context.Context, owner, id string) (err error) {
	done := useCase(ctx, s.observer, "restore-task", map[string]any{"owner": owner, "task": id})
	defer func() { done(err) }()

	if err = s.tasks.Restore(ctx, owner, id, s.now()); err != nil {
		return err
	}
	s.notify(ctx, owner)
	return nil
}

func (s *taskService) Purge(ctx context.Context, owner, id string) (err error) {
	done := useCase(ctx, s.observer, "purge-task", map[string]any{"owner": owner, "task": id})
	defer func() { done(err) }()

	t, err := s.tasks.Get(ctx, owner, id)
	if err != nil {
		return err
	}
	if !t.Deleted {
		return fmt.Errorf("purging task %s: %w", id, ErrNotInTrash)
	}
	if err = s.tasks.PermanentlyDelete(ctx, owner, id); err != nil {
		return err
	}
	s.notify(ctx, owner)
	return nil
}

func (s *taskService) PurgeTrash(ctx context.Context, olderThan time.Duration) (n int, err error) {
	fields := map[string]any{"older_than": olderThan.String()}
	done := useCase(ctx, s.observer, "purge-trash", fields)
	defer func() { done(err) }()

	n, err = s.tasks.PurgeDeletedBefore(ctx, s.now().Add(-olderThan))
	fields["purged"] = n
	return n, err
}

func (s *taskService) Shift(ctx context.Context, owner, id string, days int) (shifted domain.Task, err error) {
	done := useCase(ctx, s.observer, "shift-task", map[string]any{"owner": owner, "task": id, "days": days})
	defer func() { done(err) }()

	current, err := s.tasks.Get(ctx, owner, id)
	if err != nil {
		return domain.Task{}, err
	}
	moved := timeline.Shift(current, days)
	return s.update(ctx, owner, id, domain.TaskPatch{
		StartDate: domain.Ptr(moved.StartDate),
		EndDate:   domain.Ptr(moved.EndDate),
	})
}

// notify pushes the owner's current tasks to subscribers. A failed read is
// logged; the write that triggered it has already succeeded.
func (s *taskService) notify(ctx context.Context, owner string) {
	if !s.hub.hasSubscribers(owner) {
		return
	}
	tasks, err := s.tasks.List(ctx, owner, false)
	if err != nil {
		s.log.Warn("refreshing subscribers", "owner", owner, "error", err)
		return
	}
	s.hub.publish(owner, tasks, 0)
}

func (s *taskService) Subscribe(ctx context.Context, owner string) (<-chan []domain.Task, func()) {
	id, ch := s.hub.subscribe(owner)
	stop := make(chan struct{})
	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			close(stop)
			s.hub.unsubscribe(owner, id)
		})
	}

	if tasks, err := s.tasks.List(ctx, owner, false); err != nil {
		s.log.Warn("initial snapshot for subscriber", "owner", owner, "error", err)
	} else {
		s.hub.publish(owner, tasks, id)
	}

	go func() {
		select {
		case <-ctx.Done():
			s.hub.unsubscribe(owner, id)
		case <-stop:
		}
	}()
	return ch, unsubscribe
}
