package app

import (
	"context"
	"sync"

	"github.com/alexanderramin/tidsplan/internal/domain"
	"github.com/alexanderramin/tidsplan/internal/service"
)

// Session tracks the signed-in user and keeps exactly one live task
// subscription for them.
type Session struct {
	tasks service.TaskService

	mu     sync.Mutex
	user   string
	latest []domain.Task
	stop   func()
	done   chan struct{}
}

// NewSession creates a signed-out session.
func NewSession(tasks service.TaskService) *Session {
	return &Session{tasks: tasks}
}

// SignIn subscribes to user's tasks, tearing down any earlier
// subscription first. onUpdate, when set, runs on every snapshot from a
// single goroutine.
func (s *Session) SignIn(ctx context.Context, user string, onUpdate func([]domain.Task)) {
	s.SignOut()

	ch, unsubscribe := s.tasks.Subscribe(ctx, user)
	done := make(chan struct{})

	s.mu.Lock()
	s.user = user
	s.stop = unsubscribe
	s.done = done
	s.mu.Unlock()

	go func() {
		defer close(done)
		for tasks := range ch {
			s.mu.Lock()
			current := s.user == user
			if current {
				s.latest = tasks
			}
			s.mu.Unlock()
			if current && onUpdate != nil {
				onUpdate(tasks)
			}
		}
	}()
}

// SignOut ends the subscription and forgets the user. It waits until the
// last snapshot has been handled.
func (s *Session) SignOut() {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.user, s.latest, s.stop, s.done = "", nil, nil, nil
	s.mu.Unlock()

	if stop != nil {
		stop()
		<-done
	}
}

// User returns the signed-in user, or "" when signed out.
func (s *Session) User() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Tasks returns the latest snapshot for the signed-in user.
func (s *Session) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}
