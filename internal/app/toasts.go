package app

import (
	"sync"
	"time"
)

// ToastLevel grades a toast.
type ToastLevel string

const (
	ToastInfo    ToastLevel = "info"
	ToastWarning ToastLevel = "warning"
	ToastError   ToastLevel = "error"
)

// Toast is a short user-facing notice.
type Toast struct {
	ID      string     `json:"id,omitempty"`
	Level   ToastLevel `json:"level"`
	Message string     `json:"message"`
	At      time.Time  `json:"at"`
}

// maxToasts bounds the queue; the oldest toast is dropped first.
const maxToasts = 20

// Toasts is a bounded queue of notices waiting to be shown.
type Toasts struct {
	mu    sync.Mutex
	clock func() time.Time
	queue []Toast
}

// NewToasts creates an empty queue.
func NewToasts(clock func() time.Time) *Toasts {
	if clock == nil {
		clock = time.Now
	}
	return &Toasts{clock: clock}
}

// Push queues a toast. id may be empty; a non-empty id lets the user
// dismiss that toast for good.
func (t *Toasts) Push(level ToastLevel, id, message string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.queue = append(t.queue, Toast{ID: id, Level: level, Message: message, At: t.clock()})
	if over := len(t.queue) - maxToasts; over > 0 {
		t.queue = append([]Toast(nil), t.queue[over:]...)
	}
}

// Drain returns and clears the queued toasts, oldest first.
func (t *Toasts) Drain() []Toast {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := t.queue
	t.queue = nil
	return out
}
