package service

import (
	"sync"

	"github.com/alexanderramin/tidsplan/internal/domain"
)

// broadcaster fans task snapshots out to subscribers of an owner. Each
// subscriber channel holds one snapshot; a slow reader only ever sees the
// latest one.
type broadcaster struct {
	mu     sync.Mutex
	nextID int
	subs   map[string]map[int]chan []domain.Task
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: map[string]map[int]chan []domain.Task{}}
}

func (b *broadcaster) subscribe(owner string) (int, chan []domain.Task) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	ch := make(chan []domain.Task, 1)
	if b.subs[owner] == nil {
		b.subs[owner] = map[int]chan []domain.Task{}
	}
	b.subs[owner][b.nextID] = ch
	return b.nextID, ch
}

func (b *broadcaster) unsubscribe(owner string, id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch, ok := b.subs[owner][id]
	if !ok {
		return
	}
	delete(b.subs[owner], id)
	if len(b.subs[owner]) == 0 {
		delete(b.subs, owner)
	}
	close(ch)
}

func (b *broadcaster) hasSubscribers(owner string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[owner]) > 0
}

// publish sends tasks to every subscriber of owner, or to one subscriber
// when only is non-zero.
func (b *broadcaster) publish(owner string, tasks []domain.Task, only int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subs[owner] {
		if only != 0 && id != only {
			continue
		}
		select {
		case <-ch:
		default:
		}
		ch <- tasks
	}
}
