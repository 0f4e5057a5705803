package collection

import (
	"context"
	"sync"
)

// Subscriber observes committed changes. It runs synchronously on the
// mutating goroutine and must not dispatch mutations to the same manager.
type Subscriber[E any] func(ctx context.Context, change Change[E])

type subscription[E any] struct {
	id int
	fn Subscriber[E]
}

// subscribers fans a change out to every registered subscriber in
// registration order.
type subscribers[E any] struct {
	mu     sync.Mutex
	nextID int
	list   []subscription[E]
}

func (s *subscribers[E]) add(fn Subscriber[E]) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.list = append(s.list, subscription[E]{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { s.remove(id) })
	}
}

func (s *subscribers[E]) remove(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.list {
		if sub.id == id {
			s.list = append(s.list[:i:i], s.list[i+1:]...)
			return
		}
	}
}

func (s *subscribers[E]) notify(ctx context.Context, change Change[E]) {
	s.mu.Lock()
	list := make([]subscription[E], len(s.list))
	copy(list, s.list)
	s.mu.Unlock()

	for _, sub := range list {
		sub.fn(ctx, change)
	}
}

func (s *subscribers[E]) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.list)
}
