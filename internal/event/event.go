// Package event provides a small typed observer used for registry and
// visibility notifications.
package event

import "sync"

// Event is a multicast notification carrying a value of type T.
// The zero value is ready to use.
type Event[T any] struct {
	mu       sync.Mutex
	handlers []*handler[T]
}

type handler[T any] struct {
	fn func(T)
}

// Subscription is returned by Subscribe and detaches the handler when cancelled.
type Subscription struct {
	once   sync.Once
	cancel func()
}

// Cancel detaches the handler. Calling it more than once is a no-op.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(func() {
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// Subscribe registers fn and returns the subscription that removes it.
func (e *Event[T]) Subscribe(fn func(T)) *Subscription {
	h := &handler[T]{fn: fn}

	e.mu.Lock()
	e.handlers = append(e.handlers, h)
	e.mu.Unlock()

	return &Subscription{cancel: func() { e.remove(h) }}
}

func (e *Event[T]) remove(h *handler[T]) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, existing := range e.handlers {
		if existing == h {
			e.handlers = append(e.handlers[:i:i], e.handlers[i+1:]...)
			return
		}
	}
}

// Emit calls every handler in subscription order. Handlers may subscribe or
// cancel during delivery; changes take effect from the next Emit.
func (e *Event[T]) Emit(v T) {
	e.mu.Lock()
	handlers := append([]*handler[T](nil), e.handlers...)
	e.mu.Unlock()

	for _, h := range handlers {
		h.fn(v)
	}
}

// Len returns the number of attached handlers.
func (e *Event[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handlers)
}

// Group collects subscriptions so they can be cancelled together.
type Group struct {
	subs []*Subscription
}

// Add tracks s.
func (g *Group) Add(s *Subscription) {
	g.subs = append(g.subs, s)
}

// CancelAll cancels every tracked subscription and empties the group.
func (g *Group) CancelAll() {
	for _, s := range g.subs {
		s.Cancel()
	}
	g.subs = nil
}

// Len returns the number of tracked subscriptions.
func (g *Group) Len() int {
	return len(g.subs)
}
