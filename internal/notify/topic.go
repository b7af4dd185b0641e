// Package notify is a synchronous, typed publish/subscribe channel.
package notify

import "sync"

// Topic delivers each published value to every handler subscribed before the
// Publish call, in subscription order, on the publisher's goroutine.
// The zero value is ready to use.
type Topic[T any] struct {
	mu       sync.RWMutex
	handlers []func(T)
}

func (t *Topic[T]) Subscribe(handler func(T)) {
	if handler == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.handlers = append(t.handlers, handler)
}

// Publish returns the number of handlers invoked.
func (t *Topic[T]) Publish(value T) int {
	t.mu.RLock()
	handlers := make([]func(T), len(t.handlers))
	copy(handlers, t.handlers)
	t.mu.RUnlock()

	for _, handler := range handlers {
		handler(value)
	}

	return len(handlers)
}

func (t *Topic[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.handlers)
}
