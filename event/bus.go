// Copyright 2026 The Flowrt Authors.
// Licensed under the Apache License, Version 2.0.

package event

import (
	"sync"

	"github.com/flowrt/flowrt/internal/flog"
)

// Handler receives emitted events. Handlers MUST be fast and
// non-throwing; a handler that panics is caught and logged by Bus so it
// never aborts the run loop emitting the event.
type Handler func(e *Event)

// Bus is a synchronous, subscription-order fan-out of lifecycle events.
// It exists for logging/metrics/debug UIs, not inter-component
// coordination — see specification §9.
type Bus struct {
	mu          sync.Mutex
	subscribers []subscriber
	nextID      uint64
}

type subscriber struct {
	id uint64
	fn Handler
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h and returns a function that removes it.
func (b *Bus) Subscribe(h Handler) (unsubscribe func()) {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subscribers = append(b.subscribers, subscriber{id: id, fn: h})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subscribers {
			if s.id == id {
				b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Emit fans e out to every subscriber in subscription order. A
// subscriber that panics is recovered and logged; it never aborts the
// run loop or skips remaining subscribers.
func (b *Bus) Emit(e *Event) {
	b.mu.Lock()
	subs := make([]subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, s := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					flog.Errorf("event subscriber panicked handling %s: %v", e.Type, r)
				}
			}()
			s.fn(e)
		}()
	}
}
