package stream

import (
	"context"
	"sync"
)

// Event marks a point in a stream's queue.
// It completes when every kernel enqueued before it has finished.
type Event struct {
	done chan struct{}
	once sync.Once
}

func newEvent() *Event {
	return &Event{done: make(chan struct{})}
}

func (e *Event) fire() {
	e.once.Do(func() { close(e.done) })
}

// Synchronize blocks until the event completes.
func (e *Event) Synchronize() {
	<-e.done
}

// Query reports whether the event has completed.
func (e *Event) Query() bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the event completes.
func (e *Event) Done() <-chan struct{} {
	return e.done
}

// Record enqueues an event on s. The event completes even if s is faulted.
func (s *Stream) Record() *Event {
	ev := newEvent()
	s.enqueue(task{
		name:   "record",
		always: true,
		run: func(context.Context) error {
			ev.fire()
			return nil
		},
	})
	return ev
}

// WaitEvent makes every kernel launched on s after this call wait for ev.
// The caller is not blocked. On a closed stream the wait is dropped.
func (s *Stream) WaitEvent(ev *Event) {
	s.enqueue(task{
		name:   "wait",
		always: true,
		wait:   true,
		run: func(context.Context) error {
			<-ev.done
			return nil
		},
	})
}
