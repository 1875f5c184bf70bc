// Package stream implements the execution stream element-wise kernels are enqueued on.
//
// A Stream is an explicit handle: it owns one worker goroutine that drains an
// unbounded FIFO of kernels and hands each to the stream's Executor. Launching
// never blocks the caller. Kernels launched on the same stream run in launch
// order, so a later kernel observes every write of an earlier one. Ordering
// between different streams is the caller's business (see Record and WaitEvent).
package stream

import (
	"context"
	"fmt"
	"sync"

	"github.com/born-ml/eltwise/internal/parallel"
)

// Config holds optional stream settings.
type Config struct {
	// Name labels the stream in String.
	Name string
	// OnFault, if set, is called once from the worker goroutine when the
	// stream enters the faulted state.
	OnFault func(err error)
}

type task struct {
	name string
	// always tasks run even on a faulted stream.
	always bool
	// waits only order later work; they are dropped on a closed stream.
	wait bool
	run  func(ctx context.Context) error
}

// Stream is an in-order asynchronous work queue bound to one Executor.
type Stream struct {
	exec Executor
	cfg  Config

	mu      sync.Mutex
	cond    *sync.Cond
	queue   []task
	pending int
	fault   error
	closed  bool

	done chan struct{}
}

// New creates a stream that runs kernels on exec.
func New(exec Executor) *Stream {
	return NewWithConfig(exec, Config{})
}

// NewWithConfig creates a stream with explicit settings.
func NewWithConfig(exec Executor, cfg Config) *Stream {
	if exec == nil {
		panic("stream: nil executor")
	}
	s := &Stream{
		exec: exec,
		cfg:  cfg,
		done: make(chan struct{}),
	}
	s.cond = sync.NewCond(&s.mu)
	go s.loop()
	return s
}

// Executor returns the executor kernels on this stream run on.
func (s *Stream) Executor() Executor {
	return s.exec
}

// String returns the stream label and executor name.
func (s *Stream) String() string {
	if s.cfg.Name == "" {
		return "stream(" + s.exec.Name() + ")"
	}
	return s.cfg.Name + "(" + s.exec.Name() + ")"
}

// Launch enqueues k and returns immediately.
// Failures surface later through Synchronize or Err.
func (s *Stream) Launch(k Kernel) {
	s.enqueue(task{
		name: k.Name(),
		run: func(ctx context.Context) error {
			return s.exec.Execute(ctx, k)
		},
	})
}

// AddCallback enqueues fn to run on the stream worker once all earlier work
// has finished. fn receives the stream fault, if any, and runs even when the
// stream is faulted.
func (s *Stream) AddCallback(fn func(err error)) {
	s.enqueue(task{
		name:   "callback",
		always: true,
		run: func(context.Context) error {
			fn(s.Err())
			return nil
		},
	})
}

// Synchronize blocks until every kernel enqueued so far has finished and
// returns the stream fault, if any.
func (s *Stream) Synchronize() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for s.pending > 0 {
		s.cond.Wait()
	}
	return s.fault
}

// Err returns the stream fault without waiting.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fault
}

// Query reports whether all enqueued work has finished.
func (s *Stream) Query() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending == 0
}

// Close drains the queue, stops the worker and returns the stream fault.
// Kernels launched after Close are dropped and fault the stream with ErrClosed.
func (s *Stream) Close() error {
	s.mu.Lock()
	s.closed = true
	s.cond.Broadcast()
	s.mu.Unlock()

	<-s.done
	return s.Err()
}

func (s *Stream) enqueue(t task) {
	s.mu.Lock()
	if s.closed {
		if s.fault == nil {
			s.fault = &Fault{Kernel: t.name, Err: ErrClosed}
		}
		s.mu.Unlock()
		if t.always && !t.wait {
			// Nothing is left to order against; keep event waiters from hanging.
			_ = t.run(context.Background())
		}
		return
	}
	s.queue = append(s.queue, t)
	s.pending++
	s.cond.Broadcast()
	s.mu.Unlock()
}

func (s *Stream) loop() {
	defer close(s.done)
	ctx := context.Background()

	for {
		s.mu.Lock()
		for len(s.queue) == 0 && !s.closed {
			s.cond.Wait()
		}
		if len(s.queue) == 0 {
			s.mu.Unlock()
			return
		}
		t := s.queue[0]
		s.queue[0] = task{}
		s.queue = s.queue[1:]
		skip := s.fault != nil && !t.always
		s.mu.Unlock()

		var err error
		if !skip {
			err = run(ctx, t)
		}

		if err != nil {
			s.mu.Lock()
			first := s.fault == nil
			if first {
				s.fault = err
			}
			s.mu.Unlock()

			// Runs before the kernel counts as finished, so Synchronize
			// returns only after the hook.
			if first && s.cfg.OnFault != nil {
				s.cfg.OnFault(err)
			}
		}

		s.mu.Lock()
		s.pending--
		s.cond.Broadcast()
		s.mu.Unlock()
	}
}

func run(ctx context.Context, t task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &Fault{Kernel: t.name, Err: fmt.Errorf("%w: %v", parallel.ErrKernelPanic, r)}
		}
	}()
	if e := t.run(ctx); e != nil {
		return &Fault{Kernel: t.name, Err: e}
	}
	return nil
}
