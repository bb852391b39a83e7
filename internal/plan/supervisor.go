package plan

import (
	"context"
	"sync"
)

// Supervisor tracks at most one in-flight request. Beginning a new one
// first cancels the previous request and waits for its teardown, so a
// cancellation handle is never orphaned.
type Supervisor struct {
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSupervisor returns an empty single-slot supervisor.
func NewSupervisor() *Supervisor {
	return &Supervisor{}
}

// Begin claims the slot for a new request. The returned context is
// cancelled when the user cancels or a newer request takes over; finish
// must be called exactly once when the request's work is done.
func (s *Supervisor) Begin(parent context.Context) (ctx context.Context, finish func()) {
	s.mu.Lock()
	prevCancel, prevDone := s.cancel, s.done
	s.mu.Unlock()

	if prevCancel != nil {
		prevCancel()
		<-prevDone
	}

	ctx, cancel := context.WithCancel(parent)
	done := make(chan struct{})

	s.mu.Lock()
	s.cancel, s.done = cancel, done
	s.mu.Unlock()

	var once sync.Once
	finish = func() {
		once.Do(func() {
			cancel()
			s.mu.Lock()
			if s.done == done {
				s.cancel, s.done = nil, nil
			}
			s.mu.Unlock()
			close(done)
		})
	}
	return ctx, finish
}

// Cancel aborts the current request, if any. The slot is released by the
// request's own finish call.
func (s *Supervisor) Cancel() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// InFlight reports whether a request currently holds the slot.
func (s *Supervisor) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done != nil
}
