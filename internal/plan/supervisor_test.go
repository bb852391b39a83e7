package plan

import (
	"context"
	"testing"
	"time"
)

func TestSupervisor_SingleRequest(t *testing.T) {
	s := NewSupervisor()

	ctx, finish := s.Begin(context.Background())
	if !s.InFlight() {
		t.Error("slot should be held after Begin")
	}
	if ctx.Err() != nil {
		t.Error("fresh request context must not be cancelled")
	}

	finish()
	if s.InFlight() {
		t.Error("slot should be released after finish")
	}
}

func TestSupervisor_NewRequestCancelsPrevious(t *testing.T) {
	s := NewSupervisor()

	ctx1, finish1 := s.Begin(context.Background())

	// Simulate the first request: it tears itself down once cancelled.
	released := make(chan struct{})
	go func() {
		<-ctx1.Done()
		finish1()
		close(released)
	}()

	ctx2, finish2 := s.Begin(context.Background())
	defer finish2()

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("Begin must have awaited the previous request's teardown")
	}
	if ctx1.Err() == nil {
		t.Error("previous request context must be cancelled")
	}
	if ctx2.Err() != nil {
		t.Error("new request context must be live")
	}
}

func TestSupervisor_Cancel(t *testing.T) {
	s := NewSupervisor()

	ctx, finish := s.Begin(context.Background())
	s.Cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("Cancel must cancel the in-flight context")
	}

	finish()
	if s.InFlight() {
		t.Error("slot should be released after finish")
	}
}

func TestSupervisor_FinishIdempotent(t *testing.T) {
	s := NewSupervisor()

	_, finish := s.Begin(context.Background())
	finish()
	finish() // must not panic on double close

	if s.InFlight() {
		t.Error("slot should stay released")
	}
}
