package tracker

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestTrackerIncDec(t *testing.T) {
	t.Parallel()

	tr := &Tracker{}
	tr.Inc()
	if got := tr.Running(); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	tr.Dec()
	if got := tr.Running(); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestTrackerTryBegin(t *testing.T) {
	t.Parallel()

	tr := &Tracker{}
	if !tr.TryBegin() {
		t.Fatalf("expected first begin to succeed")
	}
	if tr.TryBegin() {
		t.Fatalf("expected second begin to fail while running")
	}
	tr.Dec()
	if !tr.TryBegin() {
		t.Fatalf("expected begin to succeed after Dec")
	}
}

func TestTrackerTryBeginConcurrent(t *testing.T) {
	t.Parallel()

	tr := &Tracker{}
	const goroutines = 50

	var wins atomic.Int64
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			if tr.TryBegin() {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := wins.Load(); got != 1 {
		t.Fatalf("expected exactly one winner, got %d", got)
	}
}
