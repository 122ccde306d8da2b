package timing

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestDebounceDeliversLastCall(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	var calls []string
	done := make(chan struct{}, 4)

	search := Debounce(func(q string) {
		mu.Lock()
		calls = append(calls, q)
		mu.Unlock()
		done <- struct{}{}
	}, 30*time.Millisecond)

	search("a")
	search("al")
	search("alu")

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("debounced function never ran")
	}
	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 1 || calls[0] != "alu" {
		t.Fatalf("expected single call with last argument, got %v", calls)
	}
}

func TestDebounceSeparateWindows(t *testing.T) {
	t.Parallel()

	got := make(chan int, 4)
	fn := Debounce(func(n int) { got <- n }, 5*time.Millisecond)

	fn(1)
	if v := <-got; v != 1 {
		t.Fatalf("expected 1, got %d", v)
	}
	fn(2)
	if v := <-got; v != 2 {
		t.Fatalf("expected 2, got %d", v)
	}
}

func TestSleepOrDone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cancel  bool
		d       time.Duration
		wantErr error
	}{
		{name: "elapsed", d: time.Millisecond},
		{name: "zero_duration", d: 0},
		{name: "canceled", cancel: true, d: time.Hour, wantErr: context.Canceled},
		{name: "canceled_zero", cancel: true, d: 0, wantErr: context.Canceled},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx, cancel := context.WithCancel(context.Background())
			if tt.cancel {
				cancel()
			} else {
				defer cancel()
			}

			err := SleepOrDone(ctx, tt.d)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
