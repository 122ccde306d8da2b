// Package timing provides the small timer helpers the page relies on:
// trailing-edge debounce and context-aware waits.
package timing

import (
	"context"
	"sync"
	"time"
)

// Debounce returns a function that delays calling fn until wait has
// elapsed since its last invocation. Each call resets the pending timer
// and only the argument of the last call is delivered.
func Debounce[T any](fn func(T), wait time.Duration) func(T) {
	var (
		mu    sync.Mutex
		timer *time.Timer
		last  T
	)
	return func(arg T) {
		mu.Lock()
		defer mu.Unlock()
		last = arg
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(wait, func() {
			mu.Lock()
			v := last
			mu.Unlock()
			fn(v)
		})
	}
}

// SleepOrDone waits for d or returns early on context cancellation.
func SleepOrDone(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
