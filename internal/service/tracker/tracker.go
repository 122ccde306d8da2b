// Package tracker provides lightweight counters for running submit cycles.
package tracker

import "sync/atomic"

// Tracker counts running cycles using atomics.
type Tracker struct {
	running atomic.Int64
}

// Inc increments the running counter.
func (t *Tracker) Inc() { t.running.Add(1) }

// Dec decrements the running counter.
func (t *Tracker) Dec() { t.running.Add(-1) }

// Running returns the current running count.
func (t *Tracker) Running() int64 { return t.running.Load() }

// TryBegin moves the counter from zero to one.
// It returns false when a cycle is already running.
func (t *Tracker) TryBegin() bool { return t.running.CompareAndSwap(0, 1) }
