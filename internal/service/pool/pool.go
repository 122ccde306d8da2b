// Package pool provides a bounded concurrency semaphore for outgoing
// backend requests.
package pool

import "context"

// Pool limits how many requests may be in flight at once.
type Pool struct {
	sem chan struct{}
}

// New creates a pool with at least one slot
// and at most 128 slots.
func New(size int) *Pool {
	if size <= 0 {
		size = 1
	}
	if size > 128 {
		size = 128
	}
	return &Pool{sem: make(chan struct{}, size)}
}

// Acquire reserves one slot in the pool.
// If the pool is full, it blocks until a slot becomes available
// or the context is canceled, in which case it returns ctx.Err().
func (p *Pool) Acquire(ctx context.Context) error {
	select {
	case p.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a previously acquired slot.
func (p *Pool) Release() {
	<-p.sem
}

// Do runs fn while holding a slot.
func (p *Pool) Do(ctx context.Context, fn func() error) error {
	if err := p.Acquire(ctx); err != nil {
		return err
	}
	defer p.Release()
	return fn()
}

// InUse returns the number of held slots.
func (p *Pool) InUse() int { return len(p.sem) }
