// Package debounce provides a trailing-edge value debouncer: the
// settled value only changes once the input has stopped changing for
// the configured quiet period. It holds no domain knowledge and works
// for any value type.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is used when New is given a non-positive delay
const DefaultDelay = 500 * time.Millisecond

// Debouncer settles values of type T. Each Set restarts the quiet
// period and discards whatever update was still pending, so
// intermediate values are never observed downstream. A debouncer owns
// at most one timer at a time.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	settled T
	ch      chan T
	stopped bool
}

// New returns a debouncer whose settled value starts at initial
func New[T any](initial T, delay time.Duration) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer[T]{
		delay:   delay,
		settled: initial,
		ch:      make(chan T, 1),
	}
}

// Set feeds a new input value. The quiet period restarts; a previously
// scheduled update is cancelled and never fires.
func (d *Debouncer[T]) Set(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.settle(value)
	})
}

func (d *Debouncer[T]) settle(value T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.settled = value

	// Latest wins: replace an unconsumed delivery rather than block.
	select {
	case <-d.ch:
	default:
	}
	d.ch <- value
}

// Value returns the most recently settled value
func (d *Debouncer[T]) Value() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.settled
}

// Settled is the channel settled values are delivered on. At most one
// value is buffered; a newer settlement replaces an unconsumed one.
// Stop closes the channel so a blocked reader unblocks.
func (d *Debouncer[T]) Settled() <-chan T {
	return d.ch
}

// Stop cancels any pending update, releases the timer and closes the
// delivery channel. Further Sets are ignored; a settle must never fire
// after the consumer is gone. Stop is idempotent.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	close(d.ch)
}
