package catalog

import (
	"sync"
	"time"
)

// DefaultDebounce is the search box delay.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer delivers the last value passed to Call once delay has elapsed with no
// further calls. Each Debouncer owns its timer.
type Debouncer[T any] struct {
	mu        sync.Mutex
	delay     time.Duration
	fn        func(T)
	timer     *time.Timer
	last      T
	pending   bool
	gen       uint64
	cancelled bool
}

func NewDebouncer[T any](delay time.Duration, fn func(T)) *Debouncer[T] {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer[T]{delay: delay, fn: fn}
}

// Call records v and restarts the timer.
func (d *Debouncer[T]) Call(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancelled {
		return
	}
	d.last = v
	d.pending = true
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

func (d *Debouncer[T]) fire(gen uint64) {
	d.mu.Lock()
	// a timer that lost the race with Call, Flush or Cancel is stale
	if d.cancelled || !d.pending || gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.take()
	d.mu.Unlock()
	d.fn(v)
}

func (d *Debouncer[T]) take() T {
	d.pending = false
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	v := d.last
	var zero T
	d.last = zero
	return v
}

// Flush delivers a pending value now. Returns false when nothing was pending.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if d.cancelled || !d.pending {
		d.mu.Unlock()
		return false
	}
	v := d.take()
	d.mu.Unlock()
	d.fn(v)
	return true
}

// Pending reports whether a value is waiting for the timer.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// Drop discards a pending value. The Debouncer stays usable.
func (d *Debouncer[T]) Drop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.take()
}

// Cancel drops any pending value. Later calls are no-ops.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelled = true
	d.take()
}
