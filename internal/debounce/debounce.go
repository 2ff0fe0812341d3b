// Package debounce delays an action until input has been quiet for a while.
package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period before a suggestion lookup fires.
const DefaultDelay = 300 * time.Millisecond

// Debouncer holds at most one pending action. Triggering again replaces the
// pending action and restarts the delay. An action that has already started
// running is not interrupted.
type Debouncer struct {
	delay time.Duration

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64
}

func New(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the delay, cancelling any pending action.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopLocked()
	d.gen++
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		// A timer that fired while Trigger or Cancel held the lock is stale.
		if gen != d.gen || d.timer == nil {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()
		fn()
	})
}

// Cancel drops the pending action, if any.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
}

// Pending reports whether an action is scheduled and has not yet started.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
