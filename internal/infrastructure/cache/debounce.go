package cache

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of Trigger calls into a single call of fn that
// runs once no Trigger has happened for the configured interval.
type Debouncer struct {
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
	wg      sync.WaitGroup
}

// NewDebouncer creates a debouncer. interval must be positive.
func NewDebouncer(interval time.Duration, fn func()) *Debouncer {
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &Debouncer{interval: interval, fn: fn}
}

// Trigger schedules fn, pushing back any pending run
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil && d.timer.Stop() {
		// The pending run was cancelled before it started
		d.wg.Done()
	}
	d.wg.Add(1)
	d.timer = time.AfterFunc(d.interval, func() {
		defer d.wg.Done()
		d.fn()
	})
}

// Flush runs a pending call immediately. It is a no-op when nothing is pending.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	pending := d.timer != nil && d.timer.Stop()
	d.timer = nil
	d.mu.Unlock()

	if pending {
		defer d.wg.Done()
		d.fn()
	}
}

// Stop runs any pending call, rejects future triggers and waits for running calls to finish
func (d *Debouncer) Stop() {
	d.Flush()
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
	d.wg.Wait()
}
