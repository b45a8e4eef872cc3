// Package view holds the coordination primitives behind interactive list
// screens: a sequencer that discards stale fetch responses and a debouncer
// for search-as-you-type input.
package view

import (
	"sync"
	"sync/atomic"
	"time"
)

// Sequencer hands out monotonically increasing tokens for list fetches.
// Independent requests give no ordering guarantee, so a response is applied
// only when it carries the most recently issued token; anything older is
// discarded deterministically instead of relying on timing.
type Sequencer struct {
	issued atomic.Uint64
}

// Next issues a token for a new fetch.
func (s *Sequencer) Next() uint64 {
	return s.issued.Add(1)
}

// Apply runs fn only if token is still the latest issued. It reports
// whether the response was applied.
func (s *Sequencer) Apply(token uint64, fn func()) bool {
	if token != s.issued.Load() {
		return false
	}
	fn()
	return true
}

// Debouncer delays a callback until input has been quiet for the configured
// interval; each Trigger restarts the countdown.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// NewDebouncer builds a debouncer; delay defaults to 500ms.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn after the quiet interval, cancelling any pending run.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels any pending run.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
