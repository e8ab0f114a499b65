package store

import "time"

// Debouncer reports when a save is due after a period of input quiescence.
// It is not safe for concurrent use; the foreground loop owns it.
type Debouncer struct {
	delay   time.Duration
	last    time.Time
	pending bool
}

// NewDebouncer returns a Debouncer that fires delay after the last Touch.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Touch records input activity at now.
func (d *Debouncer) Touch(now time.Time) {
	d.last = now
	d.pending = true
}

// Mark records a change that needs saving without restarting the quiet
// period.
func (d *Debouncer) Mark() {
	d.pending = true
}

// Due reports whether a save should happen at now. A true result clears the
// pending flag.
func (d *Debouncer) Due(now time.Time) bool {
	if !d.pending || now.Sub(d.last) < d.delay {
		return false
	}
	d.pending = false
	return true
}

// Pending reports whether activity has been recorded since the last save.
func (d *Debouncer) Pending() bool {
	return d.pending
}

// Reset clears any pending save.
func (d *Debouncer) Reset() {
	d.pending = false
}
