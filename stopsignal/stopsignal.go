// Package stopsignal implements the single-slot monotonic shutdown signal
// shared by the application controller and every component task.
package stopsignal

import "sync"

// Flag is a single-slot monotonic boolean with a wake primitive. Trigger is
// idempotent; WaitUntilSet returns immediately if already set, otherwise it
// blocks until set. Every component's parent task and every worker selects
// over the channel returned by C alongside its normal progress condition.
type Flag struct {
	once sync.Once
	ch   chan struct{}
}

// New returns an unset Flag.
func New() *Flag {
	return &Flag{ch: make(chan struct{})}
}

// Trigger sets the flag and wakes every waiter exactly once. Calling it a
// second time is a safe no-op.
func (f *Flag) Trigger() {
	f.once.Do(func() { close(f.ch) })
}

// C returns a channel that is closed exactly once, when Trigger is called.
// Framework-managed loops select on it alongside their own progress
// condition so shutdown is cooperative rather than polled.
func (f *Flag) C() <-chan struct{} {
	return f.ch
}

// IsSet reports whether Trigger has been called.
func (f *Flag) IsSet() bool {
	select {
	case <-f.ch:
		return true
	default:
		return false
	}
}

// WaitUntilSet blocks until Trigger has been called.
func (f *Flag) WaitUntilSet() {
	<-f.ch
}
