// Package atomicword holds an entire small entity packed into a single 64-bit
// word and mutates it through lock-free compare-and-swap transitions.
package atomicword

import "sync/atomic"

// Word is a packed-state cell shared by any number of concurrent readers and
// writers. The zero value is ready to use and holds 0.
type Word struct {
	value atomic.Uint64
}

// Load returns the current packed value.
func (that *Word) Load() uint64 {
	return that.value.Load()
}

// Store unconditionally replaces the packed value.
func (that *Word) Store(v uint64) {
	that.value.Store(v)
}

// Update applies a pure transition to the current value until the swap lands.
//
// The transition must be a pure function of its argument: on contention it is
// re-invoked against the freshly observed value. Returning ok=false means the
// transition cannot proceed given the current state; Update then stops and
// reports the value it observed. No lock is held at any point.
func (that *Word) Update(transition func(old uint64) (uint64, bool)) (uint64, bool) {
	for {
		old := that.value.Load()

		next, ok := transition(old)
		if !ok {
			return old, false
		}

		if that.value.CompareAndSwap(old, next) {
			return next, true
		}
	}
}
