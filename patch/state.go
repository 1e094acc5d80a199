package patch

import "sync/atomic"

// State records whether a library is currently patched.
//
// Transitions happen only through MarkPatched and MarkUnpatched, each of
// which is a no-op when the state already matches. Reads are safe from any
// goroutine.
type State struct {
	patched atomic.Bool
}

// Patched reports whether the library is patched.
func (s *State) Patched() bool {
	return s.patched.Load()
}

// MarkPatched flips the state to patched. It reports false if it already was.
func (s *State) MarkPatched() bool {
	return s.patched.CompareAndSwap(false, true)
}

// MarkUnpatched flips the state to unpatched. It reports false if it already was.
func (s *State) MarkUnpatched() bool {
	return s.patched.CompareAndSwap(true, false)
}
