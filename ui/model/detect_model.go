package model

import (
	"sync/atomic"
)

// DetectModel tracks whether detection is enabled. The zero value is disabled
// and usable. Concurrency-safe via atomic Bool because UI callbacks and
// presenter ticks may race.
type DetectModel struct{ enabled atomic.Bool }

// Enabled reports whether detection is currently enabled.
func (m *DetectModel) Enabled() bool {
	if m == nil {
		return false
	}
	return m.enabled.Load()
}

// SetEnabled stores the enabled flag.
func (m *DetectModel) SetEnabled(b bool) {
	if m == nil {
		return
	}
	prev := m.enabled.Load()
	if prev == b { // no change
		return
	}
	m.enabled.Store(b)
}

// Toggle flips the flag and returns the new value.
func (m *DetectModel) Toggle() bool {
	if m == nil {
		return false
	}
	next := !m.enabled.Load()
	m.enabled.Store(next)
	return next
}
