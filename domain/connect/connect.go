// Package connect holds the pure connection state logic for the GUI: a small
// state machine tracking the active connect attempt, and a builder that maps
// connection state to control widget states. Keeping this free of UI code
// makes the async connect flow unit-testable.
package connect

import (
	"log/slog"
	"sync"
)

// State represents the high-level connection states of the frame source.
type State int

const (
	StateDisconnected State = iota // no source attached
	StateConnecting                // an attempt is in flight
	StateConnected                 // source attached and readable
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "unknown"
	}
}

// Listener is invoked on every successful state transition.
type Listener func(prev, next State)

// Machine coordinates connection state changes and screens out callbacks from
// stale connect attempts. Connect attempts run on worker goroutines and their
// completions race with timeouts and user cancellation; every completion path
// carries the attempt id it belongs to, and only the active attempt may
// finish. It is concurrency-safe.
type Machine struct {
	mu        sync.Mutex
	state     State
	logger    *slog.Logger
	listeners []Listener

	nextAttemptID   uint64
	activeAttemptID uint64 // 0 when no attempt is in flight
}

// NewMachine creates a machine starting in StateDisconnected.
func NewMachine(logger *slog.Logger) *Machine {
	return &Machine{state: StateDisconnected, logger: logger}
}

// AddListener registers a listener for state transitions.
func (m *Machine) AddListener(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, l)
}

// Current returns the current state.
func (m *Machine) Current() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Connecting reports whether an attempt is in flight.
func (m *Machine) Connecting() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activeAttemptID != 0
}

// transition performs the state change if it is an actual change.
// Caller must hold mu.
func (m *Machine) transition(next State) {
	prev := m.state
	if prev == next {
		return
	}
	m.state = next
	if m.logger != nil {
		m.logger.Debug("connect state transition", "from", prev.String(), "to", next.String())
	}
	for _, l := range m.listeners {
		l(prev, next)
	}
}

// StartAttempt begins a new connect attempt and returns its id. Any previous
// attempt becomes stale: its late completion callbacks will be ignored.
func (m *Machine) StartAttempt() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextAttemptID++
	m.activeAttemptID = m.nextAttemptID
	m.transition(StateConnecting)
	return m.activeAttemptID
}

// finish marks the attempt done if it is still the active one.
// Caller must hold mu.
func (m *Machine) finish(attemptID uint64) bool {
	if m.activeAttemptID == 0 || m.activeAttemptID != attemptID {
		return false
	}
	m.activeAttemptID = 0
	return true
}

// Succeed completes the attempt and moves to Connected. Returns false if the
// attempt was stale (cancelled, timed out, or superseded) and was ignored.
func (m *Machine) Succeed(attemptID uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.finish(attemptID) {
		return false
	}
	m.transition(StateConnected)
	return true
}

// Fail completes the attempt and moves to Disconnected. Returns false if the
// attempt was stale.
func (m *Machine) Fail(attemptID uint64, reason string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.finish(attemptID) {
		return false
	}
	if m.logger != nil {
		m.logger.Warn("connect attempt failed", "attempt", attemptID, "reason", reason)
	}
	m.transition(StateDisconnected)
	return true
}

// Timeout completes the attempt as a timeout. Returns false if the attempt
// already finished, so a timeout firing after success is a no-op.
func (m *Machine) Timeout(attemptID uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.finish(attemptID) {
		return false
	}
	if m.logger != nil {
		m.logger.Warn("connect attempt timed out", "attempt", attemptID)
	}
	m.transition(StateDisconnected)
	return true
}

// Cancel aborts the active attempt, if any, and returns its id. The worker
// for that id will find its completion rejected.
func (m *Machine) Cancel() (uint64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.activeAttemptID == 0 {
		return 0, false
	}
	id := m.activeAttemptID
	m.activeAttemptID = 0
	m.transition(StateDisconnected)
	return id, true
}

// Disconnect drops an established connection. In-flight attempts are left to
// Cancel; calling Disconnect while connecting is a no-op.
func (m *Machine) Disconnect() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.activeAttemptID != 0 {
		return
	}
	m.transition(StateDisconnected)
}
