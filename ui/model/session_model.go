package model

import (
	"time"
)

// SessionModel tracks how long the current source connection has been up and
// the accumulated connected time across reconnects. It is decoupled from the
// UI; presenters should poll Values() and update views. The zero value is
// ready to use.
type SessionModel struct {
	active              bool
	connectStart        time.Time
	lastSessionDuration time.Duration
	accumulated         time.Duration
}

// NewSessionModel returns a pointer to a ready-to-use SessionModel.
func NewSessionModel() *SessionModel { return &SessionModel{} }

// OnTick updates the model using the current connection state and timestamp.
// Call periodically (for example, from a presenter tick).
func (m *SessionModel) OnTick(connected bool, now time.Time) {
	if m == nil {
		return
	}
	if connected {
		if !m.active { // transition off -> on
			m.active = true
			m.connectStart = now
			m.lastSessionDuration = 0
		}
		m.lastSessionDuration = now.Sub(m.connectStart)
	} else if m.active { // transition on -> off
		m.lastSessionDuration = now.Sub(m.connectStart)
		m.accumulated += m.lastSessionDuration
		m.active = false
	}
}

// Values returns the current session duration and the total accumulated
// duration. The total includes the ongoing session when active.
func (m *SessionModel) Values() (session, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	session = m.lastSessionDuration
	total = m.accumulated
	if m.active {
		total += session
	}
	return
}
