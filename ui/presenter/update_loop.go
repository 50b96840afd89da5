package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick on the sub-presenters and invokes a scheduler callback.
// The zero value is usable (methods are nil-safe).
type Loop struct {
	Frame    *FramePresenter
	Session  *SessionPresenter
	Schedule func()
}

func NewLoop(frame *FramePresenter, sess *SessionPresenter, schedule func()) *Loop {
	return &Loop{Frame: frame, Session: sess, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Frame != nil {
		l.Frame.Tick(now)
	}
	if l.Session != nil {
		l.Session.Tick(now)
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
