package presenter

import (
	"time"

	"github.com/soocke/minimap-caller-go/ui/model"
)

// ConnectedModel reports whether a source is currently attached.
type ConnectedModel interface{ Connected() bool }

// SessionView displays formatted session and total durations.
type SessionView interface {
	SetSession(session, total time.Duration)
}

// SessionPresenter formats session and total durations from the model to the view.
type SessionPresenter struct {
	sess *model.SessionModel
	conn ConnectedModel
	view SessionView
}

// NewSessionPresenter returns a new SessionPresenter.
func NewSessionPresenter(sess *model.SessionModel, conn ConnectedModel, view SessionView) *SessionPresenter {
	return &SessionPresenter{sess: sess, conn: conn, view: view}
}

// Tick updates the presenter: advance the session model and push values to the view.
func (p *SessionPresenter) Tick(now time.Time) {
	if p == nil || p.sess == nil || p.conn == nil || p.view == nil {
		return
	}
	p.sess.OnTick(p.conn.Connected(), now)
	s, t := p.sess.Values()
	p.view.SetSession(s, t)
}
