package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats updates the connected-time and total-time labels.
type SessionStats interface {
	SetSession(session, total time.Duration)
}

type sessionStats struct {
	sessionLbl *LabelWidget
	totalLbl   *LabelWidget
}

// NewSessionStats creates session and total duration labels in a grid layout.
// The session label is placed at (row, startCol) and total label at (row, startCol+1).
func NewSessionStats(row, startCol int) SessionStats {
	s := &sessionStats{sessionLbl: Label(Width(16)), totalLbl: Label(Width(16))}
	Grid(s.sessionLbl, Row(row), Column(startCol), Sticky("w"), Padx("0.2m"))
	Grid(s.totalLbl, Row(row), Column(startCol+1), Sticky("w"), Padx("0.2m"))
	s.sessionLbl.Configure(Txt("Connected: 00:00"))
	s.totalLbl.Configure(Txt("Total: 00:00"))
	return s
}

// SetSession updates both duration displays.
func (s *sessionStats) SetSession(session, total time.Duration) {
	if s == nil {
		return
	}
	if s.sessionLbl != nil {
		s.sessionLbl.Configure(Txt("Connected: " + fmtMinSec(session)))
	}
	if s.totalLbl != nil {
		s.totalLbl.Configure(Txt("Total: " + fmtMinSec(total)))
	}
}

func fmtMinSec(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
