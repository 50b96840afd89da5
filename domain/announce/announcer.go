package announce

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Speaker is the minimal speech contract the announcer needs.
type Speaker interface {
	Say(text string) error
}

// Announcer gates speech behind a stability filter and a per-callout
// cooldown. A callout must be seen on StableFrames consecutive frames
// before it is spoken, and the same callout is suppressed until the
// cooldown has fully elapsed.
//
// Not safe for concurrent use; call Process from a single goroutine.
type Announcer struct {
	speaker      Speaker
	logger       *slog.Logger
	cooldown     time.Duration
	stableFrames int

	candidate      string
	candidateCount int
	lastAnnounced  map[string]time.Time
}

// NewAnnouncer returns a configured Announcer. StableFrames must be at
// least 1.
func NewAnnouncer(speaker Speaker, cooldown time.Duration, stableFrames int, logger *slog.Logger) (*Announcer, error) {
	if speaker == nil {
		return nil, errors.New("announce: speaker is required")
	}
	if stableFrames <= 0 {
		return nil, errors.New("announce: stable frames must be greater than 0")
	}
	if cooldown < 0 {
		cooldown = 0
	}
	return &Announcer{
		speaker:       speaker,
		logger:        logger,
		cooldown:      cooldown,
		stableFrames:  stableFrames,
		lastAnnounced: make(map[string]time.Time),
	}, nil
}

// Process feeds the current frame's callout ("" when nothing was
// detected) and returns the spoken text when an announcement fired.
func (a *Announcer) Process(callout string, now time.Time) (string, bool) {
	if callout == "" {
		a.candidate = ""
		a.candidateCount = 0
		return "", false
	}

	if callout == a.candidate {
		a.candidateCount++
	} else {
		a.candidate = callout
		a.candidateCount = 1
	}
	if a.candidateCount < a.stableFrames {
		return "", false
	}

	if last, seen := a.lastAnnounced[callout]; seen && now.Sub(last) < a.cooldown {
		return "", false
	}

	text := fmt.Sprintf("Enemy near %s", callout)
	if err := a.speaker.Say(text); err != nil && a.logger != nil {
		a.logger.Error("speech failed", "callout", callout, "error", err)
	}
	a.lastAnnounced[callout] = now
	if a.logger != nil {
		a.logger.Info("callout announced", "callout", callout)
	}
	return text, true
}

// Reset clears the stability window and cooldown bookkeeping.
func (a *Announcer) Reset() {
	a.candidate = ""
	a.candidateCount = 0
	a.lastAnnounced = make(map[string]time.Time)
}
