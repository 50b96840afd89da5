package tts

import (
	"fmt"
	"log/slog"
	"strings"
)

// Speaker voices announcement text. Implementations must be safe to call
// repeatedly from the frame loop goroutine.
type Speaker interface {
	Say(text string) error
}

// ConsoleSpeaker prints the text instead of speaking. It is the fallback
// when no speech engine is available.
type ConsoleSpeaker struct {
	Logger *slog.Logger
}

func (c *ConsoleSpeaker) Say(text string) error {
	if c.Logger != nil {
		c.Logger.Info("tts", "text", text)
		return nil
	}
	fmt.Printf("[TTS] %s\n", text)
	return nil
}

// New builds a Speaker for the requested backend: auto, native or console.
// auto tries the native engine and silently falls back to console; asking
// for native explicitly surfaces the init error.
func New(backend string, logger *slog.Logger) (Speaker, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "console":
		return &ConsoleSpeaker{Logger: logger}, nil
	case "native":
		spk, err := NewNativeSpeaker(logger)
		if err != nil {
			return nil, fmt.Errorf("tts: native backend init failed: %w", err)
		}
		return spk, nil
	case "auto", "":
		if spk, err := NewNativeSpeaker(logger); err == nil {
			return spk, nil
		} else if logger != nil {
			logger.Warn("native tts unavailable, falling back to console", "error", err)
		}
		return &ConsoleSpeaker{Logger: logger}, nil
	default:
		return nil, fmt.Errorf("tts: unknown backend %q (want auto, native or console)", backend)
	}
}

// Backends lists the supported backend selector values.
func Backends() []string { return []string{"auto", "native", "console"} }
