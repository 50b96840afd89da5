package tts

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	htgotts "github.com/hegedustibor/htgo-tts"
	"github.com/hegedustibor/htgo-tts/handlers"
	"github.com/hegedustibor/htgo-tts/voices"
)

// NativeSpeaker synthesizes speech with htgo-tts and plays it through the
// native audio handler. Synthesized clips are cached in a temp folder so a
// repeated callout does not re-synthesize.
type NativeSpeaker struct {
	speech *htgotts.Speech
	logger *slog.Logger
}

// NewNativeSpeaker prepares the audio cache folder and the speech engine.
func NewNativeSpeaker(logger *slog.Logger) (*NativeSpeaker, error) {
	folder := filepath.Join(os.TempDir(), "minimap-caller-tts")
	if err := os.MkdirAll(folder, 0o755); err != nil {
		return nil, fmt.Errorf("tts: create cache folder: %w", err)
	}
	return &NativeSpeaker{
		speech: &htgotts.Speech{
			Folder:   folder,
			Language: voices.English,
			Handler:  &handlers.Native{},
		},
		logger: logger,
	}, nil
}

func (n *NativeSpeaker) Say(text string) error {
	if n == nil || n.speech == nil {
		return fmt.Errorf("tts: native speaker not initialized")
	}
	if err := n.speech.Speak(text); err != nil {
		return fmt.Errorf("tts: speak: %w", err)
	}
	if n.logger != nil {
		n.logger.Debug("spoke", "text", text)
	}
	return nil
}
