package tts

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestNew_Console(t *testing.T) {
	spk, err := New("console", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := spk.(*ConsoleSpeaker); !ok {
		t.Fatalf("expected ConsoleSpeaker, got %T", spk)
	}
}

func TestNew_UnknownBackend(t *testing.T) {
	if _, err := New("bogus", nil); err == nil {
		t.Fatal("unknown backend must error")
	}
}

func TestNew_CaseAndWhitespaceInsensitive(t *testing.T) {
	if _, err := New("  Console ", nil); err != nil {
		t.Fatalf("trimmed/uppercased selector should work: %v", err)
	}
}

func TestConsoleSpeaker_LogsThroughLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	spk := &ConsoleSpeaker{Logger: logger}
	if err := spk.Say("Enemy near Mid"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "Enemy near Mid") {
		t.Fatalf("expected spoken text in log output, got %q", buf.String())
	}
}

func TestBackendsListedInFactory(t *testing.T) {
	for _, b := range Backends() {
		if b == "native" {
			// Native requires an audio device; only verify the selector
			// is recognized (it may still fail to initialize).
			if _, err := New(b, nil); err != nil && !strings.Contains(err.Error(), "native backend init failed") {
				t.Fatalf("native selector mis-routed: %v", err)
			}
			continue
		}
		if _, err := New(b, nil); err != nil {
			t.Fatalf("backend %q should construct: %v", b, err)
		}
	}
}
