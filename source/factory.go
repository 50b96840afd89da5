package source

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/soocke/minimap-caller-go/config"
)

// Source modes accepted by Build.
const (
	ModeMock   = "mock"
	ModeScreen = "screen"
	ModeStream = "stream"
)

// Factory error codes, stable across releases so UI code can map them to
// user-facing banners.
const (
	CodeBadMode             = "bad_mode"
	CodeEmptySource         = "empty_source"
	CodeMockOpenFailed      = "mock_open_failed"
	CodeRegionInvalid       = "region_invalid"
	CodeStreamConnectFailed = "stream_connect_failed"
)

// FactoryError classifies why a source could not be built.
type FactoryError struct {
	Code    string
	Message string
}

func (e *FactoryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Modes lists the source modes in display order.
func Modes() []string {
	return []string{ModeMock, ModeScreen, ModeStream}
}

// Build constructs a frame source for the given mode and source text. The
// source text means different things per mode: an image path for mock, an
// "x,y,WxH" region for screen, a stream URL for stream. All failures come
// back as *FactoryError.
func Build(mode, sourceText string, logger *slog.Logger) (FrameSource, error) {
	mode = strings.ToLower(strings.TrimSpace(mode))
	sourceText = strings.TrimSpace(sourceText)

	switch mode {
	case ModeMock, ModeScreen, ModeStream:
	default:
		return nil, &FactoryError{Code: CodeBadMode, Message: fmt.Sprintf("unknown source mode %q", mode)}
	}
	if sourceText == "" {
		return nil, &FactoryError{Code: CodeEmptySource, Message: "source is empty"}
	}

	switch mode {
	case ModeMock:
		src, err := NewMockImageSource(sourceText)
		if err != nil {
			return nil, &FactoryError{Code: CodeMockOpenFailed, Message: err.Error()}
		}
		return src, nil
	case ModeScreen:
		src, err := NewScreenRegionSource(sourceText)
		if err != nil {
			return nil, &FactoryError{Code: CodeRegionInvalid, Message: err.Error()}
		}
		return src, nil
	default: // ModeStream
		// Handshake before committing to a full pipeline, so a dead URL
		// fails within the probe timeout instead of the connect timeout.
		ctx, cancel := context.WithTimeout(context.Background(), config.ProbeTimeout(config.EnvMap(os.Environ())))
		defer cancel()
		if res := ProbeStream(ctx, sourceText, logger); !res.OK {
			return nil, &FactoryError{Code: CodeStreamConnectFailed, Message: "handshake probe: " + res.Detail}
		}
		src, err := NewStreamSource(sourceText, logger)
		if err != nil {
			return nil, &FactoryError{Code: CodeStreamConnectFailed, Message: err.Error()}
		}
		return src, nil
	}
}
