//go:build windows

package app

import (
	"log/slog"
	"time"

	"github.com/soocke/minimap-caller-go/debug"
)

// startPlatformDebug adds the RSS logger on Windows where working set
// queries are available.
func startPlatformDebug(logger *slog.Logger) {
	debug.StartMemLogger(2*time.Second, logger)
}
