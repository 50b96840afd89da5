//go:build !windows

package app

import "log/slog"

func startPlatformDebug(_ *slog.Logger) {}
