// Package source provides minimap frame sources: a looping mock image, a
// screen-region grabber, and a GStreamer-backed network stream. All sources
// implement FrameSource and are built through Build.
package source

import (
	"errors"
	"image"
)

// FrameSource yields minimap frames. Read returns (nil, nil) when the source
// has no more frames (end of stream); callers treat that as a clean stop.
type FrameSource interface {
	Read() (*image.RGBA, error)
	Close() error
}

// Sentinel errors wrapped by source implementations so callers can classify
// failures without string matching.
var (
	ErrConnect = errors.New("source: connect failed")
	ErrRead    = errors.New("source: read failed")
)
