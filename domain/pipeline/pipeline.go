package pipeline

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/minimap-caller-go/domain/callout"
)

// FrameReader is the pull side of a frame source. A (nil, nil) read means
// the source has ended.
type FrameReader interface {
	Read() (*image.RGBA, error)
}

// Detector finds the marker position in a frame.
type Detector interface {
	Detect(frame *image.RGBA) (image.Point, bool)
}

// PointMapper resolves a pixel position to a callout name.
type PointMapper interface {
	MapPoint(p callout.Point) (string, bool)
}

// Processor consumes per-frame callouts ("" when none) and decides
// whether to announce.
type Processor interface {
	Process(callout string, now time.Time) (string, bool)
}

// Ticker paces the loop between frames.
type Ticker interface {
	Tick()
}

// Pipeline wires source, detector, mapper and announcer into a linear
// frame loop. All stages run on the caller's goroutine.
type Pipeline struct {
	Source    FrameReader
	Detector  Detector
	Mapper    PointMapper
	Announcer Processor
	Clock     Ticker
	Logger    *slog.Logger
}

// Run processes frames until the source ends, ctx is cancelled, or
// maxFrames (when > 0) is reached. Returns the number of frames
// processed.
func (p *Pipeline) Run(ctx context.Context, maxFrames int) (int, error) {
	if p.Source == nil || p.Detector == nil || p.Mapper == nil || p.Announcer == nil {
		return 0, errors.New("pipeline: source, detector, mapper and announcer are required")
	}
	frames := 0
	for {
		if ctx != nil {
			select {
			case <-ctx.Done():
				return frames, ctx.Err()
			default:
			}
		}

		frame, err := p.Source.Read()
		if err != nil {
			return frames, err
		}
		if frame == nil {
			return frames, nil
		}

		var zone string
		point, found := p.Detector.Detect(frame)
		if found {
			zone, _ = p.Mapper.MapPoint(callout.Point{X: float64(point.X), Y: float64(point.Y)})
		}
		text, announced := p.Announcer.Process(zone, time.Now())
		if p.Logger != nil {
			p.Logger.Info("frame processed",
				"frame", frames,
				"detected", found,
				"x", point.X,
				"y", point.Y,
				"callout", zone,
				"announced", announced,
				"text", text,
			)
		}

		frames++
		if maxFrames > 0 && frames >= maxFrames {
			return frames, nil
		}
		if p.Clock != nil {
			p.Clock.Tick()
		}
	}
}
