package pipeline

import (
	"context"
	"errors"
	"image"
	"testing"
	"time"

	"github.com/soocke/minimap-caller-go/domain/callout"
)

type scriptedSource struct {
	frames int
	served int
	err    error
}

func (s *scriptedSource) Read() (*image.RGBA, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.served >= s.frames {
		return nil, nil
	}
	s.served++
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

type fixedDetector struct {
	point image.Point
	found bool
}

func (d fixedDetector) Detect(*image.RGBA) (image.Point, bool) { return d.point, d.found }

type fixedMapper struct{ name string }

func (m fixedMapper) MapPoint(callout.Point) (string, bool) { return m.name, m.name != "" }

type recordingProcessor struct {
	callouts []string
}

func (r *recordingProcessor) Process(c string, _ time.Time) (string, bool) {
	r.callouts = append(r.callouts, c)
	return c, c != ""
}

type countingClock struct{ ticks int }

func (c *countingClock) Tick() { c.ticks++ }

func newPipeline(src *scriptedSource, det Detector, m PointMapper, proc Processor, clk Ticker) *Pipeline {
	return &Pipeline{Source: src, Detector: det, Mapper: m, Announcer: proc, Clock: clk}
}

func TestPipeline_StopsAtSourceEnd(t *testing.T) {
	proc := &recordingProcessor{}
	p := newPipeline(&scriptedSource{frames: 3}, fixedDetector{image.Pt(2, 2), true}, fixedMapper{"Mid"}, proc, &countingClock{})
	n, err := p.Run(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Fatalf("expected 3 frames, got %d", n)
	}
	if len(proc.callouts) != 3 || proc.callouts[0] != "Mid" {
		t.Fatalf("unexpected callouts: %v", proc.callouts)
	}
}

func TestPipeline_MaxFramesCap(t *testing.T) {
	clk := &countingClock{}
	p := newPipeline(&scriptedSource{frames: 100}, fixedDetector{}, fixedMapper{}, &recordingProcessor{}, clk)
	n, err := p.Run(context.Background(), 5)
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Fatalf("expected cap at 5 frames, got %d", n)
	}
	// No tick after the final frame.
	if clk.ticks != 4 {
		t.Fatalf("expected 4 ticks, got %d", clk.ticks)
	}
}

func TestPipeline_NoDetectionYieldsEmptyCallout(t *testing.T) {
	proc := &recordingProcessor{}
	p := newPipeline(&scriptedSource{frames: 2}, fixedDetector{found: false}, fixedMapper{"Mid"}, proc, nil)
	if _, err := p.Run(context.Background(), 0); err != nil {
		t.Fatal(err)
	}
	for _, c := range proc.callouts {
		t.Logf("callout %q", c)
		if c != "" {
			t.Fatal("no detection must produce an empty callout")
		}
	}
}

func TestPipeline_SourceErrorPropagates(t *testing.T) {
	wantErr := errors.New("read failed")
	p := newPipeline(&scriptedSource{err: wantErr}, fixedDetector{}, fixedMapper{}, &recordingProcessor{}, nil)
	if _, err := p.Run(context.Background(), 0); !errors.Is(err, wantErr) {
		t.Fatalf("expected source error, got %v", err)
	}
}

func TestPipeline_ContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := newPipeline(&scriptedSource{frames: 100}, fixedDetector{}, fixedMapper{}, &recordingProcessor{}, nil)
	if _, err := p.Run(ctx, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestPipeline_MissingStages(t *testing.T) {
	p := &Pipeline{}
	if _, err := p.Run(context.Background(), 1); err == nil {
		t.Fatal("missing stages must error")
	}
}

func TestFrameClock_Validation(t *testing.T) {
	if _, err := NewFrameClock(0); err == nil {
		t.Fatal("fps 0 must be rejected")
	}
	if _, err := NewFrameClock(-2); err == nil {
		t.Fatal("negative fps must be rejected")
	}
	c, err := NewFrameClock(16)
	if err != nil {
		t.Fatal(err)
	}
	if c.Interval() != time.Second/16 {
		t.Fatalf("unexpected interval %v", c.Interval())
	}
}

func TestFrameClock_SleepsUntilSlot(t *testing.T) {
	c, _ := NewFrameClock(10)
	base := time.Unix(0, 0)
	cur := base
	var slept time.Duration
	c.now = func() time.Time { return cur }
	c.sleep = func(d time.Duration) { slept += d; cur = cur.Add(d) }
	c.nextTick = base.Add(100 * time.Millisecond)

	c.Tick()
	if slept != 100*time.Millisecond {
		t.Fatalf("expected 100ms sleep, got %v", slept)
	}
	if c.nextTick != base.Add(200*time.Millisecond) {
		t.Fatalf("next tick should advance by the interval, got %v", c.nextTick)
	}
}

func TestFrameClock_OverrunDoesNotAccumulateDebt(t *testing.T) {
	c, _ := NewFrameClock(10)
	base := time.Unix(0, 0)
	cur := base.Add(time.Second) // far past the scheduled slot
	c.now = func() time.Time { return cur }
	c.sleep = func(d time.Duration) { t.Fatalf("must not sleep when behind, asked for %v", d) }
	c.nextTick = base

	c.Tick()
	if c.nextTick.Before(cur) {
		t.Fatalf("next tick must be rescheduled from now, got %v (now %v)", c.nextTick, cur)
	}
}
