package presenter

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/soocke/minimap-caller-go/config"
	"github.com/soocke/minimap-caller-go/domain/callout"
	"github.com/soocke/minimap-caller-go/ui/images"
	"github.com/soocke/minimap-caller-go/ui/model"
)

type fakeReader struct {
	frames []*image.RGBA
	errs   []error
	calls  int
}

func (f *fakeReader) Read() (*image.RGBA, error) {
	i := f.calls
	f.calls++
	var frame *image.RGBA
	var err error
	if i < len(f.frames) {
		frame = f.frames[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return frame, err
}

type fakeDetector struct {
	pt    image.Point
	found bool
}

func (d *fakeDetector) Detect(*image.RGBA) (image.Point, bool) { return d.pt, d.found }

type fakeMapper struct{ zone string }

func (m *fakeMapper) MapPoint(callout.Point) (string, bool) { return m.zone, m.zone != "" }

type fakeProcessor struct{ zones []string }

func (p *fakeProcessor) Process(zone string, _ time.Time) (string, bool) {
	p.zones = append(p.zones, zone)
	return "", false
}

type fakeFrameView struct {
	previews int
	last     image.Image
	statuses []string
	zones    []string
}

func (v *fakeFrameView) UpdatePreview(img image.Image) {
	v.previews++
	v.last = img
}
func (v *fakeFrameView) SetSourceStatus(text string) { v.statuses = append(v.statuses, text) }
func (v *fakeFrameView) SetZoneLabel(text string)    { v.zones = append(v.zones, text) }

func frames(n int) []*image.RGBA {
	out := make([]*image.RGBA, n)
	for i := range out {
		out[i] = image.NewRGBA(image.Rect(0, 0, 32, 32))
	}
	return out
}

func newFramePresenter(view *fakeFrameView) *FramePresenter {
	det := &model.DetectModel{}
	det.SetEnabled(true)
	return &FramePresenter{
		Detect:   det,
		Marker:   model.NewMarkerModel(),
		Detector: &fakeDetector{pt: image.Pt(5, 5), found: true},
		Mapper:   &fakeMapper{zone: "Long A"},
		Announce: &fakeProcessor{},
		View:     view,
		Config:   config.DefaultConfig(),
	}
}

func TestFramePresenterDetectAndAnnounce(t *testing.T) {
	view := &fakeFrameView{}
	p := newFramePresenter(view)
	proc := p.Announce.(*fakeProcessor)
	p.SetSource(&fakeReader{frames: frames(2)})

	p.Tick(time.Now())
	p.Tick(time.Now())

	if view.previews != 2 {
		t.Fatalf("previews = %d", view.previews)
	}
	if len(proc.zones) != 2 || proc.zones[0] != "Long A" {
		t.Fatalf("processed zones = %v", proc.zones)
	}
	if p.Marker.Zone() != "Long A" {
		t.Fatalf("marker zone = %q", p.Marker.Zone())
	}
	last := view.zones[len(view.zones)-1]
	if last != "Enemy near Long A" {
		t.Fatalf("zone label = %q", last)
	}
}

func TestFramePresenterDetectionDisabledSkipsAnnounce(t *testing.T) {
	view := &fakeFrameView{}
	p := newFramePresenter(view)
	p.Detect.SetEnabled(false)
	proc := p.Announce.(*fakeProcessor)
	p.SetSource(&fakeReader{frames: frames(1)})

	p.Tick(time.Now())

	if len(proc.zones) != 0 {
		t.Fatalf("announcer should not run when detection is off: %v", proc.zones)
	}
	if view.previews != 1 {
		t.Fatal("preview must still update with detection off")
	}
}

func TestFramePresenterEmptyZoneStillProcessed(t *testing.T) {
	// A detection outside every region must reach the announcer as an empty
	// zone so its stability window resets.
	view := &fakeFrameView{}
	p := newFramePresenter(view)
	p.Mapper = &fakeMapper{zone: ""}
	proc := p.Announce.(*fakeProcessor)
	p.SetSource(&fakeReader{frames: frames(1)})

	p.Tick(time.Now())

	if len(proc.zones) != 1 || proc.zones[0] != "" {
		t.Fatalf("processed zones = %v", proc.zones)
	}
}

func TestFramePresenterThreeFailuresDisconnect(t *testing.T) {
	view := &fakeFrameView{}
	p := newFramePresenter(view)
	var lost string
	p.OnSourceLost = func(reason string) { lost = reason }
	readErr := errors.New("device gone")
	p.SetSource(&fakeReader{errs: []error{readErr, readErr, readErr, readErr}})

	p.Tick(time.Now())
	p.Tick(time.Now())
	if lost != "" {
		t.Fatalf("disconnected too early: %q", lost)
	}
	p.Tick(time.Now())
	if lost == "" {
		t.Fatal("three consecutive failures should disconnect")
	}
	if p.Connected() {
		t.Fatal("source should be detached after loss")
	}

	// Further ticks are no-ops without a source.
	p.Tick(time.Now())
	if view.previews != 0 {
		t.Fatalf("no preview should render, got %d", view.previews)
	}
}

func TestFramePresenterFailureCounterResets(t *testing.T) {
	view := &fakeFrameView{}
	p := newFramePresenter(view)
	var lost bool
	p.OnSourceLost = func(string) { lost = true }
	readErr := errors.New("hiccup")
	f := frames(1)[0]
	p.SetSource(&fakeReader{
		frames: []*image.RGBA{nil, nil, f, nil, nil},
		errs:   []error{readErr, readErr, nil, readErr, readErr},
	})

	for i := 0; i < 5; i++ {
		p.Tick(time.Now())
	}
	if lost {
		t.Fatal("a good frame must reset the failure counter")
	}
}

func TestFramePresenterEndOfStreamDisconnects(t *testing.T) {
	view := &fakeFrameView{}
	p := newFramePresenter(view)
	var lost string
	p.OnSourceLost = func(reason string) { lost = reason }
	p.SetSource(&fakeReader{}) // returns (nil, nil) immediately

	p.Tick(time.Now())
	if lost != "source ended" {
		t.Fatalf("lost = %q", lost)
	}
}

func TestFramePresenterOverlaysNeverTouchRetainedFrame(t *testing.T) {
	// A minimap smaller than the preview is displayed unscaled; the overlay
	// pass must still draw onto a copy, never onto the frame LastFrame
	// exposes for the zoom crop.
	view := &fakeFrameView{}
	p := newFramePresenter(view)
	regions := model.NewRegionsModel()
	regions.Add(callout.BuildRectRegion("A Site", 0, 0, 8, 8))
	p.Regions = regions
	p.SetSource(&fakeReader{frames: []*image.RGBA{image.NewRGBA(image.Rect(0, 0, 10, 10))}})

	p.Tick(time.Now())

	last := p.LastFrame()
	if last == nil {
		t.Fatal("no frame retained")
	}
	for i, px := range last.Pix {
		if px != 0 {
			t.Fatalf("retained frame mutated at pix[%d] = %d", i, px)
		}
	}
	if view.previews != 1 {
		t.Fatalf("previews = %d", view.previews)
	}
}

func TestFramePresenterDrawsDraftRectangle(t *testing.T) {
	view := &fakeFrameView{}
	p := newFramePresenter(view)
	p.Detect.SetEnabled(false)
	p.Draft = func() (image.Rectangle, bool) { return image.Rect(2, 2, 8, 8), true }
	p.SetSource(&fakeReader{frames: frames(1)})

	p.Tick(time.Now())

	canvas, ok := view.last.(*image.RGBA)
	if !ok {
		t.Fatalf("preview image type %T", view.last)
	}
	if got := canvas.RGBAAt(2, 2); got != images.ColorRegionAct {
		t.Fatalf("draft corner pixel = %v", got)
	}
	if got := canvas.RGBAAt(5, 2); got != images.ColorRegionAct {
		t.Fatalf("draft top edge pixel = %v", got)
	}
	if got := canvas.RGBAAt(5, 5); got.A != 0 {
		t.Fatalf("draft interior should stay untouched, got %v", got)
	}
}
