package presenter

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	"github.com/soocke/minimap-caller-go/config"
	"github.com/soocke/minimap-caller-go/domain/callout"
	"github.com/soocke/minimap-caller-go/ui/images"
	"github.com/soocke/minimap-caller-go/ui/model"
)

// readFailureThreshold is how many consecutive read failures disconnect the
// source automatically.
const readFailureThreshold = 3

// FrameReader supplies the next minimap frame.
type FrameReader interface {
	Read() (*image.RGBA, error)
}

// Detector finds the enemy marker in a frame.
type Detector interface {
	Detect(frame *image.RGBA) (image.Point, bool)
}

// ZoneMapper resolves a frame position to a zone name.
type ZoneMapper interface {
	MapPoint(p callout.Point) (string, bool)
}

// Processor applies stability and cooldown filtering and speaks callouts.
type Processor interface {
	Process(zone string, now time.Time) (string, bool)
}

// RegionsProvider exposes the regions to outline on the preview.
type RegionsProvider interface {
	Regions() []callout.Region
}

// FrameView is the UI surface updated every tick.
type FrameView interface {
	UpdatePreview(img image.Image)
	SetSourceStatus(text string)
	SetZoneLabel(text string)
}

// FramePresenter drives the per-tick frame path: read, detect, map, announce,
// overlay, display. A read failure is tolerated up to readFailureThreshold
// consecutive times; then OnSourceLost fires so the app can disconnect and
// surface a banner instead of spinning on a dead source.
type FramePresenter struct {
	Detect   *model.DetectModel
	Marker   *model.MarkerModel
	Detector Detector
	Mapper   ZoneMapper
	Announce Processor
	Regions  RegionsProvider
	View     FrameView
	Config   *config.Config
	Logger   *slog.Logger

	// OnSourceLost is invoked (on the UI thread, from Tick) after too many
	// consecutive read failures or when the source reports end of stream.
	OnSourceLost func(reason string)

	// ActiveRegion returns the region name to highlight, empty for none.
	ActiveRegion func() string

	// Draft returns the in-progress drag rectangle in preview coordinates,
	// drawn highlighted until the drag ends.
	Draft func() (image.Rectangle, bool)

	source   FrameReader
	failures int
	last     *image.RGBA
}

// SetSource attaches the frame source; nil detaches. Resets the failure
// counter and the current marker.
func (p *FramePresenter) SetSource(src FrameReader) {
	if p == nil {
		return
	}
	p.source = src
	p.failures = 0
	p.last = nil
	if p.Marker != nil {
		p.Marker.Clear()
	}
}

// LastFrame returns the most recent frame, nil before the first good read.
func (p *FramePresenter) LastFrame() *image.RGBA {
	if p == nil {
		return nil
	}
	return p.last
}

// Connected reports whether a source is attached. Satisfies the session
// presenter's model contract.
func (p *FramePresenter) Connected() bool {
	return p != nil && p.source != nil
}

// Tick processes one frame. Call from the UI update loop.
func (p *FramePresenter) Tick(now time.Time) {
	if p == nil || p.View == nil || p.source == nil {
		return
	}

	frame, err := p.source.Read()
	if err != nil {
		p.failures++
		if p.Logger != nil {
			p.Logger.Warn("frame read failed", "attempt", p.failures, "error", err)
		}
		if p.failures >= readFailureThreshold {
			p.sourceLost(fmt.Sprintf("read failed %d times in a row", p.failures))
			return
		}
		p.View.SetSourceStatus(fmt.Sprintf("read error (%d/%d)", p.failures, readFailureThreshold))
		return
	}
	if frame == nil {
		p.sourceLost("source ended")
		return
	}
	if p.failures > 0 {
		p.failures = 0
		p.View.SetSourceStatus("connected")
	}
	p.last = frame

	zone := ""
	if p.Detect.Enabled() && p.Detector != nil {
		if pt, found := p.Detector.Detect(frame); found {
			if p.Mapper != nil {
				zone, _ = p.Mapper.MapPoint(callout.Point{X: float64(pt.X), Y: float64(pt.Y)})
			}
			if p.Marker != nil {
				p.Marker.Set(pt, zone)
			}
		} else if p.Marker != nil {
			p.Marker.Clear()
		}
		if p.Announce != nil {
			p.Announce.Process(zone, now)
		}
	}
	p.updateZoneLabel()
	p.render(frame)
}

func (p *FramePresenter) updateZoneLabel() {
	if !p.Detect.Enabled() {
		p.View.SetZoneLabel("detection off")
		return
	}
	if zone := p.Marker.Zone(); zone != "" {
		p.View.SetZoneLabel("Enemy near " + zone)
		return
	}
	if _, ok := p.Marker.Marker(); ok {
		p.View.SetZoneLabel("enemy outside known zones")
		return
	}
	p.View.SetZoneLabel("no enemy detected")
}

// render scales the frame for display and draws region and marker overlays.
func (p *FramePresenter) render(frame *image.RGBA) {
	maxW, maxH := 640, 480
	if p.Config != nil {
		maxW, maxH = p.Config.PreviewMaxW, p.Config.PreviewMaxH
	}
	b := frame.Bounds()
	ratio := images.ScaleRatio(b.Dx(), b.Dy(), maxW, maxH)
	canvas, ok := images.ScaleToFit(frame, maxW, maxH).(*image.RGBA)
	if !ok || canvas == frame {
		// ScaleToFit hands back the source image when it already fits, so
		// copy before drawing to keep the retained frame clean.
		canvas = image.NewRGBA(b)
		copy(canvas.Pix, frame.Pix)
	}

	active := ""
	if p.ActiveRegion != nil {
		active = p.ActiveRegion()
	}
	if p.Regions != nil {
		images.DrawRegions(canvas, p.Regions.Regions(), ratio, active)
	}
	if pt, found := p.Marker.Marker(); found {
		images.DrawMarker(canvas, pt, ratio)
	}
	if p.Draft != nil {
		if r, ok := p.Draft(); ok {
			images.DrawRect(canvas, r, images.ColorRegionAct)
		}
	}
	p.View.UpdatePreview(canvas)
}

func (p *FramePresenter) sourceLost(reason string) {
	p.failures = 0
	p.source = nil
	if p.Marker != nil {
		p.Marker.Clear()
	}
	if p.Logger != nil {
		p.Logger.Error("source lost", "reason", reason)
	}
	p.View.SetSourceStatus("disconnected")
	if p.OnSourceLost != nil {
		p.OnSourceLost(reason)
	}
}
