package view

import (
	"image"

	"github.com/soocke/minimap-caller-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Preview shows the live minimap frame with overlays, plus a zoom of the
// currently selected region. It owns two LabelWidgets and provides methods to
// update or reset them.
type Preview interface {
	UpdatePreview(img image.Image)
	UpdateZoom(img image.Image)
	Reset()
}

type preview struct {
	frameLabel *LabelWidget
	zoomLabel  *LabelWidget
	prevFrame  *Img // last Tk photo image instance for the frame
	prevZoom   *Img // last Tk photo image instance for the zoom
}

// Internal state tracks current preview photos so we can dispose old images
// before replacing them, preventing accumulation of off-screen image data.

// PreviewCallbacks receives mouse events on the frame label, in label
// coordinates. Used to drag out new regions directly on the preview.
type PreviewCallbacks struct {
	OnPress   func(x, y int)
	OnDrag    func(x, y int)
	OnRelease func(x, y int)
}

// NewPreview creates the preview labels, grids them and returns the view.
// Layout: frame spans columns 0-3; the region zoom sits at column 4.
func NewPreview(row int, cb PreviewCallbacks) Preview {
	placeholder := image.NewRGBA(image.Rect(0, 0, 320, 240))
	pngBytes := images.EncodePNG(placeholder)
	framePhoto := NewPhoto(Data(pngBytes))
	zoomPhoto := NewPhoto(Data(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 120, 120)))))
	frame := Label(Image(framePhoto), Borderwidth(1), Relief("sunken"))
	zoom := Label(Image(zoomPhoto), Borderwidth(1), Relief("sunken"))
	Grid(frame, Row(row), Column(0), Columnspan(4), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	Grid(zoom, Row(row), Column(4), Columnspan(1), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	if cb.OnPress != nil {
		Bind(frame, "<ButtonPress-1>", Command(func(e *Event) { cb.OnPress(int(e.X), int(e.Y)) }))
	}
	if cb.OnDrag != nil {
		Bind(frame, "<B1-Motion>", Command(func(e *Event) { cb.OnDrag(int(e.X), int(e.Y)) }))
	}
	if cb.OnRelease != nil {
		Bind(frame, "<ButtonRelease-1>", Command(func(e *Event) { cb.OnRelease(int(e.X), int(e.Y)) }))
	}
	return &preview{frameLabel: frame, zoomLabel: zoom, prevFrame: framePhoto, prevZoom: zoomPhoto}
}

func (v *preview) UpdatePreview(img image.Image) {
	if v == nil || v.frameLabel == nil || img == nil {
		return
	}
	pngBytes := images.EncodePNG(img)
	// Replace previous photo to avoid retaining obsolete pixel buffers.
	if v.prevFrame != nil {
		v.prevFrame.Delete()
	}
	newPhoto := NewPhoto(Data(pngBytes))
	v.prevFrame = newPhoto
	v.frameLabel.Configure(Image(newPhoto))
}

func (v *preview) UpdateZoom(img image.Image) {
	if v == nil || v.zoomLabel == nil || img == nil {
		return
	}
	scaled := images.ScaleToFit(img, 160, 160)
	pngBytes := images.EncodePNG(scaled)
	if v.prevZoom != nil {
		v.prevZoom.Delete()
	}
	newPhoto := NewPhoto(Data(pngBytes))
	v.prevZoom = newPhoto
	v.zoomLabel.Configure(Image(newPhoto))
}

func (v *preview) Reset() {
	if v == nil {
		return
	}
	if v.frameLabel != nil {
		if v.prevFrame != nil {
			v.prevFrame.Delete()
		}
		v.prevFrame = NewPhoto(Data(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 320, 240)))))
		v.frameLabel.Configure(Image(v.prevFrame))
	}
	if v.zoomLabel != nil {
		if v.prevZoom != nil {
			v.prevZoom.Delete()
		}
		v.prevZoom = NewPhoto(Data(images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 120, 120)))))
		v.zoomLabel.Configure(Image(v.prevZoom))
	}
}
