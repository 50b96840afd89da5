package presenter

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/soocke/minimap-caller-go/source"
)

// minDragSide is the smallest preview-pixel side length a drag must reach to
// count as a region; anything smaller is treated as an accidental click.
const minDragSide = 3

// MapDragToFrame converts a drag rectangle from preview coordinates back to
// frame coordinates using the preview scale ratio. Reports false for a
// missing ratio or a drag too small to be a deliberate rectangle.
func MapDragToFrame(r image.Rectangle, ratio float64) (x1, y1, x2, y2 float64, ok bool) {
	if ratio <= 0 || r.Dx() < minDragSide || r.Dy() < minDragSide {
		return 0, 0, 0, 0, false
	}
	return float64(r.Min.X) / ratio, float64(r.Min.Y) / ratio,
		float64(r.Max.X) / ratio, float64(r.Max.Y) / ratio, true
}

// AutofillSource returns the text to pre-fill in the source entry when the
// user switches to a mode and the entry is empty. Only stream mode benefits
// from a template; paths and regions are machine-specific.
func AutofillSource(mode string) string {
	if mode == source.ModeStream {
		return "rtsp://localhost:8554/minimap"
	}
	return ""
}

// ModeHint returns the one-line helper text shown under the source entry for
// the given mode.
func ModeHint(mode string) string {
	switch mode {
	case source.ModeMock:
		return "Path to a still minimap image, replayed every frame"
	case source.ModeScreen:
		return "Screen region as x,y,WxH, e.g. 100,200,320x240"
	case source.ModeStream:
		return "Stream URL, e.g. rtsp://localhost:8554/minimap"
	default:
		return ""
	}
}

// ParseRectSpec parses the region editor's corner entry "x1,y1,x2,y2" into
// two corner points. Corner order does not matter; the region builder
// normalizes it.
func ParseRectSpec(text string) (x1, y1, x2, y2 float64, err error) {
	parts := strings.Split(strings.TrimSpace(text), ",")
	if len(parts) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("rect %q: want \"x1,y1,x2,y2\"", text)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, perr := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if perr != nil {
			return 0, 0, 0, 0, fmt.Errorf("rect %q: bad number %q", text, p)
		}
		if v < 0 {
			return 0, 0, 0, 0, fmt.Errorf("rect %q: coordinates must be non-negative", text)
		}
		vals[i] = v
	}
	if vals[0] == vals[2] || vals[1] == vals[3] {
		return 0, 0, 0, 0, fmt.Errorf("rect %q: zero width or height", text)
	}
	return vals[0], vals[1], vals[2], vals[3], nil
}
