package images

import (
	"errors"
	"image"
	"image/draw"
)

// CropRect returns a copy of the part of frame covered by rect, clamped to
// the frame bounds and guaranteed at least 1x1. The region zoom preview uses
// it to show a selected zone up close.
func CropRect(frame *image.RGBA, rect image.Rectangle) (*image.RGBA, image.Rectangle, error) {
	if frame == nil {
		return nil, image.Rectangle{}, errors.New("nil frame")
	}
	b := frame.Bounds()
	r := rect.Intersect(b)
	if r.Empty() {
		// Fall back to a 1x1 window at the nearest corner.
		x := clamp(rect.Min.X, b.Min.X, b.Max.X-1)
		y := clamp(rect.Min.Y, b.Min.Y, b.Max.Y-1)
		r = image.Rect(x, y, x+1, y+1)
	}
	out := image.NewRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(out, out.Bounds(), frame, r.Min, draw.Src)
	return out, r, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
