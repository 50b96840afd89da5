package images

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/soocke/minimap-caller-go/domain/callout"
)

// Overlay colors. The preview draws straight onto the scaled frame copy, so
// bright saturated colors are used for contrast against map art.
var (
	ColorRegion    = color.RGBA{R: 64, G: 160, B: 255, A: 255}
	ColorRegionAct = color.RGBA{R: 255, G: 200, B: 0, A: 255}
	ColorMarker    = color.RGBA{R: 255, G: 40, B: 40, A: 255}
	ColorLabel     = color.RGBA{R: 240, G: 240, B: 240, A: 255}
)

// DrawRegions outlines every region polygon onto dst. Coordinates are frame
// coordinates multiplied by scale, matching a preview produced by ScaleToFit.
// The region named active is drawn highlighted.
func DrawRegions(dst *image.RGBA, regions []callout.Region, scale float64, active string) {
	if dst == nil || scale <= 0 {
		return
	}
	for _, reg := range regions {
		col := ColorRegion
		if reg.Name != "" && reg.Name == active {
			col = ColorRegionAct
		}
		n := len(reg.Polygon)
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			a := reg.Polygon[i]
			b := reg.Polygon[(i+1)%n]
			drawLine(dst,
				int(a.X*scale+0.5), int(a.Y*scale+0.5),
				int(b.X*scale+0.5), int(b.Y*scale+0.5), col)
		}
		if reg.Name != "" {
			lx := int(reg.Polygon[0].X*scale) + 2
			ly := int(reg.Polygon[0].Y*scale) + 12
			DrawLabel(dst, lx, ly, reg.Name)
		}
	}
}

// DrawMarker draws a small filled cross at the detection point, scaled from
// frame coordinates.
func DrawMarker(dst *image.RGBA, pt image.Point, scale float64) {
	if dst == nil || scale <= 0 {
		return
	}
	cx := int(float64(pt.X)*scale + 0.5)
	cy := int(float64(pt.Y)*scale + 0.5)
	const arm = 4
	for d := -arm; d <= arm; d++ {
		setIfInside(dst, cx+d, cy, ColorMarker)
		setIfInside(dst, cx, cy+d, ColorMarker)
	}
	for _, off := range [][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		setIfInside(dst, cx+off[0], cy+off[1], ColorMarker)
	}
}

// DrawRect outlines a rectangle given in destination coordinates. Used for
// the draft rectangle while a region is being dragged out on the preview.
func DrawRect(dst *image.RGBA, r image.Rectangle, col color.RGBA) {
	if dst == nil || r.Empty() {
		return
	}
	drawLine(dst, r.Min.X, r.Min.Y, r.Max.X, r.Min.Y, col)
	drawLine(dst, r.Max.X, r.Min.Y, r.Max.X, r.Max.Y, col)
	drawLine(dst, r.Max.X, r.Max.Y, r.Min.X, r.Max.Y, col)
	drawLine(dst, r.Min.X, r.Max.Y, r.Min.X, r.Min.Y, col)
}

// DrawLabel renders text at (x, y) using the fixed 7x13 face. The y
// coordinate is the text baseline.
func DrawLabel(dst *image.RGBA, x, y int, text string) {
	if dst == nil || text == "" {
		return
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(ColorLabel),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// drawLine rasterizes a segment with the integer Bresenham walk.
func drawLine(dst *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		setIfInside(dst, x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func setIfInside(dst *image.RGBA, x, y int, col color.RGBA) {
	if image.Pt(x, y).In(dst.Bounds()) {
		dst.SetRGBA(x, y, col)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
