package detect

import (
	"image"
	"log/slog"

	"github.com/soocke/minimap-caller-go/config"
)

// RedDotDetector thresholds a frame in HSV space and returns the centroid
// of the largest red component. Red wraps around the hue axis, so two
// ranges are tested and OR-ed.
//
// Not safe for concurrent use; call Detect from a single goroutine. The
// scratch buffers are reused between frames.
type RedDotDetector struct {
	cfg    *config.Config
	logger *slog.Logger

	mask   []byte
	opened []byte
	labels []int32
	stack  []int32
	w, h   int
}

// NewRedDotDetector returns a detector configured from cfg. A nil cfg
// uses defaults.
func NewRedDotDetector(cfg *config.Config, logger *slog.Logger) *RedDotDetector {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	_ = cfg.Validate()
	return &RedDotDetector{cfg: cfg, logger: logger}
}

// Detect returns the centroid of the largest red component, or ok=false
// when nothing exceeds the configured minimum area.
func (d *RedDotDetector) Detect(frame *image.RGBA) (image.Point, bool) {
	if d == nil || frame == nil {
		return image.Point{}, false
	}
	fb := frame.Bounds()
	w, h := fb.Dx(), fb.Dy()
	if w <= 0 || h <= 0 {
		return image.Point{}, false
	}
	n := w * h
	if d.mask == nil || w != d.w || h != d.h {
		d.mask = make([]byte, n)
		d.opened = make([]byte, n)
		d.labels = make([]int32, n)
		d.w, d.h = w, h
	}

	d.buildMask(frame, w, h)
	morphOpen3x3(d.mask, d.opened, w, h)

	cx, cy, area := d.largestComponent(w, h)
	if area < d.cfg.MinArea {
		return image.Point{}, false
	}
	if d.logger != nil {
		d.logger.Debug("red dot detected", "x", cx, "y", cy, "area", area)
	}
	return image.Point{X: cx, Y: cy}, true
}

// buildMask writes 1 into d.mask for every pixel inside either red HSV range.
func (d *RedDotDetector) buildMask(frame *image.RGBA, w, h int) {
	pix := frame.Pix
	stride := frame.Stride
	lo1, hi1 := d.cfg.LowerRed1, d.cfg.UpperRed1
	lo2, hi2 := d.cfg.LowerRed2, d.cfg.UpperRed2
	idx := 0
	for y := 0; y < h; y++ {
		row := pix[y*stride : y*stride+w*4]
		for x := 0; x < w; x++ {
			i := x * 4
			hh, ss, vv := rgbToHSV(row[i], row[i+1], row[i+2])
			if inRange(hh, ss, vv, lo1, hi1) || inRange(hh, ss, vv, lo2, hi2) {
				d.mask[idx] = 1
			} else {
				d.mask[idx] = 0
			}
			idx++
		}
	}
}

func inRange(h, s, v uint8, lo, hi config.HSVBound) bool {
	return int(h) >= lo.H && int(h) <= hi.H &&
		int(s) >= lo.S && int(s) <= hi.S &&
		int(v) >= lo.V && int(v) <= hi.V
}

// morphOpen3x3 erodes then dilates src with a 3x3 kernel into dst,
// suppressing isolated noise pixels. src is used as scratch for the
// eroded intermediate, so its contents are consumed.
func morphOpen3x3(src, dst []byte, w, h int) {
	// Erode into dst.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if src[i] == 0 {
				dst[i] = 0
				continue
			}
			keep := byte(1)
			for dy := -1; dy <= 1 && keep == 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h || src[ny*w+nx] == 0 {
						keep = 0
						break
					}
				}
			}
			dst[i] = keep
		}
	}
	// Dilate dst back into src, then copy over.
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			hit := byte(0)
			for dy := -1; dy <= 1 && hit == 0; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx >= 0 && ny >= 0 && nx < w && ny < h && dst[ny*w+nx] == 1 {
						hit = 1
						break
					}
				}
			}
			src[i] = hit
		}
	}
	copy(dst, src)
}

// largestComponent labels 8-connected components in d.opened and returns
// the centroid and pixel area of the largest one.
func (d *RedDotDetector) largestComponent(w, h int) (cx, cy, area int) {
	for i := range d.labels {
		d.labels[i] = 0
	}
	var next int32 = 1
	bestArea := 0
	bestSumX, bestSumY := 0, 0

	for start := 0; start < w*h; start++ {
		if d.opened[start] == 0 || d.labels[start] != 0 {
			continue
		}
		label := next
		next++
		d.stack = d.stack[:0]
		d.stack = append(d.stack, int32(start))
		d.labels[start] = label
		count, sumX, sumY := 0, 0, 0
		for len(d.stack) > 0 {
			i := d.stack[len(d.stack)-1]
			d.stack = d.stack[:len(d.stack)-1]
			x, y := int(i)%w, int(i)/w
			count++
			sumX += x
			sumY += y
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= w || ny >= h {
						continue
					}
					j := ny*w + nx
					if d.opened[j] == 1 && d.labels[j] == 0 {
						d.labels[j] = label
						d.stack = append(d.stack, int32(j))
					}
				}
			}
		}
		if count > bestArea {
			bestArea = count
			bestSumX, bestSumY = sumX, sumY
		}
	}
	if bestArea == 0 {
		return 0, 0, 0
	}
	return bestSumX / bestArea, bestSumY / bestArea, bestArea
}
