package source

import (
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/vova616/screenshot"
)

// ParseRegionSpec parses a screen region given as "x,y,WxH", for example
// "100,200,320x240". Width and height must be positive; x and y may be zero.
func ParseRegionSpec(spec string) (image.Rectangle, error) {
	parts := strings.Split(strings.TrimSpace(spec), ",")
	if len(parts) != 3 {
		return image.Rectangle{}, fmt.Errorf("region %q: want \"x,y,WxH\"", spec)
	}
	x, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("region %q: bad x: %v", spec, err)
	}
	y, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("region %q: bad y: %v", spec, err)
	}
	dims := strings.Split(strings.TrimSpace(parts[2]), "x")
	if len(dims) != 2 {
		return image.Rectangle{}, fmt.Errorf("region %q: bad size, want WxH", spec)
	}
	w, err := strconv.Atoi(strings.TrimSpace(dims[0]))
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("region %q: bad width: %v", spec, err)
	}
	h, err := strconv.Atoi(strings.TrimSpace(dims[1]))
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("region %q: bad height: %v", spec, err)
	}
	if x < 0 || y < 0 || w <= 0 || h <= 0 {
		return image.Rectangle{}, fmt.Errorf("region %q: coordinates must be non-negative and size positive", spec)
	}
	return image.Rect(x, y, x+w, y+h), nil
}

// grabRect is a test seam over the native capture call.
var grabRect = screenshot.CaptureRect

// ScreenRegionSource grabs a fixed rectangle of the screen on every Read.
type ScreenRegionSource struct {
	region image.Rectangle
}

// NewScreenRegionSource builds a source for the region described by spec
// ("x,y,WxH").
func NewScreenRegionSource(spec string) (*ScreenRegionSource, error) {
	rect, err := ParseRegionSpec(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}
	return &ScreenRegionSource{region: rect}, nil
}

func (s *ScreenRegionSource) Region() image.Rectangle { return s.region }

func (s *ScreenRegionSource) Read() (*image.RGBA, error) {
	img, err := grabRect(s.region)
	if err != nil {
		return nil, fmt.Errorf("%w: capture %v: %v", ErrRead, s.region, err)
	}
	return img, nil
}

func (s *ScreenRegionSource) Close() error { return nil }
