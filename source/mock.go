package source

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
)

// MockImageSource replays a single still image on every Read. It is the
// default source for offline runs and tests: each Read returns a fresh copy
// so downstream stages may mutate the frame freely.
type MockImageSource struct {
	frame *image.RGBA
}

// NewMockImageSource loads the image at path and prepares it for replay.
func NewMockImageSource(path string) (*MockImageSource, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrConnect, path, err)
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return &MockImageSource{frame: rgba}, nil
}

// NewMockImageSourceFromImage wraps an in-memory image; used by tests and by
// the embedded-asset fallback.
func NewMockImageSourceFromImage(img image.Image) *MockImageSource {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return &MockImageSource{frame: rgba}
}

func (m *MockImageSource) Read() (*image.RGBA, error) {
	if m == nil || m.frame == nil {
		return nil, nil
	}
	cp := image.NewRGBA(m.frame.Bounds())
	copy(cp.Pix, m.frame.Pix)
	return cp, nil
}

func (m *MockImageSource) Close() error { return nil }
