package source

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writeTestImage(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	img.SetRGBA(1, 1, color.RGBA{R: 255, A: 255})
	path := filepath.Join(t.TempDir(), "frame.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return path
}

func TestMockImageSourceReplaysCopies(t *testing.T) {
	path := writeTestImage(t, 16, 12)
	src, err := NewMockImageSource(path)
	if err != nil {
		t.Fatalf("NewMockImageSource: %v", err)
	}
	defer src.Close()

	first, err := src.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if first.Bounds() != image.Rect(0, 0, 16, 12) {
		t.Fatalf("bounds = %v", first.Bounds())
	}

	// Mutating a frame must not leak into later reads.
	first.SetRGBA(1, 1, color.RGBA{B: 255, A: 255})
	second, err := src.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := second.RGBAAt(1, 1); got.R != 255 || got.B != 0 {
		t.Fatalf("second read pixel = %v, want original red", got)
	}
}

func TestNewMockImageSourceMissingFile(t *testing.T) {
	_, err := NewMockImageSource(filepath.Join(t.TempDir(), "nope.png"))
	if !errors.Is(err, ErrConnect) {
		t.Fatalf("error = %v, want ErrConnect", err)
	}
}

func TestMockImageSourceFromImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	src := NewMockImageSourceFromImage(img)
	frame, err := src.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if frame.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Fatalf("bounds = %v", frame.Bounds())
	}
}
