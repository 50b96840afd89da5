package presenter

import (
	"image"
	"strings"
	"testing"

	"github.com/soocke/minimap-caller-go/source"
)

func TestAutofillSource(t *testing.T) {
	if got := AutofillSource(source.ModeStream); !strings.HasPrefix(got, "rtsp://") {
		t.Fatalf("stream autofill = %q", got)
	}
	if got := AutofillSource(source.ModeMock); got != "" {
		t.Fatalf("mock autofill = %q, want empty", got)
	}
	if got := AutofillSource(source.ModeScreen); got != "" {
		t.Fatalf("screen autofill = %q, want empty", got)
	}
}

func TestModeHint(t *testing.T) {
	for _, mode := range source.Modes() {
		if ModeHint(mode) == "" {
			t.Fatalf("no hint for mode %s", mode)
		}
	}
	if ModeHint("bogus") != "" {
		t.Fatal("unknown mode should have no hint")
	}
	if !strings.Contains(ModeHint(source.ModeScreen), "x,y,WxH") {
		t.Fatalf("screen hint should show the format: %q", ModeHint(source.ModeScreen))
	}
}

func TestMapDragToFrame(t *testing.T) {
	// Preview shown at half size: a 40x60 drag covers an 80x120 frame area.
	x1, y1, x2, y2, ok := MapDragToFrame(image.Rect(10, 20, 50, 80), 0.5)
	if !ok {
		t.Fatal("drag should map")
	}
	if x1 != 20 || y1 != 40 || x2 != 100 || y2 != 160 {
		t.Fatalf("frame corners = %v %v %v %v", x1, y1, x2, y2)
	}

	if _, _, _, _, ok := MapDragToFrame(image.Rect(10, 10, 11, 40), 1); ok {
		t.Fatal("near-click drag should be rejected")
	}
	if _, _, _, _, ok := MapDragToFrame(image.Rect(0, 0, 50, 50), 0); ok {
		t.Fatal("zero ratio should be rejected")
	}
}

func TestParseRectSpec(t *testing.T) {
	x1, y1, x2, y2, err := ParseRectSpec(" 10, 20, 110.5, 90 ")
	if err != nil {
		t.Fatalf("ParseRectSpec: %v", err)
	}
	if x1 != 10 || y1 != 20 || x2 != 110.5 || y2 != 90 {
		t.Fatalf("corners = %v %v %v %v", x1, y1, x2, y2)
	}

	bad := []string{"", "1,2,3", "a,2,3,4", "-1,2,3,4", "5,5,5,9", "5,5,9,5"}
	for _, spec := range bad {
		if _, _, _, _, err := ParseRectSpec(spec); err == nil {
			t.Fatalf("ParseRectSpec(%q) expected error", spec)
		}
	}
}
