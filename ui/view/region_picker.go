package view

import (
	"fmt"
	"image"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// RegionPicker manages the transparent picker window used to select the
// minimap rectangle on screen. The confirmed rectangle is handed back as a
// "x,y,WxH" spec suitable for the screen source entry.
type RegionPicker interface {
	OpenOrFocus()
}

type regionPicker struct {
	logger   *slog.Logger
	onPicked func(spec string)
	win      *ToplevelWidget
}

// NewRegionPicker creates a picker that reports confirmed rectangles through
// onPicked.
func NewRegionPicker(logger *slog.Logger, onPicked func(spec string)) RegionPicker {
	return &regionPicker{logger: logger, onPicked: onPicked}
}

func (v *regionPicker) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	win := App.Toplevel(Borderwidth(2), Background("#008080"))
	win.WmTitle("Pick Minimap Region")
	v.win = win
	cx, cy := screenExtent()
	screenW, screenH := int(cx), int(cy)
	initW, initH := screenW/4, screenH/4
	if initW < 1 {
		initW = 1
	}
	if initH < 1 {
		initH = 1
	}
	x, y := (screenW-initW)/2, (screenH-initH)/2
	WmGeometry(win.Window, fmt.Sprintf("%dx%d+%d+%d", initW, initH, x, y))
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-toolwindow", true)
	WmAttributes(win.Window, "-transparentcolor", "#008080")
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(0))
	GridColumnConfigure(win.Window, 1, Weight(1))
	GridColumnConfigure(win.Window, 2, Weight(0))
	left := win.Frame(Width(4), Background("#FFFFFF"))
	Grid(left, Row(0), Column(0), Sticky("ns"))
	center := win.Frame(Background("#008080"))
	Grid(center, Row(0), Column(1), Sticky("nsew"))
	right := win.Frame(Width(4), Background("#FFFFFF"))
	Grid(right, Row(0), Column(2), Sticky("ns"))
	controls := win.Frame()
	Grid(controls, Row(1), Column(0), Columnspan(3), Sticky("we"))
	confirm := win.Button(Txt("Confirm [Enter]"), Command(v.confirm))
	Grid(confirm, In(controls), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.Button(Txt("Cancel [Esc]"), Command(v.cancel))
	Grid(cancel, In(controls), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.cancel))
}

func (v *regionPicker) confirm() {
	if v.win == nil {
		return
	}
	geom := WmGeometry(v.win.Window)
	if rect, ok := parsePickerGeometry(geom); ok {
		spec := fmt.Sprintf("%d,%d,%dx%d", rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy())
		if v.onPicked != nil {
			v.onPicked(spec)
		}
	} else if v.logger != nil {
		v.logger.Warn("region picker geometry not parseable", "geometry", geom)
	}
	v.destroy()
}

func (v *regionPicker) cancel() { v.destroy() }

func (v *regionPicker) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}

// screenExtent returns the screen width and height.
// Currently returns static values; should be replaced with proper Tk winfo queries.
func screenExtent() (float64, float64) {
	return 1920, 1080
}

// pickerGeomRe matches window geometry strings in the format "WIDTHxHEIGHT+X+Y"
var pickerGeomRe = regexp.MustCompile(`^(\d+)x(\d+)\+(-?\d+)\+(-?\d+)$`)

// parsePickerGeometry parses a Tk geometry string and returns the corresponding rectangle.
func parsePickerGeometry(g string) (image.Rectangle, bool) {
	g = strings.TrimSpace(g)
	m := pickerGeomRe.FindStringSubmatch(g)
	if len(m) != 5 {
		return image.Rectangle{}, false
	}
	w, _ := strconv.Atoi(m[1])
	h, _ := strconv.Atoi(m[2])
	x, _ := strconv.Atoi(m[3])
	y, _ := strconv.Atoi(m[4])
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}
