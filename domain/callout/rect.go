package callout

// Rect is an axis-aligned rectangle with normalized corner order
// (X1,Y1 top-left, X2,Y2 bottom-right).
type Rect struct {
	X1, Y1 float64
	X2, Y2 float64
}

// NormalizeRect orders two drag corners into a top-left/bottom-right Rect,
// regardless of drag direction.
func NormalizeRect(x1, y1, x2, y2 float64) Rect {
	r := Rect{X1: x1, Y1: y1, X2: x2, Y2: y2}
	if r.X2 < r.X1 {
		r.X1, r.X2 = r.X2, r.X1
	}
	if r.Y2 < r.Y1 {
		r.Y1, r.Y2 = r.Y2, r.Y1
	}
	return r
}

// RectToPolygon converts a Rect to a clockwise quad.
func RectToPolygon(r Rect) []Point {
	return []Point{
		{X: r.X1, Y: r.Y1},
		{X: r.X2, Y: r.Y1},
		{X: r.X2, Y: r.Y2},
		{X: r.X1, Y: r.Y2},
	}
}

// BuildRectRegion turns a dragged rectangle into a named Region.
func BuildRectRegion(name string, x1, y1, x2, y2 float64) Region {
	return Region{Name: name, Polygon: RectToPolygon(NormalizeRect(x1, y1, x2, y2))}
}

// PolygonToRect approximates a polygon by its bounding rectangle for
// overlay drawing. Returns false for polygons with fewer than four points.
func PolygonToRect(polygon []Point) (Rect, bool) {
	if len(polygon) < 4 {
		return Rect{}, false
	}
	minX, maxX := polygon[0].X, polygon[0].X
	minY, maxY := polygon[0].Y, polygon[0].Y
	for _, p := range polygon[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return NormalizeRect(minX, minY, maxX, maxY), true
}
