package callout

// Point is a 2D map coordinate in minimap pixel space.
type Point struct {
	X float64
	Y float64
}

// Region is a named map zone bounded by a polygon.
type Region struct {
	Name    string
	Polygon []Point
}

const (
	segmentEps = 1e-6
	divideEps  = 1e-12
)

// PointInPolygon reports whether p lies inside polygon using ray casting.
// Points on an edge count as inside. Polygons with fewer than three
// vertices never contain anything.
func PointInPolygon(p Point, polygon []Point) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}
	inside := false
	for i := 0; i < n; i++ {
		a := polygon[i]
		b := polygon[(i+1)%n]
		if pointOnSegment(p, a, b) {
			return true
		}
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xin := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y+divideEps) + a.X
			if xin >= p.X {
				inside = !inside
			}
		}
	}
	return inside
}

// pointOnSegment reports whether p lies on the closed segment a-b.
func pointOnSegment(p, a, b Point) bool {
	cross := (p.X-a.X)*(b.Y-a.Y) - (p.Y-a.Y)*(b.X-a.X)
	if cross > segmentEps || cross < -segmentEps {
		return false
	}
	dot := (p.X-a.X)*(b.X-a.X) + (p.Y-a.Y)*(b.Y-a.Y)
	if dot < 0 {
		return false
	}
	lengthSq := (b.X-a.X)*(b.X-a.X) + (b.Y-a.Y)*(b.Y-a.Y)
	return dot <= lengthSq
}
