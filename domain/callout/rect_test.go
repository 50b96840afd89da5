package callout

import "testing"

func TestNormalizeRect_ReverseDrag(t *testing.T) {
	r := NormalizeRect(80, 70, 10, 20)
	if r.X1 != 10 || r.Y1 != 20 || r.X2 != 80 || r.Y2 != 70 {
		t.Fatalf("unexpected normalized rect: %+v", r)
	}
}

func TestRectToPolygon_Clockwise(t *testing.T) {
	poly := RectToPolygon(NormalizeRect(5, 8, 30, 40))
	want := []Point{{5, 8}, {30, 8}, {30, 40}, {5, 40}}
	if len(poly) != len(want) {
		t.Fatalf("expected %d points, got %d", len(want), len(poly))
	}
	for i := range want {
		if poly[i] != want[i] {
			t.Fatalf("point %d: want %+v got %+v", i, want[i], poly[i])
		}
	}
}

func TestBuildRectRegion_MapsPoints(t *testing.T) {
	region := BuildRectRegion("A Site", 10, 20, 110, 220)
	m := NewMapper([]Region{region})
	if name, ok := m.MapPoint(Point{50, 50}); !ok || name != "A Site" {
		t.Fatalf("inside point should map, got %q ok=%v", name, ok)
	}
	if name, ok := m.MapPoint(Point{10, 20}); !ok || name != "A Site" {
		t.Fatalf("corner should map, got %q ok=%v", name, ok)
	}
	if _, ok := m.MapPoint(Point{150, 50}); ok {
		t.Fatal("outside point should not map")
	}
}

func TestPolygonToRect(t *testing.T) {
	r, ok := PolygonToRect([]Point{{30, 40}, {5, 40}, {5, 8}, {30, 8}})
	if !ok {
		t.Fatal("expected a rect for a quad")
	}
	if r.X1 != 5 || r.Y1 != 8 || r.X2 != 30 || r.Y2 != 40 {
		t.Fatalf("unexpected bounding rect: %+v", r)
	}
	if _, ok := PolygonToRect([]Point{{0, 0}, {1, 1}, {2, 0}}); ok {
		t.Fatal("triangles are not rect-approximated")
	}
}
