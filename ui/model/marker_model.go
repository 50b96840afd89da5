package model

import (
	"image"
)

// MarkerModel holds the latest detection result: the marker position in frame
// coordinates and the zone it mapped to. Zero value means no detection and is
// usable. No synchronization needed: updates occur on the UI thread tick.
type MarkerModel struct {
	point image.Point
	zone  string
	found bool
}

func NewMarkerModel() *MarkerModel { return &MarkerModel{} }

// Set records a detection with the zone it resolved to (may be empty when
// the point landed outside every region).
func (m *MarkerModel) Set(pt image.Point, zone string) {
	if m == nil {
		return
	}
	m.point, m.zone, m.found = pt, zone, true
}

// Clear drops the current detection.
func (m *MarkerModel) Clear() {
	if m == nil {
		return
	}
	*m = MarkerModel{}
}

// Marker returns the detection point and whether one is active.
func (m *MarkerModel) Marker() (image.Point, bool) {
	if m == nil {
		return image.Point{}, false
	}
	return m.point, m.found
}

// Zone returns the zone name of the active detection, empty when none.
func (m *MarkerModel) Zone() string {
	if m == nil || !m.found {
		return ""
	}
	return m.zone
}
