package model

import "image"

// DragModel tracks an in-progress rectangle drag over the preview, in
// preview coordinates. Zero value is usable. No synchronization needed:
// updates occur on the UI thread.
type DragModel struct {
	active  bool
	start   image.Point
	current image.Point
}

func NewDragModel() *DragModel { return &DragModel{} }

// Begin starts a drag at pt.
func (m *DragModel) Begin(pt image.Point) {
	if m == nil {
		return
	}
	m.active = true
	m.start = pt
	m.current = pt
}

// Update moves the drag corner; ignored when no drag is active.
func (m *DragModel) Update(pt image.Point) {
	if m == nil || !m.active {
		return
	}
	m.current = pt
}

// Rect returns the canonical draft rectangle while a drag is active.
func (m *DragModel) Rect() (image.Rectangle, bool) {
	if m == nil || !m.active {
		return image.Rectangle{}, false
	}
	return image.Rect(m.start.X, m.start.Y, m.current.X, m.current.Y), true
}

// End finishes the drag and returns the final rectangle. Returns false when
// no drag was active.
func (m *DragModel) End() (image.Rectangle, bool) {
	if m == nil || !m.active {
		return image.Rectangle{}, false
	}
	m.active = false
	return image.Rect(m.start.X, m.start.Y, m.current.X, m.current.Y), true
}
