package model

import (
	"github.com/soocke/minimap-caller-go/domain/callout"
)

// RegionsModel holds the regions of the map being edited, plus a dirty flag
// so the view can warn before discarding unsaved work. Not synchronized:
// the region editor mutates it from UI callbacks only.
type RegionsModel struct {
	mapName string
	regions []callout.Region
	dirty   bool
}

func NewRegionsModel() *RegionsModel { return &RegionsModel{} }

// Reset replaces the whole model with a freshly loaded map and clears dirty.
func (m *RegionsModel) Reset(mapName string, regions []callout.Region) {
	if m == nil {
		return
	}
	m.mapName = mapName
	m.regions = append([]callout.Region(nil), regions...)
	m.dirty = false
}

func (m *RegionsModel) MapName() string {
	if m == nil {
		return ""
	}
	return m.mapName
}

// SetMapName renames the map being edited.
func (m *RegionsModel) SetMapName(name string) {
	if m == nil || m.mapName == name {
		return
	}
	m.mapName = name
	m.dirty = true
}

// Regions returns a copy so views cannot mutate model state.
func (m *RegionsModel) Regions() []callout.Region {
	if m == nil {
		return nil
	}
	return append([]callout.Region(nil), m.regions...)
}

func (m *RegionsModel) Len() int {
	if m == nil {
		return 0
	}
	return len(m.regions)
}

// At returns the region at index i, false when out of range.
func (m *RegionsModel) At(i int) (callout.Region, bool) {
	if m == nil || i < 0 || i >= len(m.regions) {
		return callout.Region{}, false
	}
	return m.regions[i], true
}

// Add appends a region and marks the model dirty.
func (m *RegionsModel) Add(r callout.Region) {
	if m == nil {
		return
	}
	m.regions = append(m.regions, r)
	m.dirty = true
}

// DeleteAt removes the region at index i. Out-of-range indexes are ignored.
func (m *RegionsModel) DeleteAt(i int) {
	if m == nil || i < 0 || i >= len(m.regions) {
		return
	}
	m.regions = append(m.regions[:i], m.regions[i+1:]...)
	m.dirty = true
}

// Clear removes every region. A no-op on an already empty model keeps the
// dirty flag untouched.
func (m *RegionsModel) Clear() {
	if m == nil || len(m.regions) == 0 {
		return
	}
	m.regions = nil
	m.dirty = true
}

func (m *RegionsModel) Dirty() bool {
	if m == nil {
		return false
	}
	return m.dirty
}

// MarkSaved clears the dirty flag after a successful save.
func (m *RegionsModel) MarkSaved() {
	if m == nil {
		return
	}
	m.dirty = false
}
