package callout

// Mapper resolves a detected point to a callout name using an ordered
// region list. The first region containing the point wins.
type Mapper struct {
	regions []Region
}

// NewMapper copies regions so later edits do not affect the mapper.
func NewMapper(regions []Region) *Mapper {
	m := &Mapper{regions: make([]Region, len(regions))}
	copy(m.regions, regions)
	return m
}

// MapPoint returns the callout name for p, or ("", false) when no region
// contains it.
func (m *Mapper) MapPoint(p Point) (string, bool) {
	if m == nil {
		return "", false
	}
	for _, region := range m.regions {
		if PointInPolygon(p, region.Polygon) {
			return region.Name, true
		}
	}
	return "", false
}

// Regions returns a copy of the mapper's region list.
func (m *Mapper) Regions() []Region {
	if m == nil {
		return nil
	}
	out := make([]Region, len(m.regions))
	copy(out, m.regions)
	return out
}
