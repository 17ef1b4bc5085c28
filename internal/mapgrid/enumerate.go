package mapgrid

// LegalPositions scans the whole grid and returns every anchor (x,y) at
// which PlaceBuilding(kind, subtype, x, y) would currently succeed. Callers
// that only need a handful of candidates should prefer sampling via their
// own RNG over a cheap pre-filter (e.g. FreeCells) rather than calling this
// on a hot path; it is O(W*H) per call.
func (m *Map) LegalPositions(kind ObjectKind, subtype uint8) []Point {
	var out []Point
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.CanPlace(kind, subtype, x, y) == nil {
				out = append(out, Point{x, y})
			}
		}
	}
	return out
}

// FreeCells returns every cell with no occupant, for cheap candidate
// pre-filtering before a full CanPlace check.
func (m *Map) FreeCells() []Point {
	out := make([]Point, 0, m.Width*m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.Cells[y][x].Occupied {
				out = append(out, Point{x, y})
			}
		}
	}
	return out
}

// CellRoleAt reports the role and occupancy of a single cell, for callers
// (principally the solver's path search) that want to inspect the grid
// without going through a full placement check.
func (m *Map) CellRoleAt(x, y int) (occupied bool, role CellRole, ownerIdx int) {
	c := m.Cells[y][x]
	return c.Occupied, c.Role, c.OwnerIdx
}
