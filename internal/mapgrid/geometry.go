package mapgrid

// footprintCell describes one occupied cell of a building template, relative
// to the anchor, in the building's unrotated (subtype-0-equivalent) frame.
type footprintCell struct {
	DX, DY int
	Role   CellRole
}

// rotation 0 = west-in / east-out, 1 = north->south, 2 = east->west (mirror
// of 0), 3 = south->north (mirror of 1). Combiners use the same four turns
// and the same west-in/east-out handedness as a mine or conveyor, only with
// three ingress cells instead of one.

func mineFootprint(rotation uint8) (w, h int, cells []footprintCell) {
	// base: a 2x2 body (columns 1-2) plus a single ingress cell west of it
	// and a single egress cell east of it, both on row 1 — 6 cells total,
	// leaving the two row-0 corners (0,0) and (3,0) unoccupied free terrain,
	// per the original's Mine shape (center 2x2 plus one ingress/egress cell
	// sharing a row).
	base := []footprintCell{
		{0, 1, RoleInput},
		{1, 0, RoleInterior}, {2, 0, RoleInterior},
		{1, 1, RoleInterior}, {2, 1, RoleInterior},
		{3, 1, RoleOutput},
	}
	return rotateRect(4, 2, base, rotation)
}

func conveyorFootprint(subtype uint8) (w, h int, cells []footprintCell) {
	rotation := subtype % 4
	length := 3
	if subtype >= 4 {
		length = 4
	}
	base := make([]footprintCell, 0, length*1)
	for x := 0; x < length; x++ {
		role := RoleCrossable
		if x == 0 {
			role = RoleInput
		} else if x == length-1 {
			role = RoleOutput
		}
		base = append(base, footprintCell{x, 0, role})
	}
	return rotateRect(length, 1, base, rotation)
}

// crossableAxis reports the travel axis (0 = east/west, 1 = north/south) of
// a building that can contribute a RoleCrossable cell, so two crossable
// cells can be checked for perpendicular orientation rather than merely
// both being crossable. Only conveyors produce crossable cells today; any
// other kind reports ok=false and the caller falls back to treating the
// overlap as legal on role alone.
func crossableAxis(kind ObjectKind, subtype uint8) (axis uint8, ok bool) {
	if kind != KindConveyor {
		return 0, false
	}
	return (subtype % 4) % 2, true
}

func combinerFootprint(rotation uint8) (w, h int, cells []footprintCell) {
	// base: 7 cells — the ingress column at x=0 spanning all three rows, the
	// interior column at x=1 spanning all three rows, and the single exgress
	// cell at (2,1) (east edge center). Same west-in/east-out
	// handedness as mine/conveyor subtype 0. The two corners on the exgress
	// side, (2,0) and (2,2), are deliberately left unoccupied free terrain,
	// matching the original's seven-cell Combiner shape.
	base := []footprintCell{
		{0, 0, RoleInput}, {0, 1, RoleInput}, {0, 2, RoleInput},
		{1, 0, RoleInterior}, {1, 1, RoleInterior}, {1, 2, RoleInterior},
		{2, 1, RoleOutput},
	}
	return rotateRect(3, 3, base, rotation)
}

func factoryFootprint() (w, h int, cells []footprintCell) {
	const n = 5
	cells = make([]footprintCell, 0, n*n)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			role := RoleInterior
			if x == 0 || y == 0 || x == n-1 || y == n-1 {
				role = RoleInput
			}
			cells = append(cells, footprintCell{x, y, role})
		}
	}
	return n, n, cells
}

// rotateRect rotates a w0×h0 template clockwise by rotation*90 degrees and
// returns the rotated extents plus the transformed cell list.
func rotateRect(w0, h0 int, cells []footprintCell, rotation uint8) (w, h int, out []footprintCell) {
	rotation %= 4
	out = make([]footprintCell, len(cells))
	switch rotation {
	case 0:
		w, h = w0, h0
		copy(out, cells)
	case 1: // 90 clockwise: (x,y) -> (h0-1-y, x)
		w, h = h0, w0
		for i, c := range cells {
			out[i] = footprintCell{h0 - 1 - c.DY, c.DX, c.Role}
		}
	case 2: // 180: (x,y) -> (w0-1-x, h0-1-y)
		w, h = w0, h0
		for i, c := range cells {
			out[i] = footprintCell{w0 - 1 - c.DX, h0 - 1 - c.DY, c.Role}
		}
	case 3: // 270 clockwise: (x,y) -> (y, w0-1-x)
		w, h = h0, w0
		for i, c := range cells {
			out[i] = footprintCell{c.DY, w0 - 1 - c.DX, c.Role}
		}
	}
	return
}

// Footprint returns the footprint of a building of the given kind/subtype,
// anchored at (0,0). Deposits and obstacles are rectangular with no role
// distinction beyond the deposit's border cells, handled by the caller.
func Footprint(kind ObjectKind, subtype uint8) (w, h int, cells []footprintCell, ok bool) {
	switch kind {
	case KindMine:
		w, h, cells = mineFootprint(subtype % 4)
	case KindConveyor:
		w, h, cells = conveyorFootprint(subtype)
	case KindCombiner:
		w, h, cells = combinerFootprint(subtype % 4)
	case KindFactory:
		w, h, cells = factoryFootprint()
	default:
		return 0, 0, nil, false
	}
	return w, h, cells, true
}

// DepositBorderCells returns the border cells of a w×h deposit rectangle
// anchored at (x,y); every border cell is an output cell per the data model.
func DepositBorderCells(x, y, w, h int) []Point {
	out := make([]Point, 0, 2*w+2*h)
	for dx := 0; dx < w; dx++ {
		for dy := 0; dy < h; dy++ {
			if dx == 0 || dy == 0 || dx == w-1 || dy == h-1 {
				out = append(out, Point{x + dx, y + dy})
			}
		}
	}
	return out
}

// AnchorForRoleAt returns the anchor (top-left) a building of the given
// kind/subtype would need so that its `which`-th cell carrying role ends up
// at (x,y). The solver's path-routing stage uses this to grow a conveyor
// chain one segment at a time: it picks a target cell for the new segment's
// input (the cell touching the current frontier's output) and asks where to
// anchor the segment to make that true.
func AnchorForRoleAt(kind ObjectKind, subtype uint8, role CellRole, x, y, which int) (ax, ay int, ok bool) {
	_, _, cells, exists := Footprint(kind, subtype)
	if !exists {
		return 0, 0, false
	}
	idx := 0
	for _, c := range cells {
		if c.Role != role {
			continue
		}
		if idx == which {
			return x - c.DX, y - c.DY, true
		}
		idx++
	}
	return 0, 0, false
}

// RoleCellOf returns the absolute position of the `which`-th cell of obj
// carrying role, scanning its already-committed footprint on m.
func (m *Map) RoleCellOf(obj *Object, role CellRole, which int) (Point, bool) {
	idx := 0
	for dy := 0; dy < obj.Height; dy++ {
		for dx := 0; dx < obj.Width; dx++ {
			x, y := obj.X+dx, obj.Y+dy
			if !m.InBounds(x, y) {
				continue
			}
			occupied, r, owner := m.CellRoleAt(x, y)
			if occupied && owner == obj.ID && r == role {
				if idx == which {
					return Point{x, y}, true
				}
				idx++
			}
		}
	}
	return Point{}, false
}
