package mapgrid

// PlaceBuilding validates and, if legal, commits a building placement at
// (x,y) with the given rotation/subtype. It runs the five-step legality
// check from the data model before mutating the grid:
//
//  1. every footprint cell is in bounds
//  2. no footprint cell's non-crossable role collides with an existing
//     non-crossable occupant (crossable conveyor middle cells may overlap)
//  3. an input cell touches at most one neighboring output, and an output
//     cell feeds at most one neighboring input
//  4. a deposit's output cells may feed only mine input cells
//  5. the new object does not introduce a second occupant on any cell
//     already claimed as interior/input/output by a non-crossable role
//
// On success it appends the new Object to m.Objects and returns it.
func (m *Map) PlaceBuilding(kind ObjectKind, subtype uint8, x, y int) (*Object, error) {
	w, h, cells, ok := Footprint(kind, subtype)
	if !ok {
		return nil, ErrUnknownKind
	}

	for _, c := range cells {
		cx, cy := x+c.DX, y+c.DY
		if !m.InBounds(cx, cy) {
			return nil, ErrOutOfBounds
		}
		existing := m.Cells[cy][cx]
		if existing.Occupied {
			if c.Role != RoleCrossable || existing.Role != RoleCrossable {
				return nil, ErrOverlap
			}
			// Two crossable cells may only share a position when the
			// conveyors running through them travel on perpendicular axes;
			// two parallel (or wrongly-aligned) conveyors may not stack.
			otherObj := m.Objects[existing.OwnerIdx]
			newAxis, newOk := crossableAxis(kind, subtype)
			otherAxis, otherOk := crossableAxis(otherObj.Kind, otherObj.Subtype)
			if newOk && otherOk && newAxis == otherAxis {
				return nil, ErrOverlap
			}
		}
	}

	for _, c := range cells {
		if c.Role != RoleInput && c.Role != RoleOutput {
			continue
		}
		cx, cy := x+c.DX, y+c.DY
		if err := m.checkConnection(cx, cy, c.Role, kind); err != nil {
			return nil, err
		}
	}

	obj := &Object{
		ID:      len(m.Objects),
		Kind:    kind,
		Subtype: subtype,
		X:       x, Y: y,
		Width: w, Height: h,
	}
	m.Objects = append(m.Objects, obj)

	for _, c := range cells {
		cx, cy := x+c.DX, y+c.DY
		m.Cells[cy][cx] = Cell{Occupied: true, OwnerIdx: obj.ID, Role: c.Role}
	}
	return obj, nil
}

// checkConnection enforces rule 3 and 4 of PlaceBuilding's legality check
// for one connector cell about to be placed at (x,y) with the given role.
func (m *Map) checkConnection(x, y int, role CellRole, kind ObjectKind) error {
	var matchRole CellRole
	if role == RoleInput {
		matchRole = RoleOutput
	} else {
		matchRole = RoleInput
	}

	matches := 0
	for _, n := range m.neighbors4(x, y) {
		cell := m.Cells[n.Y][n.X]
		if !cell.Occupied || cell.Role != matchRole {
			continue
		}
		matches++
		if matches > 1 {
			return ErrAmbiguousRoute
		}
		if role == RoleInput {
			owner := m.Objects[cell.OwnerIdx]
			if owner.Kind == KindDeposit && kind != KindMine {
				return ErrWrongSideSource
			}
		}
		// The matching neighbor must not already have a different partner
		// of our own role: an output already feeding an input may not also
		// feed this new input, and an input already fed by an output may
		// not also accept this new output.
		if m.neighborHasOtherConnection(n.X, n.Y, role, x, y) {
			return ErrAmbiguousRoute
		}
	}
	return nil
}

// neighborHasOtherConnection reports whether the cell at (nx,ny) already has
// an occupied neighbor of role, other than (ex,ey) — i.e. whether wiring a
// new connection at (ex,ey) would give it a second partner.
func (m *Map) neighborHasOtherConnection(nx, ny int, role CellRole, ex, ey int) bool {
	for _, n := range m.neighbors4(nx, ny) {
		if n.X == ex && n.Y == ey {
			continue
		}
		cell := m.Cells[n.Y][n.X]
		if cell.Occupied && cell.Role == role {
			return true
		}
	}
	return false
}

// CanPlace reports whether PlaceBuilding would succeed, without mutating
// the map.
func (m *Map) CanPlace(kind ObjectKind, subtype uint8, x, y int) error {
	clone := m.Clone()
	_, err := clone.PlaceBuilding(kind, subtype, x, y)
	return err
}

// PlaceDeposit and PlaceObstacle seed the immutable task geometry; they skip
// the connector legality checks since neither kind has input/output cells.
func (m *Map) PlaceDeposit(resource, amount, x, y, w, h int) (*Object, error) {
	if !m.InBounds(x, y) || !m.InBounds(x+w-1, y+h-1) {
		return nil, ErrOutOfBounds
	}
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			if m.Cells[y+dy][x+dx].Occupied {
				return nil, ErrOverlap
			}
		}
	}
	obj := &Object{ID: len(m.Objects), Kind: KindDeposit, X: x, Y: y, Width: w, Height: h, Resource: resource, Amount: amount}
	m.Objects = append(m.Objects, obj)
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			role := RoleInterior
			if dx == 0 || dy == 0 || dx == w-1 || dy == h-1 {
				role = RoleOutput
			}
			m.Cells[y+dy][x+dx] = Cell{Occupied: true, OwnerIdx: obj.ID, Role: role}
		}
	}
	m.distDirty = true
	return obj, nil
}

func (m *Map) PlaceObstacle(x, y, w, h int) (*Object, error) {
	if !m.InBounds(x, y) || !m.InBounds(x+w-1, y+h-1) {
		return nil, ErrOutOfBounds
	}
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			if m.Cells[y+dy][x+dx].Occupied {
				return nil, ErrOverlap
			}
		}
	}
	obj := &Object{ID: len(m.Objects), Kind: KindObstacle, X: x, Y: y, Width: w, Height: h}
	m.Objects = append(m.Objects, obj)
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			m.Cells[y+dy][x+dx] = Cell{Occupied: true, OwnerIdx: obj.ID, Role: RoleInterior}
		}
	}
	m.distDirty = true
	return obj, nil
}
