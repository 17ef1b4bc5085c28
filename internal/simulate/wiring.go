package simulate

import "github.com/profit-solver/profit/internal/mapgrid"

// wiring is the static connectivity derived from a Map, computed once
// before the round loop starts. It never changes during a run.
type wiring struct {
	objects []*mapgrid.Object

	outgoing      map[int]int   // objID -> target objID (buildings with a single output)
	incoming      map[int][]int // objID -> upstream objIDs feeding its input cell(s)
	mineDeposit   map[int]int   // mine objID -> deposit objID it draws from
	resourceType  map[int]int   // objID -> resource type flowing through it
	combinerSlots map[int]int   // combiner objID -> count of distinct feeders actually connected
}

func buildWiring(m *mapgrid.Map) *wiring {
	w := &wiring{
		objects:       m.Objects,
		outgoing:      map[int]int{},
		incoming:      map[int][]int{},
		mineDeposit:   map[int]int{},
		resourceType:  map[int]int{},
		combinerSlots: map[int]int{},
	}

	for _, obj := range m.Objects {
		switch obj.Kind {
		case mapgrid.KindDeposit:
			w.resourceType[obj.ID] = obj.Resource
		case mapgrid.KindMine, mapgrid.KindConveyor, mapgrid.KindCombiner:
			w.wireOutput(m, obj)
			if obj.Kind == mapgrid.KindMine {
				w.wireMineInput(m, obj)
			}
		}
	}

	// Resolve resource types by propagating from deposits forward along
	// edges, a fixed number of passes bounded by object count (the grid's
	// acyclic-in-practice connectivity converges in far fewer).
	for pass := 0; pass < len(m.Objects); pass++ {
		changed := false
		for _, obj := range m.Objects {
			if _, ok := w.resourceType[obj.ID]; ok {
				continue
			}
			switch obj.Kind {
			case mapgrid.KindMine:
				if depID, ok := w.mineDeposit[obj.ID]; ok {
					if rt, ok := w.resourceType[depID]; ok {
						w.resourceType[obj.ID] = rt
						changed = true
					}
				}
			case mapgrid.KindConveyor, mapgrid.KindCombiner:
				for _, fromID := range w.incoming[obj.ID] {
					if rt, ok := w.resourceType[fromID]; ok {
						w.resourceType[obj.ID] = rt
						changed = true
						break
					}
				}
			}
		}
		if !changed {
			break
		}
	}

	return w
}

// wireOutput finds, for obj's single output cell, the neighboring input
// cell's owner (if any) and records the producer -> consumer edge.
func (w *wiring) wireOutput(m *mapgrid.Map, obj *mapgrid.Object) {
	outX, outY, found := findRoleCell(m, obj, mapgrid.RoleOutput)
	if !found {
		return
	}
	for _, n := range fourNeighbors(outX, outY) {
		if !m.InBounds(n.X, n.Y) {
			continue
		}
		occupied, role, ownerIdx := m.CellRoleAt(n.X, n.Y)
		if occupied && role == mapgrid.RoleInput {
			w.outgoing[obj.ID] = ownerIdx
			w.incoming[ownerIdx] = append(w.incoming[ownerIdx], obj.ID)
			if m.Objects[ownerIdx].Kind == mapgrid.KindCombiner {
				w.combinerSlots[ownerIdx]++
			}
			return
		}
	}
}

// wireMineInput finds the deposit feeding a mine's input cell.
func (w *wiring) wireMineInput(m *mapgrid.Map, obj *mapgrid.Object) {
	inX, inY, found := findRoleCell(m, obj, mapgrid.RoleInput)
	if !found {
		return
	}
	for _, n := range fourNeighbors(inX, inY) {
		if !m.InBounds(n.X, n.Y) {
			continue
		}
		occupied, role, ownerIdx := m.CellRoleAt(n.X, n.Y)
		if occupied && role == mapgrid.RoleOutput && m.Objects[ownerIdx].Kind == mapgrid.KindDeposit {
			w.mineDeposit[obj.ID] = ownerIdx
			return
		}
	}
}

// findRoleCell scans the object's already-committed footprint on the grid
// for the single cell matching role (mines and conveyors have exactly one
// input and one output cell each).
func findRoleCell(m *mapgrid.Map, obj *mapgrid.Object, role mapgrid.CellRole) (int, int, bool) {
	for dy := 0; dy < obj.Height; dy++ {
		for dx := 0; dx < obj.Width; dx++ {
			x, y := obj.X+dx, obj.Y+dy
			if !m.InBounds(x, y) {
				continue
			}
			occupied, r, owner := m.CellRoleAt(x, y)
			if occupied && owner == obj.ID && r == role {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

func fourNeighbors(x, y int) []mapgrid.Point {
	return []mapgrid.Point{{X: x, Y: y - 1}, {X: x, Y: y + 1}, {X: x - 1, Y: y}, {X: x + 1, Y: y}}
}
