package solver

import (
	"math/rand"
	"sort"

	"github.com/profit-solver/profit/internal/mapgrid"
)

// directions indexes the four canonical travel directions by the conveyor
// rotation that carries resource along them: 0 east, 1 south, 2 west, 3
// north, matching §3's rotation convention.
var directions = [4]mapgrid.Point{
	{X: 1, Y: 0},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 0, Y: -1},
}

// routePath grows a conveyor chain (occasionally finished through a
// combiner) from an already-placed producer's output cell at `from` toward
// a consumer's input cell at `goal`, one segment per step. It is a bounded
// randomized best-first search: at each step it ranks the four directions,
// each with a short and a long conveyor, by the Manhattan distance from that
// segment's output cell to the goal plus a small random jitter, and tries
// them in that order. More than PathBacktrackDepth consecutive failed steps
// gives up on the route; the
// segments already placed stay on the grid as unsupplied dangling
// buildings, which the data model explicitly permits (§3) rather than
// requiring them to be undone — one construction pass grows its solution
// append-only (§3 Lifecycle), so "backtracking" here means abandoning the
// branch, not erasing committed placements.
func routePath(m *mapgrid.Map, from, goal mapgrid.Point, cfg Config, rng *rand.Rand) bool {
	if isAdjacent(from, goal) {
		return true
	}

	frontier := from
	stall := 0
	for step := 0; step < cfg.PathStepBudget; step++ {
		if rng.Float64() < cfg.CombinerMergeChance {
			if out, ok := tryFinishWithCombiner(m, frontier, goal); ok {
				_ = out
				return true
			}
		}

		next, ok := placeNextSegment(m, frontier, goal, rng)
		if !ok {
			stall++
			if stall > cfg.PathBacktrackDepth {
				return false
			}
			continue
		}
		stall = 0
		frontier = next
		if isAdjacent(frontier, goal) {
			return true
		}
	}
	return false
}

// segmentCandidate is one (rotation, length) choice for the next conveyor
// hop, scored by Manhattan distance to the goal after taking it.
type segmentCandidate struct {
	rotation uint8
	long     bool
	score    float64
}

// placeNextSegment tries the four directions (plus short/long choice per
// direction), best-scoring first, and commits the first one PlaceBuilding
// accepts. It returns the new frontier (the committed segment's output
// cell).
func placeNextSegment(m *mapgrid.Map, frontier, goal mapgrid.Point, rng *rand.Rand) (mapgrid.Point, bool) {
	cands := make([]segmentCandidate, 0, 8)
	for rot := uint8(0); rot < 4; rot++ {
		d := directions[rot]
		for _, long := range [2]bool{false, true} {
			length := 3
			if long {
				length = 4
			}
			end := mapgrid.Point{X: frontier.X + d.X*length, Y: frontier.Y + d.Y*length}
			cands = append(cands, segmentCandidate{
				rotation: rot,
				long:     long,
				score:    float64(manhattan(end, goal)) + rng.Float64()*1.5,
			})
		}
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].score < cands[j].score })

	for _, c := range cands {
		subtype := c.rotation
		if c.long {
			subtype += 4
		}
		d := directions[c.rotation]
		inputPt := mapgrid.Point{X: frontier.X + d.X, Y: frontier.Y + d.Y}
		if !m.InBounds(inputPt.X, inputPt.Y) {
			continue
		}
		ax, ay, ok := mapgrid.AnchorForRoleAt(mapgrid.KindConveyor, subtype, mapgrid.RoleInput, inputPt.X, inputPt.Y, 0)
		if !ok {
			continue
		}
		obj, err := m.PlaceBuilding(mapgrid.KindConveyor, subtype, ax, ay)
		if err != nil {
			continue
		}
		out, ok := m.RoleCellOf(obj, mapgrid.RoleOutput, 0)
		if !ok {
			continue
		}
		return out, true
	}
	return mapgrid.Point{}, false
}

// tryFinishWithCombiner attempts to close the route by placing a combiner
// whose egress cell lands adjacent to goal and whose ingress side touches
// frontier, giving the combiner building some exercise as an alternative to
// a plain conveyor hookup (per §4.3's "conveyor/combiner path"). A
// combiner's rotation-0 template has the same west-in/east-out handedness as
// a conveyor's, so the travel direction for combiner rotation r is the same
// conveyor direction: directions[r].
func tryFinishWithCombiner(m *mapgrid.Map, frontier, goal mapgrid.Point) (mapgrid.Point, bool) {
	for dirIdx, d := range directions {
		rot := uint8(dirIdx)
		ingress := mapgrid.Point{X: frontier.X + d.X, Y: frontier.Y + d.Y}
		if !m.InBounds(ingress.X, ingress.Y) {
			continue
		}
		for which := 0; which < 3; which++ {
			ax, ay, ok := mapgrid.AnchorForRoleAt(mapgrid.KindCombiner, rot, mapgrid.RoleInput, ingress.X, ingress.Y, which)
			if !ok {
				continue
			}
			outDX, outDY, ok := combinerOutputOffset(rot)
			if !ok {
				continue
			}
			outAbs := mapgrid.Point{X: ax + outDX, Y: ay + outDY}
			if !isAdjacent(outAbs, goal) {
				continue
			}
			if _, err := m.PlaceBuilding(mapgrid.KindCombiner, rot, ax, ay); err == nil {
				return outAbs, true
			}
		}
	}
	return mapgrid.Point{}, false
}

// combinerOutputOffset returns the egress cell's offset from the anchor for
// a combiner of the given rotation.
func combinerOutputOffset(rotation uint8) (dx, dy int, ok bool) {
	_, _, cells, exists := mapgrid.Footprint(mapgrid.KindCombiner, rotation)
	if !exists {
		return 0, 0, false
	}
	for _, c := range cells {
		if c.Role == mapgrid.RoleOutput {
			return c.DX, c.DY, true
		}
	}
	return 0, 0, false
}

func isAdjacent(a, b mapgrid.Point) bool {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx+dy == 1
}

func manhattan(a, b mapgrid.Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
