package solver

import (
	"math"
	"math/rand"
	"sort"

	"github.com/profit-solver/profit/internal/mapgrid"
	"github.com/profit-solver/profit/internal/simulate"
)

// buildPass runs one randomized greedy construction attempt against work (an
// already-Reset clone of the task's base geometry), placing up to
// cfg.FactoriesPerPass factory/mine/path groups before returning. A failure
// at any stage — no legal factory position, no deposit left for a resource,
// no route found — just moves on to the next product; a dangling mine or
// factory is a valid, if unsupplied, part of the layout (§3).
func buildPass(work *mapgrid.Map, products map[int]*simulate.Product, cfg Config, rng *rand.Rand) {
	totals := depositTotals(work)
	order := sortedProducts(products)
	// Weighted shuffle: a product's chance of being tried first is
	// proportional to its points times its scarcest resource's availability.
	keys := make(map[*simulate.Product]float64, len(order))
	for _, p := range order {
		weight := float64(p.Points) * float64(minAvailability(p, totals))
		if weight <= 0 {
			keys[p] = math.Inf(1)
			continue
		}
		keys[p] = -math.Log(1-rng.Float64()) / weight
	}
	sort.SliceStable(order, func(i, j int) bool { return keys[order[i]] < keys[order[j]] })

	placed := 0
	for _, prod := range order {
		if placed >= cfg.FactoriesPerPass {
			break
		}
		if minAvailability(prod, totals) <= 0 {
			continue
		}
		if placeFactoryChain(work, prod, totals, cfg, rng) {
			placed++
		}
	}
}

// sortedProducts orders the catalog by descending points then ascending id,
// giving buildPass's later shuffle a deterministic base ordering rather than
// map iteration order.
func sortedProducts(products map[int]*simulate.Product) []*simulate.Product {
	out := make([]*simulate.Product, 0, len(products))
	for _, p := range products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Points != out[j].Points {
			return out[i].Points > out[j].Points
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// depositTotals sums each resource type's total amount across every deposit
// currently on the map.
func depositTotals(m *mapgrid.Map) [8]int {
	var totals [8]int
	for _, obj := range m.Objects {
		if obj.Kind == mapgrid.KindDeposit && obj.Resource >= 0 && obj.Resource < 8 {
			totals[obj.Resource] += obj.Amount
		}
	}
	return totals
}

// minAvailability scores a product by its scarcest required resource's
// deposit total, used to weed out products the map cannot possibly supply
// and to weight which product a pass attempts first.
func minAvailability(p *simulate.Product, totals [8]int) int {
	min := -1
	for i, need := range p.Resources {
		if need <= 0 {
			continue
		}
		if totals[i] <= 0 {
			return 0
		}
		if min < 0 || totals[i] < min {
			min = totals[i]
		}
	}
	if min < 0 {
		return 0
	}
	return min
}

// placeFactoryChain places one factory for prod and, for each resource it
// needs, a mine against a deposit of that resource plus a routed connection
// from the mine to a free factory input cell. It reports whether the
// factory itself was placed; individual resource hookups may fail without
// aborting the whole chain.
func placeFactoryChain(work *mapgrid.Map, prod *simulate.Product, totals [8]int, cfg Config, rng *rand.Rand) bool {
	factory, ok := placeFactoryAt(work, prod, cfg, rng)
	if !ok {
		return false
	}

	for resource, need := range prod.Resources {
		if need <= 0 || totals[resource] <= 0 {
			continue
		}
		dep, ok := pickDeposit(work, resource, rng)
		if !ok {
			continue
		}
		mine, ok := placeMineNearDeposit(work, dep, rng)
		if !ok {
			continue
		}
		goal, ok := freeFactoryInputCell(work, factory, rng)
		if !ok {
			continue
		}
		out, ok := work.RoleCellOf(mine, mapgrid.RoleOutput, 0)
		if !ok {
			continue
		}
		routePath(work, out, goal, cfg, rng)
	}
	return true
}

type candidatePos struct {
	p     mapgrid.Point
	score int
}

// placeFactoryAt samples cfg.PlacementRetries candidate anchors, scores each
// by the distance field at its center (closer to the deposit network is
// better, since every resource the factory needs will have to be routed
// there), and commits the first legal one in that order.
func placeFactoryAt(work *mapgrid.Map, prod *simulate.Product, cfg Config, rng *rand.Rand) (*mapgrid.Object, bool) {
	const size = 5
	if work.Width < size || work.Height < size {
		return nil, false
	}

	cands := make([]candidatePos, 0, cfg.PlacementRetries)
	for i := 0; i < cfg.PlacementRetries; i++ {
		x := rng.Intn(work.Width - size + 1)
		y := rng.Intn(work.Height - size + 1)
		score := work.DistanceAt(x+size/2, y+size/2)
		cands = append(cands, candidatePos{p: mapgrid.Point{X: x, Y: y}, score: score})
	}
	sort.Slice(cands, func(i, j int) bool { return cands[i].score < cands[j].score })

	for _, c := range cands {
		if obj, err := work.PlaceBuilding(mapgrid.KindFactory, uint8(prod.ID), c.p.X, c.p.Y); err == nil {
			return obj, true
		}
	}
	return nil, false
}

// pickDeposit weighted-randomly picks a deposit of the given resource type,
// biased toward larger remaining amounts.
func pickDeposit(work *mapgrid.Map, resource int, rng *rand.Rand) (*mapgrid.Object, bool) {
	var candidates []*mapgrid.Object
	total := 0
	for _, obj := range work.Objects {
		if obj.Kind == mapgrid.KindDeposit && obj.Resource == resource && obj.Amount > 0 {
			candidates = append(candidates, obj)
			total += obj.Amount
		}
	}
	if len(candidates) == 0 {
		return nil, false
	}
	pick := rng.Intn(total)
	for _, obj := range candidates {
		if pick < obj.Amount {
			return obj, true
		}
		pick -= obj.Amount
	}
	return candidates[len(candidates)-1], true
}

// placeMineNearDeposit tries every deposit border cell, in random order,
// against every mine rotation, and commits the first placement whose input
// cell lands adjacent to that border cell.
func placeMineNearDeposit(work *mapgrid.Map, dep *mapgrid.Object, rng *rand.Rand) (*mapgrid.Object, bool) {
	borders := mapgrid.DepositBorderCells(dep.X, dep.Y, dep.Width, dep.Height)
	rng.Shuffle(len(borders), func(i, j int) { borders[i], borders[j] = borders[j], borders[i] })

	rotations := []uint8{0, 1, 2, 3}
	for _, b := range borders {
		for _, n := range fourNeighbors(b) {
			if !work.InBounds(n.X, n.Y) {
				continue
			}
			rng.Shuffle(len(rotations), func(i, j int) { rotations[i], rotations[j] = rotations[j], rotations[i] })
			for _, rot := range rotations {
				ax, ay, ok := mapgrid.AnchorForRoleAt(mapgrid.KindMine, rot, mapgrid.RoleInput, n.X, n.Y, 0)
				if !ok {
					continue
				}
				if obj, err := work.PlaceBuilding(mapgrid.KindMine, rot, ax, ay); err == nil {
					return obj, true
				}
			}
		}
	}
	return nil, false
}

// freeFactoryInputCell picks a random factory border input cell that has no
// output neighbor feeding it yet.
func freeFactoryInputCell(work *mapgrid.Map, factory *mapgrid.Object, rng *rand.Rand) (mapgrid.Point, bool) {
	var cells []mapgrid.Point
	for dy := 0; dy < factory.Height; dy++ {
		for dx := 0; dx < factory.Width; dx++ {
			x, y := factory.X+dx, factory.Y+dy
			occupied, role, owner := work.CellRoleAt(x, y)
			if occupied && owner == factory.ID && role == mapgrid.RoleInput {
				p := mapgrid.Point{X: x, Y: y}
				if !inputFed(work, p) {
					cells = append(cells, p)
				}
			}
		}
	}
	if len(cells) == 0 {
		return mapgrid.Point{}, false
	}
	return cells[rng.Intn(len(cells))], true
}

func inputFed(work *mapgrid.Map, p mapgrid.Point) bool {
	for _, n := range fourNeighbors(p) {
		if !work.InBounds(n.X, n.Y) {
			continue
		}
		occupied, role, _ := work.CellRoleAt(n.X, n.Y)
		if occupied && role == mapgrid.RoleOutput {
			return true
		}
	}
	return false
}

func fourNeighbors(p mapgrid.Point) []mapgrid.Point {
	return []mapgrid.Point{
		{X: p.X, Y: p.Y - 1}, {X: p.X, Y: p.Y + 1},
		{X: p.X - 1, Y: p.Y}, {X: p.X + 1, Y: p.Y},
	}
}
