package mapgrid

import (
	"fmt"

	"github.com/katalvlaran/lvlath/bfs"
	"github.com/katalvlaran/lvlath/core"
)

const sourceVertexID = "$source"

func vertexID(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}

// passable reports whether a cell can carry the distance field, i.e. it is
// empty or a conveyor's crossable middle cell.
func (m *Map) passable(x, y int) bool {
	c := m.Cells[y][x]
	return !c.Occupied || c.Role == RoleCrossable
}

// buildDistanceGraph constructs an unweighted core.Graph over every passable
// cell, wired to its four orthogonal neighbors, plus a synthetic source
// vertex connected to every cell adjacent to a deposit output cell.
//
// gridgraph.ToCoreGraph builds its graph with core.WithWeighted(), which bfs.BFS
// unconditionally rejects; the graph here is built directly against core.Graph
// instead, so it stays unweighted and usable with bfs.BFS.
func (m *Map) buildDistanceGraph() *core.Graph {
	g := core.NewGraph()
	_ = g.AddVertex(sourceVertexID)

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.passable(x, y) {
				_ = g.AddVertex(vertexID(x, y))
			}
		}
	}

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.passable(x, y) {
				continue
			}
			id := vertexID(x, y)
			if x+1 < m.Width && m.passable(x+1, y) {
				_, _ = g.AddEdge(id, vertexID(x+1, y), 0)
			}
			if y+1 < m.Height && m.passable(x, y+1) {
				_, _ = g.AddEdge(id, vertexID(x, y+1), 0)
			}
		}
	}

	for _, obj := range m.Objects {
		if obj.Kind != KindDeposit {
			continue
		}
		for _, border := range DepositBorderCells(obj.X, obj.Y, obj.Width, obj.Height) {
			for _, n := range m.neighbors4(border.X, border.Y) {
				if m.passable(n.X, n.Y) {
					_, _ = g.AddEdge(sourceVertexID, vertexID(n.X, n.Y), 0)
				}
			}
		}
	}
	return g
}

// Distances recomputes (if dirty) and returns the per-cell distance field:
// the fewest steps from any deposit's output-adjacent cell to each passable
// cell, or -1 if unreachable.
func (m *Map) Distances() [][]int {
	if !m.distDirty && m.dist != nil {
		return m.dist
	}

	dist := make([][]int, m.Height)
	for y := range dist {
		dist[y] = make([]int, m.Width)
		for x := range dist[y] {
			dist[y][x] = -1
		}
	}

	g := m.buildDistanceGraph()
	if g.HasVertex(sourceVertexID) {
		res, err := bfs.BFS(g, sourceVertexID)
		if err == nil {
			for id, depth := range res.Depth {
				if id == sourceVertexID {
					continue
				}
				var x, y int
				if _, scanErr := fmt.Sscanf(id, "%d,%d", &x, &y); scanErr == nil {
					dist[y][x] = depth - 1 // subtract the synthetic source hop
				}
			}
		}
	}

	m.dist = dist
	m.distDirty = false
	return dist
}

// DistanceAt returns the distance field value at (x,y), recomputing the
// field first if it is dirty, or a very large sentinel if (x,y) is off the
// grid or unreachable.
func (m *Map) DistanceAt(x, y int) int {
	d := m.Distances()
	if !m.InBounds(x, y) {
		return 1 << 30
	}
	if d[y][x] < 0 {
		return 1 << 30
	}
	return d[y][x]
}
