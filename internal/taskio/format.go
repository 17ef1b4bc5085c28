package taskio

import (
	"fmt"
	"io"
	"strings"

	"github.com/profit-solver/profit/internal/mapgrid"
)

// FormatSolution converts everything the solver appended past the task's
// initial deposit/obstacle objects into the judge's output array, in
// placement order, implicitly typed by footprint/rotation per §6.
func FormatSolution(m *mapgrid.Map, baseObjectCount int) []SolutionRecord {
	placed := m.Objects[baseObjectCount:]
	out := make([]SolutionRecord, 0, len(placed))
	for _, obj := range placed {
		kind := kindName(obj.Kind)
		if kind == "" {
			continue
		}
		out = append(out, SolutionRecord{Type: kind, X: obj.X, Y: obj.Y, Subtype: int(obj.Subtype)})
	}
	return out
}

func kindName(k mapgrid.ObjectKind) ObjectKind {
	switch k {
	case mapgrid.KindMine:
		return KindMine
	case mapgrid.KindConveyor:
		return KindConveyor
	case mapgrid.KindCombiner:
		return KindCombiner
	case mapgrid.KindFactory:
		return KindFactory
	default:
		return ""
	}
}

// PrintASCII renders the map's occupancy as a human-readable grid, one
// glyph per cell, for the --print flag.
func PrintASCII(w io.Writer, m *mapgrid.Map) {
	var b strings.Builder
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			b.WriteString(cellGlyph(m, x, y))
		}
		b.WriteByte('\n')
	}
	fmt.Fprint(w, b.String())
}

func cellGlyph(m *mapgrid.Map, x, y int) string {
	occupied, role, ownerIdx := m.CellRoleAt(x, y)
	if !occupied {
		return "."
	}
	switch m.Objects[ownerIdx].Kind {
	case mapgrid.KindDeposit:
		return "D"
	case mapgrid.KindObstacle:
		return "#"
	case mapgrid.KindMine:
		return glyphByRole(role, "m", "M", "m")
	case mapgrid.KindConveyor:
		if role == mapgrid.RoleCrossable {
			return "+"
		}
		return glyphByRole(role, "c", "C", "c")
	case mapgrid.KindCombiner:
		return glyphByRole(role, "x", "X", "x")
	case mapgrid.KindFactory:
		return glyphByRole(role, "f", "f", "F")
	default:
		return "?"
	}
}

// glyphByRole picks the input/output/interior glyph for a building kind;
// any role other than input or output gets the interior glyph.
func glyphByRole(role mapgrid.CellRole, input, output, interior string) string {
	switch role {
	case mapgrid.RoleInput:
		return input
	case mapgrid.RoleOutput:
		return output
	default:
		return interior
	}
}
