// Package mapgrid owns the occupancy grid, placement legality, and the
// deposit distance field that the solver queries while constructing a layout.
package mapgrid

// ObjectKind identifies what a placed object is.
type ObjectKind uint8

const (
	KindDeposit ObjectKind = iota
	KindObstacle
	KindMine
	KindConveyor
	KindCombiner
	KindFactory
)

func (k ObjectKind) String() string {
	switch k {
	case KindDeposit:
		return "deposit"
	case KindObstacle:
		return "obstacle"
	case KindMine:
		return "mine"
	case KindConveyor:
		return "conveyor"
	case KindCombiner:
		return "combiner"
	case KindFactory:
		return "factory"
	default:
		return "unknown"
	}
}

// CellRole marks what a cell of a building's footprint is used for.
type CellRole uint8

const (
	RoleNone CellRole = iota
	RoleInput
	RoleOutput
	RoleInterior
	RoleCrossable
)

// Cell is one grid position's occupancy record.
type Cell struct {
	Occupied bool
	OwnerIdx int // index into Map.Objects, valid only if Occupied
	Role     CellRole
}

// Object is one placed building, deposit rectangle, or obstacle rectangle.
type Object struct {
	ID      int
	Kind    ObjectKind
	Subtype uint8 // rotation (0-3) for mine/combiner; 0-7 for conveyor (4-7 long); product id for factory; unused for deposit/obstacle
	X, Y    int   // anchor (top-left) of the footprint
	Width   int
	Height  int

	// Resource/points metadata, populated for the kinds that need it.
	Resource int // deposit resource type
	Amount   int // deposit initial amount
}

// Point is an integer grid coordinate.
type Point struct{ X, Y int }

// Map is the mutable grid a solver worker owns and mutates while building a
// candidate solution. Task-level data (width/height/deposit/obstacle set) is
// immutable once constructed; Objects grows as placements are accepted.
type Map struct {
	Width, Height int
	Cells         [][]Cell // Cells[y][x]
	Objects       []*Object

	distDirty bool
	dist      [][]int // cached distance field, -1 = unreachable
}

// New allocates an empty W×H map.
func New(width, height int) *Map {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
	}
	return &Map{Width: width, Height: height, Cells: cells, distDirty: true}
}

// InBounds reports whether (x,y) lies on the grid.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.Width && y < m.Height
}

// Clone returns a deep, independent copy suitable for a solver worker's
// private pass. Cells and Objects are copied; Object pointers are not shared
// with the source map.
func (m *Map) Clone() *Map {
	out := &Map{Width: m.Width, Height: m.Height}
	out.Cells = make([][]Cell, m.Height)
	for y := range m.Cells {
		out.Cells[y] = make([]Cell, m.Width)
		copy(out.Cells[y], m.Cells[y])
	}
	out.Objects = make([]*Object, len(m.Objects))
	for i, o := range m.Objects {
		cp := *o
		out.Objects[i] = &cp
	}
	out.distDirty = true
	return out
}

// Reset restores the map to the given base (the task's initial deposits and
// obstacles, with no buildings placed) without reallocating the grid.
func (m *Map) Reset(base *Map) {
	for y := range m.Cells {
		copy(m.Cells[y], base.Cells[y])
	}
	m.Objects = m.Objects[:0]
	for _, o := range base.Objects {
		cp := *o
		m.Objects = append(m.Objects, &cp)
	}
	m.distDirty = true
}

func (m *Map) neighbors4(x, y int) []Point {
	out := make([]Point, 0, 4)
	for _, d := range [4]Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}} {
		nx, ny := x+d.X, y+d.Y
		if m.InBounds(nx, ny) {
			out = append(out, Point{nx, ny})
		}
	}
	return out
}
