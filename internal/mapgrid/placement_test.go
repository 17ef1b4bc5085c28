package mapgrid

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlaceDepositThenMineConnects(t *testing.T) {
	m := New(10, 10)
	_, err := m.PlaceDeposit(0, 10, 0, 0, 1, 1)
	require.NoError(t, err)

	// Mine rotation 0: input west (row 1 of its 4x2 bounding box), output
	// east; anchored at (0,0) so its input cell at (0,1) touches the
	// deposit's single output cell at (0,0).
	obj, err := m.PlaceBuilding(KindMine, 0, 0, 0)
	require.NoError(t, err)
	require.Equal(t, KindMine, obj.Kind)
}

func TestCombinerAcceptsThreeDistinctFeedersButRejectsASecondOnOneInput(t *testing.T) {
	m := New(10, 10)

	// Combiner rotation 0: three-cell ingress column on the west side
	// (dx=0, rows 0-2), egress cell on the east side (dx=2, dy=1).
	// Anchored at (3,3) so its ingress cells land on (3,3), (3,4), (3,5).
	_, err := m.PlaceBuilding(KindCombiner, 0, 3, 3)
	require.NoError(t, err)

	// Three separate short conveyors (rotation 0: input west, output east),
	// each feeding one of the combiner's three distinct ingress cells.
	_, err = m.PlaceBuilding(KindConveyor, 0, 0, 3) // output (2,3) feeds ingress (3,3)
	require.NoError(t, err)
	_, err = m.PlaceBuilding(KindConveyor, 0, 0, 4) // output (2,4) feeds ingress (3,4)
	require.NoError(t, err)
	_, err = m.PlaceBuilding(KindConveyor, 0, 0, 5) // output (2,5) feeds ingress (3,5)
	require.NoError(t, err)

	// A fourth conveyor (rotation 1: input north, output south) whose output
	// also touches (3,3) must be rejected: that ingress cell already has a
	// feeder, even though the new conveyor's own neighbor scan at (3,3) only
	// ever sees the combiner's ingress cell as a single partner.
	_, err = m.PlaceBuilding(KindConveyor, 1, 3, 0) // output (3,2) touches ingress (3,3) too
	require.ErrorIs(t, err, ErrAmbiguousRoute)
}

func TestNoTwoNonCrossableCellsShareAPosition(t *testing.T) {
	m := New(10, 10)
	_, err := m.PlaceBuilding(KindFactory, 0, 0, 0)
	require.NoError(t, err)
	_, err = m.PlaceBuilding(KindFactory, 0, 2, 2)
	require.ErrorIs(t, err, ErrOverlap)
}

func TestInputTouchesAtMostOneOutput(t *testing.T) {
	m := New(10, 10)
	// Two synthetic output cells flanking (5,5) on opposite sides.
	m.Objects = append(m.Objects, &Object{ID: 0, Kind: KindMine}, &Object{ID: 1, Kind: KindMine})
	m.Cells[4][5] = Cell{Occupied: true, OwnerIdx: 0, Role: RoleOutput}
	m.Cells[6][5] = Cell{Occupied: true, OwnerIdx: 1, Role: RoleOutput}

	err := m.checkConnection(5, 5, RoleInput, KindConveyor)
	require.ErrorIs(t, err, ErrAmbiguousRoute)
}

func TestDepositOutputFeedsOnlyMineInput(t *testing.T) {
	m := New(10, 10)
	_, err := m.PlaceDeposit(0, 10, 0, 0, 1, 1)
	require.NoError(t, err)

	// A conveyor's input cell touching the deposit's output is illegal;
	// only a mine may draw from a deposit.
	_, err = m.PlaceBuilding(KindConveyor, 0, 1, 0)
	require.ErrorIs(t, err, ErrWrongSideSource)
}

func TestOutOfBoundsRejected(t *testing.T) {
	m := New(4, 4)
	_, err := m.PlaceBuilding(KindFactory, 0, 2, 2)
	require.ErrorIs(t, err, ErrOutOfBounds)
}

func TestCrossingConveyorsAtMiddleCellsAccepted(t *testing.T) {
	m := New(10, 10)
	// Horizontal short conveyor (rotation 0) occupying a row.
	_, err := m.PlaceBuilding(KindConveyor, 0, 0, 1)
	require.NoError(t, err)
	// Vertical short conveyor (rotation 1) crossing through the horizontal
	// one's middle cell.
	_, err = m.PlaceBuilding(KindConveyor, 1, 1, 0)
	require.NoError(t, err)
}

func TestCrossableCellsRejectSameAxisOverlap(t *testing.T) {
	m := New(10, 10)
	// A synthetic horizontal (rotation 0) conveyor's crossable cell at
	// (5,5); today's fixed-length templates can never produce this overlap
	// through two real PlaceBuilding calls, so the owning object is
	// injected directly, the same way TestExistingOutputRejectsSecondInputFromAnotherSide
	// synthesizes a scenario the real footprints can't reach on their own.
	m.Objects = append(m.Objects, &Object{ID: 0, Kind: KindConveyor, Subtype: 0})
	m.Cells[5][5] = Cell{Occupied: true, OwnerIdx: 0, Role: RoleCrossable}

	// A second horizontal (rotation 0, same axis) conveyor anchored so its
	// own crossable middle cell lands on (5,5) too: role-only matching would
	// accept this (crossable on crossable), but the two conveyors run
	// parallel, not perpendicular, so it must be rejected.
	_, err := m.PlaceBuilding(KindConveyor, 0, 4, 5)
	require.ErrorIs(t, err, ErrOverlap)
}

func TestExistingOutputRejectsSecondInputFromAnotherSide(t *testing.T) {
	m := New(10, 10)
	m.Objects = append(m.Objects, &Object{ID: 0, Kind: KindMine}, &Object{ID: 1, Kind: KindConveyor})
	m.Cells[5][5] = Cell{Occupied: true, OwnerIdx: 0, Role: RoleOutput}

	// An input cell north of the output connects fine...
	require.NoError(t, m.checkConnection(5, 4, RoleInput, KindConveyor))
	m.Cells[4][5] = Cell{Occupied: true, OwnerIdx: 1, Role: RoleInput}

	// ...but a second input east of the same output must be rejected, even
	// though the new cell's own neighbor scan only ever sees one partner (the
	// output itself): the output already has a different input attached.
	err := m.checkConnection(6, 5, RoleInput, KindConveyor)
	require.ErrorIs(t, err, ErrAmbiguousRoute)
}

func TestDistanceFieldFromDeposit(t *testing.T) {
	m := New(5, 5)
	_, err := m.PlaceDeposit(0, 10, 0, 0, 1, 1)
	require.NoError(t, err)

	d := m.Distances()
	require.Equal(t, 0, d[0][1]) // immediately east of the deposit
	require.Equal(t, 0, d[1][0]) // immediately south of the deposit
	require.Greater(t, d[4][4], 0)
}

func TestDistanceFieldRecomputesWhenDepositSetChanges(t *testing.T) {
	m := New(5, 5)
	_, err := m.PlaceDeposit(0, 10, 0, 0, 1, 1)
	require.NoError(t, err)
	first := m.Distances()
	require.Equal(t, first, m.Distances()) // cached, no dirty recompute

	_, err = m.PlaceDeposit(1, 10, 4, 4, 1, 1)
	require.NoError(t, err)
	second := m.Distances()
	require.Less(t, second[3][4], first[3][4])
}
