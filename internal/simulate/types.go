// Package simulate runs the deterministic, round-based engine that scores a
// placed layout. It has no knowledge of how a layout was constructed and
// performs no randomization of its own.
package simulate

import "github.com/profit-solver/profit/internal/mapgrid"

// Product is one entry of a task's product catalog.
type Product struct {
	ID        int
	Resources [8]int
	Points    int
}

const mineCapacity = 3

// objectState tracks the per-object resource buffers the round loop mutates.
// Buildings forward whole-unit resource counts; a combiner sums what all of
// its feeders deliver into one buffer, and conveyors hold a one-round-delayed
// pending value.
type objectState struct {
	obj *mapgrid.Object

	// inputBuf is the combiner's summed delivery from every feeder in this
	// round's Phase B, released as output in the next round's Phase A.
	inputBuf int

	// pending is the conveyor's one-round transit buffer: what Phase B
	// delivered to it this round, released as output in the next round's
	// Phase A.
	pending    int
	pendingSet bool

	// factoryAccum is not read or written by Run, which keeps each factory's
	// per-resource pool in its own map keyed by object ID.
	factoryAccum int
}

// Result is the outcome of running a solution to completion or to the round
// horizon, whichever comes first.
type Result struct {
	Score     int
	BestRound int // round at which Score was first achieved
	Rounds    int // rounds actually simulated
}
