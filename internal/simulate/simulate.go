package simulate

import "github.com/profit-solver/profit/internal/mapgrid"

// Run executes the placed layout on m for up to turns rounds and returns its
// score trajectory. It never mutates m; all per-object state lives in a
// local slice indexed by object ID.
//
// Round semantics: Phase A computes what each producer makes available this
// round (a mine withdraws from its deposit, a conveyor or combiner releases
// whatever it buffered from the previous round's Phase B, a factory
// consumes one unit of its product if its accumulator allows) and advances
// the score; Phase B moves every Phase-A output atomically onto whatever
// each producer's single output cell feeds.
func Run(m *mapgrid.Map, products map[int]*Product, turns int) Result {
	w := buildWiring(m)

	states := make([]objectState, len(m.Objects))
	for i, obj := range m.Objects {
		states[i] = objectState{obj: obj}
	}

	remaining := make(map[int]int, len(m.Objects))
	for _, obj := range m.Objects {
		if obj.Kind == mapgrid.KindDeposit {
			remaining[obj.ID] = obj.Amount
		}
	}

	// factoryAccum[objID][resourceType] tracks a factory's resource pool.
	factoryAccum := make(map[int]*[8]int)
	for _, obj := range m.Objects {
		if obj.Kind == mapgrid.KindFactory {
			factoryAccum[obj.ID] = &[8]int{}
		}
	}

	score := 0
	bestRound := 0
	round := 0

	for ; round < turns; round++ {
		outputReady := make(map[int]int, len(m.Objects))

		// Phase A.
		for _, obj := range m.Objects {
			switch obj.Kind {
			case mapgrid.KindMine:
				depID, ok := w.mineDeposit[obj.ID]
				if !ok {
					continue
				}
				take := mineCapacity
				if r := remaining[depID]; r < take {
					take = r
				}
				if take <= 0 {
					continue
				}
				remaining[depID] -= take
				outputReady[obj.ID] = take

			case mapgrid.KindConveyor:
				st := &states[obj.ID]
				if st.pendingSet && st.pending > 0 {
					outputReady[obj.ID] = st.pending
				}
				st.pending = 0
				st.pendingSet = false

			case mapgrid.KindCombiner:
				st := &states[obj.ID]
				if st.inputBuf > 0 {
					outputReady[obj.ID] = st.inputBuf
				}
				st.inputBuf = 0

			case mapgrid.KindFactory:
				prod, ok := products[int(obj.Subtype)]
				if !ok {
					continue
				}
				accum := factoryAccum[obj.ID]
				if consumeOne(accum, &prod.Resources) {
					score += prod.Points
					bestRound = round
				}
			}
		}

		// Phase B.
		for objID, amt := range outputReady {
			if amt <= 0 {
				continue
			}
			targetID, ok := w.outgoing[objID]
			if !ok {
				continue
			}
			target := m.Objects[targetID]
			switch target.Kind {
			case mapgrid.KindConveyor:
				st := &states[targetID]
				st.pending = amt
				st.pendingSet = true
			case mapgrid.KindCombiner:
				states[targetID].inputBuf += amt
			case mapgrid.KindFactory:
				rt := w.resourceType[objID]
				if rt >= 0 && rt < 8 {
					factoryAccum[targetID][rt] += amt
				}
			}
		}

		if horizonExhausted(remaining, states, factoryAccum, m.Objects) {
			round++
			break
		}
	}

	return Result{Score: score, BestRound: bestRound, Rounds: round}
}

// consumeOne deducts need from accum if accum holds at least need in every
// slot, reporting whether a unit was consumed.
func consumeOne(accum *[8]int, need *[8]int) bool {
	for i := 0; i < 8; i++ {
		if accum[i] < need[i] {
			return false
		}
	}
	for i := 0; i < 8; i++ {
		accum[i] -= need[i]
	}
	return true
}

// horizonExhausted reports whether no material remains in deposits, transit
// buffers, or factory accumulators — meaning no further round can change
// the score.
func horizonExhausted(remaining map[int]int, states []objectState, factoryAccum map[int]*[8]int, objects []*mapgrid.Object) bool {
	for _, amt := range remaining {
		if amt > 0 {
			return false
		}
	}
	for i := range states {
		if states[i].pendingSet && states[i].pending > 0 {
			return false
		}
		if states[i].inputBuf > 0 {
			return false
		}
	}
	for _, acc := range factoryAccum {
		for _, v := range acc {
			if v > 0 {
				return false
			}
		}
	}
	return true
}
