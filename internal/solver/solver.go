// Package solver implements the randomized, time-boxed construction search
// (§4.3): many worker goroutines each repeatedly build a candidate layout
// from scratch and publish improvements to a shared best-so-far slot, until
// a deadline timer flips a lock-free stop flag.
package solver

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/profit-solver/profit/internal/mapgrid"
	"github.com/profit-solver/profit/internal/simulate"
)

// Options controls one solver run.
type Options struct {
	TimeBudget time.Duration
	Cores      int
	Seed       int64
	Config     Config
}

// Solution is the best candidate layout a run found.
type Solution struct {
	Map       *mapgrid.Map
	Score     int
	BestRound int
}

// bestSlot is the mutex-guarded shared best-so-far state every worker
// publishes candidates to. A candidate replaces the incumbent only if it
// scores strictly higher, or matches and reached that score in an earlier
// round — the same comparator §8 uses to rank solutions.
type bestSlot struct {
	mu  sync.Mutex
	has bool
	sol Solution
}

func (b *bestSlot) tryUpdate(candidate Solution) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.has || better(candidate, b.sol) {
		b.has = true
		b.sol = candidate
	}
}

func (b *bestSlot) snapshot() (Solution, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sol, b.has
}

func better(a, b Solution) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.BestRound < b.BestRound
}

// Run searches for a high-scoring layout on base (the task's immutable
// deposit/obstacle geometry) for products, within opts.TimeBudget, fanning
// construction passes out across opts.Cores worker goroutines. It always
// returns a Solution, worst case the untouched base map scoring zero — it
// never reports an error, matching §6's rule that a solver always emits a
// solution, even an empty one.
func Run(base *mapgrid.Map, products map[int]*simulate.Product, turns int, opts Options) Solution {
	cores := opts.Cores
	if cores < 1 {
		cores = 1
	}

	margin := time.Duration(opts.Config.DeadlineSafetyMarginSeconds * float64(time.Second))
	budget := opts.TimeBudget - margin
	if budget < 0 {
		budget = 0
	}

	var stop atomic.Bool
	timer := time.AfterFunc(budget, func() { stop.Store(true) })
	defer timer.Stop()

	slot := &bestSlot{}
	var wg sync.WaitGroup
	for i := 0; i < cores; i++ {
		wg.Add(1)
		go func(workerSeed int64) {
			defer wg.Done()
			runWorker(base, products, turns, opts.Config, workerSeed, &stop, slot)
		}(deriveWorkerSeed(opts.Seed, i))
	}
	wg.Wait()

	if sol, ok := slot.snapshot(); ok {
		return sol
	}
	return Solution{Map: base.Clone(), Score: 0, BestRound: 0}
}

// runWorker repeatedly builds and scores a fresh candidate layout on its own
// private clone of base, publishing every improvement to slot, until stop is
// set. It always completes at least one pass, so a run whose whole budget is
// taken by the safety margin still yields a constructed layout. Each
// iteration does real placement and simulation work, so polling stop between
// passes rather than on a timer channel costs nothing extra.
func runWorker(base *mapgrid.Map, products map[int]*simulate.Product, turns int, cfg Config, seed int64, stop *atomic.Bool, slot *bestSlot) {
	rng := rand.New(rand.NewSource(seed))
	work := base.Clone()

	for {
		work.Reset(base)
		buildPass(work, products, cfg, rng)

		result := simulate.Run(work, products, turns)
		slot.tryUpdate(Solution{Map: work.Clone(), Score: result.Score, BestRound: result.BestRound})
		if stop.Load() {
			return
		}
	}
}

// deriveWorkerSeed spreads one user-supplied seed across workers so a pinned
// seed reproduces the same fleet of per-worker RNG streams run after run
// (§8's determinism scenario), while an unset seed (0) still gives every
// worker a distinct stream.
func deriveWorkerSeed(seed int64, worker int) int64 {
	return seed*1_000_003 + int64(worker)*97 + 1
}
