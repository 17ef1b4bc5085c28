// Package taskio converts between the competition's JSON task/solution
// wire format and the internal mapgrid/simulate representations. It is the
// one package in this module allowed to know about the external interfaces
// named in §6 — the core (M/S/V) never imports it.
package taskio

import (
	"github.com/profit-solver/profit/internal/mapgrid"
	"github.com/profit-solver/profit/internal/simulate"
)

// ObjectKind is the JSON "type" discriminator shared by task input objects
// (deposit, obstacle) and solution output objects (mine, conveyor, combiner,
// factory).
type ObjectKind string

const (
	KindDeposit  ObjectKind = "deposit"
	KindObstacle ObjectKind = "obstacle"
	KindMine     ObjectKind = "mine"
	KindConveyor ObjectKind = "conveyor"
	KindCombiner ObjectKind = "combiner"
	KindFactory  ObjectKind = "factory"
)

// SolutionRecord is one entry of the output JSON array: a single placed
// building, with only the fields the judge expects for a solution record.
type SolutionRecord struct {
	Type    ObjectKind `json:"type"`
	X       int        `json:"x"`
	Y       int        `json:"y"`
	Subtype int        `json:"subtype"`
}

// Task is a fully parsed input: the map already seeded with the task's
// deposits and obstacles, the product catalog keyed by subtype/product id,
// and the round/time budget from §6.
type Task struct {
	Width, Height int
	Turns         int
	TimeBudget    float64 // seconds

	Map      *mapgrid.Map
	Products map[int]*simulate.Product

	// BaseObjectCount is len(Map.Objects) immediately after parsing, i.e.
	// the count of objects the task itself placed (deposits, obstacles, and
	// any buildings listed in its objects array), which the solver leaves
	// untouched when it appends its own placements. FormatSolution uses it to emit
	// only the solver's additions.
	BaseObjectCount int
}

// Stats is the --stats payload emitted on stderr: the final score and the
// round at which it was first achieved.
type Stats struct {
	Score           int `json:"score"`
	AchievedAtRound int `json:"achieved_at_round"`
}
