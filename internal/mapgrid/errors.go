package mapgrid

import "errors"

// Placement failures are distinguished so callers (the solver's construction
// loop, and this package's own tests) can tell retry-elsewhere apart from
// structurally-impossible without string matching.
var (
	ErrOutOfBounds     = errors.New("mapgrid: footprint out of bounds")
	ErrOverlap         = errors.New("mapgrid: non-crossable cell already occupied")
	ErrAmbiguousRoute  = errors.New("mapgrid: input/output cell would connect to more than one neighbor")
	ErrWrongSideSource = errors.New("mapgrid: input cell touches a source it cannot legally accept from")
	ErrUnknownKind     = errors.New("mapgrid: unrecognized object kind or subtype")
)
