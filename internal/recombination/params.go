package recombination

import "github.com/ktmeaton/rebar-sub000/internal/sequence"

// Params bounds and tunes the iterative parent-search / breakpoint-
// assignment algorithm (spec.md §4.7). A dataset.EdgeCase field left at
// its zero value means "don't override" when it is merged in (see
// applyEdgeCase), so Params itself carries only resolved values.
type Params struct {
	MinParents     int
	MaxParents     int
	MaxIter        int
	MinConsecutive int
	MinLength      int
	MinSubs        int
	Mask           sequence.Mask
	Parents        []string // whitelist; nil means "no restriction"
	Knockout       []string
	Naive          bool
}

// DefaultParams returns the defaults tabled in spec.md §4.7.
func DefaultParams() Params {
	return Params{
		MinParents:     2,
		MaxParents:     2,
		MaxIter:        3,
		MinConsecutive: 3,
		MinLength:      500,
		MinSubs:        1,
		Mask:           sequence.Mask{M5: 100, M3: 200},
	}
}
