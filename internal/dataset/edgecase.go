package dataset

// EdgeCase overrides a subset of recombination-search parameters for one
// named recombinant population, recovered from original_source's
// `RunArgs::apply_edge_case` (spec.md's supplemented-features list: a
// dataset carries named overrides keyed to a recombinant label). Only
// the fields that original_source actually overrides are present; zero
// values (nil slices, zero ints) mean "don't override this parameter".
type EdgeCase struct {
	Population string

	MinParents     int
	MaxParents     int
	MaxIter        int
	MinConsecutive int
	MinLength      int
	MinSubs        int
	Mask           *[2]int
	Parents        []string
	Knockout       []string
	Naive          bool
}

// EdgeCaseFor returns the edge case registered for label, if any.
func (d *Dataset) EdgeCaseFor(label string) (EdgeCase, bool) {
	for _, ec := range d.EdgeCases {
		if ec.Population == label {
			return ec, true
		}
	}
	return EdgeCase{}, false
}
