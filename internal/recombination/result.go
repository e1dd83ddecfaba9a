package recombination

import "github.com/ktmeaton/rebar-sub000/internal/sequence"

// Region is a contiguous run of a query's substitutions explained by a
// single parent (spec.md §4.7 step 4).
type Region struct {
	Parent        string
	Start, End    int
	Substitutions []sequence.Substitution
}

// Breakpoint is the half-open coordinate interval between two adjacent
// surviving regions (spec.md §4.7 step 5).
type Breakpoint struct {
	Start, End int
}

// Status is the outcome of comparing discovered parents against the
// ARG's designated parents for a known recombinant (spec.md §4.7 step 7).
type Status int

const (
	StatusPass Status = iota
	StatusFail
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "pass"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Validation reports whether the discovered parents agree with the
// ARG's designated parents for the query's consensus population, when
// that population is a known recombinant.
type Validation struct {
	Status  Status
	Details string
}

// Result is the outcome of a recombination search for one query
// (spec.md §4.7).
type Result struct {
	SequenceID   string
	Parents      []string
	Regions      []Region
	Breakpoints  []Breakpoint
	Recombinant  bool
	EdgeCase     string
	Validation   Validation
	Cancelled    bool
}
