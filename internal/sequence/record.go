// Package sequence implements the aligned-sequence data model and the
// diff-against-reference operation (spec.md C1 / §4.1).
package sequence

import (
	"sort"

	"github.com/mpvl/unique"
)

// Record is a reduced representation of an aligned sequence: an
// identifier, genome length, alphabet, and the three coordinate sets
// derived by diffing against a reference (spec.md §3). The three sets
// are pairwise disjoint by coordinate and every genome coordinate is
// classified as exactly one of {match, substitution, deletion,
// missing}.
type Record struct {
	ID            string
	GenomeLength  int
	Alphabet      Alphabet
	Substitutions []Substitution
	Deletions     []Deletion
	Missing       []int

	// Sequence holds the raw base vector (1-indexed in spirit, 0-indexed
	// in storage: Sequence[i] is the base at coord i+1). Nil when the
	// caller asked to discard it after diffing, mirroring
	// original_source's discard_sequence option.
	Sequence []byte
}

// Mask is the pair of 5'/3' end-mask widths applied during Diff
// (spec.md §4.1).
type Mask struct {
	M5 int
	M3 int
}

// HasSubstitution reports whether the record carries a substitution at
// the given coordinate, regardless of alt base.
func (r *Record) HasSubstitution(coord int) bool {
	for _, s := range r.Substitutions {
		if s.Coord == coord {
			return true
		}
	}
	return false
}

// SubstitutionAt returns the substitution at coord, if any.
func (r *Record) SubstitutionAt(coord int) (Substitution, bool) {
	// Substitutions are kept sorted by coord; binary search is safe.
	i := sort.Search(len(r.Substitutions), func(i int) bool {
		return r.Substitutions[i].Coord >= coord
	})
	if i < len(r.Substitutions) && r.Substitutions[i].Coord == coord {
		return r.Substitutions[i], true
	}
	return Substitution{}, false
}

// IsDeletion reports whether coord is in the record's deletion set.
func (r *Record) IsDeletion(coord int) bool {
	for _, d := range r.Deletions {
		if d.Coord == coord {
			return true
		}
	}
	return false
}

// IsMissing reports whether coord is in the record's missing set.
func (r *Record) IsMissing(coord int) bool {
	i := sort.SearchInts(r.Missing, coord)
	return i < len(r.Missing) && r.Missing[i] == coord
}

// sortSubs sorts and dedups substitutions in place by coordinate.
func sortSubs(subs []Substitution) []Substitution {
	s := SubsByCoord(subs)
	unique.Sort(&s)
	return []Substitution(s)
}

// sortInts sorts and dedups a slice of coordinates in place.
func sortInts(xs []int) []int {
	sort.Ints(xs)
	out := xs[:0]
	for i, x := range xs {
		if i == 0 || x != out[len(out)-1] {
			out = append(out, x)
		}
	}
	return out
}
