// Package parsimony implements the support/conflict/private breakdown
// and integer parsimony score between two sequence records (spec.md C6 /
// §4.5).
package parsimony

import (
	"sort"

	"github.com/ktmeaton/rebar-sub000/internal/sequence"
)

// Summary breaks down how well secondary explains primary's
// substitutions.
type Summary struct {
	// Support is substitutions present in both primary and secondary.
	Support []sequence.Substitution
	// ConflictAlt is substitutions in primary but not in secondary.
	ConflictAlt []sequence.Substitution
	// ConflictRef is substitutions in secondary but not in primary.
	ConflictRef []sequence.Substitution
	// Private is ConflictAlt union ConflictRef with each entry's ref and
	// alt swapped, sorted by coordinate.
	Private []sequence.Substitution
}

// Score returns support - conflict_ref - conflict_alt (spec.md §4.5).
func (s Summary) Score() int {
	return len(s.Support) - len(s.ConflictRef) - len(s.ConflictAlt)
}

// Summarize compares primary against secondary, optionally restricted
// to a coordinate filter. Coordinates in primary's deletions or missing
// set are excluded from secondary's substitutions first, since they
// cannot testify for or against primary (spec.md §4.5).
func Summarize(primary, secondary *sequence.Record, coords []int) Summary {
	exclude := map[int]bool{}
	for _, d := range primary.Deletions {
		exclude[d.Coord] = true
	}
	for _, m := range primary.Missing {
		exclude[m] = true
	}

	var filter map[int]bool
	if coords != nil {
		filter = map[int]bool{}
		for _, c := range coords {
			filter[c] = true
		}
	}

	primarySubs := filterSubs(primary.Substitutions, filter, nil)
	secondarySubs := filterSubs(secondary.Substitutions, filter, exclude)

	secondarySet := map[sequence.Substitution]bool{}
	for _, s := range secondarySubs {
		secondarySet[s] = true
	}
	primarySet := map[sequence.Substitution]bool{}
	for _, s := range primarySubs {
		primarySet[s] = true
	}

	var out Summary
	for _, s := range primarySubs {
		if secondarySet[s] {
			out.Support = append(out.Support, s)
		} else {
			out.ConflictAlt = append(out.ConflictAlt, s)
		}
	}
	for _, s := range secondarySubs {
		if !primarySet[s] {
			out.ConflictRef = append(out.ConflictRef, s)
		}
	}

	out.Private = append(out.Private, out.ConflictAlt...)
	for _, s := range out.ConflictRef {
		out.Private = append(out.Private, s.Flip())
	}
	sort.Sort(sequence.SubsByCoord(out.Private))

	return out
}

// filterSubs applies an optional coordinate allowlist and an optional
// exclude set, preserving order.
func filterSubs(subs []sequence.Substitution, allow, exclude map[int]bool) []sequence.Substitution {
	var out []sequence.Substitution
	for _, s := range subs {
		if exclude != nil && exclude[s.Coord] {
			continue
		}
		if allow != nil && !allow[s.Coord] {
			continue
		}
		out = append(out, s)
	}
	return out
}
