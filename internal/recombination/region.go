package recombination

import (
	"github.com/ktmeaton/rebar-sub000/internal/dataset"
	"github.com/ktmeaton/rebar-sub000/internal/sequence"
)

// assignedSub is one query substitution paired with the parent whose
// base explains it.
type assignedSub struct {
	sub    sequence.Substitution
	parent string
}

// baseAt returns the base rec carries at coord, consulting its
// substitution set first and falling back to the shared reference base
// when rec has no substitution, deletion, or missing call there. The
// second return is false when rec's base at coord cannot be determined
// (deletion or missing).
func baseAt(rec *sequence.Record, ref *sequence.Record, coord int) (byte, bool) {
	if s, ok := rec.SubstitutionAt(coord); ok {
		return s.Alt, true
	}
	if rec.IsDeletion(coord) || rec.IsMissing(coord) {
		return 0, false
	}
	return ref.Sequence[coord-1], true
}

// assignSubstitutions walks query's substitutions in coordinate order
// and assigns each to the first parent (in order) whose base at that
// coordinate matches the query's alt, per spec.md §4.7 step 4.
// Substitutions no parent explains are dropped.
func assignSubstitutions(query *sequence.Record, parents []string, d *dataset.Dataset) []assignedSub {
	var out []assignedSub
	for _, s := range query.Substitutions {
		for _, p := range parents {
			rec, ok := d.Populations[p]
			if !ok {
				continue
			}
			base, known := baseAt(rec, d.Reference, s.Coord)
			if known && base == s.Alt {
				out = append(out, assignedSub{sub: s, parent: p})
				break
			}
		}
	}
	return out
}

// buildRegions groups consecutive (in substitution order) same-parent
// assignments into regions, then drops any region that fails min_subs,
// min_length, or min_consecutive (spec.md §4.7 steps 4-5). Breakpoints
// are derived between surviving regions: start is the coordinate right
// after the preceding region ends, end is the first coordinate of the
// following region — spec.md's prose describes "first coord of region
// k+1 minus 1", but that formula disagrees with the worked example in
// §8 S4 (breakpoint (12,12) between a region ending at 11 and one
// starting at 12); this implementation follows the worked example.
func buildRegions(assigned []assignedSub, params Params) ([]Region, []Breakpoint) {
	var raw []Region
	for _, a := range assigned {
		if len(raw) > 0 && raw[len(raw)-1].Parent == a.parent {
			last := &raw[len(raw)-1]
			last.End = a.sub.Coord
			last.Substitutions = append(last.Substitutions, a.sub)
			continue
		}
		raw = append(raw, Region{
			Parent:        a.parent,
			Start:         a.sub.Coord,
			End:           a.sub.Coord,
			Substitutions: []sequence.Substitution{a.sub},
		})
	}

	var kept []Region
	for _, r := range raw {
		if len(r.Substitutions) < params.MinSubs {
			continue
		}
		if r.End-r.Start+1 < params.MinLength {
			continue
		}
		if longestConsecutiveRun(r.Substitutions) < params.MinConsecutive {
			continue
		}
		kept = append(kept, r)
	}

	var breakpoints []Breakpoint
	for i := 1; i < len(kept); i++ {
		breakpoints = append(breakpoints, Breakpoint{
			Start: kept[i-1].End + 1,
			End:   kept[i].Start,
		})
	}
	return kept, breakpoints
}

// longestConsecutiveRun returns the length of the longest run of
// substitutions whose coordinates are consecutive integers.
func longestConsecutiveRun(subs []sequence.Substitution) int {
	best, run := 0, 0
	for i, s := range subs {
		if i > 0 && s.Coord == subs[i-1].Coord+1 {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return best
}
