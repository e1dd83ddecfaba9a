// Package recombination implements the iterative parent-search and
// breakpoint-assignment algorithm that decomposes a query into parental
// regions consistent with a dataset's ARG (spec.md C8 / §4.7).
package recombination

import (
	"context"

	"github.com/ktmeaton/rebar-sub000/internal/dataset"
	"github.com/ktmeaton/rebar-sub000/internal/rbrerr"
	"github.com/ktmeaton/rebar-sub000/internal/search"
	"github.com/ktmeaton/rebar-sub000/internal/sequence"
)

// Run detects recombination in query against d under params, polling
// ctx for cooperative cancellation between outer search iterations
// (spec.md §5, §4.7).
func Run(ctx context.Context, d *dataset.Dataset, query *sequence.Record, params Params) (*Result, error) {
	working := d.Clone()
	for _, label := range params.Knockout {
		if err := working.Knockout(label); err != nil {
			return nil, err
		}
	}

	primary, err := search.Search(working, query, params.Parents, nil)
	if err != nil {
		return nil, err
	}

	if !params.Naive {
		if ec, ok := working.EdgeCaseFor(primary.Recombinant); ok {
			params = applyEdgeCase(params, ec)
			for _, label := range ec.Knockout {
				if err := working.Knockout(label); err != nil {
					return nil, err
				}
			}
			primary, err = search.Search(working, query, params.Parents, nil)
			if err != nil {
				return nil, err
			}
		}
	}

	parents := []string{primary.Consensus}
	if _, ok := working.Populations[primary.Consensus]; !ok {
		rec, err := working.ConsensusRecord(primary.Consensus, primary.TopPopulations, true)
		if err != nil {
			return nil, err
		}
		working.Populations[primary.Consensus] = rec
	}

	for i := 1; i < params.MaxParents; i++ {
		select {
		case <-ctx.Done():
			return &Result{SequenceID: query.ID, Parents: parents, Cancelled: true}, nil
		default:
		}

		conflictCoords := conflictCoordinates(query, parents, working)
		if len(conflictCoords) == 0 {
			break
		}

		candidate, ok := findNextParent(ctx, working, query, parents, conflictCoords, params)
		if !ok {
			break
		}
		parents = append(parents, candidate)
	}

	assigned := assignSubstitutions(query, parents, working)
	regions, breakpoints := buildRegions(assigned, params)

	survivingParents := uniqueParents(regions)
	recombinant := len(survivingParents) >= params.MinParents && len(survivingParents) <= params.MaxParents

	result := &Result{
		SequenceID:  query.ID,
		Parents:     survivingParents,
		Regions:     regions,
		Breakpoints: breakpoints,
		Recombinant: recombinant,
	}
	if ec, ok := working.EdgeCaseFor(primary.Recombinant); ok {
		result.EdgeCase = ec.Population
	}

	result.Validation = validate(working, primary.Consensus, survivingParents)

	if !recombinant {
		return result, rbrerr.Newf(rbrerr.InsufficientParents,
			"%q: found %d parent(s), need between %d and %d", query.ID, len(survivingParents), params.MinParents, params.MaxParents)
	}
	return result, nil
}

// applyEdgeCase overlays non-zero-valued fields of ec onto params,
// mirroring original_source's `RunArgs::apply_edge_case`.
func applyEdgeCase(params Params, ec dataset.EdgeCase) Params {
	if ec.MinParents != 0 {
		params.MinParents = ec.MinParents
	}
	if ec.MaxParents != 0 {
		params.MaxParents = ec.MaxParents
	}
	if ec.MaxIter != 0 {
		params.MaxIter = ec.MaxIter
	}
	if ec.MinConsecutive != 0 {
		params.MinConsecutive = ec.MinConsecutive
	}
	if ec.MinLength != 0 {
		params.MinLength = ec.MinLength
	}
	if ec.MinSubs != 0 {
		params.MinSubs = ec.MinSubs
	}
	if ec.Mask != nil {
		params.Mask = sequence.Mask{M5: ec.Mask[0], M3: ec.Mask[1]}
	}
	if ec.Parents != nil {
		params.Parents = ec.Parents
	}
	params.Naive = params.Naive || ec.Naive
	return params
}

// conflictCoordinates computes the coordinates where the currently
// chosen parents collectively fail to explain query: the union of each
// chosen parent's conflict_alt coordinates against query, plus query's
// conflict_ref coordinates against a synthesized consensus of the
// chosen parents (spec.md §4.7 step 3).
func conflictCoordinates(query *sequence.Record, parents []string, d *dataset.Dataset) []int {
	coords := map[int]bool{}
	for _, p := range parents {
		rec, ok := d.Populations[p]
		if !ok {
			continue
		}
		s := summarizeAgainst(query, rec)
		for _, sub := range s.conflictAlt {
			coords[sub.Coord] = true
		}
	}

	consensus, err := d.ConsensusRecord("__assembled__", parents, true)
	if err == nil {
		s := summarizeAgainst(query, consensus)
		for _, sub := range s.conflictRef {
			coords[sub.Coord] = true
		}
	}

	out := make([]int, 0, len(coords))
	for c := range coords {
		out = append(out, c)
	}
	sortInts(out)
	return out
}

type rawConflict struct {
	conflictAlt []sequence.Substitution
	conflictRef []sequence.Substitution
}

// summarizeAgainst splits primary-vs-secondary substitutions, compared
// by (coord, ref, alt), into conflictAlt (in primary only) and
// conflictRef (in secondary only). Unlike parsimony.Summarize it applies
// no coordinate filter and does not exclude primary's deletion or
// missing coordinates.
func summarizeAgainst(primary, secondary *sequence.Record) rawConflict {
	primarySet := map[sequence.Substitution]bool{}
	for _, s := range primary.Substitutions {
		primarySet[s] = true
	}
	secondarySet := map[sequence.Substitution]bool{}
	for _, s := range secondary.Substitutions {
		secondarySet[s] = true
	}

	var rc rawConflict
	for _, s := range primary.Substitutions {
		if !secondarySet[s] {
			rc.conflictAlt = append(rc.conflictAlt, s)
		}
	}
	for _, s := range secondary.Substitutions {
		if !primarySet[s] {
			rc.conflictRef = append(rc.conflictRef, s)
		}
	}
	return rc
}

// findNextParent restricts population search to conflictCoords,
// excluding already-chosen parents and (unless naive) their
// descendants, retrying up to params.MaxIter times (spec.md §4.7 step 3).
func findNextParent(ctx context.Context, d *dataset.Dataset, query *sequence.Record, chosen []string, conflictCoords []int, params Params) (string, bool) {
	excluded := map[string]bool{}
	for _, p := range chosen {
		excluded[p] = true
		if !params.Naive {
			if descendants, err := d.Phylogeny.Descendants(p, true); err == nil {
				for _, desc := range descendants {
					excluded[desc] = true
				}
			}
		}
	}

	base := func() []string {
		var allowed []string
		if params.Parents != nil {
			for _, p := range params.Parents {
				if !excluded[p] {
					allowed = append(allowed, p)
				}
			}
		} else {
			for p := range d.Populations {
				if !excluded[p] {
					allowed = append(allowed, p)
				}
			}
		}
		return allowed
	}

	// Each round searches the set of still-allowed candidates; a
	// candidate found but too weak (support below min_subs) is excluded
	// from the next round's candidate set so a weak tie doesn't repeat
	// identically, per §4.7 step 3's "repeatedly (≤ max_iter)". A round
	// that finds no candidate at all means the restricted search is
	// exhausted, so the whole outer attempt stops rather than retrying.
	for iter := 0; iter < params.MaxIter; iter++ {
		select {
		case <-ctx.Done():
			return "", false
		default:
		}

		allowed := base()
		if len(allowed) == 0 {
			return "", false
		}

		result, err := search.Search(d, query, allowed, conflictCoords)
		if err != nil {
			return "", false
		}
		// Consistent with how primary's parent is chosen above: the
		// MRCA-synthesized consensus, not the raw top-ranked population.
		candidate := result.Consensus
		if candidate == "" {
			return "", false
		}
		if len(result.Parsimony[candidate].Support) >= params.MinSubs {
			return candidate, true
		}
		excluded[candidate] = true
	}
	return "", false
}

func uniqueParents(regions []Region) []string {
	seen := map[string]bool{}
	var out []string
	for _, r := range regions {
		if !seen[r.Parent] {
			seen[r.Parent] = true
			out = append(out, r.Parent)
		}
	}
	return out
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
