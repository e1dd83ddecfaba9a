// Package mutation implements the reverse mutation index: a map from a
// substitution to the set of populations that carry it (spec.md C4 /
// §4.4).
package mutation

import (
	"sort"

	"github.com/mpvl/unique"

	"github.com/ktmeaton/rebar-sub000/internal/sequence"
)

// Index is a read-only reverse map built once from a population
// collection.
type Index struct {
	byKey map[sequence.Substitution][]string
}

// Build constructs an Index from a label -> record map, inserting each
// record's label under every substitution it carries (spec.md §4.4).
// Coordinates that are 'N' or '-' in the reference never appear as
// substitutions in a correctly-diffed record, so that invariant holds
// automatically.
func Build(populations map[string]*sequence.Record) *Index {
	idx := &Index{byKey: map[sequence.Substitution][]string{}}
	// Sort labels first so insertion order - and therefore the order
	// Lookup's unioned results come back in before the final sort - is
	// deterministic regardless of map iteration order.
	labels := make([]string, 0, len(populations))
	for label := range populations {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		rec := populations[label]
		for _, sub := range rec.Substitutions {
			idx.byKey[sub] = append(idx.byKey[sub], label)
		}
	}
	return idx
}

// Lookup returns the sorted, deduplicated union of populations carrying
// any of subs.
func (idx *Index) Lookup(subs []sequence.Substitution) []string {
	var all []string
	for _, s := range subs {
		all = append(all, idx.byKey[s]...)
	}
	l := sequence.LabelsByName(all)
	sort.Sort(l)
	u := sequence.LabelsByName(l)
	unique.Sort(&u)
	return []string(u)
}

// Populations returns every population label carrying the given
// substitution.
func (idx *Index) Populations(sub sequence.Substitution) []string {
	return append([]string(nil), idx.byKey[sub]...)
}

// Len returns the number of distinct substitutions in the index.
func (idx *Index) Len() int {
	return len(idx.byKey)
}
