package mutation_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/ktmeaton/rebar-sub000/internal/mutation"
	"github.com/ktmeaton/rebar-sub000/internal/sequence"
)

func TestBuildAndLookup(t *testing.T) {
	shared := sequence.Substitution{Coord: 1, Ref: 'A', Alt: 'C'}
	onlyB := sequence.Substitution{Coord: 5, Ref: 'A', Alt: 'G'}

	idx := mutation.Build(map[string]*sequence.Record{
		"A": {ID: "A", Substitutions: []sequence.Substitution{shared}},
		"B": {ID: "B", Substitutions: []sequence.Substitution{shared, onlyB}},
	})

	qt.Assert(t, qt.Equals(idx.Len(), 2))
	qt.Assert(t, qt.DeepEquals(idx.Populations(shared), []string{"A", "B"}))
	qt.Assert(t, qt.DeepEquals(idx.Populations(onlyB), []string{"B"}))
}

func TestLookupUnionIsSortedAndDeduplicated(t *testing.T) {
	s1 := sequence.Substitution{Coord: 1, Ref: 'A', Alt: 'C'}
	s2 := sequence.Substitution{Coord: 2, Ref: 'A', Alt: 'G'}

	idx := mutation.Build(map[string]*sequence.Record{
		"B": {ID: "B", Substitutions: []sequence.Substitution{s1}},
		"A": {ID: "A", Substitutions: []sequence.Substitution{s1, s2}},
		"C": {ID: "C", Substitutions: []sequence.Substitution{s2}},
	})

	qt.Assert(t, qt.DeepEquals(idx.Lookup([]sequence.Substitution{s1, s2}), []string{"A", "B", "C"}))
}

func TestLookupUnknownSubstitutionIsEmpty(t *testing.T) {
	idx := mutation.Build(map[string]*sequence.Record{
		"A": {ID: "A", Substitutions: []sequence.Substitution{{Coord: 1, Ref: 'A', Alt: 'C'}}},
	})
	qt.Assert(t, qt.HasLen(idx.Lookup([]sequence.Substitution{{Coord: 99, Ref: 'A', Alt: 'T'}}), 0))
}
