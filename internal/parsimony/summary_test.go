package parsimony_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/ktmeaton/rebar-sub000/internal/parsimony"
	"github.com/ktmeaton/rebar-sub000/internal/sequence"
)

func TestSummarizeBasic(t *testing.T) {
	a := &sequence.Record{
		Substitutions: []sequence.Substitution{
			{Coord: 1, Ref: 'A', Alt: 'C'},
			{Coord: 5, Ref: 'A', Alt: 'G'},
		},
	}
	b := &sequence.Record{
		Substitutions: []sequence.Substitution{
			{Coord: 1, Ref: 'A', Alt: 'C'},
			{Coord: 9, Ref: 'A', Alt: 'T'},
		},
	}
	s := parsimony.Summarize(a, b, nil)
	qt.Assert(t, qt.DeepEquals(s.Support, []sequence.Substitution{{Coord: 1, Ref: 'A', Alt: 'C'}}))
	qt.Assert(t, qt.DeepEquals(s.ConflictAlt, []sequence.Substitution{{Coord: 5, Ref: 'A', Alt: 'G'}}))
	qt.Assert(t, qt.DeepEquals(s.ConflictRef, []sequence.Substitution{{Coord: 9, Ref: 'A', Alt: 'T'}}))
	qt.Assert(t, qt.Equals(s.Score(), 1-1-1))
}

func TestSummarizeExcludesPrimaryDeletionsAndMissing(t *testing.T) {
	a := &sequence.Record{
		Deletions: []sequence.Deletion{{Coord: 3, Ref: 'A'}},
		Missing:   []int{4},
	}
	b := &sequence.Record{
		Substitutions: []sequence.Substitution{
			{Coord: 3, Ref: 'A', Alt: 'T'},
			{Coord: 4, Ref: 'A', Alt: 'G'},
			{Coord: 7, Ref: 'A', Alt: 'C'},
		},
	}
	s := parsimony.Summarize(a, b, nil)
	qt.Assert(t, qt.DeepEquals(s.ConflictRef, []sequence.Substitution{{Coord: 7, Ref: 'A', Alt: 'C'}}))
}

func TestPrivateIsDisjointUnionSorted(t *testing.T) {
	a := &sequence.Record{
		Substitutions: []sequence.Substitution{
			{Coord: 10, Ref: 'A', Alt: 'C'},
		},
	}
	b := &sequence.Record{
		Substitutions: []sequence.Substitution{
			{Coord: 2, Ref: 'A', Alt: 'G'},
		},
	}
	s := parsimony.Summarize(a, b, nil)
	qt.Assert(t, qt.DeepEquals(s.Private, []sequence.Substitution{
		{Coord: 2, Ref: 'G', Alt: 'A'}, // flipped conflict_ref
		{Coord: 10, Ref: 'A', Alt: 'C'},
	}))
}

func TestScoreSymmetrySwapsConflicts(t *testing.T) {
	a := &sequence.Record{
		Substitutions: []sequence.Substitution{
			{Coord: 1, Ref: 'A', Alt: 'C'},
			{Coord: 2, Ref: 'A', Alt: 'G'},
		},
	}
	b := &sequence.Record{
		Substitutions: []sequence.Substitution{
			{Coord: 1, Ref: 'A', Alt: 'C'},
			{Coord: 3, Ref: 'A', Alt: 'T'},
		},
	}
	ab := parsimony.Summarize(a, b, nil)
	ba := parsimony.Summarize(b, a, nil)
	qt.Assert(t, qt.DeepEquals(ab.ConflictAlt, ba.ConflictRef))
	qt.Assert(t, qt.DeepEquals(ab.ConflictRef, ba.ConflictAlt))
	qt.Assert(t, qt.Equals(len(ab.ConflictAlt)-len(ab.ConflictRef), -(len(ba.ConflictAlt) - len(ba.ConflictRef))))
}
