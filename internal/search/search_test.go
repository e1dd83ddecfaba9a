package search_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/ktmeaton/rebar-sub000/internal/dataset"
	"github.com/ktmeaton/rebar-sub000/internal/search"
	"github.com/ktmeaton/rebar-sub000/internal/sequence"
)

func buildS3Dataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ref := []byte("AAAAAAAAAAAAAAAAAAAA")
	d := dataset.New()
	d.Alphabet = sequence.DNA

	refRec, err := sequence.Diff("ref", ref, ref, sequence.DNA, sequence.Mask{}, true)
	qt.Assert(t, qt.IsNil(err))
	d.Reference = refRec

	popA, err := sequence.Diff("A", []byte("CCCCCCAACCCCCCCCCCCC"), ref, sequence.DNA, sequence.Mask{}, true)
	qt.Assert(t, qt.IsNil(err))
	popB, err := sequence.Diff("B", []byte("TTTTTTTTTTTTTTTTTTAA"), ref, sequence.DNA, sequence.Mask{}, true)
	qt.Assert(t, qt.IsNil(err))
	d.Populations["A"] = popA
	d.Populations["B"] = popB
	d.BuildMutations()
	return d
}

func TestSearchScenarioS3(t *testing.T) {
	d := buildS3Dataset(t)
	query := d.Populations["A"]

	result, err := search.Search(d, query, nil, nil)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(result.Consensus, "A"))
	qt.Assert(t, qt.DeepEquals(result.TopPopulations, []string{"A"}))
	qt.Assert(t, qt.Equals(result.Parsimony["A"].Score(), 18))
	qt.Assert(t, qt.Equals(result.Recombinant, ""))
}

func TestSearchNoCandidateMatch(t *testing.T) {
	d := buildS3Dataset(t)
	empty, err := sequence.Diff("empty", []byte("AAAAAAAAAAAAAAAAAAAA"), []byte("AAAAAAAAAAAAAAAAAAAA"), sequence.DNA, sequence.Mask{}, false)
	qt.Assert(t, qt.IsNil(err))

	_, err = search.Search(d, empty, nil, nil)
	qt.Assert(t, qt.IsNotNil(err))
}
