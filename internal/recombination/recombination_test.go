package recombination_test

import (
	"context"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/ktmeaton/rebar-sub000/internal/dataset"
	"github.com/ktmeaton/rebar-sub000/internal/recombination"
	"github.com/ktmeaton/rebar-sub000/internal/sequence"
)

func buildS4Dataset(t *testing.T) (*dataset.Dataset, *sequence.Record) {
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

	query, err := sequence.Diff("D", []byte("CCCCCCAACCCTTTTTTTAA"), ref, sequence.DNA, sequence.Mask{}, false)
	qt.Assert(t, qt.IsNil(err))

	return d, query
}

func TestRunScenarioS4(t *testing.T) {
	d, query := buildS4Dataset(t)

	params := recombination.DefaultParams()
	params.Parents = []string{"A", "B"}
	params.MinSubs = 1
	params.MinLength = 3
	params.MinConsecutive = 3

	result, err := recombination.Run(context.Background(), d, query, params)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(result.Parents, []string{"A", "B"}))
	qt.Assert(t, qt.HasLen(result.Breakpoints, 1))
	qt.Assert(t, qt.Equals(result.Breakpoints[0].Start, 12))
	qt.Assert(t, qt.Equals(result.Breakpoints[0].End, 12))
	qt.Assert(t, qt.HasLen(result.Regions, 2))
	qt.Assert(t, qt.Equals(result.Regions[0].Parent, "A"))
	qt.Assert(t, qt.Equals(result.Regions[0].Start, 1))
	qt.Assert(t, qt.Equals(result.Regions[0].End, 11))
	qt.Assert(t, qt.Equals(result.Regions[1].Parent, "B"))
	qt.Assert(t, qt.Equals(result.Regions[1].Start, 12))
	qt.Assert(t, qt.Equals(result.Regions[1].End, 18))
	qt.Assert(t, qt.IsTrue(result.Recombinant))
}

func TestRunCancellation(t *testing.T) {
	d, query := buildS4Dataset(t)
	params := recombination.DefaultParams()
	params.Parents = []string{"A", "B"}
	params.MinLength = 3
	params.MinConsecutive = 3

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result, err := recombination.Run(ctx, d, query, params)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(result.Cancelled))
}
