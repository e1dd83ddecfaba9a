package dataset_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/ktmeaton/rebar-sub000/internal/dataset"
	"github.com/ktmeaton/rebar-sub000/internal/phylo"
	"github.com/ktmeaton/rebar-sub000/internal/sequence"
)

func buildToy(t *testing.T) *dataset.Dataset {
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

	_, err = d.Phylogeny.AddBranch("Root", "A", phylo.Branch{Length: 1})
	qt.Assert(t, qt.IsNil(err))
	_, err = d.Phylogeny.AddBranch("Root", "B", phylo.Branch{Length: 1})
	qt.Assert(t, qt.IsNil(err))

	d.BuildMutations()
	return d
}

func TestEdgeCaseForLookup(t *testing.T) {
	d := buildToy(t)
	d.EdgeCases = []dataset.EdgeCase{{Population: "A", MinSubs: 5}}

	ec, ok := d.EdgeCaseFor("A")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(ec.MinSubs, 5))

	_, ok = d.EdgeCaseFor("B")
	qt.Assert(t, qt.IsFalse(ok))
}

func TestConsensusRecordUnanimousAndMixed(t *testing.T) {
	d := buildToy(t)
	rec, err := d.ConsensusRecord("AB", []string{"A", "B"}, true)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(rec.Sequence, 20))
	// position 0: A=C, B=T -> not unanimous -> N
	qt.Assert(t, qt.Equals(rec.Sequence[0], byte('N')))
	// position 18 (0-indexed): A=C, B=A -> not unanimous -> N
	qt.Assert(t, qt.Equals(rec.Sequence[18], byte('N')))
}

func TestKnockoutRemovesPopulationAndDescendants(t *testing.T) {
	d := buildToy(t)
	clone := d.Clone()
	qt.Assert(t, qt.IsNil(clone.Knockout("A")))

	_, ok := clone.Populations["A"]
	qt.Assert(t, qt.IsFalse(ok))
	_, stillThere := d.Populations["A"]
	qt.Assert(t, qt.IsTrue(stillThere))
}
