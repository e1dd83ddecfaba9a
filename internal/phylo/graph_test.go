package phylo_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/ktmeaton/rebar-sub000/internal/phylo"
	"github.com/ktmeaton/rebar-sub000/internal/rbrerr"
)

// buildS1 constructs the scenario-1 graph from spec.md §8 S1:
// [(A,B,1),(A,C,1),(A,D,1),(B,D,1),(D,E,1),(C,F,1),(C,G,1),(E,G,1),(E,H,1),(F,G,1)]
func buildS1(t *testing.T) *phylo.Graph {
	t.Helper()
	g := phylo.New()
	edges := [][2]string{
		{"A", "B"}, {"A", "C"}, {"A", "D"}, {"B", "D"},
		{"D", "E"}, {"C", "F"}, {"C", "G"}, {"E", "G"},
		{"E", "H"}, {"F", "G"},
	}
	for _, e := range edges {
		_, err := g.AddBranch(e[0], e[1], phylo.Branch{Length: 1})
		qt.Assert(t, qt.IsNil(err))
	}
	return g
}

func TestS1Root(t *testing.T) {
	g := buildS1(t)
	root, err := g.Root()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(root, "A"))
}

func TestS1IsRecombinant(t *testing.T) {
	g := buildS1(t)
	d, err := g.IsRecombinant("D")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(d))

	gNode, err := g.IsRecombinant("G")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsTrue(gNode))

	a, err := g.IsRecombinant("A")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsFalse(a))
}

func TestS1ParentsG(t *testing.T) {
	g := buildS1(t)
	parents, err := g.Parents("G")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(parents, []string{"C", "E", "F"}))
}

func TestS1DescendantsB(t *testing.T) {
	g := buildS1(t)
	withRec, err := g.Descendants("B", true)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(withRec, []string{"D", "E", "G", "H"}))

	noRec, err := g.Descendants("B", false)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(noRec, 0))
}

func TestS1AncestorsE(t *testing.T) {
	g := buildS1(t)
	anc, err := g.Ancestors("E", true)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(anc, [][]string{{"D", "B", "A"}, {"D", "A"}}))
}

func TestS1AncestorsHNoRecombinant(t *testing.T) {
	g := buildS1(t)
	anc, err := g.Ancestors("H", false)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(anc, [][]string{{"E", "D"}}))
}

func TestS1RecombinantAncestorG(t *testing.T) {
	g := buildS1(t)
	anc, ok := g.RecombinantAncestor("G")
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.Equals(anc, "D"))
}

func TestCycleRejected(t *testing.T) {
	g := phylo.New()
	_, err := g.AddBranch("A", "B", phylo.Branch{Length: 1})
	qt.Assert(t, qt.IsNil(err))
	_, err = g.AddBranch("B", "A", phylo.Branch{Length: 1})
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.IsTrue(rbrerr.Is(err, rbrerr.Cycle)))
}

func TestMultipleRoots(t *testing.T) {
	g := phylo.New()
	g.AddNode("A")
	g.AddNode("B")
	_, err := g.Root()
	qt.Assert(t, qt.IsTrue(rbrerr.Is(err, rbrerr.MultipleRoots)))
}

func TestRemoveSplice(t *testing.T) {
	g := phylo.New()
	_, err := g.AddBranch("Root", "X", phylo.Branch{Length: 1})
	qt.Assert(t, qt.IsNil(err))
	_, err = g.AddBranch("X", "Y", phylo.Branch{Length: 1})
	qt.Assert(t, qt.IsNil(err))

	_, err = g.Remove("X", false)
	qt.Assert(t, qt.IsNil(err))

	root, err := g.Root()
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(root, "Root"))

	parents, err := g.Parents("Y")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(parents, []string{"Root"}))
}

func TestMRCASingle(t *testing.T) {
	g := buildS1(t)
	m, err := g.MRCA([]string{"G"})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(m, "G"))
}

func TestMRCAMultiple(t *testing.T) {
	g := buildS1(t)
	m, err := g.MRCA([]string{"H", "G"})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(m, "E"))
}
