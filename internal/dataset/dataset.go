package dataset

import (
	"sort"

	"github.com/ktmeaton/rebar-sub000/internal/mutation"
	"github.com/ktmeaton/rebar-sub000/internal/phylo"
	"github.com/ktmeaton/rebar-sub000/internal/rbrerr"
	"github.com/ktmeaton/rebar-sub000/internal/sequence"
)

// Annotation is one row of the optional annotations table: a named
// genome region, 1-based inclusive (spec.md §6, supplemented feature 3).
type Annotation struct {
	Gene         string
	Abbreviation string
	Start        int
	End          int
}

// Dataset bundles everything a search or recombination pass needs:
// a reference record, the population collection, the derived mutation
// index, the ARG, edge-case overrides, and provenance attributes
// (spec.md §3 "Dataset").
type Dataset struct {
	Attributes  Attributes
	Alphabet    sequence.Alphabet
	Reference   *sequence.Record
	Populations map[string]*sequence.Record
	Mutations   *mutation.Index
	Phylogeny   *phylo.Graph
	EdgeCases   []EdgeCase
	Annotations []Annotation
}

// New returns an empty, ready-to-populate Dataset.
func New() *Dataset {
	return &Dataset{
		Populations: map[string]*sequence.Record{},
		Phylogeny:   phylo.New(),
	}
}

// BuildMutations (re)builds the Mutations index from the current
// Populations map (spec.md C4/§4.4). Callers must call this after
// populating or mutating Populations and before running a search.
func (d *Dataset) BuildMutations() {
	d.Mutations = mutation.Build(d.Populations)
}

// Validate checks the dataset invariants spec.md §3 names: every
// population record shares the reference's genome length, and every ARG
// label either has a population record or is a synthesizable interior
// ancestor (which this function cannot distinguish from a missing
// record, so it only enforces the length invariant here; the interior-
// ancestor case is handled lazily by ConsensusRecord).
func (d *Dataset) Validate() error {
	if d.Reference == nil {
		return rbrerr.New(rbrerr.BadFasta, "dataset has no reference record")
	}
	for label, rec := range d.Populations {
		if rec.GenomeLength != d.Reference.GenomeLength {
			return rbrerr.Newf(rbrerr.LengthMismatch,
				"population %q has genome length %d, reference has %d",
				label, rec.GenomeLength, d.Reference.GenomeLength)
		}
	}
	return nil
}

// Clone returns a deep-enough copy of the dataset for a caller that
// needs to mutate it (e.g. to apply a knockout) without disturbing the
// original, per spec.md §5's "must do so on a cloned dataset" policy.
// The Reference record and Attributes are shared read-only; Populations,
// Phylogeny, and EdgeCases are independent copies.
func (d *Dataset) Clone() *Dataset {
	clone := &Dataset{
		Attributes:  d.Attributes,
		Alphabet:    d.Alphabet,
		Reference:   d.Reference,
		Populations: make(map[string]*sequence.Record, len(d.Populations)),
		Phylogeny:   phylo.New(),
		EdgeCases:   append([]EdgeCase(nil), d.EdgeCases...),
		Annotations: append([]Annotation(nil), d.Annotations...),
	}
	for label, rec := range d.Populations {
		clone.Populations[label] = rec
	}
	for _, e := range d.Phylogeny.Edges() {
		clone.Phylogeny.AddBranch(e.Source, e.Target, e.Branch)
	}
	for _, n := range d.Phylogeny.Nodes() {
		clone.Phylogeny.AddNode(n)
	}
	clone.BuildMutations()
	return clone
}

// Knockout removes label and every descendant from the working copy's
// ARG and population map, per spec.md §4.7 step 1 / supplemented feature
// 6. Callers should call this on a Clone(), never the shared dataset.
func (d *Dataset) Knockout(label string) error {
	removed, err := d.Phylogeny.Remove(label, true)
	if err != nil {
		return err
	}
	for _, r := range removed {
		delete(d.Populations, r)
	}
	d.BuildMutations()
	return nil
}

// AncestorWithSequence returns label if it has a population record, or
// otherwise the closest ancestor (by longest surviving path) that does,
// per original_source's `get_ancestor_with_sequence` (spec.md §3's
// "interior ancestor whose consensus may be synthesized on demand").
func (d *Dataset) AncestorWithSequence(label string) (string, error) {
	if _, ok := d.Populations[label]; ok {
		return label, nil
	}
	paths, err := d.Phylogeny.Ancestors(label, true)
	if err != nil {
		return "", err
	}
	best := ""
	bestLen := -1
	for _, p := range paths {
		var filtered []string
		for _, n := range p {
			if _, ok := d.Populations[n]; ok {
				filtered = append(filtered, n)
			}
		}
		if len(filtered) > bestLen {
			bestLen = len(filtered)
			if len(filtered) > 0 {
				best = filtered[0]
			}
		}
	}
	if best == "" {
		return "", rbrerr.Newf(rbrerr.UnknownNode, "no ancestor of %q has sequence data", label)
	}
	return best, nil
}

// ConsensusRecord synthesizes a record for name from the given source
// populations: at each coordinate, the common base across all sources if
// unanimous, else 'N' (spec.md §4.6 step 6, grounded on
// original_source's `Dataset::create_consensus`). keepSequence controls
// whether the synthesized base vector is retained on the result.
func (d *Dataset) ConsensusRecord(name string, populations []string, keepSequence bool) (*sequence.Record, error) {
	if d.Reference == nil {
		return nil, rbrerr.New(rbrerr.BadFasta, "dataset has no reference record")
	}
	var sources []*sequence.Record
	for _, p := range populations {
		if rec, ok := d.Populations[p]; ok {
			sources = append(sources, rec)
		}
	}
	if len(sources) == 0 {
		return nil, rbrerr.Newf(rbrerr.NoCandidateMatch, "no source population of %v has sequence data", populations)
	}

	length := d.Reference.GenomeLength
	consensus := make([]byte, length)
	for i := 0; i < length; i++ {
		base := sources[0].Sequence[i]
		unanimous := true
		for _, s := range sources[1:] {
			if s.Sequence[i] != base {
				unanimous = false
				break
			}
		}
		if unanimous {
			consensus[i] = base
		} else {
			consensus[i] = 'N'
		}
	}

	rec, err := sequence.Diff(name, consensus, d.Reference.Sequence, d.Alphabet, sequence.Mask{}, keepSequence)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// AnnotationAt returns the annotation(s) whose [Start,End] span coord,
// sorted by Start. Annotations never influence search or recombination;
// they exist only to decorate output (spec.md supplemented feature 3).
func (d *Dataset) AnnotationAt(coord int) []Annotation {
	var out []Annotation
	for _, a := range d.Annotations {
		if coord >= a.Start && coord <= a.End {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}
