package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ktmeaton/rebar-sub000/internal/phylo"
	"github.com/ktmeaton/rebar-sub000/internal/rbrerr"
	"github.com/ktmeaton/rebar-sub000/internal/sequence"
)

// Load reads a dataset directory laid out per spec.md §6: required
// reference.fasta, populations.fasta, phylogeny.json, attributes.json;
// optional annotations.tsv/.csv, edge_cases.json. mask is applied while
// diffing every population against the reference.
func Load(dir string, alphabet sequence.Alphabet, mask sequence.Mask) (*Dataset, error) {
	d := New()
	d.Alphabet = alphabet

	refEntries, err := readFastaFile(filepath.Join(dir, "reference.fasta"))
	if err != nil {
		return nil, err
	}
	ref := refEntries[0]
	d.Reference, err = sequence.Diff(ref.ID, ref.Sequence, ref.Sequence, alphabet, sequence.Mask{}, true)
	if err != nil {
		return nil, err
	}

	popEntries, err := readFastaFile(filepath.Join(dir, "populations.fasta"))
	if err != nil {
		return nil, err
	}
	for _, e := range popEntries {
		// Population sequences stay retained (unlike a bare query diff):
		// ConsensusRecord synthesizes ancestor sequences by reading
		// Populations[*].Sequence directly, so Save can round-trip too.
		rec, err := sequence.Diff(e.ID, e.Sequence, ref.Sequence, alphabet, mask, true)
		if err != nil {
			return nil, err
		}
		d.Populations[e.ID] = rec
	}

	phyloBytes, err := os.ReadFile(filepath.Join(dir, "phylogeny.json"))
	if err != nil {
		return nil, rbrerr.Wrap(rbrerr.IO, err, "failed reading phylogeny.json")
	}
	d.Phylogeny = phylo.New()
	if err := json.Unmarshal(phyloBytes, d.Phylogeny); err != nil {
		return nil, rbrerr.Wrap(rbrerr.BadAttribute, err, "failed parsing phylogeny.json")
	}

	attrBytes, err := os.ReadFile(filepath.Join(dir, "attributes.json"))
	if err != nil {
		return nil, rbrerr.Wrap(rbrerr.IO, err, "failed reading attributes.json")
	}
	if err := json.Unmarshal(attrBytes, &d.Attributes); err != nil {
		return nil, rbrerr.Wrap(rbrerr.BadAttribute, err, "failed parsing attributes.json")
	}

	if err := d.loadOptional(dir); err != nil {
		return nil, err
	}

	d.BuildMutations()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dataset) loadOptional(dir string) error {
	for _, name := range []string{"annotations.tsv", "annotations.csv"} {
		path := filepath.Join(dir, name)
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		annotations, err := readAnnotations(path, f)
		f.Close()
		if err != nil {
			return err
		}
		d.Annotations = annotations
		break
	}

	ecPath := filepath.Join(dir, "edge_cases.json")
	if raw, err := os.ReadFile(ecPath); err == nil {
		var cases []EdgeCase
		if err := json.Unmarshal(raw, &cases); err != nil {
			return rbrerr.Wrap(rbrerr.BadAttribute, err, "failed parsing edge_cases.json")
		}
		d.EdgeCases = cases
	}
	return nil
}

func readFastaFile(path string) ([]fastaEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rbrerr.Wrapf(rbrerr.IO, err, "failed opening %s", path)
	}
	defer f.Close()
	return readFasta(f)
}
