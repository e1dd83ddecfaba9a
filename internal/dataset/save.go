package dataset

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/ktmeaton/rebar-sub000/internal/rbrerr"
)

// Save writes the dataset back out to dir in the layout Load reads
// (spec.md §6). Population records must have their Sequence retained
// (keepSequence=true at diff time) for populations.fasta to round-trip;
// Save returns an error otherwise.
func (d *Dataset) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return rbrerr.Wrap(rbrerr.IO, err, "failed creating dataset directory")
	}

	if d.Reference == nil || d.Reference.Sequence == nil {
		return rbrerr.New(rbrerr.BadFasta, "reference record has no retained sequence to save")
	}
	if err := writeFastaFile(filepath.Join(dir, "reference.fasta"), []fastaEntry{{ID: d.Reference.ID, Sequence: d.Reference.Sequence}}); err != nil {
		return err
	}

	labels := make([]string, 0, len(d.Populations))
	for label := range d.Populations {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	var popEntries []fastaEntry
	for _, label := range labels {
		rec := d.Populations[label]
		if rec.Sequence == nil {
			return rbrerr.Newf(rbrerr.BadFasta, "population %q has no retained sequence to save", label)
		}
		popEntries = append(popEntries, fastaEntry{ID: label, Sequence: rec.Sequence})
	}
	if err := writeFastaFile(filepath.Join(dir, "populations.fasta"), popEntries); err != nil {
		return err
	}

	phyloBytes, err := json.MarshalIndent(d.Phylogeny, "", "  ")
	if err != nil {
		return rbrerr.Wrap(rbrerr.IO, err, "failed serializing phylogeny")
	}
	if err := os.WriteFile(filepath.Join(dir, "phylogeny.json"), phyloBytes, 0o644); err != nil {
		return rbrerr.Wrap(rbrerr.IO, err, "failed writing phylogeny.json")
	}

	attrBytes, err := json.MarshalIndent(d.Attributes, "", "  ")
	if err != nil {
		return rbrerr.Wrap(rbrerr.IO, err, "failed serializing attributes")
	}
	if err := os.WriteFile(filepath.Join(dir, "attributes.json"), attrBytes, 0o644); err != nil {
		return rbrerr.Wrap(rbrerr.IO, err, "failed writing attributes.json")
	}

	if len(d.Annotations) > 0 {
		path := filepath.Join(dir, "annotations.tsv")
		f, err := os.Create(path)
		if err != nil {
			return rbrerr.Wrap(rbrerr.IO, err, "failed creating annotations.tsv")
		}
		err = writeAnnotations(path, f, d.Annotations)
		f.Close()
		if err != nil {
			return err
		}
	}

	if len(d.EdgeCases) > 0 {
		ecBytes, err := json.MarshalIndent(d.EdgeCases, "", "  ")
		if err != nil {
			return rbrerr.Wrap(rbrerr.IO, err, "failed serializing edge cases")
		}
		if err := os.WriteFile(filepath.Join(dir, "edge_cases.json"), ecBytes, 0o644); err != nil {
			return rbrerr.Wrap(rbrerr.IO, err, "failed writing edge_cases.json")
		}
	}

	if dot, err := d.Phylogeny.ToDot(); err == nil {
		os.WriteFile(filepath.Join(dir, "phylogeny.dot"), []byte(dot), 0o644)
	}
	if mermaid, err := d.Phylogeny.ToMermaid(); err == nil {
		os.WriteFile(filepath.Join(dir, "phylogeny.mermaid"), []byte(mermaid), 0o644)
	}
	if err := d.writeMutations(filepath.Join(dir, "mutations.tsv")); err != nil {
		return err
	}

	return nil
}

// writeMutations renders the mutation index as a coordinate-sorted TSV
// of substitution -> comma-joined population labels, grounded on
// original_source's `Dataset::write_mutations` (spec.md §6 optional
// mutations.tsv).
func (d *Dataset) writeMutations(path string) error {
	if d.Mutations == nil {
		return nil
	}
	type row struct {
		sub   string
		pops  []string
		coord int
	}
	var rows []row
	seen := map[string]bool{}
	for _, rec := range d.Populations {
		for _, s := range rec.Substitutions {
			if seen[s.String()] {
				continue
			}
			seen[s.String()] = true
			rows = append(rows, row{sub: s.String(), pops: d.Mutations.Populations(s), coord: s.Coord})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].coord < rows[j].coord })

	f, err := os.Create(path)
	if err != nil {
		return rbrerr.Wrap(rbrerr.IO, err, "failed creating mutations.tsv")
	}
	defer f.Close()

	if _, err := f.WriteString("substitution\tpopulations\n"); err != nil {
		return rbrerr.Wrap(rbrerr.IO, err, "failed writing mutations.tsv")
	}
	for _, r := range rows {
		line := r.sub + "\t"
		for i, p := range r.pops {
			if i > 0 {
				line += ","
			}
			line += p
		}
		line += "\n"
		if _, err := f.WriteString(line); err != nil {
			return rbrerr.Wrap(rbrerr.IO, err, "failed writing mutations.tsv")
		}
	}
	return nil
}

func writeFastaFile(path string, entries []fastaEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return rbrerr.Wrapf(rbrerr.IO, err, "failed creating %s", path)
	}
	defer f.Close()
	return writeFasta(f, entries)
}
