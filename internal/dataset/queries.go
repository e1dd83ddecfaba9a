package dataset

import (
	"os"

	"github.com/ktmeaton/rebar-sub000/internal/rbrerr"
	"github.com/ktmeaton/rebar-sub000/internal/sequence"
)

// LoadQueries reads an alignment FASTA at path and diffs every record
// against d.Reference under mask, producing one query Record per
// entry (spec.md §6's "input alignment" run-command input). Query
// records keep their diffed sequence discarded by default; only the
// substitution/deletion/missing sets survive, matching what
// recombination.Run needs.
func (d *Dataset) LoadQueries(path string, mask sequence.Mask) ([]*sequence.Record, error) {
	if d.Reference == nil {
		return nil, rbrerr.New(rbrerr.BadFasta, "dataset has no reference to diff queries against")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, rbrerr.Wrap(rbrerr.IO, err, "opening query alignment "+path)
	}
	defer f.Close()

	entries, err := readFasta(f)
	if err != nil {
		return nil, err
	}

	queries := make([]*sequence.Record, 0, len(entries))
	for _, e := range entries {
		rec, err := sequence.Diff(e.ID, e.Sequence, d.Reference.Sequence, d.Alphabet, mask, false)
		if err != nil {
			return nil, err
		}
		queries = append(queries, rec)
	}
	return queries, nil
}

// LoadQueryPopulations builds query records from labels already present
// in d.Populations, for the run command's "list of populations" input
// mode (spec.md §6).
func (d *Dataset) LoadQueryPopulations(labels []string) ([]*sequence.Record, error) {
	queries := make([]*sequence.Record, 0, len(labels))
	for _, label := range labels {
		rec, ok := d.Populations[label]
		if !ok {
			return nil, rbrerr.Newf(rbrerr.UnknownNode, "population %q not found in dataset", label)
		}
		queries = append(queries, rec)
	}
	return queries, nil
}
