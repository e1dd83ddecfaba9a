package linelist_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/ktmeaton/rebar-sub000/internal/linelist"
	"github.com/ktmeaton/rebar-sub000/internal/recombination"
	"github.com/ktmeaton/rebar-sub000/internal/sequence"
)

func TestWriteRowGroupsSubstitutionsByOriginAndPrivate(t *testing.T) {
	subA := sequence.Substitution{Coord: 1, Ref: 'A', Alt: 'C'}
	subB := sequence.Substitution{Coord: 12, Ref: 'A', Alt: 'T'}
	private := sequence.Substitution{Coord: 20, Ref: 'A', Alt: 'G'}

	result := &recombination.Result{
		SequenceID:  "D",
		Parents:     []string{"A", "B"},
		Breakpoints: []recombination.Breakpoint{{Start: 12, End: 12}},
		Regions: []recombination.Region{
			{Parent: "A", Start: 1, End: 1, Substitutions: []sequence.Substitution{subA}},
			{Parent: "B", Start: 12, End: 12, Substitutions: []sequence.Substitution{subB}},
		},
		Recombinant: true,
		Validation:  recombination.Validation{Status: recombination.StatusUnknown, Details: "no ARG"},
	}
	query := &sequence.Record{
		ID:            "D",
		GenomeLength:  20,
		Substitutions: []sequence.Substitution{subA, subB, private},
	}

	row := linelist.FromResult(result, query, "toy1", "latest", "v0.0.0-test")

	var buf bytes.Buffer
	w, err := linelist.NewWriter(&buf)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.IsNil(w.Write(row)))
	qt.Assert(t, qt.IsNil(w.Flush()))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	qt.Assert(t, qt.HasLen(lines, 2))
	qt.Assert(t, qt.Equals(lines[0], strings.Join(linelist.Header, "\t")))

	fields := strings.Split(lines[1], "\t")
	qt.Assert(t, qt.Equals(fields[0], "D"))
	qt.Assert(t, qt.Equals(fields[5], "A,B"))
	qt.Assert(t, qt.Equals(fields[6], "12-12"))
	qt.Assert(t, qt.Equals(fields[9], "1-1|A,12-12|B"))
	qt.Assert(t, qt.Equals(fields[10], "A1C|A;A12T|B;A20G|private"))
}
