package dataset_test

import (
	"path/filepath"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/ktmeaton/rebar-sub000/internal/dataset"
	"github.com/ktmeaton/rebar-sub000/internal/sequence"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	d := buildToy(t)
	dir := filepath.Join(t.TempDir(), "toy1")
	qt.Assert(t, qt.IsNil(d.Save(dir)))

	reloaded, err := dataset.Load(dir, sequence.DNA, sequence.Mask{})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(reloaded.Populations, 2))
	qt.Assert(t, qt.Equals(reloaded.Reference.GenomeLength, 20))

	// Population sequences survive the round trip, since ConsensusRecord
	// and a second Save both depend on them being retained.
	rec, err := reloaded.ConsensusRecord("AB", []string{"A", "B"}, true)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(rec.Sequence, 20))

	dir2 := filepath.Join(t.TempDir(), "toy1-again")
	qt.Assert(t, qt.IsNil(reloaded.Save(dir2)))
}
