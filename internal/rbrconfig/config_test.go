package rbrconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/ktmeaton/rebar-sub000/internal/rbrconfig"
	"github.com/ktmeaton/rebar-sub000/internal/recombination"
)

func TestLoadMissingFileIsZeroConfig(t *testing.T) {
	c, err := rbrconfig.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	qt.Assert(t, qt.IsNil(err))
	merged := c.Apply(recombination.DefaultParams())
	qt.Assert(t, qt.DeepEquals(merged, recombination.DefaultParams()))
}

func TestLoadOverridesSelectedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	err := os.WriteFile(path, []byte("min_subs: 5\nmax_parents: 3\nparents: [A, B, C]\n"), 0o644)
	qt.Assert(t, qt.IsNil(err))

	c, err := rbrconfig.Load(path)
	qt.Assert(t, qt.IsNil(err))

	merged := c.Apply(recombination.DefaultParams())
	qt.Assert(t, qt.Equals(merged.MinSubs, 5))
	qt.Assert(t, qt.Equals(merged.MaxParents, 3))
	qt.Assert(t, qt.DeepEquals(merged.Parents, []string{"A", "B", "C"}))
	// Untouched fields keep the base defaults.
	qt.Assert(t, qt.Equals(merged.MinParents, recombination.DefaultParams().MinParents))
}
