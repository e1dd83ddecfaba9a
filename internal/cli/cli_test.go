package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/ktmeaton/rebar-sub000/internal/cli"
	"github.com/ktmeaton/rebar-sub000/internal/dataset"
	"github.com/ktmeaton/rebar-sub000/internal/sequence"
)

func buildToyDataset(t *testing.T) string {
	t.Helper()
	ref := []byte("AAAAAAAAAAAAAAAAAAAA")
	d := dataset.New()
	d.Alphabet = sequence.DNA
	refRec, err := sequence.Diff("ref", ref, ref, sequence.DNA, sequence.Mask{}, true)
	qt.Assert(t, qt.IsNil(err))
	d.Reference = refRec
	popA, err := sequence.Diff("A", []byte("CCCCCCAACCCCCCCCCCCC"), ref, sequence.DNA, sequence.Mask{}, true)
	qt.Assert(t, qt.IsNil(err))
	d.Populations["A"] = popA
	d.BuildMutations()
	d.Attributes = dataset.Attributes{Name: dataset.NameCustom, Tag: dataset.Tag{Kind: dataset.TagCustom}}

	dir := filepath.Join(t.TempDir(), "toy1")
	qt.Assert(t, qt.IsNil(d.Save(dir)))
	return filepath.Dir(dir)
}

func TestDatasetListPrintsSavedDataset(t *testing.T) {
	datasetsDir := buildToyDataset(t)

	c := cli.New()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetArgs([]string{"dataset", "list", "--datasets-dir", datasetsDir})
	qt.Assert(t, qt.IsNil(c.Execute()))

	qt.Assert(t, qt.IsTrue(strings.Contains(out.String(), "custom")))
}

func buildRecombinantDataset(t *testing.T) string {
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
	d.Attributes = dataset.Attributes{Name: dataset.NameCustom, Tag: dataset.Tag{Kind: dataset.TagCustom}}

	dir := filepath.Join(t.TempDir(), "toy2")
	qt.Assert(t, qt.IsNil(d.Save(dir)))
	return dir
}

func TestRunCommandWritesLinelist(t *testing.T) {
	datasetDir := buildRecombinantDataset(t)

	configPath := filepath.Join(t.TempDir(), "params.yaml")
	qt.Assert(t, qt.IsNil(os.WriteFile(configPath, []byte("mask: [0, 0]\nmin_length: 3\nmin_consecutive: 3\nparents: [A, B]\n"), 0o644)))

	outputPath := filepath.Join(t.TempDir(), "linelist.tsv")

	c := cli.New()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetArgs([]string{
		"run", datasetDir,
		"--populations", "A",
		"--populations", "B",
		"--config", configPath,
		"--output", outputPath,
	})
	qt.Assert(t, qt.IsNil(c.Execute()))

	contents, err := os.ReadFile(outputPath)
	qt.Assert(t, qt.IsNil(err))
	lines := strings.Split(strings.TrimRight(string(contents), "\n"), "\n")
	qt.Assert(t, qt.HasLen(lines, 3))
	qt.Assert(t, qt.IsTrue(strings.HasPrefix(lines[0], "strain\t")))
}

func TestDatasetDownloadRoundTrips(t *testing.T) {
	datasetsDir := buildToyDataset(t)
	sourceDir := filepath.Join(datasetsDir, "toy1")
	outputDir := filepath.Join(t.TempDir(), "materialized")

	c := cli.New()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetArgs([]string{"dataset", "download", sourceDir, "--output", outputDir})
	qt.Assert(t, qt.IsNil(c.Execute()))

	reloaded, err := dataset.Load(outputDir, sequence.DNA, sequence.Mask{})
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.HasLen(reloaded.Populations, 1))
}
