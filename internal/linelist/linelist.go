// Package linelist renders one tab-delimited row per query summarizing
// its recombination-search outcome, per spec.md §6's column list and
// grouped-substitution format, grounded on
// original_source/src/table/mod.rs and rebar-table/src/lib.rs.
package linelist

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ktmeaton/rebar-sub000/internal/recombination"
	"github.com/ktmeaton/rebar-sub000/internal/sequence"
)

// Header is the exact column order spec.md §6 names.
var Header = []string{
	"strain", "validate", "validate_details", "population", "recombinant",
	"parents", "breakpoints", "edge_case", "unique_key", "regions",
	"substitutions", "genome_length", "dataset_name", "dataset_tag", "cli_version",
}

// Row is one linelist record.
type Row struct {
	Strain          string
	Validate        recombination.Status
	ValidateDetails string
	Population      string
	Recombinant     bool
	Parents         []string
	Breakpoints     []recombination.Breakpoint
	EdgeCase        string
	Regions         []recombination.Region
	Substitutions   []sequence.Substitution
	GenomeLength    int
	DatasetName     string
	DatasetTag      string
	CLIVersion      string
}

// FromResult builds a Row from one query's recombination.Result and its
// originating query record.
func FromResult(result *recombination.Result, query *sequence.Record, datasetName, datasetTag, cliVersion string) Row {
	return Row{
		Strain:          result.SequenceID,
		Validate:        result.Validation.Status,
		ValidateDetails: result.Validation.Details,
		Population:      consensusOf(result),
		Recombinant:     result.Recombinant,
		Parents:         result.Parents,
		Breakpoints:     result.Breakpoints,
		EdgeCase:        result.EdgeCase,
		Regions:         result.Regions,
		Substitutions:   query.Substitutions,
		GenomeLength:    query.GenomeLength,
		DatasetName:     datasetName,
		DatasetTag:      datasetTag,
		CLIVersion:      cliVersion,
	}
}

// consensusOf reports the population a result's regions trace back to
// when there's exactly one surviving parent, which is the common case
// for a non-recombinant result; for a genuine recombinant this is
// intentionally left blank, since "population" names a single clade,
// not a mosaic of parents.
func consensusOf(result *recombination.Result) string {
	if len(result.Parents) == 1 {
		return result.Parents[0]
	}
	return ""
}

// Writer writes tab-delimited linelist rows.
type Writer struct {
	cw *csv.Writer
}

// NewWriter wraps w as a linelist Writer and emits the header row.
func NewWriter(w io.Writer) (*Writer, error) {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'
	if err := cw.Write(Header); err != nil {
		return nil, err
	}
	return &Writer{cw: cw}, nil
}

// Write appends one row, in Header's column order.
func (lw *Writer) Write(r Row) error {
	record := []string{
		r.Strain,
		r.Validate.String(),
		r.ValidateDetails,
		r.Population,
		strconv.FormatBool(r.Recombinant),
		strings.Join(r.Parents, ","),
		formatBreakpoints(r.Breakpoints),
		r.EdgeCase,
		uuid.New().String(),
		formatRegions(r.Regions),
		formatSubstitutions(r.Regions, r.Substitutions),
		strconv.Itoa(r.GenomeLength),
		r.DatasetName,
		r.DatasetTag,
		r.CLIVersion,
	}
	return lw.cw.Write(record)
}

// Flush flushes buffered output and reports any write error encountered.
func (lw *Writer) Flush() error {
	lw.cw.Flush()
	return lw.cw.Error()
}

func formatBreakpoints(bps []recombination.Breakpoint) string {
	parts := make([]string, len(bps))
	for i, b := range bps {
		parts[i] = fmt.Sprintf("%d-%d", b.Start, b.End)
	}
	return strings.Join(parts, ",")
}

func formatRegions(regions []recombination.Region) string {
	parts := make([]string, len(regions))
	for i, r := range regions {
		parts[i] = fmt.Sprintf("%d-%d|%s", r.Start, r.End, r.Parent)
	}
	return strings.Join(parts, ",")
}

// formatSubstitutions renders the `sub1,sub2|origin;sub3|private`
// grouping: one comma-joined run per surviving region tagged with its
// parent, followed by a run of any substitutions no region claimed,
// tagged "private" (spec.md §6).
func formatSubstitutions(regions []recombination.Region, all []sequence.Substitution) string {
	claimed := map[sequence.Substitution]bool{}
	var groups []string
	for _, r := range regions {
		subs := make([]string, len(r.Substitutions))
		for i, s := range r.Substitutions {
			subs[i] = s.String()
			claimed[s] = true
		}
		if len(subs) > 0 {
			groups = append(groups, strings.Join(subs, ",")+"|"+r.Parent)
		}
	}

	var private []string
	for _, s := range all {
		if !claimed[s] {
			private = append(private, s.String())
		}
	}
	if len(private) > 0 {
		groups = append(groups, strings.Join(private, ",")+"|private")
	}
	return strings.Join(groups, ";")
}
