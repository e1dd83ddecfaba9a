package dataset

import (
	"encoding/csv"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ktmeaton/rebar-sub000/internal/rbrerr"
)

// readAnnotations parses the optional annotations table: tab- or
// comma-delimited depending on the file extension, header row required,
// minimal columns gene/abbreviation/start/end (spec.md §6, supplemented
// feature 3).
func readAnnotations(path string, r io.Reader) ([]Annotation, error) {
	delim := '\t'
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		delim = ','
	}

	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, rbrerr.Wrap(rbrerr.BadAttribute, err, "failed to parse annotations table")
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := map[string]int{}
	for i, h := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range []string{"gene", "abbreviation", "start", "end"} {
		if _, ok := col[want]; !ok {
			return nil, rbrerr.Newf(rbrerr.BadAttribute, "annotations table missing required column %q", want)
		}
	}

	var out []Annotation
	for _, row := range rows[1:] {
		start, err := strconv.Atoi(strings.TrimSpace(row[col["start"]]))
		if err != nil {
			return nil, rbrerr.Wrapf(rbrerr.BadAttribute, err, "invalid annotation start %q", row[col["start"]])
		}
		end, err := strconv.Atoi(strings.TrimSpace(row[col["end"]]))
		if err != nil {
			return nil, rbrerr.Wrapf(rbrerr.BadAttribute, err, "invalid annotation end %q", row[col["end"]])
		}
		out = append(out, Annotation{
			Gene:         row[col["gene"]],
			Abbreviation: row[col["abbreviation"]],
			Start:        start,
			End:          end,
		})
	}
	return out, nil
}

// writeAnnotations renders annotations back to the same tab/comma format
// readAnnotations accepts, inferred from path's extension.
func writeAnnotations(path string, w io.Writer, annotations []Annotation) error {
	delim := '\t'
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		delim = ','
	}
	cw := csv.NewWriter(w)
	cw.Comma = delim
	if err := cw.Write([]string{"gene", "abbreviation", "start", "end"}); err != nil {
		return rbrerr.Wrap(rbrerr.IO, err, "failed writing annotations header")
	}
	for _, a := range annotations {
		row := []string{a.Gene, a.Abbreviation, strconv.Itoa(a.Start), strconv.Itoa(a.End)}
		if err := cw.Write(row); err != nil {
			return rbrerr.Wrap(rbrerr.IO, err, "failed writing annotation row")
		}
	}
	cw.Flush()
	return cw.Error()
}
