package dataset

import (
	"bufio"
	"io"
	"strings"

	"github.com/ktmeaton/rebar-sub000/internal/rbrerr"
)

// fastaEntry is one (id, sequence) pair read from a FASTA file.
type fastaEntry struct {
	ID       string
	Sequence []byte
}

// readFasta parses a standard multi-record FASTA stream: '>' header
// lines give the record ID (up to the first whitespace), sequence lines
// are concatenated and upper-cased (spec.md §6 "standard multi-record
// FASTA, 1-based position semantics, uppercase alphabet"). FASTA parsing
// itself is an out-of-scope external collaborator per spec.md §1; this
// is the minimal plumbing the in-scope dataset load contract needs to
// exercise, so it is deliberately small rather than a complete format
// implementation (no IUPAC line-wrapping validation, no quality scores).
func readFasta(r io.Reader) ([]fastaEntry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	var entries []fastaEntry
	var cur *fastaEntry
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		if line[0] == '>' {
			if cur != nil {
				entries = append(entries, *cur)
			}
			id := strings.Fields(strings.TrimPrefix(line, ">"))
			label := ""
			if len(id) > 0 {
				label = id[0]
			}
			cur = &fastaEntry{ID: label}
			continue
		}
		if cur == nil {
			return nil, rbrerr.New(rbrerr.BadFasta, "fasta content before first header")
		}
		cur.Sequence = append(cur.Sequence, []byte(strings.ToUpper(line))...)
	}
	if err := scanner.Err(); err != nil {
		return nil, rbrerr.Wrap(rbrerr.IO, err, "failed reading fasta stream")
	}
	if cur != nil {
		entries = append(entries, *cur)
	}
	if len(entries) == 0 {
		return nil, rbrerr.New(rbrerr.BadFasta, "fasta stream has no records")
	}
	return entries, nil
}

// writeFasta writes entries back out, wrapping sequence lines at 60
// characters, matching common FASTA convention.
func writeFasta(w io.Writer, entries []fastaEntry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := bw.WriteString(">" + e.ID + "\n"); err != nil {
			return rbrerr.Wrap(rbrerr.IO, err, "failed writing fasta header")
		}
		for i := 0; i < len(e.Sequence); i += 60 {
			end := i + 60
			if end > len(e.Sequence) {
				end = len(e.Sequence)
			}
			if _, err := bw.Write(e.Sequence[i:end]); err != nil {
				return rbrerr.Wrap(rbrerr.IO, err, "failed writing fasta sequence")
			}
			if _, err := bw.WriteString("\n"); err != nil {
				return rbrerr.Wrap(rbrerr.IO, err, "failed writing fasta sequence")
			}
		}
	}
	return bw.Flush()
}
