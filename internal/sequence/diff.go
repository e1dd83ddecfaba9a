package sequence

import (
	"github.com/ktmeaton/rebar-sub000/internal/rbrerr"
)

// Diff compares query against reference under mask and alphabet,
// producing a populated Record. Both base vectors must be the same
// length and 0-indexed (index i holds the base at 1-based coordinate
// i+1), per spec.md §4.1.
//
// Masking policy, applied per coordinate:
//   - coord <= mask.M5 or coord > L-mask.M3: forced missing
//   - reference base not in alphabet: forced missing
//   - query base not in alphabet and not '-': forced missing (IUPAC/
//     ambiguous query bases are missing)
func Diff(id string, query, reference []byte, alphabet Alphabet, mask Mask, keepSequence bool) (*Record, error) {
	L := len(reference)
	if len(query) != L {
		return nil, rbrerr.Newf(rbrerr.LengthMismatch,
			"query %q has length %d, reference has length %d", id, len(query), L)
	}
	if mask.M5 >= L || mask.M3 >= L {
		return nil, rbrerr.Newf(rbrerr.LengthMismatch,
			"mask widths (%d,%d) are incompatible with genome length %d", mask.M5, mask.M3, L)
	}

	rec := &Record{
		ID:           id,
		GenomeLength: L,
		Alphabet:     alphabet,
	}

	for i := 0; i < L; i++ {
		coord := i + 1
		r := reference[i]
		q := query[i]

		forced := coord <= mask.M5 ||
			coord > L-mask.M3 ||
			!alphabet.Contains(r) ||
			(q != '-' && alphabet.IsAmbiguous(q))
		if forced {
			q = 'N'
		}

		switch {
		case q == 'N':
			rec.Missing = append(rec.Missing, coord)
		case q == '-':
			rec.Deletions = append(rec.Deletions, Deletion{Coord: coord, Ref: r})
		case q != r:
			rec.Substitutions = append(rec.Substitutions, Substitution{Coord: coord, Ref: r, Alt: q})
		}

		if keepSequence {
			rec.Sequence = append(rec.Sequence, q)
		}
	}

	rec.Substitutions = sortSubs(rec.Substitutions)
	rec.Missing = sortInts(rec.Missing)

	return rec, nil
}
