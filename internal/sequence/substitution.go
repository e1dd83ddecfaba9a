package sequence

import "fmt"

// Substitution is a single-coordinate base change relative to a
// reference: (coord, ref, alt). Equality and hashing are by all three
// fields, ordering by coord (spec.md §3).
type Substitution struct {
	Coord int
	Ref   byte
	Alt   byte
}

// Deletion is a Substitution whose Alt is always '-'.
type Deletion struct {
	Coord int
	Ref   byte
}

// String renders ref+coord+alt, e.g. "C241T".
func (s Substitution) String() string {
	return fmt.Sprintf("%c%d%c", s.Ref, s.Coord, s.Alt)
}

func (d Deletion) String() string {
	return fmt.Sprintf("%c%d-", d.Ref, d.Coord)
}

// Flip returns the substitution with Ref and Alt swapped, used by the
// parsimony summarizer to fold a secondary-only conflict into the
// primary's private-mutation list (spec.md §4.5).
func (s Substitution) Flip() Substitution {
	return Substitution{Coord: s.Coord, Ref: s.Alt, Alt: s.Ref}
}

// SubsByCoord sorts a slice of Substitution by Coord, satisfying
// sort.Interface plus the Truncate method github.com/mpvl/unique.Sort
// requires to compact out duplicates after sorting.
type SubsByCoord []Substitution

func (s SubsByCoord) Len() int      { return len(s) }
func (s SubsByCoord) Swap(i, j int) { s[i], s[j] = s[j], s[i] }
func (s SubsByCoord) Less(i, j int) bool {
	if s[i].Coord != s[j].Coord {
		return s[i].Coord < s[j].Coord
	}
	if s[i].Ref != s[j].Ref {
		return s[i].Ref < s[j].Ref
	}
	return s[i].Alt < s[j].Alt
}
func (s *SubsByCoord) Truncate(n int) { *s = (*s)[:n] }

// LabelsByName sorts and dedups a slice of population labels.
type LabelsByName []string

func (l LabelsByName) Len() int           { return len(l) }
func (l LabelsByName) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }
func (l LabelsByName) Less(i, j int) bool { return l[i] < l[j] }
func (l *LabelsByName) Truncate(n int)    { *l = (*l)[:n] }
