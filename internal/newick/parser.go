// Package newick implements a recursive-descent parser for Newick and
// extended-Newick text, producing a (parent, child, branch) edge list
// suitable for phylo.Graph.AddBranch (spec.md C3 / §4.3).
package newick

import (
	"strconv"
	"strings"

	"github.com/ktmeaton/rebar-sub000/internal/phylo"
	"github.com/ktmeaton/rebar-sub000/internal/rbrerr"
)

// Edge is a single (parent, child, branch) triple.
type Edge struct {
	Parent string
	Child  string
	Branch phylo.Branch
}

// Parse parses a Newick or extended-Newick string into an edge list, per
// the recursive algorithm in spec.md §4.3:
//  1. strip the trailing ';'
//  2. once no parentheses remain, split on ',' and emit (parent, leaf,
//     branch) triples, synthesizing a NODE_{k} parent if none was
//     passed in
//  3. otherwise find the first matched (...) pair and recurse on
//     before/inner/after with the appropriate parent assignments
func Parse(text string) ([]Edge, error) {
	p := &parser{}
	edges, err := p.parse(strings.TrimSuffix(strings.TrimSpace(text), ";"), "")
	if err != nil {
		return nil, err
	}
	return edges, nil
}

type parser struct {
	nodeCounter int
}

func (p *parser) nextSyntheticNode() string {
	n := "NODE_" + strconv.Itoa(p.nodeCounter)
	p.nodeCounter++
	return n
}

// parse implements the recursive step. parent is "" when none has been
// passed in from an outer call, which calls for a synthesized NODE_{k}.
func (p *parser) parse(text string, parent string) ([]Edge, error) {
	text = strings.ReplaceAll(text, ";", "")
	if text == "" {
		return nil, nil
	}

	if !strings.ContainsAny(text, "()") {
		return p.parseLeafList(text, parent)
	}

	start, end, err := matchedParens(text)
	if err != nil {
		return nil, err
	}
	inner := text[start+1 : end]
	before := text[:start]
	after := text[end+1:]

	var innerParent string
	if after == "" {
		innerParent = p.nextSyntheticNode()
	} else {
		cut := strings.IndexAny(after, ",)")
		if cut < 0 {
			cut = len(after)
		}
		innerParent, _, err = parseNodeToken(after[:cut])
		if err != nil {
			return nil, err
		}
	}

	var out []Edge
	if before != "" {
		edges, err := p.parse(before, parent)
		if err != nil {
			return nil, err
		}
		out = append(out, edges...)
	}
	innerEdges, err := p.parse(inner, innerParent)
	if err != nil {
		return nil, err
	}
	out = append(out, innerEdges...)
	if after != "" {
		edges, err := p.parse(after, parent)
		if err != nil {
			return nil, err
		}
		out = append(out, edges...)
	}
	return out, nil
}

// parseLeafList handles the base case: no parentheses remain, so text
// is a comma-separated list of "label[:length[:confidence]]" tokens.
func (p *parser) parseLeafList(text string, parent string) ([]Edge, error) {
	var out []Edge
	par := parent
	for _, tok := range strings.Split(text, ",") {
		if tok == "" {
			continue
		}
		label, branch, err := parseNodeToken(tok)
		if err != nil {
			return nil, err
		}
		if par == "" {
			par = p.nextSyntheticNode()
		}
		out = append(out, Edge{Parent: par, Child: label, Branch: branch})
	}
	return out, nil
}

// parseNodeToken splits a "label:length:confidence" token into its
// label and branch. Missing length/confidence default to 0; a
// confidence given as a decimal < 1 is multiplied by 100 (spec.md §4.3).
func parseNodeToken(tok string) (string, phylo.Branch, error) {
	parts := strings.Split(tok, ":")
	label := parts[0]

	var length float32
	if len(parts) >= 2 && parts[1] != "" {
		f, err := strconv.ParseFloat(parts[1], 32)
		if err != nil {
			return "", phylo.Branch{}, rbrerr.Wrapf(rbrerr.BadNewick, err, "bad branch length in %q", tok)
		}
		length = float32(f)
	}

	var confidence *float64
	if len(parts) >= 3 && parts[2] != "" {
		c, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return "", phylo.Branch{}, rbrerr.Wrapf(rbrerr.BadNewick, err, "bad confidence in %q", tok)
		}
		confidence = &c
	}

	return label, phylo.NewBranch(length, confidence), nil
}

// matchedParens returns the start/end byte offsets of the first
// balanced parenthesis pair in text.
func matchedParens(text string) (start, end int, err error) {
	start, end = -1, -1
	depth := 0
	for i, c := range text {
		switch c {
		case '(':
			if start < 0 {
				start = i
			}
			depth++
		case ')':
			depth--
			if depth == 0 && start >= 0 {
				return start, i, nil
			}
			if depth < 0 {
				return 0, 0, rbrerr.Newf(rbrerr.BadNewick, "unmatched ) in newick: %q", text)
			}
		}
	}
	return 0, 0, rbrerr.Newf(rbrerr.BadNewick, "unmatched ( in newick: %q", text)
}

// AddTo inserts every edge into g via AddBranch.
func AddTo(g *phylo.Graph, edges []Edge) error {
	for _, e := range edges {
		if _, err := g.AddBranch(e.Parent, e.Child, e.Branch); err != nil {
			return err
		}
	}
	return nil
}
