package phylo

import (
	"sort"

	"github.com/ktmeaton/rebar-sub000/internal/rbrerr"
)

// Direction selects which edges Paths follows at each step.
type Direction int

const (
	// Forward follows outgoing (child) edges, towards the tips.
	Forward Direction = iota
	// Backward follows incoming (parent) edges, towards the root.
	Backward
)

// Paths enumerates every directed path from source to target, following
// Forward or Backward edges at each step. If source == target, the
// singleton path [source] is returned (spec.md §4.2).
func (g *Graph) Paths(source, target string, dir Direction) ([][]string, error) {
	srcID, err := g.id(source)
	if err != nil {
		return nil, err
	}
	tgtID, err := g.id(target)
	if err != nil {
		return nil, err
	}
	return g.paths(srcID, tgtID, dir), nil
}

func (g *Graph) paths(source, target nodeID, dir Direction) [][]string {
	if source == target {
		return [][]string{{g.nodes[source].label}}
	}

	var neighborEdges []int
	if dir == Backward {
		// Walk parent edges most-recently-added first: spec.md §8 S1's
		// ancestors(E,true) worked example orders [D,B,A] before [D,A],
		// and B->D was added after A->D.
		in := g.liveIn(source)
		neighborEdges = make([]int, len(in))
		for i, ei := range in {
			neighborEdges[len(in)-1-i] = ei
		}
	} else {
		neighborEdges = g.liveOut(source)
	}

	var out [][]string
	for _, ei := range neighborEdges {
		e := g.edges[ei]
		var next nodeID
		if dir == Backward {
			next = e.source
		} else {
			next = e.target
		}
		for _, sub := range g.paths(next, target, dir) {
			out = append(out, append([]string{g.nodes[source].label}, sub...))
		}
	}
	return out
}

// Ancestors returns every path from node up to the root, most- distant
// ancestor last removed (self excluded from every path), with
// duplicate paths removed. When includeRecombinant is false, each path
// is truncated at (and includes) the first recombinant encountered
// (spec.md §4.2).
func (g *Graph) Ancestors(label string, includeRecombinant bool) ([][]string, error) {
	if _, err := g.id(label); err != nil {
		return nil, err
	}
	root, err := g.Root()
	if err != nil {
		return nil, err
	}
	paths, err := g.Paths(label, root, Backward)
	if err != nil {
		return nil, err
	}

	var out [][]string
	for _, p := range paths {
		if !includeRecombinant {
			for i, n := range p {
				if n == label {
					continue
				}
				if rec, _ := g.IsRecombinant(n); rec {
					p = p[:i+1]
					break
				}
			}
		}
		var filtered []string
		for _, n := range p {
			if n != label {
				filtered = append(filtered, n)
			}
		}
		if len(filtered) > 0 {
			out = append(out, filtered)
		}
	}
	return dedupPaths(out), nil
}

// dedupPaths removes duplicate paths by a string-joined key, keeping the
// first occurrence of each and preserving g.paths's traversal order —
// spec.md §8's worked ancestors() examples are order-sensitive, which
// github.com/mpvl/unique's sort-then-uniq can't preserve (it's used
// instead where dedup order doesn't matter: internal/sequence and
// internal/mutation's unioned label sets).
func dedupPaths(paths [][]string) [][]string {
	seen := map[string]bool{}
	out := make([][]string, 0, len(paths))
	for _, p := range paths {
		k := pathKey(p)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return out
}

func pathKey(p []string) string {
	key := ""
	for _, n := range p {
		key += n + "\x00"
	}
	return key
}

// Descendants returns every descendant of node (self excluded),
// gathered depth-first. When includeRecombinant is false, any
// descendant whose nearest recombinant ancestor differs from node's own
// nearest recombinant ancestor is dropped, where a recombinant node
// counts as its own nearest recombinant (spec.md §4.2).
func (g *Graph) Descendants(label string, includeRecombinant bool) ([]string, error) {
	id, err := g.id(label)
	if err != nil {
		return nil, err
	}

	var out []string
	seen := map[nodeID]bool{id: true}
	var dfs func(nodeID)
	dfs = func(n nodeID) {
		for _, ei := range g.liveOut(n) {
			tgt := g.edges[ei].target
			if seen[tgt] {
				continue
			}
			seen[tgt] = true
			out = append(out, g.nodes[tgt].label)
			dfs(tgt)
		}
	}
	dfs(id)

	if !includeRecombinant {
		nearest := func(n string) string {
			if rec, _ := g.IsRecombinant(n); rec {
				return n
			}
			anc, _ := g.RecombinantAncestor(n)
			return anc
		}
		baseAnc := nearest(label)
		filtered := out[:0]
		for _, d := range out {
			if nearest(d) == baseAnc {
				filtered = append(filtered, d)
			}
		}
		out = filtered
	}
	return out, nil
}

// RecombinantAncestor returns the nearest ancestor of node whose
// IsRecombinant is true, walking every ancestral path and returning the
// first recombinant seen; ties are broken by path-enumeration order,
// which Paths makes stable by always visiting parent edges in the same
// (most-recently-added-first) order (spec.md §4.2, §9 open question b).
// Returns "", false if node lies on a non-recombinant-only path to the
// root.
func (g *Graph) RecombinantAncestor(label string) (string, bool) {
	if _, err := g.id(label); err != nil {
		return "", false
	}
	root, err := g.Root()
	if err != nil {
		return "", false
	}
	paths, err := g.Paths(label, root, Backward)
	if err != nil {
		return "", false
	}
	for _, p := range paths {
		for _, n := range p {
			if n == label {
				continue
			}
			if rec, _ := g.IsRecombinant(n); rec {
				return n, true
			}
		}
	}
	return "", false
}

// MRCA returns the most recent common ancestor of labels: the deepest
// node that is an ancestor of every member (spec.md §4.2/§4.6). With one
// label, MRCA returns that label.
func (g *Graph) MRCA(labels []string) (string, error) {
	if len(labels) == 0 {
		return "", rbrerr.New(rbrerr.UnknownNode, "mrca requires at least one label")
	}
	if len(labels) == 1 {
		if _, err := g.id(labels[0]); err != nil {
			return "", err
		}
		return labels[0], nil
	}

	ancestorSets := make([]map[string]bool, len(labels))
	for i, l := range labels {
		set := map[string]bool{l: true}
		paths, err := g.Ancestors(l, true)
		if err != nil {
			return "", err
		}
		for _, p := range paths {
			for _, n := range p {
				set[n] = true
			}
		}
		ancestorSets[i] = set
	}

	common := ancestorSets[0]
	for _, set := range ancestorSets[1:] {
		for n := range common {
			if !set[n] {
				delete(common, n)
			}
		}
	}
	if len(common) == 0 {
		return "", rbrerr.Newf(rbrerr.UnknownNode, "no common ancestor for %v", labels)
	}

	best := ""
	bestDepth := -1
	depths := map[string]int{}
	var ordered []string
	for n := range common {
		ordered = append(ordered, n)
	}
	sort.Strings(ordered)
	for _, n := range ordered {
		d, err := g.depth(n, depths)
		if err != nil {
			return "", err
		}
		if d > bestDepth {
			best, bestDepth = n, d
		}
	}
	return best, nil
}

// depth returns the maximum path length (edge count) from the root to
// node, memoized in cache.
func (g *Graph) depth(label string, cache map[string]int) (int, error) {
	if d, ok := cache[label]; ok {
		return d, nil
	}
	parents, err := g.Parents(label)
	if err != nil {
		return 0, err
	}
	if len(parents) == 0 {
		cache[label] = 0
		return 0, nil
	}
	best := -1
	for _, p := range parents {
		d, err := g.depth(p, cache)
		if err != nil {
			return 0, err
		}
		if d > best {
			best = d
		}
	}
	cache[label] = best + 1
	return best + 1, nil
}
