// Package phylo implements the ancestral recombination graph (ARG) data
// model and its traversal algebra (spec.md C2 / §4.2).
//
// The graph is modeled as an arena of nodes addressed by a stable integer
// handle, with edges holding source/target handles and a branch payload
// — this avoids pointer cycles and makes pruning trivial, per spec.md
// §9's design note. The public API is label-based; labels are unique
// population names and double as the caller-visible handle.
package phylo

import (
	"github.com/ktmeaton/rebar-sub000/internal/rbrerr"
)

// Branch is the payload of a directed edge: a length and an optional
// confidence percentage (spec.md §3).
type Branch struct {
	Length     float32
	Confidence *float64 // percentage in [0,100]; nil if unset.
}

// NewBranch builds a Branch, normalizing a confidence given as a decimal
// fraction (<1) into a percentage, per spec.md §3/§4.3: "confidences
// read as decimals <1 are multiplied by 100 on intake."
func NewBranch(length float32, confidence *float64) Branch {
	b := Branch{Length: length}
	if confidence != nil {
		c := *confidence
		if c < 1 {
			c *= 100
		}
		b.Confidence = &c
	}
	return b
}

type nodeID int

type node struct {
	label   string
	removed bool
}

type edge struct {
	source, target nodeID
	branch          Branch
	removed         bool
}

// Graph is a directed graph of population nodes and branch-labeled
// edges. The zero value is ready to use.
type Graph struct {
	nodes   []node
	byLabel map[string]nodeID
	edges   []edge
	out     map[nodeID][]int // edge indices, insertion order
	in      map[nodeID][]int // edge indices, insertion order
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		byLabel: map[string]nodeID{},
		out:     map[nodeID][]int{},
		in:      map[nodeID][]int{},
	}
}

func (g *Graph) ensureMaps() {
	if g.byLabel == nil {
		g.byLabel = map[string]nodeID{}
	}
	if g.out == nil {
		g.out = map[nodeID][]int{}
	}
	if g.in == nil {
		g.in = map[nodeID][]int{}
	}
}

// AddNode adds label to the graph, or returns its existing handle if
// already present (spec.md §4.2: "Idempotent on label").
func (g *Graph) AddNode(label string) int {
	g.ensureMaps()
	if id, ok := g.byLabel[label]; ok {
		return int(id)
	}
	id := nodeID(len(g.nodes))
	g.nodes = append(g.nodes, node{label: label})
	g.byLabel[label] = id
	return int(id)
}

func (g *Graph) id(label string) (nodeID, error) {
	g.ensureMaps()
	id, ok := g.byLabel[label]
	if !ok || g.nodes[id].removed {
		return 0, rbrerr.Newf(rbrerr.UnknownNode, "unknown node %q", label)
	}
	return id, nil
}

// AddBranch creates source/target nodes if absent and adds a directed
// edge source->target carrying branch. If the edge already exists, its
// branch payload is updated in place and no new edge is created. Fails
// with Cycle if the resulting graph would contain one (spec.md §4.2).
func (g *Graph) AddBranch(source, target string, branch Branch) (int, error) {
	g.ensureMaps()
	srcID := nodeID(g.AddNode(source))
	tgtID := nodeID(g.AddNode(target))

	for _, ei := range g.out[srcID] {
		e := &g.edges[ei]
		if !e.removed && e.target == tgtID {
			e.branch = branch
			return ei, nil
		}
	}

	if srcID == tgtID || g.reachable(tgtID, srcID) {
		return 0, rbrerr.Newf(rbrerr.Cycle,
			"new edge between %q and %q would introduce a cycle", source, target)
	}

	ei := len(g.edges)
	g.edges = append(g.edges, edge{source: srcID, target: tgtID, branch: branch})
	g.out[srcID] = append(g.out[srcID], ei)
	g.in[tgtID] = append(g.in[tgtID], ei)
	return ei, nil
}

// reachable reports whether target is reachable from source by
// following outgoing edges.
func (g *Graph) reachable(source, target nodeID) bool {
	seen := map[nodeID]bool{}
	stack := []nodeID{source}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == target {
			return true
		}
		if seen[n] {
			continue
		}
		seen[n] = true
		for _, ei := range g.out[n] {
			e := g.edges[ei]
			if !e.removed {
				stack = append(stack, e.target)
			}
		}
	}
	return false
}

// IsEmpty reports whether the graph holds no (non-removed) nodes.
func (g *Graph) IsEmpty() bool {
	for _, n := range g.nodes {
		if !n.removed {
			return false
		}
	}
	return true
}

// Nodes returns every live node label, in insertion order.
func (g *Graph) Nodes() []string {
	var out []string
	for _, n := range g.nodes {
		if !n.removed {
			out = append(out, n.label)
		}
	}
	return out
}

// Root returns the graph's unique in-degree-0 node (spec.md §3
// invariant 2), failing with NoRoot or MultipleRoots if that invariant
// doesn't hold.
func (g *Graph) Root() (string, error) {
	g.ensureMaps()
	var roots []string
	for id, n := range g.nodes {
		if n.removed {
			continue
		}
		if len(g.liveIn(nodeID(id))) == 0 {
			roots = append(roots, n.label)
		}
	}
	switch len(roots) {
	case 0:
		return "", rbrerr.New(rbrerr.NoRoot, "phylogeny has no root: every node has an incoming edge")
	case 1:
		return roots[0], nil
	default:
		return "", rbrerr.Newf(rbrerr.MultipleRoots, "phylogeny has multiple roots: %v", roots)
	}
}

func (g *Graph) liveIn(id nodeID) []int {
	var out []int
	for _, ei := range g.in[id] {
		if !g.edges[ei].removed {
			out = append(out, ei)
		}
	}
	return out
}

func (g *Graph) liveOut(id nodeID) []int {
	var out []int
	for _, ei := range g.out[id] {
		if !g.edges[ei].removed {
			out = append(out, ei)
		}
	}
	return out
}

// IsRecombinant reports whether node has in-degree >= 2 (spec.md §3
// invariant 3/4).
func (g *Graph) IsRecombinant(label string) (bool, error) {
	id, err := g.id(label)
	if err != nil {
		return false, err
	}
	return len(g.liveIn(id)) >= 2, nil
}

// Parents returns label's immediate parents, in the order their edges
// were added to the graph. (spec.md §4.2 describes this as "insertion
// order reversed (most-recently-added first)", describing the graph
// library's raw adjacency order before the documented reversal step;
// the worked example in §8 S1 — parents(G) = [C,E,F], in the order
// those three edges were added — is chronological, and is what this
// implementation and its tests follow.)
func (g *Graph) Parents(label string) ([]string, error) {
	id, err := g.id(label)
	if err != nil {
		return nil, err
	}
	in := g.liveIn(id)
	out := make([]string, len(in))
	for i, ei := range in {
		out[i] = g.nodes[g.edges[ei].source].label
	}
	return out, nil
}

// Children returns label's immediate children, in the order their
// edges were added to the graph (see Parents for the same ordering
// note). When includeRecombinant is false, children that are themselves
// recombinants are filtered out (spec.md §4.2).
func (g *Graph) Children(label string, includeRecombinant bool) ([]string, error) {
	id, err := g.id(label)
	if err != nil {
		return nil, err
	}
	liveOut := g.liveOut(id)
	out := make([]string, 0, len(liveOut))
	for _, ei := range liveOut {
		tgt := g.edges[ei].target
		if !includeRecombinant && len(g.liveIn(tgt)) >= 2 {
			continue
		}
		out = append(out, g.nodes[tgt].label)
	}
	return out, nil
}

// Branch returns the branch payload between source and target, if a
// live edge exists.
func (g *Graph) Branch(source, target string) (Branch, bool) {
	srcID, err := g.id(source)
	if err != nil {
		return Branch{}, false
	}
	tgtID, err := g.id(target)
	if err != nil {
		return Branch{}, false
	}
	for _, ei := range g.out[srcID] {
		e := g.edges[ei]
		if !e.removed && e.target == tgtID {
			return e.branch, true
		}
	}
	return Branch{}, false
}

// Edges returns every live (source, target, branch) triple, in
// insertion order.
type Edge struct {
	Source, Target string
	Branch         Branch
}

func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.removed {
			continue
		}
		out = append(out, Edge{
			Source: g.nodes[e.source].label,
			Target: g.nodes[e.target].label,
			Branch: e.branch,
		})
	}
	return out
}
