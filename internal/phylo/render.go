package phylo

import (
	"fmt"
	"strings"
)

// ToNewick renders the graph as an extended-Newick string. Nodes are
// walked from the root, following Children(n, true) in insertion order;
// a recombinant node's subtree is written out in full the first time it
// is reached and referenced by its `label#H` hybrid marker on every
// subsequent incoming branch (spec.md §4.3's `x#H1` hybrid-node syntax,
// run in reverse).
func (g *Graph) ToNewick() (string, error) {
	root, err := g.Root()
	if err != nil {
		return "", err
	}
	visited := map[string]bool{}
	s := g.writeNewick(root, visited)
	return s + ";", nil
}

func (g *Graph) writeNewick(label string, visited map[string]bool) string {
	if visited[label] {
		return label + "#H"
	}
	visited[label] = true

	children, _ := g.Children(label, true)
	if len(children) == 0 {
		return label
	}

	parts := make([]string, 0, len(children))
	for _, c := range children {
		branch, _ := g.Branch(label, c)
		parts = append(parts, g.writeNewick(c, visited)+formatBranch(branch))
	}
	return "(" + strings.Join(parts, ",") + ")" + label
}

func formatBranch(b Branch) string {
	if b.Confidence != nil {
		return fmt.Sprintf(":%g:%g", b.Length, *b.Confidence)
	}
	if b.Length != 0 {
		return fmt.Sprintf(":%g", b.Length)
	}
	return ""
}

// ToDot renders the graph as Graphviz DOT. Recombinant nodes and the
// edges feeding them get a distinct style (dashed, warm-colour stroke)
// so rendering stays injective up to label equivalence (spec.md §4.2).
func (g *Graph) ToDot() (string, error) {
	var b strings.Builder
	b.WriteString("digraph {\n\trankdir=\"LR\"\n")
	for _, n := range g.Nodes() {
		rec, _ := g.IsRecombinant(n)
		if rec {
			fmt.Fprintf(&b, "\t%q [ label=%q recombinant=true color=orange ]\n", n, n)
		} else {
			fmt.Fprintf(&b, "\t%q [ label=%q recombinant=false ]\n", n, n)
		}
	}
	for _, e := range g.Edges() {
		rec, _ := g.IsRecombinant(e.Target)
		style := "solid"
		if rec {
			style = "dashed"
		}
		fmt.Fprintf(&b, "\t%q -> %q [ parent=%q child=%q style=%s weight=1 ]\n", e.Source, e.Target, e.Source, e.Target, style)
	}
	b.WriteString("}\n")
	return b.String(), nil
}

// ToMermaid renders the graph as a Mermaid flowchart, with recombinant
// edges drawn dashed in a warm colour, mirroring the teacher's visual
// convention for ARG diagrams.
func (g *Graph) ToMermaid() (string, error) {
	var b strings.Builder
	b.WriteString("graph LR;\n")
	var recombinantLines []int
	var defaultLines []int
	for i, e := range g.Edges() {
		rec, _ := g.IsRecombinant(e.Target)
		branch, _ := g.Branch(e.Source, e.Target)
		if rec {
			fmt.Fprintf(&b, "  %s-.->|%g|%s:::recombinant;\n", e.Source, branch.Length, e.Target)
			recombinantLines = append(recombinantLines, i)
		} else {
			fmt.Fprintf(&b, "  %s-->|%g|%s:::default;\n", e.Source, branch.Length, e.Target)
			defaultLines = append(defaultLines, i)
		}
	}
	b.WriteString("\nclassDef default stroke:#1f77b4\n")
	b.WriteString("classDef recombinant stroke:#ff7f0e\n")
	b.WriteString(fmt.Sprintf("\nlinkStyle %s stroke:#1f77b4\n", joinInts(defaultLines)))
	b.WriteString(fmt.Sprintf("linkStyle %s stroke:#ff7f0e\n", joinInts(recombinantLines)))
	return b.String(), nil
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprintf("%d", x)
	}
	return strings.Join(parts, ",")
}
