package phylo

import "encoding/json"

// jsonEdge is the on-disk representation of a single edge, matching the
// dataset's phylogeny.json layout (spec.md §6).
type jsonEdge struct {
	Source     string   `json:"source"`
	Target     string   `json:"target"`
	Length     float32  `json:"length"`
	Confidence *float64 `json:"confidence,omitempty"`
}

type jsonGraph struct {
	Nodes []string   `json:"nodes"`
	Edges []jsonEdge `json:"edges"`
}

// MarshalJSON serializes the graph as its node list (to preserve
// isolated nodes with no edges) plus its edge list.
func (g *Graph) MarshalJSON() ([]byte, error) {
	jg := jsonGraph{Nodes: g.Nodes()}
	for _, e := range g.Edges() {
		jg.Edges = append(jg.Edges, jsonEdge{
			Source:     e.Source,
			Target:     e.Target,
			Length:     e.Branch.Length,
			Confidence: e.Branch.Confidence,
		})
	}
	return json.Marshal(jg)
}

// UnmarshalJSON rebuilds a graph from its serialized form. The receiver
// is reset first.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var jg jsonGraph
	if err := json.Unmarshal(data, &jg); err != nil {
		return err
	}
	*g = *New()
	for _, n := range jg.Nodes {
		g.AddNode(n)
	}
	for _, e := range jg.Edges {
		if _, err := g.AddBranch(e.Source, e.Target, Branch{Length: e.Length, Confidence: e.Confidence}); err != nil {
			return err
		}
	}
	return nil
}
