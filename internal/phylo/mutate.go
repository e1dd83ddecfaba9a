package phylo

// Remove deletes label from the graph. If prune is true, the whole
// clade rooted at label (label plus every descendant, including
// recombinant ones) is removed. If false, the node is spliced out:
// every former parent is reconnected to every former child with a
// branch of length 1; if the removed node was itself a recombinant,
// its children directly inherit multiple parents from this cross
// product and so become recombinants themselves (spec.md §4.2).
//
// Remove returns the labels actually removed from the graph.
func (g *Graph) Remove(label string, prune bool) ([]string, error) {
	id, err := g.id(label)
	if err != nil {
		return nil, err
	}

	if prune {
		descendants, err := g.Descendants(label, true)
		if err != nil {
			return nil, err
		}
		removed := append([]string{label}, descendants...)
		removeSet := map[nodeID]bool{id: true}
		for _, d := range descendants {
			did, err := g.id(d)
			if err != nil {
				return nil, err
			}
			removeSet[did] = true
		}
		g.deleteNodes(removeSet)
		return removed, nil
	}

	parents, err := g.Parents(label)
	if err != nil {
		return nil, err
	}
	children, err := g.Children(label, true)
	if err != nil {
		return nil, err
	}

	g.deleteNodes(map[nodeID]bool{id: true})

	for _, p := range parents {
		for _, c := range children {
			if _, err := g.AddBranch(p, c, Branch{Length: 1}); err != nil {
				return nil, err
			}
		}
	}

	return []string{label}, nil
}

// deleteNodes tombstones every node in ids and every edge touching one,
// in either direction.
func (g *Graph) deleteNodes(ids map[nodeID]bool) {
	for id := range ids {
		g.nodes[id].removed = true
	}
	for i := range g.edges {
		e := &g.edges[i]
		if ids[e.source] || ids[e.target] {
			e.removed = true
		}
	}
}
