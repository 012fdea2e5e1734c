package neat

// DFS colours used by the cycle check.
const (
	unvisited = iota
	visiting
	done
)

// createsCycle reports whether an enabled origin->into edge would close a
// directed cycle among hidden neurons. Only Hidden->Hidden edges can form
// cycles: inputs and bias are never targets and outputs never sources.
//
// The check builds the graph of all enabled Hidden->Hidden genes plus the
// candidate and runs a three colour depth-first search from every node.
func (g *Genome) createsCycle(origin, into NeuronID) bool {
	from, ok1 := g.Neuron(origin)
	to, ok2 := g.Neuron(into)
	if !ok1 || !ok2 || from.Type != Hidden || to.Type != Hidden {
		return false
	}
	if origin == into {
		return true
	}

	adjacency := make(map[NeuronID][]NeuronID)
	nodes := []NeuronID{}
	addNode := func(id NeuronID) {
		if _, exists := adjacency[id]; !exists {
			adjacency[id] = nil
			nodes = append(nodes, id)
		}
	}
	for _, gene := range g.Genes {
		if !gene.Enabled || !g.isHiddenLink(gene) {
			continue
		}
		if gene.Origin == origin && gene.Into == into {
			continue
		}
		addNode(gene.Origin)
		addNode(gene.Into)
		adjacency[gene.Origin] = append(adjacency[gene.Origin], gene.Into)
	}
	addNode(origin)
	addNode(into)
	adjacency[origin] = append(adjacency[origin], into)

	colour := make(map[NeuronID]int, len(nodes))
	var visit func(id NeuronID) bool
	visit = func(id NeuronID) bool {
		switch colour[id] {
		case visiting:
			return true
		case done:
			return false
		}
		colour[id] = visiting
		for _, next := range adjacency[id] {
			if visit(next) {
				return true
			}
		}
		colour[id] = done
		return false
	}

	for _, id := range nodes {
		if colour[id] == unvisited && visit(id) {
			return true
		}
	}
	return false
}

// isHiddenLink reports whether both endpoints of gene are hidden neurons.
func (g *Genome) isHiddenLink(gene *Gene) bool {
	from, ok1 := g.Neuron(gene.Origin)
	to, ok2 := g.Neuron(gene.Into)
	return ok1 && ok2 && from.Type == Hidden && to.Type == Hidden
}

// HasHiddenCycle reports whether the enabled Hidden->Hidden genes contain a
// directed cycle.
func (g *Genome) HasHiddenCycle() bool {
	for _, gene := range g.Genes {
		if gene.Enabled && g.isHiddenLink(gene) && g.createsCycle(gene.Origin, gene.Into) {
			return true
		}
	}
	return false
}
