package neat

import "math/rand"

// Crossover creates a child from g and other aligned by innovation number.
//
// The fitter parent (g on ties) supplies the structure: every one of its
// genes is inherited, and for genes both parents share the weaker parent's
// copy is taken with probability 0.5 if that copy is enabled. The child gets
// the essential template neurons plus every neuron its genes reference, and
// the fitter parent's mutation rates. Nothing is shared with the parents.
func (g *Genome) Crossover(other *Genome, key int, rng *rand.Rand) *Genome {
	h, l := g, other
	if other.Fitness > g.Fitness {
		h, l = other, g
	}

	child := NewGenome(key, h.Config)
	child.Rates = h.Rates

	for _, n := range h.Neurons {
		if isEssential(n) {
			child.AddNeuron(n.Copy())
		}
	}

	lower := make(map[int]*Gene, len(l.Genes))
	for _, gene := range l.Genes {
		lower[gene.Innovation] = gene
	}

	for _, gene := range sortedGenes(h.Genes) {
		source, parent := gene, h
		if match, ok := lower[gene.Innovation]; ok && rng.Float64() < 0.5 && match.Enabled {
			source, parent = match, l
		}
		child.inheritNeuron(parent, source.Origin)
		child.inheritNeuron(parent, source.Into)

		inherited := source.Copy()
		if inherited.Enabled && child.createsCycle(inherited.Origin, inherited.Into) {
			inherited.Enabled = false
		}
		child.AddGene(inherited)
	}
	return child
}

// MatchGenomes is Crossover followed by the child's own mutation pass.
func (g *Genome) MatchGenomes(other *Genome, key int, rng *rand.Rand, innovations *InnovationRegistry) *Genome {
	child := g.Crossover(other, key, rng)
	child.Mutate(rng, innovations)
	return child
}

// inheritNeuron copies the neuron with the given handle from parent unless
// the genome already has one.
func (g *Genome) inheritNeuron(parent *Genome, id NeuronID) {
	if g.HasNeuron(id) {
		return
	}
	if n, ok := parent.Neuron(id); ok {
		g.AddNeuron(n.Copy())
	}
}

// sortedGenes returns the genes ordered by innovation without touching genes.
func sortedGenes(genes []*Gene) []*Gene {
	sorted := make([]*Gene, len(genes))
	copy(sorted, genes)
	sortGenes(sorted)
	return sorted
}

// isEssential reports whether the neuron belongs to the input/bias/output template.
func isEssential(n *Neuron) bool {
	return n.Type != Hidden
}
