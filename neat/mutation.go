package neat

import "math/rand"

// Rate drift factors. Their product is ~1, so repeated drift is neutral on average.
const (
	rateShrink = 0.95
	rateGrow   = 1.05263
)

// Mutate first drifts the genome's own mutation rates and then applies weight
// and structural mutations. Structural rates act as repeated trials: a rate
// of 2.3 makes two attempts plus a third with probability 0.3.
// Attempts that find nothing to do are silently dropped.
func (g *Genome) Mutate(rng *rand.Rand, innovations *InnovationRegistry) {
	g.alterRates(rng)

	if rng.Float64() < g.Rates[RateWeights] {
		g.mutateWeights(rng)
	}

	for slot := RateLink; slot < numRates; slot++ {
		for rate := g.Rates[slot]; rate > 0; rate-- {
			if rng.Float64() >= rate {
				continue
			}
			switch slot {
			case RateLink:
				g.mutateLink(rng, innovations, false)
			case RateNode:
				if len(g.Genes) > 0 {
					g.mutateNode(rng, innovations)
				}
			case RateBiasLink:
				g.mutateLink(rng, innovations, true)
			case RateDisable:
				g.mutateEnable(rng, false)
			case RateEnable:
				g.mutateEnable(rng, true)
			}
		}
	}
}

// alterRates multiplies every rate by 0.95 or 1.05263 with equal probability.
func (g *Genome) alterRates(rng *rand.Rand) {
	for i := range g.Rates {
		if rng.Float64() < 0.5 {
			g.Rates[i] *= rateShrink
		} else {
			g.Rates[i] *= rateGrow
		}
	}
}

// mutateWeights perturbs every weight slightly or, less often, replaces it.
func (g *Genome) mutateWeights(rng *rand.Rand) {
	for _, gene := range g.Genes {
		if rng.Float64() < g.Config.WeightPerturbProb {
			gene.Weight = perturbWeight(rng, gene.Weight, g.Config.WeightPerturbStep)
		} else {
			gene.Weight = randomWeight(rng, g.Config.WeightRange)
		}
	}
}

// mutateLink tries to connect two random neurons. Sensors are always the
// origin and outputs always the target. With bias set the origin is forced
// to the bias neuron.
func (g *Genome) mutateLink(rng *rand.Rand, innovations *InnovationRegistry, bias bool) bool {
	if len(g.Neurons) < 2 {
		return false
	}
	n1 := g.Neurons[rng.Intn(len(g.Neurons))]
	n2 := g.Neurons[rng.Intn(len(g.Neurons))]
	if n1 == n2 {
		return false
	}
	if (n1.Type.isSensor() && n2.Type.isSensor()) || (n1.Type == Output && n2.Type == Output) {
		return false
	}

	origin, into := n1, n2
	if n2.Type.isSensor() || n1.Type == Output {
		origin, into = n2, n1
	}
	if bias {
		origin = g.BiasNeuron()
		if into.Type.isSensor() {
			return false
		}
	}

	gene := NewGene(origin.ID, into.ID, 0)
	if g.hasLink(gene) {
		return false
	}
	if g.createsCycle(gene.Origin, gene.Into) {
		return false
	}

	gene.Weight = randomWeight(rng, g.Config.WeightRange)
	innovations.Define(gene)
	return g.AddGene(gene)
}

// mutateNode splits a random enabled gene with a hidden neuron. The incoming
// half gets weight 1.0 and the outgoing half keeps the old weight, so the
// network's behaviour changes little.
func (g *Genome) mutateNode(rng *rand.Rand, innovations *InnovationRegistry) bool {
	candidates := g.genesWithState(true)
	if len(candidates) == 0 {
		return false
	}
	gene := candidates[rng.Intn(len(candidates))]

	id, _ := innovations.SplitNeuron(gene.Innovation)
	if g.HasNeuron(id) {
		// This genome already carries the shared neuron, so the split gets its own.
		id = innovations.NewNeuronKey()
	}
	neuron := &Neuron{ID: id, Type: Hidden, Innovation: gene.Innovation}

	gene.Enabled = false
	g.AddNeuron(neuron)

	in := NewGene(gene.Origin, neuron.ID, 1.0)
	out := NewGene(neuron.ID, gene.Into, gene.Weight)
	innovations.Define(in)
	innovations.Define(out)
	g.AddGene(in)
	g.AddGene(out)
	return true
}

// mutateEnable flips a random gene that is currently in the opposite state.
// A Hidden->Hidden gene is only enabled if that keeps the hidden graph acyclic.
func (g *Genome) mutateEnable(rng *rand.Rand, enable bool) bool {
	candidates := g.genesWithState(!enable)
	if len(candidates) == 0 {
		return false
	}
	gene := candidates[rng.Intn(len(candidates))]
	if enable && g.createsCycle(gene.Origin, gene.Into) {
		return false
	}
	gene.Enabled = enable
	return true
}

// genesWithState returns the genes whose enabled flag equals enabled.
func (g *Genome) genesWithState(enabled bool) []*Gene {
	candidates := make([]*Gene, 0, len(g.Genes))
	for _, gene := range g.Genes {
		if gene.Enabled == enabled {
			candidates = append(candidates, gene)
		}
	}
	return candidates
}
