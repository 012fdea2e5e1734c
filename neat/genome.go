package neat

import (
	"fmt"
	"sort"
	"strings"
)

// Mutation rate slots of a genome.
const (
	RateWeights = iota
	RateLink
	RateNode
	RateBiasLink
	RateDisable
	RateEnable
	numRates
)

// MutationRates holds the self-adapting per genome mutation rates.
type MutationRates [numRates]float64

// Genome represents an individual organism in the population: its own
// neurons plus the genes connecting them.
type Genome struct {
	Key             int     // Unique identifier for this genome.
	Neurons         []*Neuron
	Genes           []*Gene
	Fitness         float64
	AdjustedFitness float64
	Rates           MutationRates
	Config          *GenomeConfig

	index map[NeuronID]int // Neuron handle -> position in Neurons.
}

// NewGenome creates an empty genome with the configured initial mutation rates.
func NewGenome(key int, config *GenomeConfig) *Genome {
	return &Genome{
		Key:    key,
		Rates:  config.initialRates(),
		Config: config,
		index:  make(map[NeuronID]int),
	}
}

// ConfigureNew adds private copies of the template neurons.
func (g *Genome) ConfigureNew(template []*Neuron) {
	for _, n := range template {
		g.AddNeuron(n.Copy())
	}
}

// AddNeuron adds a neuron unless one with the same handle is already present.
func (g *Genome) AddNeuron(n *Neuron) bool {
	if _, exists := g.index[n.ID]; exists {
		return false
	}
	g.index[n.ID] = len(g.Neurons)
	g.Neurons = append(g.Neurons, n)
	return true
}

// Neuron returns the genome's neuron with the given handle.
func (g *Genome) Neuron(id NeuronID) (*Neuron, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.Neurons[i], true
}

// HasNeuron reports whether the handle belongs to this genome.
func (g *Genome) HasNeuron(id NeuronID) bool {
	_, ok := g.index[id]
	return ok
}

// neuronOrNil is the arena lookup used during evaluation.
func (g *Genome) neuronOrNil(id NeuronID) *Neuron {
	n, _ := g.Neuron(id)
	return n
}

// AddGene appends gene if both endpoints belong to this genome, no
// structurally equal gene exists and, when enabled, it does not close a
// cycle among hidden neurons.
func (g *Genome) AddGene(gene *Gene) bool {
	if gene.Origin == gene.Into {
		return false
	}
	if !g.HasNeuron(gene.Origin) || !g.HasNeuron(gene.Into) {
		return false
	}
	if g.hasLink(gene) {
		return false
	}
	if gene.Enabled && g.createsCycle(gene.Origin, gene.Into) {
		return false
	}
	g.Genes = append(g.Genes, gene)
	return true
}

// hasLink reports whether a structurally equal gene is already present.
func (g *Genome) hasLink(gene *Gene) bool {
	for _, existing := range g.Genes {
		if existing.IsEqual(gene) {
			return true
		}
	}
	return false
}

// BiasNeuron returns the genome's bias neuron. A missing bias neuron is
// created, so every genome has exactly one.
func (g *Genome) BiasNeuron() *Neuron {
	for _, n := range g.Neurons {
		if n.Type == Bias {
			return n
		}
	}
	bias := NewNeuron(g.Config.BiasKey, Bias)
	g.AddNeuron(bias)
	return bias
}

// SortGenes orders the genes by innovation number.
func (g *Genome) SortGenes() {
	sortGenes(g.Genes)
}

// Copy creates a deep copy of the genome under a new key.
func (g *Genome) Copy(key int) *Genome {
	child := NewGenome(key, g.Config)
	for _, n := range g.Neurons {
		child.AddNeuron(n.Copy())
	}
	child.Genes = make([]*Gene, len(g.Genes))
	for i, gene := range g.Genes {
		child.Genes[i] = gene.Copy()
	}
	child.Rates = g.Rates
	return child
}

// CompareFitness orders genomes best first: negative if g is fitter than other.
func (g *Genome) CompareFitness(other *Genome) int {
	switch {
	case g.Fitness > other.Fitness:
		return -1
	case g.Fitness < other.Fitness:
		return 1
	default:
		return 0
	}
}

// sortByFitness sorts genomes best first, keeping the order of equal fitness.
func sortByFitness(genomes []*Genome) {
	sort.SliceStable(genomes, func(i, j int) bool {
		return genomes[i].CompareFitness(genomes[j]) < 0
	})
}

// EnabledGenes returns the number of enabled genes.
func (g *Genome) EnabledGenes() int {
	count := 0
	for _, gene := range g.Genes {
		if gene.Enabled {
			count++
		}
	}
	return count
}

// String returns a string representation of the Genome.
func (g *Genome) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Genome(Key: %d, Fitness: %.3f)", g.Key, g.Fitness)
	for _, n := range g.Neurons {
		fmt.Fprintf(&b, "\n  %s", n)
	}
	for _, gene := range sortedGenes(g.Genes) {
		fmt.Fprintf(&b, "\n  %s", gene)
	}
	return b.String()
}
