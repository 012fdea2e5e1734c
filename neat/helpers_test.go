package neat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

func testConfig() *Config {
	return DefaultConfig()
}

func templateNeurons(cfg *GenomeConfig) []*Neuron {
	template := make([]*Neuron, 0, cfg.templateSize())
	for _, id := range cfg.InputKeys {
		template = append(template, NewNeuron(id, Input))
	}
	template = append(template, NewNeuron(cfg.BiasKey, Bias))
	for _, id := range cfg.OutputKeys {
		template = append(template, NewNeuron(id, Output))
	}
	return template
}

// newTemplateGenome returns a genome with inputs 0 and 1, bias 2 and output 3.
func newTemplateGenome(cfg *Config, key int) *Genome {
	g := NewGenome(key, &cfg.Genome)
	g.ConfigureNew(templateNeurons(&cfg.Genome))
	return g
}

func addHidden(t *testing.T, g *Genome, ids ...NeuronID) {
	t.Helper()
	for _, id := range ids {
		require.True(t, g.AddNeuron(NewNeuron(id, Hidden)))
	}
}

func addGene(t *testing.T, g *Genome, origin, into NeuronID, weight float64, innovation int) *Gene {
	t.Helper()
	gene := NewGene(origin, into, weight)
	gene.Innovation = innovation
	require.True(t, g.AddGene(gene), "gene %d->%d rejected", origin, into)
	return gene
}

// evolveGenomes mutates n template genomes for the given number of rounds,
// clearing the registry between rounds like a generation boundary does.
func evolveGenomes(rng *rand.Rand, cfg *Config, inn *InnovationRegistry, n, rounds int) []*Genome {
	genomes := make([]*Genome, n)
	for i := range genomes {
		genomes[i] = newTemplateGenome(cfg, i+1)
	}
	for r := 0; r < rounds; r++ {
		for _, g := range genomes {
			g.Mutate(rng, inn)
		}
		inn.NewGeneration()
	}
	return genomes
}

// requireAcyclic checks the enabled genes with gonum's topological sort.
func requireAcyclic(t *testing.T, g *Genome) {
	t.Helper()
	require.False(t, g.HasHiddenCycle(), "genome %d has a hidden cycle", g.Key)

	graph := simple.NewDirectedGraph()
	for _, n := range g.Neurons {
		graph.AddNode(simple.Node(n.ID))
	}
	for _, gene := range g.Genes {
		if gene.Enabled {
			graph.SetEdge(graph.NewEdge(simple.Node(gene.Origin), simple.Node(gene.Into)))
		}
	}
	_, err := topo.Sort(graph)
	require.NoError(t, err, "genome %d is not a DAG", g.Key)
}

// requireWellFormed checks that every gene references neurons of the genome
// and that no two genes connect the same pair.
func requireWellFormed(t *testing.T, g *Genome) {
	t.Helper()
	seen := make(map[linkKey]bool, len(g.Genes))
	for _, gene := range g.Genes {
		require.True(t, g.HasNeuron(gene.Origin), "genome %d: unknown origin %d", g.Key, gene.Origin)
		require.True(t, g.HasNeuron(gene.Into), "genome %d: unknown target %d", g.Key, gene.Into)
		key := linkKey{Origin: gene.Origin, Into: gene.Into}
		require.False(t, seen[key], "genome %d: duplicate link %d->%d", g.Key, gene.Origin, gene.Into)
		seen[key] = true

		into, _ := g.Neuron(gene.Into)
		require.False(t, into.Type.isSensor(), "genome %d: gene into sensor %d", g.Key, gene.Into)
		origin, _ := g.Neuron(gene.Origin)
		require.NotEqual(t, Output, origin.Type, "genome %d: gene out of output %d", g.Key, gene.Origin)
	}
}
