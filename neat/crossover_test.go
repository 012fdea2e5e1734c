package neat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func innovationWeights(g *Genome) map[int]float64 {
	m := make(map[int]float64, len(g.Genes))
	for _, gene := range g.Genes {
		m[gene.Innovation] = gene.Weight
	}
	return m
}

func TestCrossoverClosure(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(5))
	inn := NewInnovationRegistry(NeuronID(cfg.Genome.templateSize()))
	genomes := evolveGenomes(rng, cfg, inn, 12, 15)

	for i := 0; i+1 < len(genomes); i += 2 {
		fit, weak := genomes[i], genomes[i+1]
		fit.Fitness, weak.Fitness = 10, 5
		fitGenes, weakGenes := innovationWeights(fit), innovationWeights(weak)

		child := weak.Crossover(fit, 100+i, rng)
		require.Equal(t, 100+i, child.Key)
		require.Len(t, child.Genes, len(fit.Genes), "child follows the fitter parent's structure")
		assert.Equal(t, fit.Rates, child.Rates)

		for _, gene := range child.Genes {
			w, ok := fitGenes[gene.Innovation]
			require.True(t, ok, "innovation %d not from the fitter parent", gene.Innovation)
			if lw, shared := weakGenes[gene.Innovation]; shared && gene.Weight != w {
				assert.Equal(t, lw, gene.Weight)
			}
		}
		requireWellFormed(t, child)
		requireAcyclic(t, child)
	}
}

func TestCrossoverSharesNothingWithParents(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(8))
	inn := NewInnovationRegistry(NeuronID(cfg.Genome.templateSize()))
	genomes := evolveGenomes(rng, cfg, inn, 2, 10)
	a, b := genomes[0], genomes[1]

	parentGenes := map[*Gene]bool{}
	parentNeurons := map[*Neuron]bool{}
	for _, p := range genomes {
		for _, gene := range p.Genes {
			parentGenes[gene] = true
		}
		for _, n := range p.Neurons {
			parentNeurons[n] = true
		}
	}
	before := innovationWeights(a)

	child := a.Crossover(b, 3, rng)
	for _, gene := range child.Genes {
		assert.False(t, parentGenes[gene])
		gene.Weight += 100
		gene.Enabled = !gene.Enabled
	}
	for _, n := range child.Neurons {
		assert.False(t, parentNeurons[n])
	}
	assert.Equal(t, before, innovationWeights(a))
}

func TestCrossoverTieKeepsReceiverStructure(t *testing.T) {
	cfg := testConfig()
	a := newTemplateGenome(cfg, 1)
	addGene(t, a, 0, 3, 1, 1)
	addGene(t, a, 1, 3, 1, 2)
	b := newTemplateGenome(cfg, 2)
	addGene(t, b, 0, 3, -1, 1)
	addGene(t, b, 2, 3, -1, 3)

	child := a.Crossover(b, 3, rand.New(rand.NewSource(1)))
	got := innovationWeights(child)
	assert.Len(t, got, 2)
	assert.Contains(t, got, 1)
	assert.Contains(t, got, 2)
	assert.NotContains(t, got, 3)
}

func TestCrossoverSkipsDisabledWeakerGene(t *testing.T) {
	cfg := testConfig()
	h := newTemplateGenome(cfg, 1)
	addGene(t, h, 0, 3, 1, 1)
	h.Fitness = 2
	l := newTemplateGenome(cfg, 2)
	off := addGene(t, l, 0, 3, -1, 1)
	off.Enabled = false

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		child := h.Crossover(l, 10+i, rng)
		require.Len(t, child.Genes, 1)
		assert.True(t, child.Genes[0].Enabled)
		assert.Equal(t, 1.0, child.Genes[0].Weight)
	}
}

func TestCrossoverDisablesCycleClosingGene(t *testing.T) {
	cfg := testConfig()
	h := newTemplateGenome(cfg, 1)
	addHidden(t, h, 4, 5)
	addGene(t, h, 4, 5, 1, 1)
	back := NewGene(5, 4, 1)
	back.Innovation = 2
	back.Enabled = false
	require.True(t, h.AddGene(back))
	h.Fitness = 2

	l := newTemplateGenome(cfg, 2)
	addHidden(t, l, 4, 5)
	off := addGene(t, l, 4, 5, 1, 1)
	off.Enabled = false
	addGene(t, l, 5, 4, 0.5, 2)

	rng := rand.New(rand.NewSource(3))
	fromWeaker := 0
	for i := 0; i < 50; i++ {
		child := h.Crossover(l, 10+i, rng)
		require.Len(t, child.Genes, 2)
		requireAcyclic(t, child)
		for _, gene := range child.Genes {
			if gene.Innovation == 2 && gene.Weight == 0.5 {
				fromWeaker++
				assert.False(t, gene.Enabled, "cycle closing gene must be inherited disabled")
			}
		}
	}
	assert.Positive(t, fromWeaker)
}

func TestCrossoverLeavesParentOrder(t *testing.T) {
	cfg := testConfig()
	a := newTemplateGenome(cfg, 1)
	addGene(t, a, 0, 3, 1, 3)
	addGene(t, a, 1, 3, 1, 1)
	addGene(t, a, 2, 3, 1, 2)
	a.Fitness = 2
	b := newTemplateGenome(cfg, 2)
	addGene(t, b, 2, 3, -1, 2)
	addGene(t, b, 0, 3, -1, 3)

	order := func(g *Genome) []int {
		innovations := []int{}
		for _, gene := range g.Genes {
			innovations = append(innovations, gene.Innovation)
		}
		return innovations
	}

	child := b.Crossover(a, 3, rand.New(rand.NewSource(1)))
	assert.Equal(t, []int{3, 1, 2}, order(a))
	assert.Equal(t, []int{2, 3}, order(b))
	assert.Equal(t, []int{1, 2, 3}, order(child))
}

func TestMatchGenomesMutatesChild(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(12))
	inn := NewInnovationRegistry(NeuronID(cfg.Genome.templateSize()))
	genomes := evolveGenomes(rng, cfg, inn, 2, 5)

	child := genomes[0].MatchGenomes(genomes[1], 9, rng, inn)
	assert.Equal(t, 9, child.Key)
	assert.NotEqual(t, genomes[0].Rates, child.Rates)
	requireWellFormed(t, child)
	requireAcyclic(t, child)
}
