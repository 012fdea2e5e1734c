package neat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeSpawnAmounts(t *testing.T) {
	tests := []struct {
		name     string
		averages []float64
		total    float64
		popSize  int
		want     []int
	}{
		{"proportional", []float64{1, 3}, 4, 10, []int{1, 6}},
		{"exact share", []float64{5, 5}, 10, 10, []int{4, 4}},
		{"zero fitness", []float64{0, 2}, 2, 10, []int{0, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, computeSpawnAmounts(tt.averages, tt.total, tt.popSize))
		})
	}
}

func TestRemoveWeakSpecies(t *testing.T) {
	cfg := testConfig()
	r := NewReproduction(NewInnovationRegistry(4), rand.New(rand.NewSource(1)), discardLogger())

	weak := speciesWithFitnesses(cfg, 1, 1)
	strong := speciesWithFitnesses(cfg, 2, 99)
	survivors := r.removeWeakSpecies([]*Species{weak, strong}, 10)

	require.Len(t, survivors, 1)
	assert.Same(t, strong, survivors[0])
	// Top fitness is tracked by the stagnation step, not here.
	assert.Zero(t, strong.TopFitness)
}

func TestRemoveWeakSpeciesAllZero(t *testing.T) {
	cfg := testConfig()
	r := NewReproduction(NewInnovationRegistry(4), rand.New(rand.NewSource(1)), discardLogger())
	survivors := r.removeWeakSpecies([]*Species{speciesWithFitnesses(cfg, 1, 0, 0)}, 10)
	assert.Empty(t, survivors)
}

func TestReproduceFillsPopulation(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(2))
	inn := NewInnovationRegistry(NeuronID(cfg.Genome.templateSize()))
	r := NewReproduction(inn, rng, discardLogger())

	a := speciesWithFitnesses(cfg, 1, 3, 2, 1)
	b := speciesWithFitnesses(cfg, 2, 1, 1)
	children, err := r.Reproduce([]*Species{a, b}, 20)
	require.NoError(t, err)

	assert.Len(t, children, 18)
	assert.Len(t, a.Genomes, 1)
	assert.Len(t, b.Genomes, 1)
	assert.Equal(t, 3.0, a.Genomes[0].Fitness)

	_, err = r.Reproduce(nil, 20)
	assert.ErrorIs(t, err, ErrExtinct)
}

func TestCreateNewPopulation(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(3))
	inn := NewInnovationRegistry(NeuronID(cfg.Genome.templateSize()))
	r := NewReproduction(inn, rng, discardLogger())

	template := templateNeurons(&cfg.Genome)
	genomes := r.CreateNewPopulation(&cfg.Genome, template, 15)
	require.Len(t, genomes, 15)
	for i, g := range genomes {
		assert.Equal(t, i+1, g.Key)
		for j, n := range template {
			assert.NotSame(t, n, g.Neurons[j])
			assert.Equal(t, n.ID, g.Neurons[j].ID)
		}
		requireWellFormed(t, g)
	}
}
