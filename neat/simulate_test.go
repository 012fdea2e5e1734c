package neat

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivateEmptyGenome(t *testing.T) {
	g := newTemplateGenome(testConfig(), 1)
	out, err := g.Activate([]float64{1, 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5}, out)
}

func TestActivateWiredGenome(t *testing.T) {
	g := newTemplateGenome(testConfig(), 1)
	addGene(t, g, 0, 3, 1, 1)

	out, err := g.Activate([]float64{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, Sigmoid(1), out[0], 1e-12)

	addGene(t, g, 2, 3, -1, 2)
	out, err = g.Activate([]float64{1, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.5, out[0], 1e-12)

	addHidden(t, g, 4)
	addGene(t, g, 1, 4, 2, 3)
	addGene(t, g, 4, 3, 1, 4)
	out, err = g.Activate([]float64{0, 1})
	require.NoError(t, err)
	assert.InDelta(t, Sigmoid(-1+Sigmoid(2)), out[0], 1e-12)
}

func TestSimulateIsDeterministic(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(21))
	inn := NewInnovationRegistry(NeuronID(cfg.Genome.templateSize()))
	inputs := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

	for _, g := range evolveGenomes(rng, cfg, inn, 10, 20) {
		first := make([][]float64, len(inputs))
		for i, in := range inputs {
			out, err := g.Activate(in)
			require.NoError(t, err)
			first[i] = out
		}
		for i := len(inputs) - 1; i >= 0; i-- {
			out, err := g.Activate(inputs[i])
			require.NoError(t, err)
			assert.Equal(t, first[i], out)
		}
	}
}

func TestSimulateErrors(t *testing.T) {
	g := newTemplateGenome(testConfig(), 1)

	_, err := g.Activate([]float64{1})
	assert.ErrorIs(t, err, ErrInputCount)

	assert.ErrorIs(t, g.SetValue(99, 1), ErrUnknownNeuron)
	_, err = g.Value(99)
	assert.ErrorIs(t, err, ErrUnknownNeuron)

	require.NoError(t, g.SetValue(0, 0.25))
	v, err := g.Value(0)
	require.NoError(t, err)
	assert.Equal(t, 0.25, v)
}

func TestSimulateKeepsBiasFixed(t *testing.T) {
	g := newTemplateGenome(testConfig(), 1)
	addGene(t, g, 2, 3, 1, 1)
	require.NoError(t, g.SetValue(2, 7))

	g.Simulate()
	bias, err := g.Value(2)
	require.NoError(t, err)
	assert.Equal(t, 1.0, bias)
	out, err := g.Value(3)
	require.NoError(t, err)
	assert.InDelta(t, Sigmoid(1), out, 1e-12)
}
