package neat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const partialConfig = `
# Keys not listed keep their defaults.
[NEAT]
pop_size          = 42
fitness_threshold = 3.9
seed              = 7

[DefaultGenome]
num_inputs       = 3
link_mutate_rate = 1.5

[DefaultSpeciesSet]
delta_threshold = 2.5
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.Neat.PopSize)
	assert.Equal(t, MutationRates{0.25, 2.0, 0.5, 0.4, 0.4, 0.2}, cfg.Genome.initialRates())
	assert.Equal(t, []NeuronID{0, 1}, cfg.Genome.InputKeys)
	assert.Equal(t, NeuronID(2), cfg.Genome.BiasKey)
	assert.Equal(t, []NeuronID{3}, cfg.Genome.OutputKeys)
	assert.Equal(t, 15, cfg.Stagnation.MaxStagnation)
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, partialConfig))
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.Neat.PopSize)
	assert.Equal(t, 3.9, cfg.Neat.FitnessThreshold)
	assert.Equal(t, int64(7), cfg.Neat.Seed)
	assert.False(t, cfg.Neat.ResetOnExtinction)

	assert.Equal(t, 3, cfg.Genome.NumInputs)
	assert.Equal(t, 1, cfg.Genome.NumOutputs)
	assert.Equal(t, 1.5, cfg.Genome.LinkMutateRate)
	assert.Equal(t, 0.5, cfg.Genome.NodeMutateRate)
	assert.Equal(t, []NeuronID{0, 1, 2}, cfg.Genome.InputKeys)
	assert.Equal(t, NeuronID(3), cfg.Genome.BiasKey)
	assert.Equal(t, []NeuronID{4}, cfg.Genome.OutputKeys)

	assert.Equal(t, 2.5, cfg.SpeciesSet.DeltaThreshold)
	assert.Equal(t, 0.75, cfg.SpeciesSet.CrossOverChance)
	assert.Equal(t, 15, cfg.Stagnation.MaxStagnation)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)

	tests := []struct {
		name    string
		content string
	}{
		{"zero population", "[NEAT]\npop_size = 0\n"},
		{"negative rate", "[DefaultGenome]\nnode_mutate_rate = -1\n"},
		{"perturb probability", "[DefaultGenome]\nweight_perturb_prob = 1.5\n"},
		{"threshold", "[DefaultSpeciesSet]\ndelta_threshold = 0\n"},
		{"stagnation", "[DefaultStagnation]\nmax_stagnation = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config error")
		})
	}
}

func TestWriteYAML(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, partialConfig))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pop_size: 42")
	assert.NotContains(t, string(data), "input_keys")

	var back Config
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, cfg.Neat, back.Neat)
	assert.Equal(t, cfg.SpeciesSet, back.SpeciesSet)
	assert.Equal(t, cfg.Stagnation, back.Stagnation)
	assert.Equal(t, cfg.Genome.LinkMutateRate, back.Genome.LinkMutateRate)
	assert.Empty(t, back.Genome.InputKeys)
}
