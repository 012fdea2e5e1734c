package neat

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// Config stores the configuration parameters for the evolutionary engine.
type Config struct {
	Neat       NeatConfig       `yaml:"neat"`
	Genome     GenomeConfig     `yaml:"genome"`
	SpeciesSet SpeciesSetConfig `yaml:"species_set"`
	Stagnation StagnationConfig `yaml:"stagnation"`
}

// NeatConfig holds parameters of the run itself.
type NeatConfig struct {
	PopSize              int     `ini:"pop_size" yaml:"pop_size"`
	FitnessThreshold     float64 `ini:"fitness_threshold" yaml:"fitness_threshold"`
	NoFitnessTermination bool    `ini:"no_fitness_termination" yaml:"no_fitness_termination"`
	ResetOnExtinction    bool    `ini:"reset_on_extinction" yaml:"reset_on_extinction"`
	Seed                 int64   `ini:"seed" yaml:"seed"` // 0 picks a time based seed
}

// GenomeConfig holds parameters for genome structure and mutation.
type GenomeConfig struct {
	NumInputs  int `ini:"num_inputs" yaml:"num_inputs"`
	NumOutputs int `ini:"num_outputs" yaml:"num_outputs"`

	// Initial values of the self-adapting mutation rates.
	WeightMutateRate  float64 `ini:"weight_mutate_rate" yaml:"weight_mutate_rate"`
	LinkMutateRate    float64 `ini:"link_mutate_rate" yaml:"link_mutate_rate"`
	NodeMutateRate    float64 `ini:"node_mutate_rate" yaml:"node_mutate_rate"`
	BiasMutateRate    float64 `ini:"bias_mutate_rate" yaml:"bias_mutate_rate"`
	DisableMutateRate float64 `ini:"disable_mutate_rate" yaml:"disable_mutate_rate"`
	EnableMutateRate  float64 `ini:"enable_mutate_rate" yaml:"enable_mutate_rate"`

	WeightPerturbProb float64 `ini:"weight_perturb_prob" yaml:"weight_perturb_prob"`
	WeightPerturbStep float64 `ini:"weight_perturb_step" yaml:"weight_perturb_step"`
	WeightRange       float64 `ini:"weight_range" yaml:"weight_range"`

	// --- Derived ---
	InputKeys  []NeuronID `ini:"-" yaml:"-"`
	BiasKey    NeuronID   `ini:"-" yaml:"-"`
	OutputKeys []NeuronID `ini:"-" yaml:"-"`
}

// SpeciesSetConfig holds compatibility and breeding parameters given to every species.
type SpeciesSetConfig struct {
	CrossOverChance float64 `ini:"crossover_chance" yaml:"crossover_chance"`
	DeltaDisjoint   float64 `ini:"delta_disjoint" yaml:"delta_disjoint"`
	DeltaWeight     float64 `ini:"delta_weight" yaml:"delta_weight"`
	DeltaThreshold  float64 `ini:"delta_threshold" yaml:"delta_threshold"`
}

// StagnationConfig holds parameters related to species stagnation.
type StagnationConfig struct {
	MaxStagnation int `ini:"max_stagnation" yaml:"max_stagnation"`
}

// DefaultConfig returns a configuration with the engine's stock parameters.
func DefaultConfig() *Config {
	config := &Config{
		Neat: NeatConfig{
			PopSize: 100,
		},
		Genome: GenomeConfig{
			NumInputs:         2,
			NumOutputs:        1,
			WeightMutateRate:  0.25,
			LinkMutateRate:    2.0,
			NodeMutateRate:    0.5,
			BiasMutateRate:    0.4,
			DisableMutateRate: 0.4,
			EnableMutateRate:  0.2,
			WeightPerturbProb: 0.9,
			WeightPerturbStep: 0.1,
			WeightRange:       2.0,
		},
		SpeciesSet: SpeciesSetConfig{
			CrossOverChance: 0.75,
			DeltaDisjoint:   2.0,
			DeltaWeight:     0.4,
			DeltaThreshold:  1.0,
		},
		Stagnation: StagnationConfig{
			MaxStagnation: 15,
		},
	}
	config.Genome.deriveKeys()
	return config
}

// LoadConfig loads configuration parameters from an INI file. Keys missing
// from the file keep their DefaultConfig values.
func LoadConfig(filePath string) (*Config, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file '%s': %w", filePath, err)
	}

	config := DefaultConfig()

	if err := cfg.Section("NEAT").MapTo(&config.Neat); err != nil {
		return nil, fmt.Errorf("failed to map [NEAT] section: %w", err)
	}
	if err := cfg.Section("DefaultGenome").MapTo(&config.Genome); err != nil {
		return nil, fmt.Errorf("failed to map [DefaultGenome] section: %w", err)
	}
	if err := cfg.Section("DefaultSpeciesSet").MapTo(&config.SpeciesSet); err != nil {
		return nil, fmt.Errorf("failed to map [DefaultSpeciesSet] section: %w", err)
	}
	if err := cfg.Section("DefaultStagnation").MapTo(&config.Stagnation); err != nil {
		return nil, fmt.Errorf("failed to map [DefaultStagnation] section: %w", err)
	}

	config.Genome.deriveKeys()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Neat.PopSize <= 0 {
		return fmt.Errorf("config error: pop_size must be positive")
	}
	if c.Genome.NumInputs <= 0 {
		return fmt.Errorf("config error: num_inputs must be positive")
	}
	if c.Genome.NumOutputs <= 0 {
		return fmt.Errorf("config error: num_outputs must be positive")
	}
	rates := map[string]float64{
		"weight_mutate_rate":  c.Genome.WeightMutateRate,
		"link_mutate_rate":    c.Genome.LinkMutateRate,
		"node_mutate_rate":    c.Genome.NodeMutateRate,
		"bias_mutate_rate":    c.Genome.BiasMutateRate,
		"disable_mutate_rate": c.Genome.DisableMutateRate,
		"enable_mutate_rate":  c.Genome.EnableMutateRate,
	}
	for name, rate := range rates {
		if rate < 0 {
			return fmt.Errorf("config error: %s cannot be negative", name)
		}
	}
	if c.Genome.WeightPerturbProb < 0 || c.Genome.WeightPerturbProb > 1 {
		return fmt.Errorf("config error: weight_perturb_prob must be between 0 and 1")
	}
	if c.Genome.WeightPerturbStep < 0 {
		return fmt.Errorf("config error: weight_perturb_step cannot be negative")
	}
	if c.Genome.WeightRange <= 0 {
		return fmt.Errorf("config error: weight_range must be positive")
	}
	if c.SpeciesSet.CrossOverChance < 0 || c.SpeciesSet.CrossOverChance > 1 {
		return fmt.Errorf("config error: crossover_chance must be between 0 and 1")
	}
	if c.SpeciesSet.DeltaDisjoint < 0 {
		return fmt.Errorf("config error: delta_disjoint cannot be negative")
	}
	if c.SpeciesSet.DeltaWeight < 0 {
		return fmt.Errorf("config error: delta_weight cannot be negative")
	}
	if c.SpeciesSet.DeltaThreshold <= 0 {
		return fmt.Errorf("config error: delta_threshold must be positive")
	}
	if c.Stagnation.MaxStagnation <= 0 {
		return fmt.Errorf("config error: max_stagnation must be positive")
	}
	return nil
}

// WriteYAML saves the effective configuration as YAML.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// deriveKeys lays out the template handles: inputs first, then the bias
// neuron, then the outputs. Evaluators index into this ordering.
func (gc *GenomeConfig) deriveKeys() {
	gc.InputKeys = make([]NeuronID, gc.NumInputs)
	for i := range gc.InputKeys {
		gc.InputKeys[i] = NeuronID(i)
	}
	gc.BiasKey = NeuronID(gc.NumInputs)
	gc.OutputKeys = make([]NeuronID, gc.NumOutputs)
	for i := range gc.OutputKeys {
		gc.OutputKeys[i] = NeuronID(gc.NumInputs + 1 + i)
	}
}

// templateSize is the number of essential neurons every genome carries.
func (gc *GenomeConfig) templateSize() int {
	return gc.NumInputs + 1 + gc.NumOutputs
}

// initialRates returns the configured starting mutation rates.
func (gc *GenomeConfig) initialRates() MutationRates {
	return MutationRates{
		gc.WeightMutateRate,
		gc.LinkMutateRate,
		gc.NodeMutateRate,
		gc.BiasMutateRate,
		gc.DisableMutateRate,
		gc.EnableMutateRate,
	}
}
