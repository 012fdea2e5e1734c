package neat

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

// Population holds the state of one evolutionary run. It is an ordinary
// value owned by the caller; readers must only inspect it between calls.
type Population struct {
	Config      *Config
	Species     []*Species
	Generation  int
	TopFitness  float64 // Best fitness seen in any generation.
	BestGenome  *Genome // Copy of the best genome found so far.
	Template    []*Neuron
	Innovations *InnovationRegistry

	Reproduction *Reproduction
	Stagnation   *Stagnation

	nextSpeciesKey int
	genomeHistory  *History
	speciesHistory *History
	rng            *rand.Rand
	logger         *slog.Logger
}

// Option customises a Population at construction time.
type Option func(*Population)

// WithRand sets the generator every random draw of the run goes through.
func WithRand(rng *rand.Rand) Option {
	return func(p *Population) { p.rng = rng }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Population) { p.logger = logger }
}

// NewPopulation creates a Population and initializes the first generation
// from a copy of config. Without WithRand the generator is seeded from [NEAT] seed,
// or from the clock when the seed is 0.
func NewPopulation(config *Config, opts ...Option) (*Population, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	// The population owns its copy; InitializePool rewrites sizes and keys.
	cfg := *config
	cfg.Genome.deriveKeys()

	p := &Population{
		Config: &cfg,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		seed := cfg.Neat.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		p.rng = rand.New(rand.NewSource(seed))
	}
	p.Stagnation = NewStagnation(&cfg.Stagnation)

	if _, err := p.InitializePool(cfg.Genome.NumInputs, cfg.Genome.NumOutputs, cfg.Neat.PopSize); err != nil {
		return nil, err
	}
	return p, nil
}

// InitializePool discards any previous state and seeds size genomes with
// nInputs inputs, one bias neuron and nOutputs outputs. The returned
// environment lists the template handles in that order; evaluators index
// into it positionally.
func (p *Population) InitializePool(nInputs, nOutputs, size int) (Environment, error) {
	if nInputs <= 0 || nOutputs <= 0 || size <= 0 {
		return Environment{}, fmt.Errorf("config error: pool needs positive inputs, outputs and size (got %d, %d, %d)", nInputs, nOutputs, size)
	}
	gc := &p.Config.Genome
	gc.NumInputs, gc.NumOutputs = nInputs, nOutputs
	gc.deriveKeys()
	p.Config.Neat.PopSize = size

	p.Template = make([]*Neuron, 0, gc.templateSize())
	for _, id := range gc.InputKeys {
		p.Template = append(p.Template, NewNeuron(id, Input))
	}
	p.Template = append(p.Template, NewNeuron(gc.BiasKey, Bias))
	for _, id := range gc.OutputKeys {
		p.Template = append(p.Template, NewNeuron(id, Output))
	}

	p.Species = nil
	p.Generation = 0
	p.TopFitness = 0
	p.BestGenome = nil
	p.nextSpeciesKey = 1
	p.genomeHistory = NewHistory()
	p.speciesHistory = NewHistory()
	p.Innovations = NewInnovationRegistry(NeuronID(gc.templateSize()))
	p.Reproduction = NewReproduction(p.Innovations, p.rng, p.logger)

	for _, g := range p.Reproduction.CreateNewPopulation(gc, p.Template, size) {
		p.addChildToSpecies(g)
	}
	p.Innovations.NewGeneration()

	p.logger.Info("pool initialized", "inputs", nInputs, "outputs", nOutputs, "size", size, "species", len(p.Species))
	return p.Environment(), nil
}

// Environment returns the neuron template handed to fitness evaluators.
func (p *Population) Environment() Environment {
	ids := make([]NeuronID, len(p.Template))
	for i, n := range p.Template {
		ids[i] = n.ID
	}
	return Environment{
		Neurons:    ids,
		NumInputs:  p.Config.Genome.NumInputs,
		NumOutputs: p.Config.Genome.NumOutputs,
	}
}

// Genomes returns every live genome, species by species.
func (p *Population) Genomes() []*Genome {
	var all []*Genome
	for _, sp := range p.Species {
		all = append(all, sp.Genomes...)
	}
	return all
}

// Evaluate scores every genome with evaluator and records the results.
func (p *Population) Evaluate(evaluator FitnessEvaluator) error {
	env := p.Environment()
	for _, sp := range p.Species {
		for _, g := range sp.Genomes {
			fitness, err := evaluator.Evaluate(g, env)
			if err != nil {
				return fmt.Errorf("fitness evaluation of genome %d failed in generation %d: %w", g.Key, p.Generation, err)
			}
			g.Fitness = fitness
			g.AdjustedFitness = fitness / float64(len(sp.Genomes))
			p.genomeHistory.AddEntry(g.Key, p.Generation, fitness)

			if fitness > p.TopFitness || p.BestGenome == nil {
				if fitness > p.TopFitness {
					p.TopFitness = fitness
				}
				p.BestGenome = g.Copy(g.Key)
				p.BestGenome.Fitness = fitness
			}
		}
		p.speciesHistory.AddEntry(sp.Key, p.Generation, sp.CalculateAverageFitness())
	}
	return nil
}

// NewGeneration performs one generational transition:
//
//  1. cull every species to its better half,
//  2. update staleness and drop stale species,
//  3. drop species too weak to earn one offspring slot,
//  4. breed floor(share*popSize)-1 children per species,
//  5. collapse every species to its champion,
//  6. fill the remaining slots from random species,
//  7. speciate the children,
//  8. clear per-generation innovations and advance the counter.
//
// If no species survives, ErrExtinct is returned unless
// reset_on_extinction is set, in which case the pool is re-seeded.
func (p *Population) NewGeneration() error {
	start := time.Now()
	popSize := p.Config.Neat.PopSize

	for _, sp := range p.Species {
		sp.RemoveWeakGenomes(false)
	}
	p.removeStaleSpecies()
	p.Species = p.Reproduction.removeWeakSpecies(p.Species, popSize)

	if len(p.Species) == 0 {
		return p.handleExtinction()
	}

	children, err := p.Reproduction.Reproduce(p.Species, popSize)
	if err != nil {
		if errors.Is(err, ErrExtinct) {
			return p.handleExtinction()
		}
		return fmt.Errorf("reproduction failed in generation %d: %w", p.Generation, err)
	}
	for _, child := range children {
		p.addChildToSpecies(child)
	}

	p.Innovations.NewGeneration()
	p.Generation++

	p.logger.Info("generation finished",
		"generation", p.Generation,
		"species", len(p.Species),
		"genomes", len(p.Genomes()),
		"top_fitness", p.TopFitness,
		"elapsed", time.Since(start))
	return nil
}

// RunGeneration evaluates the current generation and, unless the fitness
// threshold is met, advances to the next one. It returns the winning genome
// when the threshold is reached, otherwise nil.
func (p *Population) RunGeneration(evaluator FitnessEvaluator) (*Genome, error) {
	if err := p.Evaluate(evaluator); err != nil {
		return nil, err
	}
	if best := p.BestGenome; best != nil {
		p.logger.Debug("best genome", "generation", p.Generation, "genome", best.Key, "fitness", best.Fitness)
	}

	if !p.Config.Neat.NoFitnessTermination && p.BestGenome != nil &&
		p.BestGenome.Fitness >= p.Config.Neat.FitnessThreshold {
		return p.BestGenome, nil
	}

	if err := p.NewGeneration(); err != nil {
		return nil, err
	}
	return nil, nil
}

// removeStaleSpecies drops species the stagnation manager marks stagnant.
func (p *Population) removeStaleSpecies() {
	infos := p.Stagnation.Update(p.Species, p.TopFitness)
	survivors := make([]*Species, 0, len(infos))
	for _, info := range infos {
		if info.IsStagnant {
			p.logger.Info("species removed due to stagnation", "species", info.SpeciesID, "staleness", info.Species.Staleness)
			continue
		}
		survivors = append(survivors, info.Species)
	}
	p.Species = survivors
}

// addChildToSpecies places child in the first compatible species, creating
// a new species when none fits.
func (p *Population) addChildToSpecies(child *Genome) {
	for _, sp := range p.Species {
		if sp.IsSameSpecies(child) {
			sp.AddGenome(child)
			return
		}
	}
	sp := NewSpecies(p.nextSpeciesKey, p.Generation, &p.Config.SpeciesSet)
	p.nextSpeciesKey++
	sp.AddGenome(child)
	p.Species = append(p.Species, sp)
	p.logger.Debug("created new species", "species", sp.Key, "genome", child.Key)
}

// handleExtinction re-seeds the pool or reports the extinction.
func (p *Population) handleExtinction() error {
	if !p.Config.Neat.ResetOnExtinction {
		p.logger.Error("population extinct", "generation", p.Generation)
		return fmt.Errorf("generation %d: %w", p.Generation, ErrExtinct)
	}
	p.logger.Warn("resetting population due to extinction", "generation", p.Generation)

	// Counters keep running so innovation numbers and keys stay unique
	// across the reset.
	p.Species = nil
	p.Innovations.NewGeneration()
	p.Generation++
	for _, g := range p.Reproduction.CreateNewPopulation(&p.Config.Genome, p.Template, p.Config.Neat.PopSize) {
		p.addChildToSpecies(g)
	}
	p.Innovations.NewGeneration()
	return nil
}
