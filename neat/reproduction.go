package neat

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
)

// Reproduction handles the creation of new genomes, either from the
// template or by breeding within species.
type Reproduction struct {
	NextGenomeKey int // State for the next genome key
	Innovations   *InnovationRegistry

	rng    *rand.Rand
	logger *slog.Logger
}

// NewReproduction creates a new reproduction manager.
func NewReproduction(innovations *InnovationRegistry, rng *rand.Rand, logger *slog.Logger) *Reproduction {
	return &Reproduction{
		NextGenomeKey: 1, // Start genome keys at 1
		Innovations:   innovations,
		rng:           rng,
		logger:        logger,
	}
}

// getNextKey gets the next available genome key and increments the internal counter.
func (r *Reproduction) getNextKey() int {
	key := r.NextGenomeKey
	r.NextGenomeKey++
	return key
}

// CreateNewPopulation creates size genomes, each holding private copies of
// the template neurons and mutated once.
func (r *Reproduction) CreateNewPopulation(genomeConfig *GenomeConfig, template []*Neuron, size int) []*Genome {
	genomes := make([]*Genome, 0, size)
	for i := 0; i < size; i++ {
		g := NewGenome(r.getNextKey(), genomeConfig)
		g.ConfigureNew(template)
		g.Mutate(r.rng, r.Innovations)
		genomes = append(genomes, g)
	}
	return genomes
}

// removeWeakSpecies drops every species whose share of the total average
// fitness would not earn it a single offspring slot. TopFitness is left to
// Stagnation.Update.
func (r *Reproduction) removeWeakSpecies(species []*Species, popSize int) []*Species {
	total := clampDenominator(totalAverageFitness(species))
	survivors := species[:0]
	for _, sp := range species {
		strength := sp.AverageFitness / total * float64(popSize)
		if strength < 1 {
			r.logger.Debug("species removed as too weak", "species", sp.Key, "strength", strength)
			continue
		}
		survivors = append(survivors, sp)
	}
	return survivors
}

// Reproduce breeds the next generation's children. Every species first
// breeds floor(share*popSize)-1 children, one slot being reserved for its
// surviving champion, then collapses to that champion. Remaining slots are
// filled from random species. The returned children are not yet speciated.
func (r *Reproduction) Reproduce(species []*Species, popSize int) ([]*Genome, error) {
	if len(species) == 0 {
		return nil, ErrExtinct
	}

	total := clampDenominator(totalAverageFitness(species))
	averages := make([]float64, len(species))
	for i, sp := range species {
		averages[i] = sp.AverageFitness
	}
	spawnAmounts := computeSpawnAmounts(averages, total, popSize)

	children := make([]*Genome, 0, popSize)
	for i, sp := range species {
		for j := 0; j < spawnAmounts[i]; j++ {
			child, err := sp.BreedChild(r)
			if err != nil {
				return nil, fmt.Errorf("failed to breed: %w", err)
			}
			children = append(children, child)
		}
	}

	for _, sp := range species {
		sp.RemoveWeakGenomes(true)
	}

	for len(children)+len(species) < popSize {
		sp := species[r.rng.Intn(len(species))]
		child, err := sp.BreedChild(r)
		if err != nil {
			return nil, fmt.Errorf("failed to fill population: %w", err)
		}
		children = append(children, child)
	}
	return children, nil
}

// computeSpawnAmounts calculates the number of offspring each species breeds:
// floor(average/total*popSize) - 1, never negative.
func computeSpawnAmounts(averages []float64, total float64, popSize int) []int {
	spawnAmounts := make([]int, len(averages))
	for i, avg := range averages {
		spawn := int(math.Floor(avg/total*float64(popSize))) - 1
		spawnAmounts[i] = max(spawn, 0)
	}
	return spawnAmounts
}

// totalAverageFitness recomputes and sums every species' average fitness.
func totalAverageFitness(species []*Species) float64 {
	sum := 0.0
	for _, sp := range species {
		sum += sp.CalculateAverageFitness()
	}
	return sum
}
