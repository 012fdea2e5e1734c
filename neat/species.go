package neat

import (
	"fmt"
	"math/rand"
)

// Species represents a group of genetically similar genomes that is bred
// and culled as a unit.
type Species struct {
	Key            int       // Unique identifier for the species.
	Created        int       // Generation number when the species was created.
	Genomes        []*Genome // Members, best first after any sort.
	TopFitness     float64   // Best fitness any member ever reached.
	Staleness      int       // Generations without TopFitness improvement.
	AverageFitness float64

	// Breeding and compatibility parameters.
	CrossOverChance float64
	DeltaDisjoint   float64
	DeltaWeight     float64
	DeltaThreshold  float64
}

// NewSpecies creates an empty species with the configured parameters.
func NewSpecies(key, generation int, config *SpeciesSetConfig) *Species {
	return &Species{
		Key:             key,
		Created:         generation,
		CrossOverChance: config.CrossOverChance,
		DeltaDisjoint:   config.DeltaDisjoint,
		DeltaWeight:     config.DeltaWeight,
		DeltaThreshold:  config.DeltaThreshold,
	}
}

// AddGenome adds a member unless it is already present.
func (s *Species) AddGenome(g *Genome) bool {
	for _, member := range s.Genomes {
		if member == g {
			return false
		}
	}
	s.Genomes = append(s.Genomes, g)
	return true
}

// GetFitnesses returns a slice containing the fitness values of all members.
func (s *Species) GetFitnesses() []float64 {
	fitnesses := make([]float64, 0, len(s.Genomes))
	for _, g := range s.Genomes {
		fitnesses = append(fitnesses, g.Fitness)
	}
	return fitnesses
}

// CalculateAverageFitness stores and returns the mean member fitness.
func (s *Species) CalculateAverageFitness() float64 {
	s.AverageFitness = Mean(s.GetFitnesses())
	return s.AverageFitness
}

// Best returns the fittest member, or nil for an empty species.
func (s *Species) Best() *Genome {
	if len(s.Genomes) == 0 {
		return nil
	}
	sortByFitness(s.Genomes)
	return s.Genomes[0]
}

// RemoveWeakGenomes keeps the better half of the members, rounded up, or
// only the single best one when leaveOne is set.
func (s *Species) RemoveWeakGenomes(leaveOne bool) {
	if len(s.Genomes) == 0 {
		return
	}
	keep := (len(s.Genomes) + 1) / 2
	if leaveOne {
		keep = 1
	}
	sortByFitness(s.Genomes)
	for i := keep; i < len(s.Genomes); i++ {
		s.Genomes[i] = nil
	}
	s.Genomes = s.Genomes[:keep]
}

// BreedChild produces one mutated offspring: a crossover of two random
// members with probability CrossOverChance (given at least two members),
// otherwise a clone of one random member.
func (s *Species) BreedChild(r *Reproduction) (*Genome, error) {
	if len(s.Genomes) == 0 {
		return nil, fmt.Errorf("breeding species %d: %w", s.Key, ErrEmptySpecies)
	}

	rng := r.rng
	var child *Genome
	if rng.Float64() < s.CrossOverChance && len(s.Genomes) > 1 {
		parent1 := s.randomMember(rng)
		parent2 := s.randomMember(rng)
		child = parent1.Crossover(parent2, r.getNextKey(), rng)
	} else {
		child = s.randomMember(rng).Copy(r.getNextKey())
	}
	child.Mutate(rng, r.Innovations)
	return child, nil
}

// IsSameSpecies tests genome against the species' best member.
func (s *Species) IsSameSpecies(g *Genome) bool {
	representative := s.Best()
	if representative == nil {
		return false
	}
	return g.Distance(representative, s.DeltaDisjoint, s.DeltaWeight) < s.DeltaThreshold
}

// randomMember picks a uniformly random member.
func (s *Species) randomMember(rng *rand.Rand) *Genome {
	return s.Genomes[rng.Intn(len(s.Genomes))]
}
