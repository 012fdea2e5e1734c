package neat

// Stagnation manages the detection of stagnant species.
type Stagnation struct {
	Config *StagnationConfig
}

// NewStagnation creates a new stagnation manager.
func NewStagnation(config *StagnationConfig) *Stagnation {
	return &Stagnation{Config: config}
}

// StagnationInfo holds the results of the stagnation update for a single species.
type StagnationInfo struct {
	SpeciesID  int
	Species    *Species
	IsStagnant bool
}

// Update refreshes every species' TopFitness and Staleness from its best
// live member. A species is stagnant when its staleness exceeds
// MaxStagnation and its TopFitness is below the population's topFitness, so
// the lineage holding the global best is never removed for staleness alone.
func (s *Stagnation) Update(species []*Species, topFitness float64) []StagnationInfo {
	result := make([]StagnationInfo, 0, len(species))
	for _, sp := range species {
		best := sp.Best()
		if best != nil && best.Fitness > sp.TopFitness {
			sp.TopFitness = best.Fitness
			sp.Staleness = 0
		} else {
			sp.Staleness++
		}

		result = append(result, StagnationInfo{
			SpeciesID:  sp.Key,
			Species:    sp,
			IsStagnant: sp.Staleness > s.Config.MaxStagnation && sp.TopFitness < topFitness,
		})
	}
	return result
}
