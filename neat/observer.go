package neat

// GeneSnapshot is a read-only view of one gene for rendering.
type GeneSnapshot struct {
	Innovation int
	Origin     NeuronID
	Into       NeuronID
	Weight     float64
	Enabled    bool
}

// GenomeSnapshot is a read-only view of one genome.
type GenomeSnapshot struct {
	ID              int
	Fitness         float64
	AdjustedFitness float64
	NeuronCount     int
	GeneCount       int
	Genes           []GeneSnapshot
}

// SpeciesSnapshot is a read-only view of one species.
type SpeciesSnapshot struct {
	ID             int
	TopFitness     float64
	AverageFitness float64
	Staleness      int
	MemberCount    int
	Genomes        []GenomeSnapshot
}

// PopulationSnapshot is a copy of the population state taken between two
// generation transitions. It shares nothing with the live population.
type PopulationSnapshot struct {
	Generation int
	TopFitness float64
	Species    []SpeciesSnapshot
}

// GenomeCount returns the number of genomes over all species.
func (ps PopulationSnapshot) GenomeCount() int {
	count := 0
	for _, sp := range ps.Species {
		count += sp.MemberCount
	}
	return count
}

// Snapshot copies the observable state of the population.
func (p *Population) Snapshot() PopulationSnapshot {
	snap := PopulationSnapshot{
		Generation: p.Generation,
		TopFitness: p.TopFitness,
		Species:    make([]SpeciesSnapshot, 0, len(p.Species)),
	}
	for _, sp := range p.Species {
		ss := SpeciesSnapshot{
			ID:             sp.Key,
			TopFitness:     sp.TopFitness,
			AverageFitness: sp.AverageFitness,
			Staleness:      sp.Staleness,
			MemberCount:    len(sp.Genomes),
			Genomes:        make([]GenomeSnapshot, 0, len(sp.Genomes)),
		}
		for _, g := range sp.Genomes {
			ss.Genomes = append(ss.Genomes, snapshotGenome(g))
		}
		snap.Species = append(snap.Species, ss)
	}
	return snap
}

func snapshotGenome(g *Genome) GenomeSnapshot {
	gs := GenomeSnapshot{
		ID:              g.Key,
		Fitness:         g.Fitness,
		AdjustedFitness: g.AdjustedFitness,
		NeuronCount:     len(g.Neurons),
		GeneCount:       len(g.Genes),
		Genes:           make([]GeneSnapshot, len(g.Genes)),
	}
	for i, gene := range g.Genes {
		gs.Genes[i] = GeneSnapshot{
			Innovation: gene.Innovation,
			Origin:     gene.Origin,
			Into:       gene.Into,
			Weight:     gene.Weight,
			Enabled:    gene.Enabled,
		}
	}
	return gs
}

// GenomeFitnessHistory returns the fitness series of a genome by generation,
// or nil if it was never evaluated.
func (p *Population) GenomeFitnessHistory(genomeID int) []float64 {
	return p.genomeHistory.Series(genomeID, p.Generation)
}

// SpeciesFitnessHistory returns the average fitness series of a species by
// generation, or nil if it was never evaluated.
func (p *Population) SpeciesFitnessHistory(speciesID int) []float64 {
	return p.speciesHistory.Series(speciesID, p.Generation)
}
