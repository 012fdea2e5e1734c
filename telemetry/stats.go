package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/kaping/brain-go/neat"
)

// GenerationStats summarises one evaluated generation.
type GenerationStats struct {
	RunID      string `csv:"run_id"`
	Generation int    `csv:"generation"`

	SpeciesCount int `csv:"species"`
	GenomeCount  int `csv:"genomes"`

	// Fitness distribution over all genomes
	TopFitness    float64 `csv:"top_fitness"` // Best fitness of the run so far.
	BestFitness   float64 `csv:"best_fitness"`
	MeanFitness   float64 `csv:"mean_fitness"`
	StdDevFitness float64 `csv:"stddev_fitness"`
	MedianFitness float64 `csv:"median_fitness"`

	// Structure of the best genome in this generation
	BestGenomeID    int     `csv:"best_genome"`
	BestNeuronCount int     `csv:"best_neurons"`
	BestGeneCount   int     `csv:"best_genes"`
	MeanGeneCount   float64 `csv:"mean_genes"`
}

// SpeciesRow is one species in one generation.
type SpeciesRow struct {
	RunID          string  `csv:"run_id"`
	Generation     int     `csv:"generation"`
	SpeciesID      int     `csv:"species"`
	Members        int     `csv:"members"`
	TopFitness     float64 `csv:"top_fitness"`
	AverageFitness float64 `csv:"average_fitness"`
	Staleness      int     `csv:"staleness"`
}

// Median returns the empirical median of values, or 0 if there are none.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}

// ComputeGenerationStats aggregates a population snapshot.
func ComputeGenerationStats(runID string, snap neat.PopulationSnapshot) GenerationStats {
	s := GenerationStats{
		RunID:        runID,
		Generation:   snap.Generation,
		SpeciesCount: len(snap.Species),
		GenomeCount:  snap.GenomeCount(),
		TopFitness:   snap.TopFitness,
		BestGenomeID: -1,
	}

	fitnesses := make([]float64, 0, s.GenomeCount)
	geneCounts := make([]float64, 0, s.GenomeCount)
	for _, sp := range snap.Species {
		for _, g := range sp.Genomes {
			fitnesses = append(fitnesses, g.Fitness)
			geneCounts = append(geneCounts, float64(g.GeneCount))
			if s.BestGenomeID < 0 || g.Fitness > s.BestFitness {
				s.BestFitness = g.Fitness
				s.BestGenomeID = g.ID
				s.BestNeuronCount = g.NeuronCount
				s.BestGeneCount = g.GeneCount
			}
		}
	}

	s.MeanFitness = neat.Mean(fitnesses)
	s.StdDevFitness = neat.Stdev(fitnesses)
	s.MedianFitness = Median(fitnesses)
	s.MeanGeneCount = neat.Mean(geneCounts)
	return s
}

// SpeciesRows flattens the species of a snapshot into CSV rows.
func SpeciesRows(runID string, snap neat.PopulationSnapshot) []SpeciesRow {
	rows := make([]SpeciesRow, 0, len(snap.Species))
	for _, sp := range snap.Species {
		rows = append(rows, SpeciesRow{
			RunID:          runID,
			Generation:     snap.Generation,
			SpeciesID:      sp.ID,
			Members:        sp.MemberCount,
			TopFitness:     sp.TopFitness,
			AverageFitness: sp.AverageFitness,
			Staleness:      sp.Staleness,
		})
	}
	return rows
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("species", s.SpeciesCount),
		slog.Int("genomes", s.GenomeCount),
		slog.Float64("top_fitness", s.TopFitness),
		slog.Float64("best_fitness", s.BestFitness),
		slog.Float64("mean_fitness", s.MeanFitness),
		slog.Float64("stddev_fitness", s.StdDevFitness),
		slog.Float64("median_fitness", s.MedianFitness),
		slog.Int("best_genome", s.BestGenomeID),
		slog.Int("best_neurons", s.BestNeuronCount),
		slog.Int("best_genes", s.BestGeneCount),
	)
}
