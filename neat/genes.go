package neat

import (
	"fmt"
	"math/rand"
	"sort"
)

// Gene represents a directed, weighted connection between two neurons of the
// same genome. Genes are ordered by innovation number.
type Gene struct {
	Origin     NeuronID
	Into       NeuronID
	Weight     float64
	Enabled    bool
	Innovation int // Assigned by the InnovationRegistry after construction.
}

// NewGene creates an enabled gene without an innovation number.
func NewGene(origin, into NeuronID, weight float64) *Gene {
	return &Gene{
		Origin:  origin,
		Into:    into,
		Weight:  weight,
		Enabled: true,
	}
}

// String returns a string representation of the Gene.
func (g *Gene) String() string {
	return fmt.Sprintf("Gene(Innovation: %d, %d->%d, Weight: %.3f, Enabled: %t)",
		g.Innovation, g.Origin, g.Into, g.Weight, g.Enabled)
}

// Copy creates a deep copy of the Gene.
func (g *Gene) Copy() *Gene {
	return &Gene{
		Origin:     g.Origin,
		Into:       g.Into,
		Weight:     g.Weight,
		Enabled:    g.Enabled,
		Innovation: g.Innovation,
	}
}

// IsEqual reports whether both genes connect the same neurons in the same
// direction. Weight, enabled state and innovation are ignored.
func (g *Gene) IsEqual(other *Gene) bool {
	return g.Origin == other.Origin && g.Into == other.Into
}

// Compare orders genes by innovation number ascending.
func (g *Gene) Compare(other *Gene) int {
	switch {
	case g.Innovation < other.Innovation:
		return -1
	case g.Innovation > other.Innovation:
		return 1
	default:
		return 0
	}
}

// sortGenes sorts genes by innovation number, keeping the relative order of equal keys.
func sortGenes(genes []*Gene) {
	sort.SliceStable(genes, func(i, j int) bool {
		return genes[i].Compare(genes[j]) < 0
	})
}

// --------------------------- Weight Helpers ---------------------------

// randomWeight draws a fresh weight uniformly from [-weightRange, weightRange).
func randomWeight(rng *rand.Rand, weightRange float64) float64 {
	return rng.Float64()*2*weightRange - weightRange
}

// perturbWeight nudges a weight uniformly within [-step, step).
func perturbWeight(rng *rand.Rand, weight, step float64) float64 {
	return weight + rng.Float64()*2*step - step
}
