package neat

import "math"

// DeltaStructure counts the innovation numbers present in exactly one of
// the two genomes' enabled genes, normalised by the larger gene count.
func (g *Genome) DeltaStructure(other *Genome) float64 {
	own := make(map[int]bool, len(g.Genes))
	for _, gene := range g.Genes {
		if gene.Enabled {
			own[gene.Innovation] = true
		}
	}
	theirs := make(map[int]bool, len(other.Genes))
	for _, gene := range other.Genes {
		if gene.Enabled {
			theirs[gene.Innovation] = true
		}
	}

	disjoint := 0
	for inn := range own {
		if !theirs[inn] {
			disjoint++
		}
	}
	for inn := range theirs {
		if !own[inn] {
			disjoint++
		}
	}

	n := float64(max(len(g.Genes), len(other.Genes)))
	if n < 1 {
		n = 1
	}
	return float64(disjoint) / n
}

// DeltaWeight is the mean absolute weight difference of the genes both
// genomes share.
func (g *Genome) DeltaWeight(other *Genome) float64 {
	theirs := make(map[int]*Gene, len(other.Genes))
	for _, gene := range other.Genes {
		theirs[gene.Innovation] = gene
	}

	sum := 0.0
	matching := 0
	for _, gene := range g.Genes {
		if match, ok := theirs[gene.Innovation]; ok {
			sum += math.Abs(gene.Weight - match.Weight)
			matching++
		}
	}
	if matching == 0 {
		matching = 1
	}
	return sum / float64(matching)
}

// Distance combines both deltas into the compatibility score.
func (g *Genome) Distance(other *Genome, disjointCoefficient, weightCoefficient float64) float64 {
	return g.DeltaStructure(other)*disjointCoefficient + g.DeltaWeight(other)*weightCoefficient
}
