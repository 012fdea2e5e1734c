package neat

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Mean calculates the average of a slice of float64 values.
// Returns 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	return stat.Mean(values, nil)
}

// Stdev calculates the sample standard deviation of a slice of float64 values.
func Stdev(values []float64) float64 {
	if len(values) < 2 {
		return 0.0
	}
	return stat.StdDev(values, nil)
}

// clampDenominator keeps averages and shares defined over empty or zero sums.
func clampDenominator(d float64) float64 {
	if d <= 0 || math.IsNaN(d) {
		return 1.0
	}
	return d
}
