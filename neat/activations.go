package neat

import "math"

// SigmoidBase is the exponent base of the network's squashing function.
// Base 5 gives a steeper curve than the logistic function.
const SigmoidBase = 5.0

// Sigmoid maps x to (0,1) as 1 / (1 + 5^(-x)).
func Sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Pow(SigmoidBase, -x))
}
