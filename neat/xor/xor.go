// Package xor provides a fitness evaluator for the exclusive-or task.
package xor

import (
	"fmt"
	"math"

	"github.com/kaping/brain-go/neat"
)

// MinError is the smallest per-case error counted, so a perfect network
// scores a large finite fitness.
const MinError = 1e-9

// Case is one row of the truth table.
type Case struct {
	A, B   float64
	Target float64
}

// Cases is the exclusive-or truth table.
var Cases = []Case{
	{A: 0, B: 0, Target: 0},
	{A: 0, B: 1, Target: 1},
	{A: 1, B: 0, Target: 1},
	{A: 1, B: 1, Target: 0},
}

// Evaluator scores a genome by the sum of 1/|output-target| over the four
// cases. It reads the first output neuron.
type Evaluator struct{}

// Evaluate implements neat.FitnessEvaluator.
func (Evaluator) Evaluate(g *neat.Genome, env neat.Environment) (float64, error) {
	if err := env.Validate(2, 1); err != nil {
		return 0, err
	}
	fitness := 0.0
	for _, c := range Cases {
		if err := g.SetValue(env.Input(0), c.A); err != nil {
			return 0, fmt.Errorf("setting input: %w", err)
		}
		if err := g.SetValue(env.Input(1), c.B); err != nil {
			return 0, fmt.Errorf("setting input: %w", err)
		}
		g.Simulate()
		out, err := g.Value(env.Output(0))
		if err != nil {
			return 0, fmt.Errorf("reading output: %w", err)
		}
		fitness += 1 / math.Max(math.Abs(out-c.Target), MinError)
	}
	return fitness, nil
}
