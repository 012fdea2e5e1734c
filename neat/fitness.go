package neat

import "fmt"

// Environment describes the neuron template evaluators drive a genome with.
//
// Neurons is ordered positionally and evaluators rely on it:
// indices 0..NumInputs-1 are the inputs, index NumInputs is the bias neuron,
// and NumInputs+1..NumInputs+NumOutputs are the outputs.
type Environment struct {
	Neurons    []NeuronID
	NumInputs  int
	NumOutputs int
}

// Input returns the handle of the i-th input neuron.
func (e Environment) Input(i int) NeuronID { return e.Neurons[i] }

// Bias returns the handle of the bias neuron.
func (e Environment) Bias() NeuronID { return e.Neurons[e.NumInputs] }

// Output returns the handle of the i-th output neuron.
func (e Environment) Output(i int) NeuronID { return e.Neurons[e.NumInputs+1+i] }

// Validate checks that the template matches the declared counts and that
// the caller's expectations about inputs and outputs are met.
func (e Environment) Validate(wantInputs, minOutputs int) error {
	if e.NumInputs != wantInputs {
		return fmt.Errorf("%w: want %d inputs, got %d", ErrMalformedEnvironment, wantInputs, e.NumInputs)
	}
	if e.NumOutputs < minOutputs {
		return fmt.Errorf("%w: want at least %d outputs, got %d", ErrMalformedEnvironment, minOutputs, e.NumOutputs)
	}
	if len(e.Neurons) != e.NumInputs+1+e.NumOutputs {
		return fmt.Errorf("%w: template holds %d neurons, expected %d", ErrMalformedEnvironment, len(e.Neurons), e.NumInputs+1+e.NumOutputs)
	}
	return nil
}

// FitnessEvaluator scores a single genome. Implementations must not change
// the genome's structure; the population writes the returned fitness back.
type FitnessEvaluator interface {
	Evaluate(g *Genome, env Environment) (float64, error)
}

// FitnessFunc adapts a plain function to the FitnessEvaluator interface.
type FitnessFunc func(g *Genome, env Environment) (float64, error)

// Evaluate calls f(g, env).
func (f FitnessFunc) Evaluate(g *Genome, env Environment) (float64, error) {
	return f(g, env)
}
