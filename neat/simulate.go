package neat

import "fmt"

// SetValue injects a value into one of the genome's neurons, typically an input.
func (g *Genome) SetValue(id NeuronID, value float64) error {
	n, ok := g.Neuron(id)
	if !ok {
		return fmt.Errorf("%w: genome %d has no neuron %d", ErrUnknownNeuron, g.Key, id)
	}
	n.Value = value
	return nil
}

// Value returns the current value of one of the genome's neurons.
func (g *Genome) Value(id NeuronID) (float64, error) {
	n, ok := g.Neuron(id)
	if !ok {
		return 0, fmt.Errorf("%w: genome %d has no neuron %d", ErrUnknownNeuron, g.Key, id)
	}
	return n.Value, nil
}

// Simulate runs one evaluation pass. Inbound lists are rebuilt from the
// enabled genes, then every neuron that is not yet calculated is calculated,
// recursively pulling its predecessors. Inputs keep their injected values and
// the bias neuron is fixed at 1.0.
func (g *Genome) Simulate() {
	for _, n := range g.Neurons {
		n.ResetIncoming()
		switch n.Type {
		case Bias:
			n.setValue(1.0)
		case Input:
			n.setValue(n.Value)
		}
	}
	for _, gene := range g.Genes {
		if !gene.Enabled {
			continue
		}
		if into, ok := g.Neuron(gene.Into); ok {
			into.addIncoming(gene)
		}
	}
	for _, n := range g.Neurons {
		if !n.Calculated() {
			n.CalculateValue(g.neuronOrNil)
		}
	}
}

// Activate sets the input neurons in template order, simulates the network
// and returns the output values in template order.
func (g *Genome) Activate(inputs []float64) ([]float64, error) {
	if len(inputs) != len(g.Config.InputKeys) {
		return nil, fmt.Errorf("%w: got %d values for %d input neurons", ErrInputCount, len(inputs), len(g.Config.InputKeys))
	}
	for i, id := range g.Config.InputKeys {
		if err := g.SetValue(id, inputs[i]); err != nil {
			return nil, err
		}
	}
	g.Simulate()

	outputs := make([]float64, len(g.Config.OutputKeys))
	for i, id := range g.Config.OutputKeys {
		v, err := g.Value(id)
		if err != nil {
			return nil, err
		}
		outputs[i] = v
	}
	return outputs, nil
}
