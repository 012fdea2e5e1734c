package neat

import "fmt"

// NeuronType defines the role of a neuron inside a genome.
type NeuronType int

const (
	Undefined NeuronType = iota
	Input
	Bias
	Hidden
	Output
)

func (t NeuronType) String() string {
	switch t {
	case Input:
		return "Input"
	case Bias:
		return "Bias"
	case Hidden:
		return "Hidden"
	case Output:
		return "Output"
	default:
		return "Undefined"
	}
}

// isSensor reports whether neurons of this type hold externally injected values.
func (t NeuronType) isSensor() bool {
	return t == Input || t == Bias
}

// NeuronID is a stable handle identifying a neuron across genomes.
// Template neurons use 0..N-1, hidden neurons are minted by the InnovationRegistry.
type NeuronID int

// Neuron represents a node of the network owned by exactly one genome.
type Neuron struct {
	ID         NeuronID
	Type       NeuronType
	Value      float64
	Innovation int // Innovation number of the edge this neuron split, -1 otherwise.

	// Evaluation state, rebuilt on every Simulate call.
	incoming    []*Gene
	calculated  bool
	calculating bool
}

// NewNeuron creates a neuron that did not originate from an edge split.
func NewNeuron(id NeuronID, t NeuronType) *Neuron {
	n := &Neuron{ID: id, Type: t, Innovation: -1}
	if t == Bias {
		n.Value = 1.0
	}
	return n
}

// Copy returns a deep copy without any evaluation state.
func (n *Neuron) Copy() *Neuron {
	return &Neuron{
		ID:         n.ID,
		Type:       n.Type,
		Value:      n.Value,
		Innovation: n.Innovation,
	}
}

// String returns a string representation of the Neuron.
func (n *Neuron) String() string {
	return fmt.Sprintf("Neuron(ID: %d, Type: %s, Innovation: %d, Value: %.3f)", n.ID, n.Type, n.Innovation, n.Value)
}

// ResetIncoming clears the inbound gene list and the calculated flag.
func (n *Neuron) ResetIncoming() {
	n.incoming = n.incoming[:0]
	n.calculated = false
	n.calculating = false
}

func (n *Neuron) addIncoming(g *Gene) {
	for _, inc := range n.incoming {
		if inc == g {
			return
		}
	}
	n.incoming = append(n.incoming, g)
}

// Calculated reports whether the neuron's value is current for this evaluation pass.
func (n *Neuron) Calculated() bool {
	return n.calculated
}

// setValue injects a value and marks the neuron calculated.
func (n *Neuron) setValue(v float64) {
	n.Value = v
	n.calculated = true
}

// CalculateValue pulls values from all enabled inbound genes, recursively
// calculating origins that are not yet calculated, and applies Sigmoid.
// arena resolves origin handles to this genome's neurons.
func (n *Neuron) CalculateValue(arena func(NeuronID) *Neuron) {
	if n.Type.isSensor() {
		n.calculated = true
		return
	}
	n.calculating = true
	sum := 0.0
	for _, g := range n.incoming {
		if !g.Enabled {
			continue
		}
		origin := arena(g.Origin)
		if origin == nil {
			continue
		}
		// An origin still on the recursion stack is read as-is.
		if !origin.calculated && !origin.calculating {
			origin.CalculateValue(arena)
		}
		sum += g.Weight * origin.Value
	}
	n.calculating = false
	n.setValue(Sigmoid(sum))
}
