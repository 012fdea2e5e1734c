package nn

import (
	"fmt"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/kaping/brain-go/neat"
)

// incomingLink is one enabled gene feeding a node.
type incomingLink struct {
	Origin neat.NeuronID
	Weight float64
}

// neuralNode represents a node during network activation.
type neuralNode struct {
	ID       neat.NeuronID
	Type     neat.NeuronType
	Incoming []incomingLink // In genome gene order.
}

// FeedForwardNetwork is a phenotype compiled from a genome. Activation walks
// the nodes once in topological order instead of recursing like
// neat.Genome.Simulate; both produce the same values.
type FeedForwardNetwork struct {
	InputKeys     []neat.NeuronID
	BiasKey       neat.NeuronID
	OutputKeys    []neat.NeuronID
	NodeEvalOrder []neat.NeuronID // Non-sensor nodes in evaluation order.
	Nodes         map[neat.NeuronID]neuralNode
}

// CreateFeedForwardNetwork builds a runnable network from a genome. It fails
// if the enabled genes contain a directed cycle.
func CreateFeedForwardNetwork(g *neat.Genome) (*FeedForwardNetwork, error) {
	if g.Config == nil {
		return nil, fmt.Errorf("genome %d has no config", g.Key)
	}

	graph := simple.NewDirectedGraph()
	nodes := make(map[neat.NeuronID]neuralNode, len(g.Neurons))
	for _, n := range g.Neurons {
		nodes[n.ID] = neuralNode{ID: n.ID, Type: n.Type}
		graph.AddNode(simple.Node(n.ID))
	}

	for _, gene := range g.Genes {
		if !gene.Enabled {
			continue
		}
		into, ok := nodes[gene.Into]
		if !ok {
			return nil, fmt.Errorf("gene %d targets unknown neuron %d", gene.Innovation, gene.Into)
		}
		if _, ok := nodes[gene.Origin]; !ok {
			return nil, fmt.Errorf("gene %d starts at unknown neuron %d", gene.Innovation, gene.Origin)
		}
		into.Incoming = append(into.Incoming, incomingLink{Origin: gene.Origin, Weight: gene.Weight})
		nodes[gene.Into] = into
		graph.SetEdge(graph.NewEdge(simple.Node(gene.Origin), simple.Node(gene.Into)))
	}

	sorted, err := topo.SortStabilized(graph, nil)
	if err != nil {
		return nil, fmt.Errorf("failed topological sort of genome %d: %w", g.Key, err)
	}

	order := make([]neat.NeuronID, 0, len(sorted))
	for _, node := range sorted {
		id := neat.NeuronID(node.ID())
		switch nodes[id].Type {
		case neat.Input, neat.Bias:
			continue
		}
		order = append(order, id)
	}

	return &FeedForwardNetwork{
		InputKeys:     g.Config.InputKeys,
		BiasKey:       g.Config.BiasKey,
		OutputKeys:    g.Config.OutputKeys,
		NodeEvalOrder: order,
		Nodes:         nodes,
	}, nil
}

// Activate computes the network's output for a given slice of input values.
// The input slice must match the number of input nodes.
func (net *FeedForwardNetwork) Activate(inputs []float64) ([]float64, error) {
	if len(inputs) != len(net.InputKeys) {
		return nil, fmt.Errorf("%w: got %d values for %d input nodes", neat.ErrInputCount, len(inputs), len(net.InputKeys))
	}

	values := make(map[neat.NeuronID]float64, len(net.Nodes))
	for i, id := range net.InputKeys {
		values[id] = inputs[i]
	}
	values[net.BiasKey] = 1.0

	for _, id := range net.NodeEvalOrder {
		sum := 0.0
		for _, in := range net.Nodes[id].Incoming {
			sum += in.Weight * values[in.Origin]
		}
		values[id] = neat.Sigmoid(sum)
	}

	outputs := make([]float64, len(net.OutputKeys))
	for i, id := range net.OutputKeys {
		outputs[i] = values[id]
	}
	return outputs, nil
}
