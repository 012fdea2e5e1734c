package neat

// linkKey identifies a structural connection independent of weight or state.
type linkKey struct {
	Origin NeuronID
	Into   NeuronID
}

// InnovationRegistry hands out historical markings. Within one generation the
// same structural mutation always receives the same innovation number, and a
// split of the same edge always yields the same hidden neuron.
type InnovationRegistry struct {
	Innovation    int      // Last innovation number handed out.
	NextNeuronKey NeuronID // Next free hidden neuron handle.

	generationLinks  map[linkKey]int
	generationSplits map[int]NeuronID
}

// NewInnovationRegistry creates a registry whose hidden neuron handles start
// after the template neurons.
func NewInnovationRegistry(firstNeuronKey NeuronID) *InnovationRegistry {
	return &InnovationRegistry{
		NextNeuronKey:    firstNeuronKey,
		generationLinks:  make(map[linkKey]int),
		generationSplits: make(map[int]NeuronID),
	}
}

// newInnovation increments and returns the global innovation counter.
func (r *InnovationRegistry) newInnovation() int {
	r.Innovation++
	return r.Innovation
}

// Define assigns the gene's innovation number, reusing the number of a
// structurally equal gene created earlier in this generation.
func (r *InnovationRegistry) Define(g *Gene) int {
	key := linkKey{Origin: g.Origin, Into: g.Into}
	if inn, ok := r.generationLinks[key]; ok {
		g.Innovation = inn
		return inn
	}
	g.Innovation = r.newInnovation()
	r.generationLinks[key] = g.Innovation
	return g.Innovation
}

// SplitNeuron returns the hidden neuron handle for splitting the edge with the
// given innovation number. The boolean is true when another genome already
// split this edge during the current generation.
func (r *InnovationRegistry) SplitNeuron(edgeInnovation int) (NeuronID, bool) {
	if id, ok := r.generationSplits[edgeInnovation]; ok {
		return id, true
	}
	id := r.NewNeuronKey()
	r.generationSplits[edgeInnovation] = id
	return id, false
}

// NewNeuronKey mints a hidden neuron handle that is not tied to any split.
func (r *InnovationRegistry) NewNeuronKey() NeuronID {
	id := r.NextNeuronKey
	r.NextNeuronKey++
	return id
}

// NewGeneration clears the per-generation tables. Counters keep increasing.
func (r *InnovationRegistry) NewGeneration() {
	clear(r.generationLinks)
	clear(r.generationSplits)
}

// GenerationSize returns the number of links and splits registered in the
// current generation.
func (r *InnovationRegistry) GenerationSize() (links, splits int) {
	return len(r.generationLinks), len(r.generationSplits)
}
