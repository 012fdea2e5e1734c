package neat

// History records one value per generation for each tracked key. Series are
// right aligned to the current generation: a key first recorded late in a run
// has zeros for the generations before it existed.
type History struct {
	series map[int][]float64
	start  map[int]int // key -> generation of the first entry
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{
		series: make(map[int][]float64),
		start:  make(map[int]int),
	}
}

// AddEntry records value for key in the given generation. A second entry for
// the same generation replaces the first.
func (h *History) AddEntry(key, generation int, value float64) {
	values, ok := h.series[key]
	if !ok {
		h.start[key] = generation
		h.series[key] = []float64{value}
		return
	}
	idx := generation - h.start[key]
	switch {
	case idx < 0:
		return
	case idx < len(values):
		values[idx] = value
	default:
		for len(values) < idx {
			values = append(values, 0)
		}
		values = append(values, value)
	}
	h.series[key] = values
}

// Series returns the values for key indexed by generation 0..generation, or
// nil when the key was never recorded.
func (h *History) Series(key, generation int) []float64 {
	values, ok := h.series[key]
	if !ok {
		return nil
	}
	out := make([]float64, generation+1)
	for i, v := range values {
		g := h.start[key] + i
		if g >= 0 && g <= generation {
			out[g] = v
		}
	}
	return out
}

// Size returns the number of tracked keys.
func (h *History) Size() int {
	return len(h.series)
}
