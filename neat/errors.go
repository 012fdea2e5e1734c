package neat

import "errors"

var (
	// ErrExtinct is returned when no species survives stagnation and weakness culling.
	ErrExtinct = errors.New("population extinct")
	// ErrEmptySpecies is returned when breeding is requested from a species without members.
	ErrEmptySpecies = errors.New("species has no genomes")
	// ErrMalformedEnvironment is returned by evaluators that cannot use the given environment.
	ErrMalformedEnvironment = errors.New("malformed evaluation environment")
	// ErrUnknownNeuron is returned when a neuron handle does not belong to the genome.
	ErrUnknownNeuron = errors.New("neuron not in genome")
	// ErrInputCount is returned when the number of input values does not match the input neurons.
	ErrInputCount = errors.New("input count mismatch")
)
