// Package neat provides a Go implementation of the NeuroEvolution of Augmenting Topologies (NEAT) algorithm.
//
// NEAT evolves both the weights and the structure of small neural networks.
// Genomes start from a fixed template of input, bias and output neurons and
// grow by adding links and splitting existing links with hidden neurons.
// Structural novelty is tracked with innovation numbers so genomes can be
// aligned for crossover and compared for speciation.
//
// Networks evaluate with a base-5 sigmoid, 1/(1+5^-x). Links between hidden
// neurons never form a directed cycle.
//
// Basic usage:
//
//	// Load configuration
//	config, err := neat.LoadConfig("path/to/config")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	// Create a new population
//	pop, err := neat.NewPopulation(config, neat.WithRand(rand.New(rand.NewSource(1))))
//	if err != nil {
//		log.Fatalf("Error creating population: %v", err)
//	}
//
//	// Run for 100 generations with your fitness evaluator
//	for i := 0; i < 100; i++ {
//		winner, err := pop.RunGeneration(xor.Evaluator{})
//		if err != nil {
//			log.Fatalf("Error running generation: %v", err)
//		}
//
//		if winner != nil {
//			fmt.Println("Solution found!")
//			break
//		}
//	}
package neat
