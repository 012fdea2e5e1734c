package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/kaping/brain-go/neat"
)

// OutputManager writes per-generation and per-species CSV files for one run.
type OutputManager struct {
	dir         string
	runID       string
	genFile     *os.File
	speciesFile *os.File

	// Track if headers have been written
	genHeaderWritten     bool
	speciesHeaderWritten bool
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled); all methods accept a nil
// receiver.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir, runID: uuid.NewString()}

	f, err := os.Create(filepath.Join(dir, "generations.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating generations.csv: %w", err)
	}
	om.genFile = f

	f, err = os.Create(filepath.Join(dir, "species.csv"))
	if err != nil {
		om.genFile.Close()
		return nil, fmt.Errorf("creating species.csv: %w", err)
	}
	om.speciesFile = f

	return om, nil
}

// RunID returns the identifier stamped into every row of this run.
func (om *OutputManager) RunID() string {
	if om == nil {
		return ""
	}
	return om.runID
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *neat.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// Record writes the generation summary and species rows of a snapshot and
// returns the summary.
func (om *OutputManager) Record(snap neat.PopulationSnapshot) (GenerationStats, error) {
	stats := ComputeGenerationStats(om.RunID(), snap)
	if om == nil {
		return stats, nil
	}
	if err := om.WriteGeneration(stats); err != nil {
		return stats, err
	}
	if err := om.WriteSpecies(SpeciesRows(om.runID, snap)); err != nil {
		return stats, err
	}
	return stats, nil
}

// WriteGeneration appends a generation summary to generations.csv.
func (om *OutputManager) WriteGeneration(stats GenerationStats) error {
	if om == nil {
		return nil
	}

	records := []GenerationStats{stats}

	if !om.genHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.genFile); err != nil {
			return fmt.Errorf("writing generation: %w", err)
		}
		om.genHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.genFile); err != nil {
			return fmt.Errorf("writing generation: %w", err)
		}
	}
	return nil
}

// WriteSpecies appends species rows to species.csv.
func (om *OutputManager) WriteSpecies(rows []SpeciesRow) error {
	if om == nil || len(rows) == 0 {
		return nil
	}

	if !om.speciesHeaderWritten {
		if err := gocsv.Marshal(rows, om.speciesFile); err != nil {
			return fmt.Errorf("writing species: %w", err)
		}
		om.speciesHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(rows, om.speciesFile); err != nil {
			return fmt.Errorf("writing species: %w", err)
		}
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.genFile, om.speciesFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
