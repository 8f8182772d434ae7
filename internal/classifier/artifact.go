// Package classifier wraps a frozen text-classification artifact and maps
// canonical transaction text to a category label with a confidence score.
package classifier

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"finsight/internal/models"
)

// ModelFileName is the artifact file expected inside the model directory.
const ModelFileName = "model.yaml"

// artifact is the on-disk shape of a frozen classifier. It is produced by the
// external training pipeline and consumed read-only here.
type artifact struct {
	Labels            []string             `yaml:"labels"`
	MaxSequenceLength int                  `yaml:"max_sequence_length"`
	Bias              []float64            `yaml:"bias"`
	Weights           map[string][]float64 `yaml:"weights"`
}

// Model is a frozen classifier loaded once per process. All fields are
// read-only after LoadModel returns, so concurrent Classify calls are safe.
type Model struct {
	labels    []string
	bias      []float64
	weights   map[string][]float64
	maxSeqLen int
}

// LoadModel reads and validates the frozen artifact from a model directory.
// A missing or malformed artifact is a fatal initialization error: the
// process cannot meaningfully start without its model.
func LoadModel(dir string) (*Model, error) {
	path := filepath.Join(dir, ModelFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read model artifact %s: %w", path, err)
	}

	var a artifact
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("could not parse model artifact %s: %w", path, err)
	}

	if err := validateArtifact(&a); err != nil {
		return nil, fmt.Errorf("invalid model artifact %s: %w", path, err)
	}

	return &Model{
		labels:    a.Labels,
		bias:      a.Bias,
		weights:   a.Weights,
		maxSeqLen: a.MaxSequenceLength,
	}, nil
}

func validateArtifact(a *artifact) error {
	if len(a.Labels) == 0 {
		return fmt.Errorf("artifact defines no labels")
	}
	if !models.InTaxonomy(a.Labels, models.CategoryOther) {
		return fmt.Errorf("label set is missing the %q fallback", models.CategoryOther)
	}
	if a.MaxSequenceLength < 1 {
		return fmt.Errorf("max_sequence_length must be positive, got %d", a.MaxSequenceLength)
	}
	if len(a.Bias) != len(a.Labels) {
		return fmt.Errorf("bias has %d entries for %d labels", len(a.Bias), len(a.Labels))
	}
	for token, row := range a.Weights {
		if len(row) != len(a.Labels) {
			return fmt.Errorf("weight row for token %q has %d entries for %d labels",
				token, len(row), len(a.Labels))
		}
	}
	return nil
}

// Labels returns the model's output space: the fixed, ordered taxonomy.
func (m *Model) Labels() []string {
	return m.labels
}
