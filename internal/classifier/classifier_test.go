package classifier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/logging"
	"finsight/internal/models"
)

// writeModel writes a small frozen artifact into a temp directory. Three
// labels, weights chosen so "netflix" scores Subscription and "grocery"
// scores Groceries with high confidence.
func writeModel(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	content := `labels:
  - Subscription
  - Groceries
  - Other
max_sequence_length: 16
bias: [0.0, 0.0, 0.1]
weights:
  netflix: [4.0, -1.0, 0.0]
  grocery: [-1.0, 4.0, 0.0]
  store: [0.0, 1.0, 0.0]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ModelFileName), []byte(content), 0600))
	return dir
}

func loadTestClassifier(t *testing.T, threshold float64) *Classifier {
	t.Helper()
	model, err := LoadModel(writeModel(t))
	require.NoError(t, err)
	return New(model, threshold, &logging.MockLogger{})
}

func TestLoadModelMissingArtifact(t *testing.T) {
	_, err := LoadModel(t.TempDir())
	assert.Error(t, err)
}

func TestLoadModelValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "malformed yaml",
			content: "labels: [::",
		},
		{
			name: "no labels",
			content: `labels: []
max_sequence_length: 16
bias: []
weights: {}
`,
		},
		{
			name: "missing Other fallback",
			content: `labels: [Dining, Groceries]
max_sequence_length: 16
bias: [0.0, 0.0]
weights: {}
`,
		},
		{
			name: "bias length mismatch",
			content: `labels: [Dining, Other]
max_sequence_length: 16
bias: [0.0]
weights: {}
`,
		},
		{
			name: "weight row length mismatch",
			content: `labels: [Dining, Other]
max_sequence_length: 16
bias: [0.0, 0.0]
weights:
  pizza: [1.0]
`,
		},
		{
			name: "non-positive sequence length",
			content: `labels: [Dining, Other]
max_sequence_length: 0
bias: [0.0, 0.0]
weights: {}
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, ModelFileName), []byte(tc.content), 0600))
			_, err := LoadModel(dir)
			assert.Error(t, err)
		})
	}
}

func TestClassifyReturnsTaxonomyMember(t *testing.T) {
	c := loadTestClassifier(t, 0.0)

	inputs := []string{
		"netflix",
		"grocery store",
		"completely unknown merchant",
		"",
	}

	for _, input := range inputs {
		result := c.Classify(input)
		assert.True(t, models.InTaxonomy(c.model.Labels(), result.Label),
			"label %q for input %q must be in the taxonomy", result.Label, input)
		assert.GreaterOrEqual(t, result.Confidence, 0.0)
		assert.LessOrEqual(t, result.Confidence, 1.0)
	}
}

func TestClassifyKnownTokens(t *testing.T) {
	c := loadTestClassifier(t, 0.0)

	result := c.Classify("netflix")
	assert.Equal(t, "Subscription", result.Label)
	assert.Greater(t, result.Confidence, 0.9)

	result = c.Classify("grocery store")
	assert.Equal(t, "Groceries", result.Label)
}

func TestClassifyConfidenceFloor(t *testing.T) {
	// An unknown input scores on the bias alone, landing near uniform.
	// With a high floor the label falls back to Other while the true low
	// confidence is still reported.
	c := loadTestClassifier(t, 0.9)

	result := c.Classify("completely unknown merchant")
	assert.Equal(t, models.CategoryOther, result.Label)
	assert.Less(t, result.Confidence, 0.9)
	assert.Greater(t, result.Confidence, 0.0)
}

func TestClassifyDeterministic(t *testing.T) {
	c := loadTestClassifier(t, 0.0)

	first := c.Classify("netflix")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, c.Classify("netflix"))
	}
}

func TestClassifyBatch(t *testing.T) {
	c := loadTestClassifier(t, 0.0)

	results := c.ClassifyBatch([]string{"netflix", "grocery", ""})
	require.Len(t, results, 3)
	assert.Equal(t, "Subscription", results[0].Label)
	assert.Equal(t, "Groceries", results[1].Label)
	// The degenerate input still yields a result instead of failing the batch.
	assert.True(t, models.InTaxonomy(c.model.Labels(), results[2].Label))
}

func TestClassifyTruncatesToMaxSequenceLength(t *testing.T) {
	dir := t.TempDir()
	content := `labels: [Subscription, Other]
max_sequence_length: 1
bias: [0.0, 0.0]
weights:
  netflix: [3.0, 0.0]
  grocery: [-3.0, 3.0]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ModelFileName), []byte(content), 0600))
	model, err := LoadModel(dir)
	require.NoError(t, err)
	c := New(model, 0.0, nil)

	// Only the first token survives truncation, so "grocery" has no effect.
	result := c.Classify("netflix grocery")
	assert.Equal(t, "Subscription", result.Label)
}
