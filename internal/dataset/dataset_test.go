package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsight/internal/classifier"
	"finsight/internal/logging"
	"finsight/internal/normalizer"
)

const rawCSV = `Date,Extended Description,Amount,Category
2025-07-01,NETFLIX,15.99,
2025-07-02,"Trader Joe's #123",56.20,
`

const modelYAML = `labels:
  - Subscription
  - Groceries
  - Other
max_sequence_length: 16
bias: [0.0, 0.0, 0.1]
weights:
  netflix: [4.0, 0.0, 0.0]
  grocery: [0.0, 4.0, 0.0]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestPreprocess(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "raw.csv", rawCSV)
	output := filepath.Join(dir, "out", "clean.csv")

	err := Preprocess(input, output, normalizer.New(normalizer.DefaultOverrides), &logging.MockLogger{})
	require.NoError(t, err)

	rows, err := ReadCSVFile[CleanRow](output)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Override hit keeps the curated replacement, fallback strips punctuation.
	assert.Equal(t, "netflix", rows[0].CleanText)
	assert.Equal(t, "trader joes 123", rows[1].CleanText)
	assert.Equal(t, "NETFLIX", rows[0].Description)
}

func TestClassify(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, classifier.ModelFileName, modelYAML)
	model, err := classifier.LoadModel(dir)
	require.NoError(t, err)

	input := writeFile(t, dir, "clean.csv",
		"Date,Extended Description,Amount,Category,clean_text\n"+
			"2025-07-01,NETFLIX,15.99,,netflix\n"+
			"2025-07-03,UNKNOWN MERCHANT,9.99,,unknown merchant\n")
	output := filepath.Join(dir, "labeled.csv")

	err = Classify(input, output, classifier.New(model, 0.9, &logging.MockLogger{}), &logging.MockLogger{})
	require.NoError(t, err)

	rows, err := ReadCSVFile[LabeledRow](output)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Subscription", rows[0].PredictedCategory)
	assert.Greater(t, rows[0].Confidence, 0.9)
	// Unknown tokens score on the bias alone and land under the floor.
	assert.Equal(t, "Other", rows[1].PredictedCategory)
}

func TestReadCSVFileMissing(t *testing.T) {
	_, err := ReadCSVFile[RawRow](filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
