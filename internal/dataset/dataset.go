// Package dataset implements the offline labeling pipeline: raw bank CSV
// exports are normalized into canonical text, then labeled by the frozen
// classifier. The resulting file feeds the external fine-tuning step.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"finsight/internal/classifier"
	"finsight/internal/logging"
	"finsight/internal/normalizer"
)

// RawRow mirrors one line of a raw bank CSV export. Extra columns are
// tolerated and ignored.
type RawRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Extended Description"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
}

// CleanRow is a RawRow plus the canonical text the classifier consumes.
type CleanRow struct {
	RawRow
	CleanText string `csv:"clean_text"`
}

// LabeledRow is a CleanRow plus the classifier's prediction.
type LabeledRow struct {
	CleanRow
	PredictedCategory string  `csv:"Predicted_Category"`
	Confidence        float64 `csv:"Confidence_Score"`
}

// ReadCSVFile reads CSV data into a slice of row structs.
func ReadCSVFile[T any](path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var rows []T
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}
	return rows, nil
}

// WriteCSVFile writes row structs to a CSV file, creating parent directories
// as needed.
func WriteCSVFile[T any](rows []T, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}
	return nil
}

// Preprocess reads a raw export, derives the canonical text column and
// writes the cleaned dataset.
func Preprocess(inputPath, outputPath string, n *normalizer.Normalizer, log logging.Logger) error {
	rows, err := ReadCSVFile[RawRow](inputPath)
	if err != nil {
		return err
	}

	cleaned := make([]CleanRow, len(rows))
	for i, row := range rows {
		cleaned[i] = CleanRow{
			RawRow:    row,
			CleanText: n.Normalize(row.Description),
		}
	}

	if err := WriteCSVFile(cleaned, outputPath); err != nil {
		return err
	}

	log.WithFields(
		logging.Field{Key: logging.FieldInputFile, Value: inputPath},
		logging.Field{Key: logging.FieldOutputFile, Value: outputPath},
		logging.Field{Key: logging.FieldCount, Value: len(cleaned)},
	).Info("Preprocessed raw transactions")
	return nil
}

// Classify reads a cleaned dataset, labels every row with the frozen
// classifier and writes predictions plus confidence scores alongside the
// original columns. Items are independent: one degenerate row falls back to
// "Other" without failing the batch.
func Classify(inputPath, outputPath string, c *classifier.Classifier, log logging.Logger) error {
	rows, err := ReadCSVFile[CleanRow](inputPath)
	if err != nil {
		return err
	}

	texts := make([]string, len(rows))
	for i, row := range rows {
		texts[i] = row.CleanText
	}
	results := c.ClassifyBatch(texts)

	labeled := make([]LabeledRow, len(rows))
	for i, row := range rows {
		labeled[i] = LabeledRow{
			CleanRow:          row,
			PredictedCategory: results[i].Label,
			Confidence:        results[i].Confidence,
		}
	}

	if err := WriteCSVFile(labeled, outputPath); err != nil {
		return err
	}

	log.WithFields(
		logging.Field{Key: logging.FieldInputFile, Value: inputPath},
		logging.Field{Key: logging.FieldOutputFile, Value: outputPath},
		logging.Field{Key: logging.FieldCount, Value: len(labeled)},
	).Info("Labeled transactions")
	return nil
}
