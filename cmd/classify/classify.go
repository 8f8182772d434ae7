// Package classify implements the command that labels a cleaned dataset with
// the frozen classifier artifact.
package classify

import (
	"fmt"

	"github.com/spf13/cobra"

	"finsight/cmd/root"
	"finsight/internal/classifier"
	"finsight/internal/dataset"
)

var modelDir string

// Cmd is the classify command.
var Cmd = &cobra.Command{
	Use:   "classify",
	Short: "Label a cleaned transaction CSV with predicted categories.",
	Long: `Classify loads the frozen classifier artifact, maps every clean_text row
through it and writes the dataset back with predicted category and confidence
columns.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if root.SharedFlags.Input == "" || root.SharedFlags.Output == "" {
			return fmt.Errorf("both --input and --output are required")
		}

		dir := modelDir
		if dir == "" {
			dir = root.Cfg.Classifier.ModelDir
		}

		model, err := classifier.LoadModel(dir)
		if err != nil {
			return err
		}

		c := classifier.New(model, root.Cfg.Classifier.ConfidenceThreshold, root.Log)
		return dataset.Classify(root.SharedFlags.Input, root.SharedFlags.Output, c, root.Log)
	},
}

func init() {
	Cmd.Flags().StringVar(&modelDir, "model-dir", "", "Classifier artifact directory (defaults to config)")
}
