// Package preprocess implements the command that turns a raw bank CSV export
// into a cleaned dataset with a canonical text column.
package preprocess

import (
	"fmt"

	"github.com/spf13/cobra"

	"finsight/cmd/root"
	"finsight/internal/dataset"
	"finsight/internal/normalizer"
)

// Cmd is the preprocess command.
var Cmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Normalize a raw transaction CSV into canonical text.",
	Long: `Preprocess reads a raw bank CSV export, applies the override table and
generic cleaning to each description, and writes the dataset with an added
clean_text column ready for labeling or training.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if root.SharedFlags.Input == "" || root.SharedFlags.Output == "" {
			return fmt.Errorf("both --input and --output are required")
		}

		overrides := normalizer.DefaultOverrides
		if path := root.Cfg.Classifier.OverridesFile; path != "" {
			loaded, err := normalizer.LoadOverrides(path)
			if err != nil {
				return err
			}
			overrides = loaded
		}

		n := normalizer.New(overrides)
		return dataset.Preprocess(root.SharedFlags.Input, root.SharedFlags.Output, n, root.Log)
	},
}
