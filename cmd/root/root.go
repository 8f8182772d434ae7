// Package root contains the root command for the application.
package root

import (
	"github.com/spf13/cobra"

	"finsight/internal/config"
	"finsight/internal/logging"
)

// CommonFlags represents the flags shared by the dataset commands.
type CommonFlags struct {
	Input  string
	Output string
}

var (
	// Log is the shared logger instance for commands, configured in
	// PersistentPreRun once the environment and config are loaded.
	Log logging.Logger = &logging.MockLogger{}

	// Cfg is the loaded application configuration.
	Cfg *config.Config

	// SharedFlags holds flags common to multiple commands.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "finsight",
		Short: "Categorize bank transactions and generate savings recommendations.",
		Long: `finsight ingests raw bank-transaction exports, assigns each a spending
category with a frozen text classifier, and produces natural-language savings
recommendations from a windowed view of categorized transactions using either
a locally hosted or a remote language model.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to finsight!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
			return nil
		},
	}
)

// Init initializes the root command and its persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
}
