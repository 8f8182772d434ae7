// Package recommend implements the one-shot recommendation command.
package recommend

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"finsight/cmd/root"
	"finsight/internal/recommend"
	"finsight/internal/store"
)

var (
	useRemote bool
	startDate string
	endDate   string
)

// Cmd is the recommend command.
var Cmd = &cobra.Command{
	Use:   "recommend",
	Short: "Generate savings recommendations for a date window.",
	Long: `Recommend fetches categorized transactions for the given window (default:
the trailing 30 days), sends them through the selected generation backend and
prints the recommendation set as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := root.Cfg
		log := root.Log

		st, err := store.NewSQLiteStore(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		var local, remote recommend.Backend
		if useRemote {
			model, err := recommend.NewGeminiModel(cmd.Context(), cfg.Remote.APIKey, cfg.Remote.Model)
			if err != nil {
				return err
			}
			defer func() { _ = model.Close() }()
			remote = recommend.NewRemoteBackend(model, log)
		} else {
			gen := recommend.NewLlamaGenerator(cfg.LocalModel.URL,
				time.Duration(cfg.LocalModel.TimeoutSeconds)*time.Second)
			local = recommend.NewLocalBackend(gen, cfg.LocalModel.MaxTokens, log)
		}

		svc := recommend.NewService(st, local, remote, log)
		set, err := svc.Recommend(cmd.Context(), recommend.Request{
			UseRemote: useRemote,
			StartDate: startDate,
			EndDate:   endDate,
		})
		if err != nil {
			return err
		}

		out, err := json.MarshalIndent(set, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	Cmd.Flags().BoolVar(&useRemote, "remote", false, "Use the remote generation backend")
	Cmd.Flags().StringVar(&startDate, "start", "", "Window start date (YYYY-MM-DD)")
	Cmd.Flags().StringVar(&endDate, "end", "", "Window end date (YYYY-MM-DD)")
}
