// Package serve implements the command that runs the HTTP API.
package serve

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"finsight/cmd/root"
	"finsight/internal/recommend"
	"finsight/internal/server"
	"finsight/internal/store"
)

var addr string

// Cmd is the serve command.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the recommendation HTTP API.",
	Long: `Serve exposes POST /recommendations and GET /transactions. The local
generation model and the remote client are wired once at startup and shared
across requests for the lifetime of the process.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := root.Cfg
		log := root.Log

		st, err := store.NewSQLiteStore(cfg.Database.Path)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		gen := recommend.NewLlamaGenerator(cfg.LocalModel.URL,
			time.Duration(cfg.LocalModel.TimeoutSeconds)*time.Second)
		local := recommend.NewLocalBackend(gen, cfg.LocalModel.MaxTokens, log)

		var remote recommend.Backend
		if cfg.Remote.APIKey != "" {
			model, err := recommend.NewGeminiModel(cmd.Context(), cfg.Remote.APIKey, cfg.Remote.Model)
			if err != nil {
				return err
			}
			defer func() { _ = model.Close() }()
			remote = recommend.NewRemoteBackend(model, log)
		} else {
			log.Warn("GEMINI_API_KEY not set, remote backend disabled")
		}

		svc := recommend.NewService(st, local, remote, log)
		srv := server.New(svc, st, log)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		listenAddr := addr
		if listenAddr == "" {
			listenAddr = cfg.Server.Addr
		}
		return srv.ListenAndServe(ctx, listenAddr)
	},
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to config)")
}
