package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/pm-philosophy/internal/api"
	"github.com/rcliao/pm-philosophy/internal/metrics"
)

func init() {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long:  "Load the library once and serve profile, recommendation and lookup endpoints until interrupted.",
		Args:  cobra.NoArgs,
		Run:   runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (overrides server.addr)")

	RootCmd.AddCommand(cmd)
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig()
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Server.Addr = addr
	}
	logger := newLogger(cfg)
	defer logger.Sync()

	lib, err := openLibrary(ctx, cfg, logger)
	if err != nil {
		exitErr("load library", err)
	}
	sum := lib.Summary()
	metrics.SetLibrarySize(sum.Episodes, sum.Curated, sum.Quotes)

	srv, err := api.New(api.Params{
		Engine:  newEngine(cfg, lib, logger),
		Library: lib,
		Config:  cfg.Server,
		Logger:  logger,
	})
	if err != nil {
		exitErr("init server", err)
	}

	logger.Info("library ready",
		zap.Int("episodes", sum.Episodes),
		zap.Int("curated", sum.Curated),
		zap.String("source", cfg.Data.Source))
	if err := srv.ListenAndServe(ctx); err != nil {
		exitErr("serve", err)
	}
}
