package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/pm-philosophy/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [dir]",
		Short: "Import a data directory into the SQLite index",
		Long:  "Load and validate episodes.json and verified/*.json, then replace the index contents in one transaction.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	defer logger.Sync()

	dir := cfg.Data.Dir
	if len(args) == 1 {
		dir = args[0]
	}

	lib, err := store.LoadDir(cmd.Context(), dir, store.LoadOptions{
		Workers: cfg.Data.LoadWorkers,
		Logger:  logger,
	})
	if err != nil {
		exitErr("load "+dir, err)
	}

	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	run, err := s.Import(cmd.Context(), lib, dir)
	if err != nil {
		exitErr("import", err)
	}
	logger.Info("import complete", zap.String("id", run.ID), zap.String("db", cfg.Data.DBPath))

	if textOutput() {
		fmt.Printf("imported %d episodes (%d curated, %d quotes) into %s\n", run.Episodes, run.Curated, run.Quotes, cfg.Data.DBPath)
		return
	}
	printJSON(os.Stdout, run)
}
