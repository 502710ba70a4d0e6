// Package cli implements the pm-philosophy CLI commands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rcliao/pm-philosophy/internal/config"
	"github.com/rcliao/pm-philosophy/internal/logging"
	"github.com/rcliao/pm-philosophy/internal/recommend"
	"github.com/rcliao/pm-philosophy/internal/store"
)

var (
	configPath string
	dbPath     string
	dataDir    string
	sourceFlag string
	formatFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "pm-philosophy",
	Short: "Find the product podcast episodes that match how you build",
	Long: "Answer a short quiz about how you make product decisions, get a profile across eight " +
		"philosophy zones, and see which curated episodes align with it and which challenge it.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $PM_PHILOSOPHY_CONFIG or ./pm-philosophy.yaml)")
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "SQLite index path (default: ~/.pm-philosophy/index.db)")
	RootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "Data directory with episodes.json and verified/")
	RootCmd.PersistentFlags().StringVar(&sourceFlag, "source", "", "Library source: dir or sqlite")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

// loadConfig reads layered config and applies command-line overrides.
func loadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	if dbPath != "" {
		cfg.Data.DBPath = dbPath
	}
	if dataDir != "" {
		cfg.Data.Dir = dataDir
	}
	if sourceFlag != "" {
		cfg.Data.Source = sourceFlag
	}
	if err := cfg.Validate(); err != nil {
		exitErr("config", err)
	}
	return cfg
}

func newLogger(cfg *config.Config) *zap.Logger {
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.File)
	if err != nil {
		exitErr("init logger", err)
	}
	return logger
}

func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(cfg.Data.DBPath)
}

// openLibrary loads the library from the configured source.
func openLibrary(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*store.Library, error) {
	switch cfg.Data.Source {
	case config.SourceSQLite:
		s, err := openStore(cfg)
		if err != nil {
			return nil, err
		}
		defer s.Close()
		lib, err := s.Library(ctx)
		if err != nil {
			return nil, fmt.Errorf("load index %s: %w", cfg.Data.DBPath, err)
		}
		logger.Info("loaded library from index", zap.String("db", cfg.Data.DBPath))
		return lib, nil
	default:
		return store.LoadDir(ctx, cfg.Data.Dir, store.LoadOptions{
			Workers: cfg.Data.LoadWorkers,
			Logger:  logger,
		})
	}
}

func newEngine(cfg *config.Config, lib *store.Library, logger *zap.Logger) *recommend.Engine {
	engine, err := recommend.NewEngine(recommend.EngineParams{
		Catalog:     lib,
		Enrichments: lib,
		Ranking:     cfg.Ranking,
		MinAnswers:  cfg.Quiz.MinAnswers,
		Logger:      logger,
	})
	if err != nil {
		exitErr("init engine", err)
	}
	return engine
}

// setup is the common prologue of commands that need the engine.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, *store.Library, *recommend.Engine) {
	cfg := loadConfig()
	logger := newLogger(cfg)
	lib, err := openLibrary(cmd.Context(), cfg, logger)
	if err != nil {
		exitErr("load library", err)
	}
	return cfg, logger, lib, newEngine(cfg, lib, logger)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
