package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/pm-philosophy/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "validate [dir]",
		Short: "Validate a data directory without importing it",
		Long:  "Load every file the way serve and import do and report the library size. Exits non-zero on the first invalid record.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runValidate,
	}

	RootCmd.AddCommand(cmd)
}

type validateOutput struct {
	OK      bool          `json:"ok"`
	Dir     string        `json:"dir"`
	Summary store.Summary `json:"summary"`
	Orphans []string      `json:"orphans,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) {
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
		exitErr("validate "+dir, err)
	}

	out := validateOutput{OK: true, Dir: dir, Summary: lib.Summary(), Orphans: lib.Orphans()}
	if textOutput() {
		fmt.Printf("%s: ok, %d episodes, %d curated, %d quotes, %d contrarian candidates\n",
			dir, out.Summary.Episodes, out.Summary.Curated, out.Summary.Quotes, out.Summary.ContrarianCandidates)
		for _, slug := range out.Orphans {
			fmt.Printf("  warning: %s has enrichment but no catalog entry\n", slug)
		}
		return
	}
	printJSON(os.Stdout, out)
}
