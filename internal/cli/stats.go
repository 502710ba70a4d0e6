package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show index statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	cfg := loadConfig()
	s, err := openStore(cfg)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context(), cfg.Data.DBPath)
	if err != nil {
		exitErr("stats", err)
	}

	if !textOutput() {
		printJSON(os.Stdout, stats)
		return
	}
	fmt.Printf("Index:      %s (%d bytes)\n", stats.DBPath, stats.DBSizeBytes)
	fmt.Printf("Episodes:   %d (%d curated)\n", stats.Episodes, stats.Curated)
	fmt.Printf("Quotes:     %d (%d contrarian candidates)\n", stats.Quotes, stats.ContrarianCandidates)
	if stats.LastImport != nil {
		fmt.Printf("Imported:   %s from %s\n", stats.LastImport.ImportedAt.Format("2006-01-02 15:04:05"), stats.LastImport.Source)
	}
	fmt.Println("\nZone influence (avg / max / strong):")
	for _, z := range stats.Zones {
		fmt.Printf("  %-12s %.2f / %.2f / %d\n", z.Zone.DisplayName(), z.Avg, z.Max, z.Strong)
	}
	if len(stats.GuestTypes) > 0 {
		fmt.Println("\nGuest types:")
		for _, gt := range stats.GuestTypes {
			fmt.Printf("  %-12s %d\n", gt.Type, gt.Count)
		}
	}
}
