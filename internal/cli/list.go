package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "List catalog keywords by episode count",
		Args:  cobra.NoArgs,
		Run:   runKeywords,
	}
	cmd.Flags().IntP("limit", "l", 0, "Max keywords (0 for all)")

	RootCmd.AddCommand(cmd)
}

func runKeywords(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore(loadConfig())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	keywords, err := s.Keywords(cmd.Context())
	if err != nil {
		exitErr("keywords", err)
	}
	if limit > 0 && len(keywords) > limit {
		keywords = keywords[:limit]
	}

	if textOutput() {
		for _, kc := range keywords {
			fmt.Printf("%5d  %s\n", kc.Count, kc.Keyword)
		}
		return
	}
	printJSON(os.Stdout, keywords)
}
