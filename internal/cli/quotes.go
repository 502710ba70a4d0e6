package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	quotesCmd := &cobra.Command{
		Use:   "quotes",
		Short: "Search verified quotes",
	}

	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search over quote text",
		Args:  cobra.MinimumNArgs(1),
		Run:   runQuoteSearch,
	}
	searchCmd.Flags().IntP("limit", "l", 20, "Max results")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one quote",
		Args:  cobra.ExactArgs(1),
		Run:   runQuoteGet,
	}

	quotesCmd.AddCommand(searchCmd, getCmd)
	RootCmd.AddCommand(quotesCmd)
}

func runQuoteSearch(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore(loadConfig())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	quotes, err := s.SearchQuotes(cmd.Context(), strings.Join(args, " "), limit)
	if err != nil {
		exitErr("search quotes", err)
	}

	if textOutput() {
		for _, q := range quotes {
			fmt.Printf("%s  %s @ %s\n", q.ID, q.Speaker, q.Timestamp)
			printWrapped(os.Stdout, "  ", q.Text)
		}
		return
	}
	if len(quotes) == 0 {
		fmt.Println("[]")
		return
	}
	printJSON(os.Stdout, quotes)
}

func runQuoteGet(cmd *cobra.Command, args []string) {
	s, err := openStore(loadConfig())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	q, err := s.Quote(cmd.Context(), args[0])
	if err != nil {
		exitErr("get quote", err)
	}
	if textOutput() {
		printWrapped(os.Stdout, "", fmt.Sprintf("%q", q.Text))
		fmt.Printf("  %s @ %s (%s)\n", q.Speaker, q.Timestamp, q.Source.Slug)
		return
	}
	printJSON(os.Stdout, q)
}
