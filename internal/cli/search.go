package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/pm-philosophy/internal/snippet"
	"github.com/rcliao/pm-philosophy/internal/store"
)

func errUnknownEpisode(slug string) error {
	return fmt.Errorf("episode %s: %w", slug, store.ErrNotFound)
}

func init() {
	episodesCmd := &cobra.Command{
		Use:   "episodes",
		Short: "Browse the episode index",
	}

	searchCmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search episodes by text and keyword",
		Long:  "Search guest, title, company, description and quote text in the SQLite index. Run import first.",
		Run:   runEpisodeSearch,
	}
	searchCmd.Flags().StringSliceP("keyword", "k", nil, "Require keyword (repeatable)")
	searchCmd.Flags().StringP("sort", "s", store.SortDateDesc, "Sort: "+strings.Join(store.SortOrders, ", "))
	searchCmd.Flags().Bool("curated", false, "Only curated episodes")
	searchCmd.Flags().IntP("limit", "l", 20, "Max results")

	getCmd := &cobra.Command{
		Use:   "get <slug>",
		Short: "Show one episode with its curated record",
		Args:  cobra.ExactArgs(1),
		Run:   runEpisodeGet,
	}

	episodesCmd.AddCommand(searchCmd, getCmd)
	RootCmd.AddCommand(episodesCmd)
}

func runEpisodeSearch(cmd *cobra.Command, args []string) {
	keywords, _ := cmd.Flags().GetStringSlice("keyword")
	sort, _ := cmd.Flags().GetString("sort")
	curated, _ := cmd.Flags().GetBool("curated")
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	if !store.ValidSort(sort) {
		exitErr("search", fmt.Errorf("unknown sort %q (want one of %s)", sort, strings.Join(store.SortOrders, ", ")))
	}

	s, err := openStore(loadConfig())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	results, err := s.Search(cmd.Context(), store.SearchParams{
		Query:       query,
		Keywords:    keywords,
		Sort:        sort,
		CuratedOnly: curated,
		Limit:       limit,
	})
	if err != nil {
		exitErr("search", err)
	}

	if textOutput() {
		for _, r := range results {
			mark := " "
			if r.Curated {
				mark = "*"
			}
			fmt.Printf("%s %-28s %s  %s\n", mark, r.Slug, r.PublishDate, r.Guest)
			printWrapped(os.Stdout, "    ", r.Title)
			if r.MatchQuote != nil {
				printWrapped(os.Stdout, "    > ", snippet.Clause(r.MatchQuote.Text))
			}
		}
		return
	}

	if len(results) == 0 {
		fmt.Println("[]")
		return
	}
	printJSON(os.Stdout, results)
}

func runEpisodeGet(cmd *cobra.Command, args []string) {
	s, err := openStore(loadConfig())
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	rec, err := s.Episode(cmd.Context(), args[0])
	if err != nil {
		exitErr("get", err)
	}

	if textOutput() {
		fmt.Printf("%s: %s\n", rec.Guest, rec.Title)
		if rec.Company != "" {
			fmt.Printf("Company:   %s\n", rec.Company)
		}
		fmt.Printf("Published: %s  Duration: %s  Views: %d\n", rec.PublishDate, rec.Duration, rec.ViewCount)
		if rec.YouTubeURL != "" {
			fmt.Println(rec.YouTubeURL)
		}
		if rec.Enrichment != nil {
			fmt.Println("\nZone influence:")
			for _, rz := range rec.Enrichment.ZoneInfluence.Complete().Ranked() {
				if rz.Value > 0 {
					fmt.Printf("  %-12s %.2f\n", rz.Zone.DisplayName(), rz.Value)
				}
			}
			fmt.Println("\nQuotes:")
			for _, q := range rec.Enrichment.Quotes {
				printWrapped(os.Stdout, "  > ", fmt.Sprintf("%q (%s, %s)", q.Text, q.Speaker, q.Timestamp))
			}
		}
		return
	}
	printJSON(os.Stdout, rec)
}
