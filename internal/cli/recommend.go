package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rcliao/pm-philosophy/internal/model"
	"github.com/rcliao/pm-philosophy/internal/quiz"
	"github.com/rcliao/pm-philosophy/internal/recommend"
)

func init() {
	recommendCmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend episodes for a set of quiz answers",
		Long:  "Profile the answers and list the best-aligned curated episodes plus a few that challenge your blind spot.",
		Args:  cobra.NoArgs,
		Run:   runRecommend,
	}
	addAnswerFlags(recommendCmd)

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the zone profile for a set of quiz answers",
		Args:  cobra.NoArgs,
		Run:   runProfile,
	}
	addAnswerFlags(profileCmd)

	alignCmd := &cobra.Command{
		Use:   "align <slug>",
		Short: "Score one episode against a set of quiz answers",
		Long:  "Score one curated episode. With --existing, the score is discounted for overlap with those episodes.",
		Args:  cobra.ExactArgs(1),
		Run:   runAlign,
	}
	addAnswerFlags(alignCmd)
	alignCmd.Flags().StringSlice("existing", nil, "Slugs already recommended (comma-separated)")

	RootCmd.AddCommand(recommendCmd, profileCmd, alignCmd)
}

// checkedAnswers reads the answers and applies the engine's completeness rule.
func checkedAnswers(cmd *cobra.Command, engine *recommend.Engine) quiz.Answers {
	answers, err := readAnswers(cmd)
	if err != nil {
		exitErr("answers", err)
	}
	if err := engine.CheckAnswers(answers); err != nil {
		exitErr("answers", err)
	}
	return answers
}

func runRecommend(cmd *cobra.Command, args []string) {
	_, logger, _, engine := setup(cmd)
	defer logger.Sync()

	recs := engine.Generate(checkedAnswers(cmd, engine))
	if textOutput() {
		writeRecommendations(os.Stdout, recs)
		return
	}
	printJSON(os.Stdout, recs)
}

func runProfile(cmd *cobra.Command, args []string) {
	_, logger, _, engine := setup(cmd)
	defer logger.Sync()

	profile := engine.Profile(checkedAnswers(cmd, engine))
	if textOutput() {
		writeProfile(os.Stdout, profile)
		return
	}
	printJSON(os.Stdout, profile)
}

func runAlign(cmd *cobra.Command, args []string) {
	_, logger, _, engine := setup(cmd)
	defer logger.Sync()

	existingSlugs, _ := cmd.Flags().GetStringSlice("existing")
	profile := engine.Profile(checkedAnswers(cmd, engine))

	var existing []model.EpisodeAlignment
	for _, slug := range existingSlugs {
		a, ok := engine.EpisodeAlignment(profile, strings.TrimSpace(slug), nil)
		if !ok {
			exitErr("existing", errUnknownEpisode(slug))
		}
		existing = append(existing, a)
	}

	a, ok := engine.EpisodeAlignment(profile, args[0], existing)
	if !ok {
		exitErr("align", errUnknownEpisode(args[0]))
	}
	if textOutput() {
		writeAlignment(os.Stdout, 1, a)
		return
	}
	printJSON(os.Stdout, a)
}
