package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rcliao/pm-philosophy/internal/config"
	"github.com/rcliao/pm-philosophy/internal/model"
	"github.com/rcliao/pm-philosophy/internal/quiz"
)

func init() {
	zonesCmd := &cobra.Command{
		Use:   "zones",
		Short: "List the eight philosophy zones",
		Args:  cobra.NoArgs,
		Run:   runZones,
	}

	quizCmd := &cobra.Command{
		Use:   "quiz",
		Short: "Print the quiz questions and answer ids",
		Args:  cobra.NoArgs,
		Run:   runQuiz,
	}

	RootCmd.AddCommand(zonesCmd, quizCmd)
}

func runZones(cmd *cobra.Command, args []string) {
	zones := model.Zones()
	if !textOutput() {
		printJSON(os.Stdout, zones)
		return
	}
	for _, z := range zones {
		fmt.Printf("%s %-12s %s\n", z.Icon, z.DisplayName, z.Tagline)
		printWrapped(os.Stdout, "   ", z.Description)
	}
}

type quizOutput struct {
	MinAnswers int             `json:"min_answers"`
	Questions  []quiz.Question `json:"questions"`
}

func runQuiz(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitErr("load config", err)
	}
	out := quizOutput{MinAnswers: cfg.Quiz.MinAnswers, Questions: quiz.Default().Questions()}

	if !textOutput() {
		printJSON(os.Stdout, out)
		return
	}
	fmt.Printf("Answer at least %d of %d questions.\n", out.MinAnswers, len(out.Questions))
	for _, q := range out.Questions {
		fmt.Printf("\n%s. ", q.ID)
		printWrapped(os.Stdout, "", q.Text)
		for _, a := range q.Answers {
			fmt.Printf("   %-5s %s %s\n", a.ID, a.Icon, a.Text)
		}
	}
}
