package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/rcliao/pm-philosophy/internal/quiz"
)

// addAnswerFlags registers --answers and --answer on cmd.
func addAnswerFlags(cmd *cobra.Command) {
	cmd.Flags().String("answers", "", `JSON file of answers ("-" for stdin): {"q1":"q1a",...} or {"answers":{...}}`)
	cmd.Flags().StringArrayP("answer", "a", nil, "One answer as question=answer, repeatable (e.g. -a q1=q1a)")
}

// readAnswers merges the answers file with -a flags; flags win.
func readAnswers(cmd *cobra.Command) (quiz.Answers, error) {
	path, _ := cmd.Flags().GetString("answers")
	pairs, _ := cmd.Flags().GetStringArray("answer")

	answers := quiz.Answers{}
	if path != "" {
		var data []byte
		var err error
		if path == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return nil, fmt.Errorf("read answers: %w", err)
		}
		if answers, err = parseAnswers(data); err != nil {
			return nil, err
		}
	}

	for _, p := range pairs {
		q, a, ok := strings.Cut(p, "=")
		q, a = strings.TrimSpace(q), strings.TrimSpace(a)
		if !ok || q == "" || a == "" {
			return nil, fmt.Errorf("answer %q: want question=answer", p)
		}
		answers[q] = a
	}

	if len(answers) == 0 {
		return nil, fmt.Errorf("no answers given: use --answers or -a")
	}
	return answers, nil
}

// parseAnswers accepts a bare map or an object wrapping it under "answers",
// the same body the HTTP API takes.
func parseAnswers(data []byte) (quiz.Answers, error) {
	var wrapped struct {
		Answers quiz.Answers `json:"answers"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && len(wrapped.Answers) > 0 {
		return wrapped.Answers, nil
	}
	var bare quiz.Answers
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("parse answers: %w", err)
	}
	if bare == nil {
		// a JSON null decodes to a nil map
		bare = quiz.Answers{}
	}
	return bare, nil
}
