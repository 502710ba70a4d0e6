package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/pm-philosophy/internal/model"
	"github.com/rcliao/pm-philosophy/internal/quiz"
)

func answerCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addAnswerFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestParseAnswers(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want quiz.Answers
	}{
		{"bare", `{"q1":"q1a","q2":"q2b"}`, quiz.Answers{"q1": "q1a", "q2": "q2b"}},
		{"wrapped", `{"answers":{"q3":"q3c"}}`, quiz.Answers{"q3": "q3c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAnswers([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseAnswers([]byte(`[1,2]`))
	assert.Error(t, err)

	got, err := parseAnswers([]byte(`null`))
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestReadAnswersNullFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, []byte("null\n"), 0o644))

	got, err := readAnswers(answerCmd(t, "--answers", path, "-a", "q1=q1a"))
	require.NoError(t, err)
	assert.Equal(t, quiz.Answers{"q1": "q1a"}, got)

	_, err = readAnswers(answerCmd(t, "--answers", path))
	assert.ErrorContains(t, err, "no answers")
}

func TestReadAnswersFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"q1":"q1a","q2":"q2a"}`), 0o644))

	cmd := answerCmd(t, "--answers", path, "-a", "q2=q2d", "-a", " q3 = q3b ")
	got, err := readAnswers(cmd)
	require.NoError(t, err)
	assert.Equal(t, quiz.Answers{"q1": "q1a", "q2": "q2d", "q3": "q3b"}, got)
}

func TestReadAnswersErrors(t *testing.T) {
	_, err := readAnswers(answerCmd(t))
	assert.ErrorContains(t, err, "no answers")

	_, err = readAnswers(answerCmd(t, "-a", "q1"))
	assert.ErrorContains(t, err, "question=answer")

	_, err = readAnswers(answerCmd(t, "--answers", filepath.Join(t.TempDir(), "missing.json")))
	assert.ErrorContains(t, err, "read answers")
}

func TestWriteRecommendations(t *testing.T) {
	pct := model.ZoneVector{model.ZoneVelocity: 60, model.ZoneFocus: 40}
	recs := model.Recommendations{
		UserProfile: model.UserProfile{
			ZonePercentages: pct.Complete(),
			PrimaryZone:     model.ZoneVelocity,
			SecondaryZone:   model.ZoneFocus,
			BlindSpotZone:   model.ZonePerfection,
		},
		Primary: []model.EpisodeAlignment{{
			Guest:          "Ada Lovelace",
			Title:          "Shipping the engine",
			AlignmentScore: 82,
			MatchReason:    "Ada shares your speed mindset",
			MatchingQuotes: []model.Quote{{Text: "Ship it.", Timestamp: "00:12:00"}},
		}},
		BlindSpotDescription: model.BlindSpotDescription(model.ZonePerfection),
	}

	var buf bytes.Buffer
	writeRecommendations(&buf, recs)
	out := buf.String()

	assert.Contains(t, out, "Primary:    ⚡ Speed")
	assert.Contains(t, out, "Blind spot: 💎 Craft")
	assert.Contains(t, out, "1. Ada Lovelace: Shipping the engine  [82]")
	assert.Contains(t, out, `> "Ship it." (00:12:00)`)
	assert.Contains(t, out, "attention to detail")
	assert.True(t, strings.Contains(out, "Episodes that challenge you\n"))
	assert.Contains(t, out, "(none)")
}

func TestPrintWrapped(t *testing.T) {
	var buf bytes.Buffer
	printWrapped(&buf, "  ", strings.Repeat("word ", 40))
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		assert.True(t, strings.HasPrefix(line, "  "))
		assert.LessOrEqual(t, len(line), textWidth)
	}
}
