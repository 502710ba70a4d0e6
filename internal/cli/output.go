package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"github.com/rcliao/pm-philosophy/internal/model"
	"github.com/rcliao/pm-philosophy/internal/snippet"
)

const textWidth = 76

func textOutput() bool {
	return formatFlag == "text"
}

func printJSON(w io.Writer, v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		exitErr("encode output", err)
	}
	fmt.Fprintln(w, string(b))
}

// printWrapped writes text wrapped to textWidth with every line indented.
func printWrapped(w io.Writer, indent, text string) {
	for _, line := range snippet.Wrap(text, textWidth-len(indent)) {
		fmt.Fprintln(w, indent+line)
	}
}

func zoneLabel(z model.ZoneID) string {
	if meta, ok := model.LookupZone(z); ok {
		return meta.Icon + " " + meta.DisplayName
	}
	return string(z)
}

func writeProfile(w io.Writer, p model.UserProfile) {
	fmt.Fprintf(w, "Primary:    %s\n", zoneLabel(p.PrimaryZone))
	fmt.Fprintf(w, "Secondary:  %s\n", zoneLabel(p.SecondaryZone))
	fmt.Fprintf(w, "Blind spot: %s\n\n", zoneLabel(p.BlindSpotZone))
	for _, rz := range p.ZonePercentages.Ranked() {
		bar := strings.Repeat("#", int(rz.Value/2))
		fmt.Fprintf(w, "  %-12s %3.0f%%  %s\n", rz.Zone.DisplayName(), rz.Value, bar)
	}
}

func writeAlignment(w io.Writer, i int, a model.EpisodeAlignment) {
	fmt.Fprintf(w, "%d. %s: %s  [%d]\n", i, a.Guest, a.Title, a.AlignmentScore)
	printWrapped(w, "   ", a.MatchReason)
	for _, q := range a.MatchingQuotes {
		printWrapped(w, "   > ", fmt.Sprintf("%q (%s)", q.Text, q.Timestamp))
	}
}

func writeRecommendations(w io.Writer, recs model.Recommendations) {
	writeProfile(w, recs.UserProfile)

	fmt.Fprintln(w, "\nEpisodes that match how you think")
	if len(recs.Primary) == 0 {
		fmt.Fprintln(w, "   (none)")
	}
	for i, a := range recs.Primary {
		writeAlignment(w, i+1, a)
	}

	fmt.Fprintln(w, "\nEpisodes that challenge you")
	printWrapped(w, "   ", recs.BlindSpotDescription)
	if len(recs.Contrarian) == 0 {
		fmt.Fprintln(w, "   (none)")
	}
	for i, a := range recs.Contrarian {
		writeAlignment(w, i+1, a)
	}
}
