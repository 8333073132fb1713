package cmd

import (
	"fmt"
	"strings"

	"github.com/smarthire/smarthire-cli/internal/detail"
	"github.com/smarthire/smarthire-cli/internal/match"
)

// scoreCell renders the three score states distinctly: no comparison
// available, a failed comparison (visible 0), and a numeric score. They are
// never conflated.
func scoreCell(item match.Item) string {
	switch {
	case item.Score == nil:
		return "—"
	case item.Failed:
		return "0% (could not be scored)"
	default:
		return fmt.Sprintf("%.0f%% (%s)", *item.Score, match.ScoreLabel(*item.Score))
	}
}

func itemLabel(target match.Target, item match.Item) string {
	if target == match.TargetCVs {
		level := match.LevelForExperience(item.Experience)
		return fmt.Sprintf("%s | %s / %s / %dy (%s) / %s",
			scoreCell(item), item.Name, item.Title, item.Experience, level, item.Location)
	}

	remote := ""
	if item.Remote {
		remote = " / remote"
	}
	return fmt.Sprintf("%s | %s / %s / %s%s",
		scoreCell(item), item.Title, item.Company, item.Location, remote)
}

func printItems(target match.Target, items []match.Item, pending bool) {
	for i, item := range items {
		fmt.Printf("%2d. %s\n", i+1, itemLabel(target, item))
	}
	if pending {
		fmt.Println("    ... some scores are still being computed")
	}
}

func printView(view *detail.View) {
	switch {
	case view.NeedsSubject:
		fmt.Println("No comparison available. Upload a resume or select a job for matching to compute one.")
		return
	case view.Score == nil:
		if view.BreakdownUnavailable {
			fmt.Println("Comparison failed. Try again later.")
		} else {
			fmt.Println("Comparison in progress or not yet computed.")
		}
		return
	}

	claim := "match"
	if view.RelevanceOnly {
		claim = "search relevance, not a profile match"
	}
	fmt.Printf("Score: %.0f%% (%s), %s\n", *view.Score, match.ScoreLabel(*view.Score), claim)

	if view.BreakdownUnavailable {
		fmt.Println("Score breakdown is unavailable right now.")
		return
	}

	if view.Analysis == nil {
		return
	}

	for _, part := range view.Analysis.ScoreBreakdown {
		fmt.Printf("  %-20s %5.1f (contributes %.1f)  %s\n",
			part.Category, part.Score, part.Contribution, part.Detail)
	}

	if len(view.Analysis.MissingSkills) > 0 {
		names := make([]string, 0, len(view.Analysis.MissingSkills))
		for _, gap := range view.Analysis.MissingSkills {
			names = append(names, gap.Name)
		}
		fmt.Printf("Missing skills: %s\n", strings.Join(names, ", "))
	}

	if view.Analysis.Recommendation != "" {
		fmt.Printf("Recommendation: %s\n", view.Analysis.Recommendation)
	}
}
