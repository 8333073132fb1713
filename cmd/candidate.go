package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/smarthire/smarthire-cli/internal/detail"
	"github.com/smarthire/smarthire-cli/internal/match"
	"github.com/smarthire/smarthire-cli/internal/smarthire"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var candidateCmd = &cobra.Command{
	Use:   "candidate <id>",
	Short: "Show a candidate profile and its match against one of your postings",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := newRuntime()
		if err != nil {
			log.Fatalf("starting %s: %v", app, err)
		}
		jobID, _ := cmd.Flags().GetString("compare-job")
		showCandidateDetail(context.Background(), rt, args[0], jobID)
	},
}

func init() {
	rootCmd.AddCommand(candidateCmd)
	candidateCmd.Flags().String("compare-job", "", "run a full comparison against this job id")
}

func showCandidateDetail(ctx context.Context, rt *runtime, resumeID, compareJobID string) {
	controller := detail.NewCandidate(detail.Deps{
		Matcher:  rt.client,
		Profiles: rt.client,
		Store:    rt.store,
		Logger:   rt.logger,
	})

	details, err := rt.client.GetCandidateDetails(ctx, resumeID)
	if err != nil {
		rt.logger.Warn("loading candidate details", zap.Error(err))
	} else {
		printCandidateHeader(details)
	}

	view := controller.Load(ctx, resumeID)

	if compareJobID == "" && view.NeedsSubject && rt.config.Matching.JobID != "" {
		compareJobID = rt.config.Matching.JobID
	}
	if compareJobID != "" && view.Analysis == nil {
		fresh, err := controller.RequestComparison(ctx, resumeID, compareJobID)
		if err != nil {
			rt.logger.Warn("requesting comparison", zap.Error(err))
			view.BreakdownUnavailable = true
		} else {
			view = fresh
		}
	}

	printView(view)
}

func printCandidateHeader(details *smarthire.CandidateDetails) {
	fmt.Printf("%s, %s\n", details.Name, details.Title)
	level := match.LevelForExperience(details.Experience)
	fmt.Printf("Experience: %d year(s) (%s)\n", details.Experience, level)
	if details.Location != "" {
		fmt.Printf("Location: %s\n", details.Location)
	}
	if len(details.Skills) > 0 {
		fmt.Printf("Skills: %s\n", strings.Join(details.Skills, ", "))
	}
	if details.CVSummary != "" {
		fmt.Println(details.CVSummary)
	}
	fmt.Println()
}
