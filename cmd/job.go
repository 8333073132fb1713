package cmd

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/smarthire/smarthire-cli/internal/detail"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var jobCmd = &cobra.Command{
	Use:   "job <id>",
	Short: "Show a job posting and its match against your resume",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := newRuntime()
		if err != nil {
			log.Fatalf("starting %s: %v", app, err)
		}
		compare, _ := cmd.Flags().GetBool("compare")
		showJobDetail(context.Background(), rt, args[0], compare)
	},
}

func init() {
	rootCmd.AddCommand(jobCmd)
	jobCmd.Flags().BoolP("compare", "c", false, "run a full comparison against your resume")
}

func showJobDetail(ctx context.Context, rt *runtime, jobID string, compare bool) {
	controller := detail.NewJob(detail.Deps{
		Matcher:  rt.client,
		Profiles: rt.client,
		Store:    rt.store,
		Logger:   rt.logger,
	})

	details, err := rt.client.GetJobDetails(ctx, jobID)
	if err != nil {
		rt.logger.Warn("loading job details", zap.Error(err))
	} else {
		printJobHeader(details.Title, details.Company, details.Location, details.Remote,
			details.Level, details.Skills, details.Description)
	}

	view := controller.Load(ctx, jobID)

	if compare && view.Analysis == nil {
		fresh, err := controller.RequestComparison(ctx, jobID)
		if err != nil {
			rt.logger.Warn("requesting comparison", zap.Error(err))
			view.BreakdownUnavailable = true
		} else {
			view = fresh
		}
	}

	printView(view)
}

func printJobHeader(title, company, location string, remote bool, level string, skills []string, description string) {
	fmt.Printf("%s at %s\n", title, company)
	if location != "" {
		where := location
		if remote {
			where += " (remote)"
		}
		fmt.Printf("Location: %s\n", where)
	}
	if level != "" {
		fmt.Printf("Level: %s\n", level)
	}
	if len(skills) > 0 {
		fmt.Printf("Skills: %s\n", strings.Join(skills, ", "))
	}
	if description != "" {
		fmt.Println(description)
	}
	fmt.Println()
}
