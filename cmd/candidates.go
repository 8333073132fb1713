package cmd

import (
	"context"
	"log"

	"github.com/smarthire/smarthire-cli/internal/enrich"
	"github.com/smarthire/smarthire-cli/internal/listing"
	"github.com/smarthire/smarthire-cli/internal/match"
	"github.com/smarthire/smarthire-cli/internal/smarthire"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	PromptSelectJob       = "Select a job for matching"
	PromptDisableMatching = "Disable matching"
)

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Search candidate profiles and score them against one of your postings",
	Run: func(cmd *cobra.Command, _ []string) {
		runCandidates(cmd)
	},
}

func init() {
	rootCmd.AddCommand(candidatesCmd)

	candidatesCmd.Flags().StringP("query", "q", "", "free-text search query (overrides the config)")
	candidatesCmd.Flags().String("mode", "", "search mode: auto, boolean, vector or hybrid")
	candidatesCmd.Flags().String("sort", "", "sort order: none, score-desc, score-asc or experience")
	candidatesCmd.Flags().IntP("limit", "n", 0, "maximum number of results")
	candidatesCmd.Flags().String("job", "", "job id to match candidates against")
	candidatesCmd.Flags().String("preset", "", "quick-filter skill preset (frontend, backend, devops, data, or from config)")
}

func runCandidates(cmd *cobra.Command) {
	ctx := context.Background()

	rt, err := newRuntime()
	if err != nil {
		log.Fatalf("starting %s: %v", app, err)
	}
	logger := rt.logger

	controller := listing.New(match.TargetCVs, listing.Deps{
		Search:   rt.client,
		Enricher: enrich.New(rt.client, logger),
		Store:    rt.store,
		Logger:   logger,
	}, renderProgress(logger))

	bindJob(ctx, cmd, rt, controller)

	req := rt.config.Search.request(match.TargetCVs)
	applySearchFlags(cmd, req)
	applySortFlag(cmd, rt.config, controller)

	if preset, _ := cmd.Flags().GetString("preset"); preset != "" {
		if err := rt.config.Search.applyPreset(req, preset); err != nil {
			logger.Fatal("applying skills preset", zap.Error(err))
		}
	}

	logger.Info("starting the search", zap.String("query", req.Query), zap.String("mode", string(req.Mode)))

	if err := controller.Search(ctx, req); err != nil {
		logger.Fatal("search failed", zap.Error(err))
	}

	reportListing(controller)
	if controller.Total() == 0 {
		logger.Info("exiting", zap.String("reason", "no candidates found"))
		return
	}

	printItems(match.TargetCVs, controller.Items(), controller.Busy())

	for {
		items := controller.Items()
		labels := make([]string, 0, len(items)+4)
		for _, item := range items {
			labels = append(labels, itemLabel(match.TargetCVs, item))
		}
		labels = append(labels, PromptSelectJob, PromptDisableMatching, PromptChangeSort, PromptExit)

		prompt := promptui.Select{
			Label: "Open a candidate",
			Items: labels,
			Size:  12,
		}
		idx, choice, err := prompt.Run()
		if err != nil {
			return
		}

		switch choice {
		case PromptExit:
			return
		case PromptChangeSort:
			promptSortOrder(controller)
			printItems(match.TargetCVs, controller.Items(), controller.Busy())
		case PromptDisableMatching:
			controller.ClearSubject()
			printItems(match.TargetCVs, controller.Items(), controller.Busy())
		case PromptSelectJob:
			promptJobSubject(ctx, rt, controller)
			printItems(match.TargetCVs, controller.Items(), controller.Busy())
		default:
			item := items[idx]
			key, err := controller.OpenDetail(item)
			if err != nil {
				logger.Warn("saving scoring context", zap.Error(err))
			} else {
				logger.Debug("scoring context written", zap.String("key", key))
			}
			showCandidateDetail(ctx, rt, item.ID, "")
		}
	}
}

// bindJob resolves the job half of the scoring subject. An explicit --job
// flag or configured id wins; otherwise, when matching is enabled, the first
// active posting of the recruiter is used.
func bindJob(ctx context.Context, cmd *cobra.Command, rt *runtime, controller *listing.Controller) {
	jobID, _ := cmd.Flags().GetString("job")
	if jobID == "" {
		jobID = rt.config.Matching.JobID
	}

	if jobID == "" {
		if !rt.config.Matching.Enabled {
			return
		}
		jobs, err := rt.client.GetMyJobs(ctx)
		if err != nil {
			controller.BindSubjectFailed(err)
			return
		}
		jobID = firstActiveJob(jobs)
		if jobID == "" {
			rt.logger.Info("no active posting, listing without match scores")
			return
		}
	}

	if err := controller.BindSubject(ctx, match.Subject{JobID: jobID}); err != nil {
		rt.logger.Warn("binding job for matching", zap.Error(err))
	}
}

func firstActiveJob(jobs []smarthire.RecruiterJob) string {
	for _, job := range jobs {
		if job.Active {
			return job.ID
		}
	}
	return ""
}

// promptJobSubject lets the recruiter pick one of their postings and rebinds
// the listing's scoring subject to it, re-enriching the visible results.
func promptJobSubject(ctx context.Context, rt *runtime, controller *listing.Controller) {
	jobs, err := rt.client.GetMyJobs(ctx)
	if err != nil {
		rt.logger.Warn("listing own postings", zap.Error(err))
		return
	}
	if len(jobs) == 0 {
		rt.logger.Info("no postings to match against")
		return
	}

	labels := make([]string, 0, len(jobs))
	for _, job := range jobs {
		label := job.Title
		if !job.Active {
			label += " (inactive)"
		}
		labels = append(labels, label)
	}

	prompt := promptui.Select{
		Label: "Match candidates against",
		Items: labels,
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return
	}

	if err := controller.BindSubject(ctx, match.Subject{JobID: jobs[idx].ID}); err != nil {
		rt.logger.Warn("binding job for matching", zap.Error(err))
	}
}
