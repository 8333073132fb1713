package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/smarthire/smarthire-cli/internal/enrich"
	"github.com/smarthire/smarthire-cli/internal/listing"
	"github.com/smarthire/smarthire-cli/internal/match"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	PromptChangeSort  = "Change sort order"
	PromptClearScores = "Stop matching against my resume"
	PromptExit        = "Exit"
)

var sortChoices = []string{
	string(match.OrderNone),
	string(match.OrderScoreDesc),
	string(match.OrderScoreAsc),
	string(match.OrderByExperience),
}

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Search job postings and see how well they match your resume",
	Run: func(cmd *cobra.Command, _ []string) {
		runJobs(cmd)
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)

	jobsCmd.Flags().StringP("query", "q", "", "free-text search query (overrides the config)")
	jobsCmd.Flags().String("mode", "", "search mode: auto, boolean, vector or hybrid")
	jobsCmd.Flags().String("sort", "", "sort order: none, score-desc, score-asc or experience")
	jobsCmd.Flags().IntP("limit", "n", 0, "maximum number of results")
	jobsCmd.Flags().Bool("no-matching", false, "plain search, do not score results against the resume")
}

func runJobs(cmd *cobra.Command) {
	ctx := context.Background()

	rt, err := newRuntime()
	if err != nil {
		log.Fatalf("starting %s: %v", app, err)
	}
	logger := rt.logger

	controller := listing.New(match.TargetJobs, listing.Deps{
		Search:   rt.client,
		Enricher: enrich.New(rt.client, logger),
		Store:    rt.store,
		Logger:   logger,
	}, renderProgress(logger))

	noMatching, _ := cmd.Flags().GetBool("no-matching")
	if !noMatching {
		bindResume(ctx, rt, controller)
	}

	req := rt.config.Search.request(match.TargetJobs)
	applySearchFlags(cmd, req)
	applySortFlag(cmd, rt.config, controller)

	logger.Info("starting the search", zap.String("query", req.Query), zap.String("mode", string(req.Mode)))

	if err := controller.Search(ctx, req); err != nil {
		logger.Fatal("search failed", zap.Error(err))
	}

	reportListing(controller)
	if controller.Total() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs found"))
		return
	}

	printItems(match.TargetJobs, controller.Items(), controller.Busy())

	for {
		items := controller.Items()
		labels := make([]string, 0, len(items)+3)
		for _, item := range items {
			labels = append(labels, itemLabel(match.TargetJobs, item))
		}
		labels = append(labels, PromptChangeSort, PromptClearScores, PromptExit)

		prompt := promptui.Select{
			Label: "Open a job",
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
			printItems(match.TargetJobs, controller.Items(), controller.Busy())
		case PromptClearScores:
			controller.ClearSubject()
			printItems(match.TargetJobs, controller.Items(), controller.Busy())
		default:
			item := items[idx]
			key, err := controller.OpenDetail(item)
			if err != nil {
				logger.Warn("saving scoring context", zap.Error(err))
			} else {
				logger.Debug("scoring context written", zap.String("key", key))
			}
			showJobDetail(ctx, rt, item.ID, false)
		}
	}
}

// bindResume resolves the resume half of the scoring subject: an explicitly
// configured id wins, otherwise the profile check decides. A failed check
// degrades the listing to the distinct "enrichment unavailable" state rather
// than per-item zeros.
func bindResume(ctx context.Context, rt *runtime, controller *listing.Controller) {
	resumeID := rt.config.Matching.ResumeID
	if resumeID == "" {
		exists, id, err := rt.client.MyProfile(ctx)
		if err != nil {
			controller.BindSubjectFailed(err)
			return
		}
		if !exists {
			rt.logger.Info("no resume on file, listing without match scores")
			return
		}
		resumeID = id
	}

	if err := controller.BindSubject(ctx, match.Subject{ResumeID: resumeID}); err != nil {
		rt.logger.Warn("binding resume for matching", zap.Error(err))
		return
	}

	if err := rt.store.RecordProfileFlags(resumeID, match.SearchTypeCVBased); err != nil {
		rt.logger.Debug("recording profile flags", zap.Error(err))
	}
}

func renderProgress(logger *zap.Logger) func(items []match.Item) {
	return func(items []match.Item) {
		scored := 0
		for _, item := range items {
			if item.Score != nil {
				scored++
			}
		}
		logger.Info("match scores updated", zap.Int("scored", scored), zap.Int("total", len(items)))
	}
}

func applySearchFlags(cmd *cobra.Command, req *match.SearchRequest) {
	if query, _ := cmd.Flags().GetString("query"); query != "" {
		req.Query = query
	}
	if mode, _ := cmd.Flags().GetString("mode"); mode != "" {
		req.Mode = match.Mode(mode)
	}
	if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
		req.Limit = limit
	}
}

func applySortFlag(cmd *cobra.Command, config *Config, controller *listing.Controller) {
	order := config.Sort
	if flag, _ := cmd.Flags().GetString("sort"); flag != "" {
		order = flag
	}
	if !match.ValidOrder(order) {
		log.Fatalf("unknown sort order: %s", order)
	}
	controller.SetOrder(match.Order(order))
}

func promptSortOrder(controller *listing.Controller) {
	prompt := promptui.Select{
		Label: "Sort order",
		Items: sortChoices,
	}
	if _, choice, err := prompt.Run(); err == nil {
		controller.SetOrder(match.Order(choice))
	}
}

func reportListing(controller *listing.Controller) {
	if controller.EnrichmentUnavailable() {
		fmt.Println("Match scoring is unavailable right now; showing results without scores.")
	}

	items := controller.Items()
	if avg := match.AverageScore(items); avg > 0 {
		fmt.Printf("Found %d result(s), mode %s, average match %d%%\n",
			controller.Total(), controller.ModeUsed(), avg)
		return
	}
	fmt.Printf("Found %d result(s), mode %s\n", controller.Total(), controller.ModeUsed())
}
