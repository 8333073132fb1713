package detail

import (
	"context"
	"errors"
	"fmt"

	"github.com/smarthire/smarthire-cli/internal/match"
	"github.com/smarthire/smarthire-cli/internal/scorectx"

	"go.uber.org/zap"
)

// JobController backs the job detail page a candidate navigates to from the
// jobs listing.
type JobController struct {
	deps Deps
}

func NewJob(deps Deps) *JobController {
	return &JobController{deps: deps}
}

// Load reconstructs the scoring context for one job. The store's fallback
// chain (structured entry, legacy flags, authoritative profile re-check) runs
// inside Read; a miss degrades to a scoreless view with a call to action.
func (c *JobController) Load(ctx context.Context, jobID string) *View {
	view := &View{
		Subject:    match.Subject{JobID: jobID},
		SearchType: match.SearchTypeSimple,
	}

	p, err := c.deps.Store.Read(ctx, scorectx.JobKey(jobID))
	if err != nil {
		if !errors.Is(err, scorectx.ErrNotFound) {
			c.deps.Logger.Warn("reading scoring context", zap.Error(err))
		}
		view.NeedsSubject = true
		return view
	}

	view.Subject = p.Subject()
	// A provenance adopted from the profile re-check carries no job half.
	view.Subject.JobID = jobID
	view.SearchType = p.SearchType
	view.Score = p.Score

	if !p.SearchType.ProfileBased() {
		// A relevance-only score is shown as such; a full comparison runs
		// only on explicit request.
		view.RelevanceOnly = true
		return view
	}

	// The carried score is displayed as-is. Only a pair that was never
	// computed (deep link, or a provenance adopted from the re-check) earns
	// one direct gateway call.
	if p.Score == nil && view.Subject.Complete() {
		fetch(ctx, c.deps, view)
	}

	return view
}

// RequestComparison runs the full comparison the user explicitly asked for on
// a relevance-only view, re-resolving the missing resume half first.
func (c *JobController) RequestComparison(ctx context.Context, jobID string) (*View, error) {
	exists, profileID, err := c.deps.Profiles.MyProfile(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving profile: %w", err)
	}

	view := &View{
		Subject:    match.Subject{ResumeID: profileID, JobID: jobID},
		SearchType: match.SearchTypeCVBased,
	}
	if !exists {
		view.SearchType = match.SearchTypeSimple
		view.NeedsSubject = true
		return view, nil
	}

	analysis, err := c.deps.Matcher.GetMatchAnalysis(ctx, profileID, jobID)
	if err != nil {
		return nil, fmt.Errorf("match analysis: %w", err)
	}

	view.Score = &analysis.TotalScore
	view.Analysis = analysis
	return view, nil
}
