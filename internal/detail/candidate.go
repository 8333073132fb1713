package detail

import (
	"context"
	"errors"
	"fmt"

	"github.com/smarthire/smarthire-cli/internal/match"
	"github.com/smarthire/smarthire-cli/internal/scorectx"

	"go.uber.org/zap"
)

// CandidateController backs the candidate detail page a recruiter navigates
// to from the candidates listing.
type CandidateController struct {
	deps Deps
}

func NewCandidate(deps Deps) *CandidateController {
	return &CandidateController{deps: deps}
}

// Load mirrors the job-side controller with the subject halves swapped: the
// resume id comes from the page, the job half from the carried provenance.
// Without a job half no comparison is possible and the view asks the
// recruiter to select a job for matching.
func (c *CandidateController) Load(ctx context.Context, resumeID string) *View {
	view := &View{
		Subject:    match.Subject{ResumeID: resumeID},
		SearchType: match.SearchTypeSimple,
	}

	p, err := c.deps.Store.Read(ctx, scorectx.CandidateKey(resumeID))
	if err != nil {
		if !errors.Is(err, scorectx.ErrNotFound) {
			c.deps.Logger.Warn("reading scoring context", zap.Error(err))
		}
		view.NeedsSubject = true
		return view
	}

	view.Subject = p.Subject()
	view.Subject.ResumeID = resumeID
	view.SearchType = p.SearchType
	view.Score = p.Score

	if !p.SearchType.ProfileBased() {
		view.RelevanceOnly = true
		return view
	}

	if !view.Subject.Complete() {
		// Fallback evidence without a job half (e.g. flags written by the
		// candidate flow) cannot drive a comparison on this page.
		view.Score = nil
		view.SearchType = match.SearchTypeSimple
		view.NeedsSubject = true
		return view
	}

	if p.Score == nil {
		fetch(ctx, c.deps, view)
	}

	return view
}

// RequestComparison runs an explicitly requested comparison against a job the
// recruiter selected.
func (c *CandidateController) RequestComparison(ctx context.Context, resumeID, jobID string) (*View, error) {
	if jobID == "" {
		return nil, fmt.Errorf("a job must be selected for matching")
	}

	analysis, err := c.deps.Matcher.GetMatchAnalysis(ctx, resumeID, jobID)
	if err != nil {
		return nil, fmt.Errorf("match analysis: %w", err)
	}

	return &View{
		Subject:    match.Subject{ResumeID: resumeID, JobID: jobID},
		SearchType: match.SearchTypeJobBased,
		Score:      &analysis.TotalScore,
		Analysis:   analysis,
	}, nil
}
