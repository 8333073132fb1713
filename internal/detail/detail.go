// Package detail reconstructs scoring context when a detail view is entered.
// The carried provenance is the primary source; everything else is graceful
// degradation, never an error the user sees.
package detail

import (
	"context"

	"github.com/smarthire/smarthire-cli/internal/match"
	"github.com/smarthire/smarthire-cli/internal/smarthire"

	"go.uber.org/zap"
)

type MatchGateway interface {
	GetMatchAnalysis(ctx context.Context, resumeID, jobID string) (*smarthire.MatchAnalysis, error)
}

type ProfileGateway interface {
	MyProfile(ctx context.Context) (exists bool, profileID string, err error)
}

// ContextReader is the read-once side of the context store.
type ContextReader interface {
	Read(ctx context.Context, key string) (*match.Provenance, error)
}

type Deps struct {
	Matcher  MatchGateway
	Profiles ProfileGateway
	Store    ContextReader
	Logger   *zap.Logger
}

// View is everything a detail page needs to render its score surface. The
// three renderable states "no comparison available", "comparison failed" and
// a numeric score are kept distinct: NeedsSubject covers the first,
// BreakdownUnavailable the second, Score the third.
type View struct {
	Subject    match.Subject
	SearchType match.SearchType
	Score      *float64
	Analysis   *smarthire.MatchAnalysis
	// BreakdownUnavailable marks that a direct comparison was attempted and
	// failed; the carried coarse score stays on display.
	BreakdownUnavailable bool
	// RelevanceOnly marks a score derived from filter relevance, not from a
	// profile comparison. It must not be presented as a match claim.
	RelevanceOnly bool
	// NeedsSubject asks the user to supply the missing comparison half
	// (upload a resume, or select a job for matching).
	NeedsSubject bool
}

// fetch runs one direct comparison and folds the outcome into the view:
// success replaces the carried score and breakdown, failure keeps the carried
// score and only marks the breakdown unavailable.
func fetch(ctx context.Context, deps Deps, view *View) {
	analysis, err := deps.Matcher.GetMatchAnalysis(ctx, view.Subject.ResumeID, view.Subject.JobID)
	if err != nil {
		deps.Logger.Warn("direct match analysis failed",
			zap.String("resume_id", view.Subject.ResumeID),
			zap.String("job_id", view.Subject.JobID),
			zap.Error(err),
		)
		view.BreakdownUnavailable = true
		return
	}

	view.Score = &analysis.TotalScore
	view.Analysis = analysis
}
