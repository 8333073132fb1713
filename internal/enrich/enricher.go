package enrich

import (
	"context"

	"github.com/smarthire/smarthire-cli/internal/match"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BatchSize caps the number of scoring calls in flight at once. Chunks run
// strictly in input order; only calls within a chunk are concurrent.
const BatchSize = 3

// Scorer computes the pairwise compatibility score between a resume and a
// job posting. Implementations must bound each call with a timeout; a timeout
// is treated like any other failure.
type Scorer interface {
	MatchScore(ctx context.Context, resumeID, jobID string) (float64, error)
}

// Request describes one enrichment run over a fetched result list.
type Request struct {
	Items   []match.Item
	Subject match.Subject
	// Target tells which half of the subject varies per item: for jobs the
	// resume id is fixed and each item supplies the job id, for cvs the
	// inverse.
	Target  match.Target
	Enabled bool
	// Publish, when set, receives the partially-scored prefix after each
	// chunk settles, so callers can show early results while later chunks
	// are still in flight.
	Publish func(items []match.Item)
}

type Enricher struct {
	scorer    Scorer
	logger    *zap.Logger
	batchSize int
}

func New(scorer Scorer, logger *zap.Logger) *Enricher {
	return &Enricher{
		scorer:    scorer,
		logger:    logger,
		batchSize: BatchSize,
	}
}

// Enrich scores every item of the request against the fixed subject half. The
// input slice is never mutated and the output is index-aligned with it
// regardless of per-call completion order.
//
// When scoring is disabled or the fixed subject half is absent, the list is
// returned with every score nil and no scoring call is made. That fast path
// is part of the contract: the rendering layer distinguishes "no comparison
// available" from a numeric score.
//
// A single failed or timed-out call yields a visible 0 for that item, marked
// Failed, without aborting the batch. There is no retry.
func (e *Enricher) Enrich(ctx context.Context, req Request) ([]match.Item, error) {
	out := make([]match.Item, len(req.Items))
	copy(out, req.Items)
	for i := range out {
		out[i].Score = nil
		out[i].Failed = false
	}

	if !req.Enabled || fixedHalf(req) == "" {
		return out, nil
	}

	for start := 0; start < len(out); start += e.batchSize {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		end := start + e.batchSize
		if end > len(out) {
			end = len(out)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			i := i
			g.Go(func() error {
				resumeID, jobID := pairFor(req, out[i])
				score, err := e.scorer.MatchScore(gctx, resumeID, jobID)
				if err != nil {
					e.logger.Warn("scoring item failed",
						zap.String("resume_id", resumeID),
						zap.String("job_id", jobID),
						zap.Error(err),
					)
					zero := 0.0
					out[i].Score = &zero
					out[i].Failed = true
					return nil
				}

				out[i].Score = &score
				return nil
			})
		}
		// Item failures are swallowed above, so Wait only observes ctx errors.
		g.Wait() //nolint:errcheck

		if req.Publish != nil {
			prefix := make([]match.Item, end)
			copy(prefix, out[:end])
			req.Publish(prefix)
		}
	}

	return out, nil
}

func fixedHalf(req Request) string {
	if req.Target == match.TargetCVs {
		return req.Subject.JobID
	}
	return req.Subject.ResumeID
}

func pairFor(req Request, item match.Item) (resumeID, jobID string) {
	if req.Target == match.TargetCVs {
		return item.ID, req.Subject.JobID
	}
	return req.Subject.ResumeID, item.ID
}
