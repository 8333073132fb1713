// Package listing drives one search listing: issue a search, decide whether
// the results get enriched with match scores, enrich in rate-limited batches,
// sort, and hand provenance to the detail view on navigation.
package listing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/smarthire/smarthire-cli/internal/enrich"
	"github.com/smarthire/smarthire-cli/internal/match"
	"github.com/smarthire/smarthire-cli/internal/scorectx"

	"go.uber.org/zap"
)

// State names the controller's position in its lifecycle. Enriching behaves
// like ready with a busy flag: partial results are already visible.
type State string

const (
	StateIdle      State = "idle"
	StateSearching State = "searching"
	StateEnriching State = "enriching"
	StateReady     State = "ready"
	StateError     State = "error"
)

type SearchGateway interface {
	AdvancedSearch(ctx context.Context, req *match.SearchRequest) (*match.ResultPage, error)
}

// ProvenanceWriter is the slice of the context store a listing needs.
type ProvenanceWriter interface {
	Write(key string, p match.Provenance) error
}

type Deps struct {
	Search   SearchGateway
	Enricher *enrich.Enricher
	Store    ProvenanceWriter
	Logger   *zap.Logger
}

type Controller struct {
	deps   Deps
	target match.Target

	mu             sync.Mutex
	state          State
	busy           bool
	unavailable    bool
	items          []match.Item
	total          int
	modeUsed       match.Mode
	subject        match.Subject
	scoringEnabled bool
	subjectErr     error
	order          match.Order
	// generation is captured at dispatch time and checked at resolution time
	// so a slow stale enrichment can never overwrite fresher results.
	generation uint64
	render     func(items []match.Item)
}

// New builds a controller for one listing. render, when set, is invoked with
// a sorted snapshot every time partial or final results become visible.
func New(target match.Target, deps Deps, render func(items []match.Item)) *Controller {
	return &Controller{
		deps:   deps,
		target: target,
		state:  StateIdle,
		order:  match.OrderNone,
		render: render,
	}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether an enrichment is still in flight. The UI treats
// "ready with some scores pending" as enriching based on this flag, not by
// inspecting scores.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

// EnrichmentUnavailable reports that the last search could not start
// enrichment at all (e.g. subject resolution failed). Distinct from items
// that individually failed to score.
func (c *Controller) EnrichmentUnavailable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unavailable
}

// Items returns the current collection under the selected sort order.
func (c *Controller) Items() []match.Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return match.Sort(c.items, c.order)
}

func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

func (c *Controller) ModeUsed() match.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modeUsed
}

func (c *Controller) SetOrder(order match.Order) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order = order
}

// BindSubject binds the scoring subject half this listing compares against.
// When results are already on screen the list is re-enriched in place; the
// search itself is not re-issued. Rebinding while an enrichment is in flight
// invalidates it: the old subject's scores are discarded on arrival and the
// new subject is scored instead.
func (c *Controller) BindSubject(ctx context.Context, subject match.Subject) error {
	c.mu.Lock()
	c.scoringEnabled = true
	c.subject = subject
	c.subjectErr = nil
	c.unavailable = false

	if len(c.items) == 0 || (c.state != StateReady && c.state != StateEnriching) {
		c.mu.Unlock()
		return nil
	}

	c.generation++
	gen := c.generation
	c.state = StateEnriching
	c.busy = true
	items := snapshot(c.items)
	c.mu.Unlock()

	return c.runEnrichment(ctx, gen, items, subject)
}

// BindSubjectFailed records that subject resolution failed before any scoring
// could begin. The next search degrades to "no scores" with the distinct
// enrichment-unavailable signal instead of per-item failures.
func (c *Controller) BindSubjectFailed(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scoringEnabled = true
	c.subject = match.Subject{}
	c.subjectErr = err
}

// ClearSubject removes the scoring subject, e.g. after the user deletes the
// resume. Scores are cleared immediately and the listing stays ready; any
// in-flight enrichment becomes stale.
func (c *Controller) ClearSubject() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.scoringEnabled = false
	c.subject = match.Subject{}
	c.subjectErr = nil
	c.generation++
	c.busy = false
	for i := range c.items {
		c.items[i].Score = nil
		c.items[i].Failed = false
	}
	if c.state == StateEnriching {
		c.state = StateReady
	}
}

// Search issues one search and, when a scoring subject is bound, enriches the
// results. Changing the query or filters always goes through here: stale
// results are never re-enriched in place.
func (c *Controller) Search(ctx context.Context, req *match.SearchRequest) error {
	c.mu.Lock()
	c.generation++
	gen := c.generation
	c.state = StateSearching
	c.unavailable = false
	c.busy = false
	c.mu.Unlock()

	page, err := c.deps.Search.AdvancedSearch(ctx, req)
	if err != nil {
		c.mu.Lock()
		if gen == c.generation {
			c.state = StateError
			c.items = nil
			c.total = 0
		}
		c.mu.Unlock()
		return fmt.Errorf("search: %w", err)
	}

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		c.deps.Logger.Debug("discarding stale search results", zap.Uint64("generation", gen))
		return nil
	}

	c.items = page.Items
	c.total = page.Total
	c.modeUsed = page.ModeUsed

	if c.scoringEnabled && c.subjectErr != nil {
		c.unavailable = true
		c.state = StateReady
		c.mu.Unlock()
		c.deps.Logger.Warn("enrichment unavailable, rendering without scores",
			zap.Error(c.subjectErr))
		c.publish(gen)
		return nil
	}

	if !c.scoringEnabled || c.fixedHalfLocked() == "" {
		c.state = StateReady
		c.mu.Unlock()
		c.publish(gen)
		return nil
	}

	c.state = StateEnriching
	c.busy = true
	items := snapshot(c.items)
	subject := c.subject
	c.mu.Unlock()

	return c.runEnrichment(ctx, gen, items, subject)
}

func (c *Controller) runEnrichment(ctx context.Context, gen uint64, items []match.Item, subject match.Subject) error {
	out, err := c.deps.Enricher.Enrich(ctx, enrich.Request{
		Items:   items,
		Subject: subject,
		Target:  c.target,
		Enabled: true,
		Publish: func(prefix []match.Item) {
			c.mu.Lock()
			if gen != c.generation {
				c.mu.Unlock()
				return
			}
			copy(c.items[:len(prefix)], prefix)
			c.mu.Unlock()
			c.publish(gen)
		},
	})

	c.mu.Lock()
	if gen != c.generation {
		c.mu.Unlock()
		c.deps.Logger.Debug("discarding stale enrichment results", zap.Uint64("generation", gen))
		return nil
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		c.deps.Logger.Debug("enrichment interrupted", zap.Error(err))
	}

	c.items = out
	c.busy = false
	c.state = StateReady
	c.mu.Unlock()

	c.publish(gen)
	return nil
}

// OpenDetail records the provenance for one listing item immediately before
// navigating to its detail view: exactly the score shown, the active subject,
// and whether it came from a profile comparison. Returns the navigation key.
func (c *Controller) OpenDetail(item match.Item) (string, error) {
	c.mu.Lock()
	subject := c.subject
	profiled := c.scoringEnabled && c.subjectErr == nil && c.fixedHalfLocked() != ""
	c.mu.Unlock()

	var key string
	p := match.Provenance{
		SearchType: match.SearchTypeSimple,
		Score:      item.Score,
	}

	switch c.target {
	case match.TargetCVs:
		key = scorectx.CandidateKey(item.ID)
		p.ResumeID = item.ID
		p.JobID = subject.JobID
		if profiled {
			p.SearchType = match.SearchTypeJobBased
		}
	default:
		key = scorectx.JobKey(item.ID)
		p.JobID = item.ID
		p.ResumeID = subject.ResumeID
		if profiled {
			p.SearchType = match.SearchTypeCVBased
		}
	}

	if err := c.deps.Store.Write(key, p); err != nil {
		return "", fmt.Errorf("writing scoring context: %w", err)
	}

	return key, nil
}

func (c *Controller) publish(gen uint64) {
	c.mu.Lock()
	if c.render == nil || gen != c.generation {
		c.mu.Unlock()
		return
	}
	sorted := match.Sort(c.items, c.order)
	render := c.render
	c.mu.Unlock()

	render(sorted)
}

// fixedHalfLocked returns the subject half this listing holds constant.
// Callers must hold c.mu.
func (c *Controller) fixedHalfLocked() string {
	if c.target == match.TargetCVs {
		return c.subject.JobID
	}
	return c.subject.ResumeID
}

func snapshot(items []match.Item) []match.Item {
	out := make([]match.Item, len(items))
	copy(out, items)
	return out
}
