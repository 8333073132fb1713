package match

import "time"

// Target selects which collection a search runs against.
type Target string

const (
	TargetJobs Target = "jobs"
	TargetCVs  Target = "cvs"
)

// Mode is the retrieval strategy requested from the search backend.
type Mode string

const (
	ModeAuto    Mode = "auto"
	ModeBoolean Mode = "boolean"
	ModeVector  Mode = "vector"
	ModeHybrid  Mode = "hybrid"
)

// SearchType records how a displayed score was produced. A simple score is
// derived from filter relevance only; cv_based and job_based scores come from
// an actual profile-to-posting comparison.
type SearchType string

const (
	SearchTypeSimple   SearchType = "simple"
	SearchTypeCVBased  SearchType = "cv_based"
	SearchTypeJobBased SearchType = "job_based"
)

// ProfileBased reports whether the score came from a real profile comparison.
func (t SearchType) ProfileBased() bool {
	return t == SearchTypeCVBased || t == SearchTypeJobBased
}

// Subject is the (resume, job) pair being compared. A listing fixes one half
// and varies the other: the candidate listing fixes ResumeID, the recruiter
// listing fixes JobID.
type Subject struct {
	ResumeID string
	JobID    string
}

// Complete reports whether both halves of the pair are known.
func (s Subject) Complete() bool {
	return s.ResumeID != "" && s.JobID != ""
}

// Item is a search result normalized at the gateway boundary, optionally
// carrying a match score. A nil Score means "not computed" or "not applicable";
// it must never be folded into 0, since 0 is a legitimate poor-match score.
type Item struct {
	ID         string
	Name       string
	Title      string
	Company    string
	Location   string
	Remote     bool
	Experience int
	Skills     []string
	Summary    string
	Posted     string

	Score *float64
	// Failed marks an item whose scoring call was attempted and failed. The
	// score is a visible 0 in that case, not a real comparison result.
	Failed bool
}

// Provenance describes how a currently-displayed score was produced, for
// handoff from a listing to the detail view it links to.
type Provenance struct {
	SearchType SearchType `json:"search_type"`
	ResumeID   string     `json:"resume_id,omitempty"`
	JobID      string     `json:"job_id,omitempty"`
	Score      *float64   `json:"score,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Subject returns the id pair the provenance was computed for.
func (p Provenance) Subject() Subject {
	return Subject{ResumeID: p.ResumeID, JobID: p.JobID}
}

// Filters narrows a search request. Experience bounds are inclusive years.
type Filters struct {
	Location      string   `json:"location,omitempty"`
	ExperienceMin int      `json:"experience_min"`
	ExperienceMax int      `json:"experience_max"`
	Skills        []string `json:"skills,omitempty"`
	Operator      string   `json:"booleanOperator,omitempty"`
	Remote        bool     `json:"remote,omitempty"`
}

// SearchRequest is immutable per search invocation.
type SearchRequest struct {
	Query   string  `json:"query"`
	Filters Filters `json:"filters"`
	Target  Target  `json:"target"`
	Mode    Mode    `json:"mode"`
	Limit   int     `json:"limit,omitempty"`
}

// ResultPage is one ranked page of normalized results.
type ResultPage struct {
	Items    []Item
	Total    int
	ModeUsed Mode
}

// LevelForExperience maps years of experience to the display level used by
// candidate summaries.
func LevelForExperience(years int) string {
	switch {
	case years < 2:
		return "Junior"
	case years < 5:
		return "Intermediate"
	case years < 8:
		return "Senior"
	default:
		return "Expert"
	}
}

// ScoreLabel maps a 0-100 score to its display band.
func ScoreLabel(score float64) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 75:
		return "Very good"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Average"
	default:
		return "Weak"
	}
}

// AverageScore returns the rounded mean over items with a positive score.
// Unscored and failed items do not contribute.
func AverageScore(items []Item) int {
	sum := 0.0
	n := 0
	for _, item := range items {
		if item.Score != nil && *item.Score > 0 {
			sum += *item.Score
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return int(sum/float64(n) + 0.5)
}
