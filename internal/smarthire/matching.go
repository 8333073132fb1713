package smarthire

import (
	"context"
	"fmt"
)

// MatchAnalysis is the server-computed comparison between one resume and one
// job posting. The scoring formula is owned by the backend and opaque here.
type MatchAnalysis struct {
	TotalScore     float64         `json:"totalScore"`
	ScoreBreakdown []BreakdownItem `json:"scoreBreakdown"`
	MissingSkills  []SkillGap      `json:"missingSkills"`
	MatchingSkills []string        `json:"matchingSkills"`
	Recommendation string          `json:"recommendation"`
}

type BreakdownItem struct {
	Category     string  `json:"category"`
	Score        float64 `json:"score"`
	Contribution float64 `json:"contribution"`
	Detail       string  `json:"detail"`
}

type SkillGap struct {
	Name          string   `json:"name"`
	RequiredLevel float64  `json:"requiredLevel"`
	CurrentLevel  float64  `json:"currentLevel"`
	ImpactPercent float64  `json:"impactPercent"`
	Suggestions   []string `json:"suggestions"`
}

// GetMatchAnalysis fetches the full pairwise comparison. Each call is bounded
// by MatchTimeout so a slow backend cannot stall a whole enrichment chunk.
func (c *Client) GetMatchAnalysis(ctx context.Context, resumeID, jobID string) (*MatchAnalysis, error) {
	ctx, cancel := context.WithTimeout(ctx, c.MatchTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/matching/cv/%s/job/%s", c.APIURL, resumeID, jobID)

	var analysis MatchAnalysis
	if err := c.getJSON(ctx, url, &analysis); err != nil {
		return nil, fmt.Errorf("match analysis: %w", err)
	}

	return &analysis, nil
}

// MatchScore implements the enricher's Scorer with just the total score.
func (c *Client) MatchScore(ctx context.Context, resumeID, jobID string) (float64, error) {
	analysis, err := c.GetMatchAnalysis(ctx, resumeID, jobID)
	if err != nil {
		return 0, err
	}

	return analysis.TotalScore, nil
}
