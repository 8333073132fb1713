package smarthire

import (
	"context"
	"fmt"
)

// JobDetails is the posting as shown on the job detail page.
type JobDetails struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Company     string   `json:"company"`
	Skills      []string `json:"skills"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Remote      bool     `json:"remote"`
	Experience  int      `json:"experience"`
	Level       string   `json:"level"`
	Posted      string   `json:"posted"`
}

// CandidateDetails is the profile as shown on the candidate detail page.
type CandidateDetails struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Title      string   `json:"title"`
	Location   string   `json:"location"`
	Experience int      `json:"experience"`
	Skills     []string `json:"skills"`
	Level      string   `json:"level"`
	CVSummary  string   `json:"cvSummary"`
}

// RecruiterJob is one of the session's own postings, selectable as the
// scoring subject for candidate matching.
type RecruiterJob struct {
	ID     string `mapstructure:"id"`
	Title  string `mapstructure:"title"`
	Active bool   `mapstructure:"active"`
}

// GetMyJobs lists the recruiter's own postings.
func (c *Client) GetMyJobs(ctx context.Context) ([]RecruiterJob, error) {
	var raw []map[string]any
	if err := c.getJSON(ctx, c.APIURL+"/recruiter/jobs", &raw); err != nil {
		return nil, fmt.Errorf("recruiter jobs: %w", err)
	}

	jobs := make([]RecruiterJob, 0, len(raw))
	for _, item := range raw {
		jobs = append(jobs, RecruiterJob{
			ID:     valueAsString(firstOf(item, "id", "job_id", "id_offre")),
			Title:  valueAsString(firstOf(item, "title", "titre")),
			Active: valueAsBool(firstOf(item, "active", "est_active")),
		})
	}

	return jobs, nil
}

func firstOf(raw map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func (c *Client) GetJobDetails(ctx context.Context, jobID string) (*JobDetails, error) {
	var details JobDetails
	url := fmt.Sprintf("%s/matching/job/%s", c.APIURL, jobID)
	if err := c.getJSON(ctx, url, &details); err != nil {
		return nil, fmt.Errorf("job details: %w", err)
	}

	if details.ID == "" {
		details.ID = jobID
	}
	return &details, nil
}

func (c *Client) GetCandidateDetails(ctx context.Context, resumeID string) (*CandidateDetails, error) {
	var details CandidateDetails
	url := fmt.Sprintf("%s/matching/candidate/%s", c.APIURL, resumeID)
	if err := c.getJSON(ctx, url, &details); err != nil {
		return nil, fmt.Errorf("candidate details: %w", err)
	}

	if details.ID == "" {
		details.ID = resumeID
	}
	return &details, nil
}
