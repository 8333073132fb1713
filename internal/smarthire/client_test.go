package smarthire

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/smarthire/smarthire-cli/internal/match"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := New(zap.NewNop(), "test-session")
	c.APIURL = srv.URL
	return c
}

func TestAdvancedSearchNormalizesMixedShapes(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/search/advanced", r.URL.Path)

		cookie, err := r.Cookie("session")
		require.NoError(t, err)
		assert.Equal(t, "test-session", cookie.Value)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.EqualValues(t, 20, req["limit"])

		json.NewEncoder(w).Encode(map[string]any{
			"success":      true,
			"totalResults": 2,
			"modeUsed":     "hybrid",
			"results": []map[string]any{
				{
					"cv_id":             17,
					"nom":               "A. Person",
					"titre_profil":      "Backend developer",
					"annees_experience": 6,
					"localisation":      "Lyon",
					"competences":       []string{"go", "sql"},
					"texte_preview":     "six years of backend work",
				},
				{
					"id":         "cv-9",
					"name":       "B. Person",
					"title":      "Data engineer",
					"experience": 3,
					"location":   "Remote",
					"skills":     []string{"python"},
				},
			},
		})
	})

	c := newTestClient(t, handler)
	page, err := c.AdvancedSearch(context.Background(), &match.SearchRequest{
		Query:  "backend",
		Target: match.TargetCVs,
	})

	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, match.ModeHybrid, page.ModeUsed)
	require.Len(t, page.Items, 2)

	first := page.Items[0]
	assert.Equal(t, "17", first.ID)
	assert.Equal(t, "A. Person", first.Name)
	assert.Equal(t, "Backend developer", first.Title)
	assert.Equal(t, 6, first.Experience)
	assert.Equal(t, "Lyon", first.Location)
	assert.Equal(t, []string{"go", "sql"}, first.Skills)
	assert.Equal(t, "six years of backend work", first.Summary)
	assert.Nil(t, first.Score)

	assert.Equal(t, "cv-9", page.Items[1].ID)
}

func TestAdvancedSearchBackendError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"error":   "index rebuilding",
		})
	})

	c := newTestClient(t, handler)
	_, err := c.AdvancedSearch(context.Background(), &match.SearchRequest{Target: match.TargetJobs})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "index rebuilding")
}

func TestAdvancedSearchBadStatus(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{"error": "database unavailable"})
	})

	c := newTestClient(t, handler)
	_, err := c.AdvancedSearch(context.Background(), &match.SearchRequest{Target: match.TargetJobs})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database unavailable")
}

func TestGetMatchAnalysis(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/matching/cv/cv-1/job/job-2", r.URL.Path)

		json.NewEncoder(w).Encode(map[string]any{
			"totalScore": 72.5,
			"scoreBreakdown": []map[string]any{
				{"category": "skills", "score": 80, "contribution": 32, "detail": "4 of 5 required"},
			},
			"missingSkills": []map[string]any{
				{"name": "kubernetes", "requiredLevel": 3, "currentLevel": 0, "impactPercent": 8},
			},
			"recommendation": "strong fit",
		})
	})

	c := newTestClient(t, handler)
	analysis, err := c.GetMatchAnalysis(context.Background(), "cv-1", "job-2")

	require.NoError(t, err)
	assert.Equal(t, 72.5, analysis.TotalScore)
	require.Len(t, analysis.ScoreBreakdown, 1)
	assert.Equal(t, "skills", analysis.ScoreBreakdown[0].Category)
	require.Len(t, analysis.MissingSkills, 1)
	assert.Equal(t, "kubernetes", analysis.MissingSkills[0].Name)
	assert.Equal(t, "strong fit", analysis.Recommendation)
}

func TestMatchScoreTimesOut(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]any{"totalScore": 50})
	})

	c := newTestClient(t, handler)
	c.MatchTimeout = 20 * time.Millisecond

	_, err := c.MatchScore(context.Background(), "cv-1", "job-1")
	require.Error(t, err)
}

func TestMyProfile(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/cv/me", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"id": 42, "uploaded": true})
	})

	c := newTestClient(t, handler)
	exists, id, err := c.MyProfile(context.Background())

	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, "42", id)
}

func TestMyProfileAbsentIsNotAnError(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	c := newTestClient(t, handler)
	exists, id, err := c.MyProfile(context.Background())

	require.NoError(t, err)
	assert.False(t, exists)
	assert.Empty(t, id)
}

func TestGetMyJobs(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/recruiter/jobs", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]any{
			{"id_offre": 3, "titre": "Backend developer", "est_active": true},
			{"id": "job-9", "title": "Data engineer", "active": false},
			// The legacy tables serialize the flag as a number.
			{"id_offre": 5, "titre": "SRE", "est_active": 1},
			{"id_offre": 6, "titre": "QA", "est_active": 0},
		})
	})

	c := newTestClient(t, handler)
	jobs, err := c.GetMyJobs(context.Background())

	require.NoError(t, err)
	require.Len(t, jobs, 4)
	assert.Equal(t, "3", jobs[0].ID)
	assert.Equal(t, "Backend developer", jobs[0].Title)
	assert.True(t, jobs[0].Active)
	assert.Equal(t, "job-9", jobs[1].ID)
	assert.False(t, jobs[1].Active)
	assert.True(t, jobs[2].Active)
	assert.False(t, jobs[3].Active)
}

func TestNormalizeItemRequiresID(t *testing.T) {
	_, err := normalizeItem(match.TargetJobs, map[string]any{"title": "nameless"})
	require.Error(t, err)
}
