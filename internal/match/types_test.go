package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForExperience(t *testing.T) {
	cases := map[int]string{
		0:  "Junior",
		1:  "Junior",
		2:  "Intermediate",
		4:  "Intermediate",
		5:  "Senior",
		7:  "Senior",
		8:  "Expert",
		15: "Expert",
	}

	for years, want := range cases {
		assert.Equal(t, want, LevelForExperience(years), "years=%d", years)
	}
}

func TestScoreLabel(t *testing.T) {
	cases := map[float64]string{
		95: "Excellent",
		90: "Excellent",
		80: "Very good",
		75: "Very good",
		60: "Good",
		45: "Average",
		40: "Average",
		39: "Weak",
		0:  "Weak",
	}

	for s, want := range cases {
		assert.Equal(t, want, ScoreLabel(s), "score=%v", s)
	}
}

func TestAverageScoreSkipsUnscored(t *testing.T) {
	items := []Item{
		{ID: "a", Score: score(80)},
		{ID: "b", Score: score(70)},
		{ID: "c"},
		{ID: "d", Score: score(0), Failed: true},
	}

	assert.Equal(t, 75, AverageScore(items))
}

func TestAverageScoreEmpty(t *testing.T) {
	assert.Equal(t, 0, AverageScore(nil))
	assert.Equal(t, 0, AverageScore([]Item{{ID: "a"}}))
}

func TestSubjectComplete(t *testing.T) {
	assert.False(t, Subject{}.Complete())
	assert.False(t, Subject{ResumeID: "cv-1"}.Complete())
	assert.False(t, Subject{JobID: "job-1"}.Complete())
	assert.True(t, Subject{ResumeID: "cv-1", JobID: "job-1"}.Complete())
}

func TestSearchTypeProfileBased(t *testing.T) {
	assert.True(t, SearchTypeCVBased.ProfileBased())
	assert.True(t, SearchTypeJobBased.ProfileBased())
	assert.False(t, SearchTypeSimple.ProfileBased())
	assert.False(t, SearchType("").ProfileBased())
}
