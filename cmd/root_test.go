package cmd

import (
	"testing"

	"github.com/smarthire/smarthire-cli/internal/match"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRequestDefaults(t *testing.T) {
	c := &SearchConfig{Text: "backend"}

	req := c.request(match.TargetJobs)

	assert.Equal(t, "backend", req.Query)
	assert.Equal(t, match.TargetJobs, req.Target)
	assert.Equal(t, match.ModeAuto, req.Mode)
	assert.Equal(t, "AND", req.Filters.Operator)
	assert.Equal(t, 10, req.Filters.ExperienceMax)
}

func TestApplyPresetBuiltIn(t *testing.T) {
	c := &SearchConfig{Skills: []string{"cobol"}, Operator: "AND"}
	req := c.request(match.TargetCVs)

	require.NoError(t, c.applyPreset(req, "devops"))

	assert.Equal(t, []string{"docker", "kubernetes", "aws"}, req.Filters.Skills)
	assert.Equal(t, "OR", req.Filters.Operator)
}

func TestApplyPresetConfigOverridesBuiltIn(t *testing.T) {
	c := &SearchConfig{Presets: map[string][]string{
		"devops": {"terraform", "ansible"},
	}}
	req := c.request(match.TargetCVs)

	require.NoError(t, c.applyPreset(req, "devops"))

	assert.Equal(t, []string{"terraform", "ansible"}, req.Filters.Skills)
	assert.Equal(t, "OR", req.Filters.Operator)
}

func TestApplyPresetUnknown(t *testing.T) {
	c := &SearchConfig{}
	req := c.request(match.TargetCVs)

	err := c.applyPreset(req, "quantum")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantum")
}
