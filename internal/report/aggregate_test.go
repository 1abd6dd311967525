package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greenops/carbonscan/internal/detect"
)

func deployment(provider string, env detect.Environment, configType string) detect.EnrichedDeployment {
	return detect.EnrichedDeployment{
		DeploymentCandidate: detect.DeploymentCandidate{
			Provider:    provider,
			Environment: env,
			ConfigType:  configType,
		},
	}
}

// TestSummarize groups a mixed batch by provider and environment and
// collects sorted distinct config types.
func TestSummarize(t *testing.T) {
	deployments := []detect.EnrichedDeployment{
		deployment("aws", detect.EnvironmentProduction, "terraform"),
		deployment("aws", detect.EnvironmentDevelopment, "terraform"),
		deployment("gcp", detect.EnvironmentProduction, "terraform"),
		deployment("vercel", detect.EnvironmentUnknown, "vercel"),
		deployment("aws", detect.EnvironmentProduction, "ci-pipeline"),
	}

	summary := Summarize(deployments)

	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, map[string]int{"aws": 3, "gcp": 1, "vercel": 1}, summary.ByProvider)
	assert.Equal(t, map[string]int{
		"production":  3,
		"development": 1,
		"unknown":     1,
	}, summary.ByEnvironment)
	assert.Equal(t, []string{"ci-pipeline", "terraform", "vercel"}, summary.ConfigTypes)
}

// TestSummarize_Empty verifies the zero batch produces empty, non-nil
// collections so the JSON payload stays well-shaped.
func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil)

	assert.Zero(t, summary.Total)
	assert.NotNil(t, summary.ByProvider)
	assert.Empty(t, summary.ByProvider)
	assert.NotNil(t, summary.ByEnvironment)
	assert.NotNil(t, summary.ConfigTypes)
	assert.Empty(t, summary.ConfigTypes)
}
