//go:build integration

// Package integration exercises the full scan pipeline against a realistic
// project tree: directory walk, parser dispatch, grid enrichment,
// recommendations, and persistence.
//
// Run with: go test -tags=integration ./test/integration/... -v
package integration

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenops/carbonscan/internal/detect"
	"github.com/greenops/carbonscan/internal/gridzone"
	"github.com/greenops/carbonscan/internal/recommend"
	"github.com/greenops/carbonscan/internal/report"
)

func writeFixture(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

// buildFixtureRepo lays out a polyglot repository touching every parser
// family plus content the scanner must ignore.
func buildFixtureRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFixture(t, root, "terraform/prod/main.tf", `
provider "aws" {
  region = "ap-south-1"
}
`)
	writeFixture(t, root, "terraform/gcp/main.tf", `
provider "google" {
  project = "demo"
  region  = "europe-north1"
}
`)
	writeFixture(t, root, "terraform/azure/main.tf", `
provider "azurerm" {
  features {}
}

resource "azurerm_resource_group" "rg" {
  location = "swedencentral"
}
`)
	writeFixture(t, root, "services/api/serverless.yml", `
service: api
provider:
  name: aws
  region: eu-west-1
`)
	writeFixture(t, root, ".github/workflows/deploy.yml", `
env:
  AWS_REGION: us-east-1
`)
	writeFixture(t, root, "frontend/vercel.json", `{"name": "frontend", "regions": ["arn1"]}`)
	writeFixture(t, root, "legacy/Procfile", "web: bin/server\n")
	writeFixture(t, root, "edge/wrangler.toml", "name = \"edge-worker\"\n")

	// Noise the scanner must not surface.
	writeFixture(t, root, "node_modules/dep/main.tf", `region = "us-east-1"`)
	writeFixture(t, root, "docs/README.md", "# docs\n")
	writeFixture(t, root, "frontend/package.json", `{"name": "frontend"}`)

	return root
}

// TestScanPipeline_EndToEnd runs scan, summary, recommendations, savings,
// and persistence over one fixture repository.
func TestScanPipeline_EndToEnd(t *testing.T) {
	logger := zerolog.Nop()
	table := gridzone.NewTable(logger)
	scanner := detect.NewScanner(table, logger)
	engine := recommend.NewEngine(table, logger)

	root := buildFixtureRepo(t)
	detections := scanner.ScanDirectory(root)

	// aws tf, gcp tf (+aws parser on the same file), azure tf, serverless,
	// CI workflow, vercel, heroku, cloudflare.
	require.Len(t, detections, 9)

	byProvider := map[string]int{}
	for _, d := range detections {
		byProvider[d.Provider]++
	}
	assert.Equal(t, map[string]int{
		"aws": 4, "gcp": 1, "azure": 1, "vercel": 1, "heroku": 1, "cloudflare": 1,
	}, byProvider)

	for _, d := range detections {
		assert.NotEmpty(t, d.ID)
		assert.NotEmpty(t, d.ConfigFilePath)
		if d.CarbonIntensity != nil {
			assert.GreaterOrEqual(t, *d.CarbonIntensity, 0)
			require.NotNil(t, d.GridZone)
		}
	}

	summary := report.Summarize(detections)
	assert.Equal(t, 9, summary.Total)
	assert.Contains(t, summary.ConfigTypes, "terraform")
	assert.Contains(t, summary.ConfigTypes, "ci-pipeline")

	estimate := engine.CalculatePotentialSavings(detections)
	assert.Greater(t, estimate.TotalKgCO2PerYear, 0.0,
		"the ap-south-1 deployment alone should produce savings")
	require.NotEmpty(t, estimate.Recommendations)
	for _, rec := range estimate.Recommendations {
		assert.Less(t, rec.SuggestedIntensity, rec.CurrentIntensity)
		assert.GreaterOrEqual(t, rec.PotentialSavingsPercent, 0)
		assert.LessOrEqual(t, rec.PotentialSavingsPercent, 100)
	}

	storePath := filepath.Join(t.TempDir(), "detections.jsonl")
	store := report.NewJSONLinesStore(storePath, logger)
	require.NoError(t, store.Save(context.Background(), detections, "fixture", "integration-test"))

	f, err := os.Open(storePath)
	require.NoError(t, err)
	defer f.Close()

	lines := bufio.NewScanner(f)
	require.True(t, lines.Scan())
	var record map[string]any
	require.NoError(t, json.Unmarshal(lines.Bytes(), &record))
	assert.Equal(t, "fixture", record["projectId"])
	assert.False(t, lines.Scan(), "one Save call writes exactly one line")
}

// TestScanPipeline_HighCarbonRecommendation pins the flagship scenario: a
// Mumbai deployment is steered to Stockholm at roughly a 96% reduction.
func TestScanPipeline_HighCarbonRecommendation(t *testing.T) {
	logger := zerolog.Nop()
	table := gridzone.NewTable(logger)
	scanner := detect.NewScanner(table, logger)
	engine := recommend.NewEngine(table, logger)

	root := t.TempDir()
	writeFixture(t, root, "main.tf", `region = "ap-south-1"`)

	detections := scanner.ScanDirectory(root)
	require.Len(t, detections, 1)

	recs := engine.Recommendations(detections)
	require.Len(t, recs, 1)
	assert.Equal(t, "eu-north-1", recs[0].SuggestedRegion)
	assert.Equal(t, 96, recs[0].PotentialSavingsPercent)
}
