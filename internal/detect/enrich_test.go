package detect

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenops/carbonscan/internal/gridzone"
)

func newTestEnricher(t *testing.T) *Enricher {
	t.Helper()
	return NewEnricher(gridzone.NewTable(zerolog.Nop()), zerolog.Nop())
}

// TestEnrich_MappedRegion verifies a mapped provider/region pair gains a
// grid zone, a rounded intensity, and the gridMapping metadata note.
func TestEnrich_MappedRegion(t *testing.T) {
	enricher := newTestEnricher(t)

	enriched := enricher.Enrich(DeploymentCandidate{
		Name:     "main.tf",
		Provider: "aws",
		Region:   strPtr("eu-north-1"),
	})

	assert.NotEmpty(t, enriched.ID)
	require.NotNil(t, enriched.GridZone)
	assert.Equal(t, "SE", *enriched.GridZone)
	require.NotNil(t, enriched.CarbonIntensity)
	assert.Equal(t, 30, *enriched.CarbonIntensity)

	note, ok := enriched.Metadata["gridMapping"].(GridMappingNote)
	require.True(t, ok, "gridMapping note should be attached on a hit")
	assert.Equal(t, "SE", note.GridZone)
	assert.Equal(t, "Stockholm", note.Location)
	assert.NotEmpty(t, note.Notes)
}

// TestEnrich_Misses verifies every miss shape degrades to nil fields rather
// than erroring: missing region, unmapped region, unknown provider.
func TestEnrich_Misses(t *testing.T) {
	enricher := newTestEnricher(t)

	tests := []struct {
		name      string
		candidate DeploymentCandidate
	}{
		{"nil region", DeploymentCandidate{Provider: "heroku"}},
		{"unmapped region", DeploymentCandidate{Provider: "aws", Region: strPtr("xx-fake-9")}},
		{"unknown provider", DeploymentCandidate{Provider: "nimbus", Region: strPtr("us-east-1")}},
		{"case mismatch is a miss", DeploymentCandidate{Provider: "aws", Region: strPtr("EU-NORTH-1")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			enriched := enricher.Enrich(tt.candidate)
			assert.Nil(t, enriched.GridZone)
			assert.Nil(t, enriched.CarbonIntensity)
			assert.NotEmpty(t, enriched.ID)
		})
	}
}

// TestEnrich_IntensityNonNegative checks the rounded-intensity invariant
// over every mapped provider/region pair in the bundled dataset.
func TestEnrich_IntensityNonNegative(t *testing.T) {
	table := gridzone.NewTable(zerolog.Nop())
	enricher := NewEnricher(table, zerolog.Nop())

	for _, provider := range []string{"aws", "gcp", "azure", "vercel"} {
		for _, m := range table.RegionsForProvider(provider) {
			enriched := enricher.Enrich(DeploymentCandidate{
				Provider: m.Provider,
				Region:   strPtr(m.Region),
			})
			if enriched.CarbonIntensity != nil {
				assert.GreaterOrEqual(t, *enriched.CarbonIntensity, 0,
					"%s/%s intensity must be non-negative", m.Provider, m.Region)
			}
		}
	}
}

// TestEnrich_RoundTrip verifies enrichment followed by a zone intensity
// lookup equals the direct provider/region intensity for every mapping.
func TestEnrich_RoundTrip(t *testing.T) {
	table := gridzone.NewTable(zerolog.Nop())
	enricher := NewEnricher(table, zerolog.Nop())

	for _, provider := range []string{"aws", "gcp", "azure", "vercel"} {
		for _, m := range table.RegionsForProvider(provider) {
			enriched := enricher.Enrich(DeploymentCandidate{
				Provider: m.Provider,
				Region:   strPtr(m.Region),
			})
			require.NotNil(t, enriched.GridZone, "%s/%s should map", m.Provider, m.Region)

			direct, ok := table.IntensityByZone(*enriched.GridZone)
			require.True(t, ok)
			require.NotNil(t, enriched.CarbonIntensity)
			assert.Equal(t, direct, *enriched.CarbonIntensity,
				"%s/%s round-trip mismatch", m.Provider, m.Region)
		}
	}
}

// TestEnrich_DoesNotShareMetadata verifies the candidate's metadata map is
// copied, not mutated in place.
func TestEnrich_DoesNotShareMetadata(t *testing.T) {
	enricher := newTestEnricher(t)

	original := map[string]any{"note": "keep"}
	enriched := enricher.Enrich(DeploymentCandidate{
		Provider: "aws",
		Region:   strPtr("eu-west-1"),
		Metadata: original,
	})

	assert.NotContains(t, original, "gridMapping")
	assert.Contains(t, enriched.Metadata, "gridMapping")
	assert.Equal(t, "keep", enriched.Metadata["note"])
}
