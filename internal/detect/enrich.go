package detect

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/greenops/carbonscan/internal/gridzone"
)

// GridMappingNote is attached to enriched metadata under "gridMapping" and
// later surfaces in recommendation explanations.
type GridMappingNote struct {
	GridZone string `json:"gridZone"`
	Location string `json:"location"`
	Notes    string `json:"notes"`
}

// Enricher joins raw candidates against the static grid tables.
type Enricher struct {
	table  *gridzone.Table
	logger zerolog.Logger
}

// NewEnricher creates an Enricher backed by the given tables.
func NewEnricher(table *gridzone.Table, logger zerolog.Logger) *Enricher {
	return &Enricher{table: table, logger: logger}
}

// Enrich attaches grid-zone and carbon-intensity data to a candidate. A miss
// on either table leaves both GridZone and CarbonIntensity nil; that is the
// expected outcome for unmapped provider/region combinations.
func (e *Enricher) Enrich(c DeploymentCandidate) EnrichedDeployment {
	enriched := EnrichedDeployment{
		DeploymentCandidate: c,
		ID:                  uuid.New().String(),
	}

	if c.Provider == "" || c.Region == nil {
		return enriched
	}

	mapping, ok := e.table.MappingFor(c.Provider, *c.Region)
	if !ok {
		e.logger.Debug().
			Str("provider", c.Provider).
			Str("region", *c.Region).
			Msg("no grid mapping for region")
		return enriched
	}

	intensity, ok := e.table.IntensityByZone(mapping.GridZone)
	if !ok {
		e.logger.Debug().
			Str("provider", c.Provider).
			Str("region", *c.Region).
			Str("grid_zone", mapping.GridZone).
			Msg("grid zone missing from intensity table")
		return enriched
	}

	enriched.GridZone = strPtr(mapping.GridZone)
	enriched.CarbonIntensity = &intensity

	// Copy metadata so the transient candidate's map is never shared.
	meta := make(map[string]any, len(c.Metadata)+1)
	for k, v := range c.Metadata {
		meta[k] = v
	}
	meta["gridMapping"] = GridMappingNote{
		GridZone: mapping.GridZone,
		Location: mapping.Location,
		Notes:    mapping.Notes,
	}
	enriched.Metadata = meta

	return enriched
}
