package gridzone

import (
	"math"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Table holds both static datasets, loaded once at construction and
// read-only afterwards. A Table is safe to share across concurrent scans
// since nothing mutates it post-load.
type Table struct {
	zones      map[string]Zone
	mappings   map[string]RegionMapping
	byProvider map[string][]RegionMapping
	logger     zerolog.Logger
}

// NewTable builds a Table from the bundled datasets. A dataset that fails to
// decode is logged and replaced by an empty table, so every later lookup
// degrades to a miss instead of failing construction.
func NewTable(logger zerolog.Logger) *Table {
	return NewTableFromJSON(rawZonesJSON, rawMappingsJSON, logger)
}

// NewTableFromJSON builds a Table from caller-supplied dataset JSON. Tests
// use it to substitute fixtures for the bundled data.
func NewTableFromJSON(zonesJSON, mappingsJSON []byte, logger zerolog.Logger) *Table {
	t := &Table{
		zones:      make(map[string]Zone),
		mappings:   make(map[string]RegionMapping),
		byProvider: make(map[string][]RegionMapping),
		logger:     logger,
	}

	var zones []Zone
	if err := json.Unmarshal(zonesJSON, &zones); err != nil {
		logger.Error().Err(err).Msg("failed to decode grid zone dataset, continuing with empty table")
	} else {
		for _, z := range zones {
			t.zones[z.ZoneKey] = z
		}
	}

	var mappings []RegionMapping
	if err := json.Unmarshal(mappingsJSON, &mappings); err != nil {
		logger.Error().Err(err).Msg("failed to decode region mapping dataset, continuing with empty table")
	} else {
		for _, m := range mappings {
			t.mappings[mappingKey(m.Provider, m.Region)] = m
			t.byProvider[m.Provider] = append(t.byProvider[m.Provider], m)
		}
	}

	logger.Debug().
		Int("zones", len(t.zones)).
		Int("mappings", len(t.mappings)).
		Msg("grid zone tables loaded")

	return t
}

func mappingKey(provider, region string) string {
	return provider + "/" + region
}

// Zone returns the grid zone for the given key.
func (t *Table) Zone(key string) (Zone, bool) {
	z, ok := t.zones[key]
	return z, ok
}

// IntensityByZone returns the zone's average carbon intensity rounded to the
// nearest non-negative integer of gCO2e/kWh. Returns (0, false) when the zone
// is unknown.
func (t *Table) IntensityByZone(key string) (int, bool) {
	z, ok := t.zones[key]
	if !ok {
		return 0, false
	}
	return roundIntensity(z.AverageCO2), true
}

// MappingFor returns the region mapping for an exact, case-sensitive
// (provider, region) pair. A miss is expected for unmapped combinations.
func (t *Table) MappingFor(provider, region string) (RegionMapping, bool) {
	m, ok := t.mappings[mappingKey(provider, region)]
	return m, ok
}

// RegionsForProvider returns every region mapping registered for the exact
// provider id. The returned slice must not be mutated.
func (t *Table) RegionsForProvider(provider string) []RegionMapping {
	return t.byProvider[provider]
}

// ZoneCount reports how many grid zones are loaded.
func (t *Table) ZoneCount() int {
	return len(t.zones)
}

// MappingCount reports how many (provider, region) mappings are loaded.
func (t *Table) MappingCount() int {
	return len(t.mappings)
}

func roundIntensity(avg float64) int {
	if avg < 0 {
		return 0
	}
	return int(math.Round(avg))
}
