// Package gridzone provides the static electricity-grid datasets behind
// carbon enrichment: a grid-zone table keyed by zone and a (provider, region)
// mapping table joining cloud regions to the zones that power them.
package gridzone

// Zone describes one electricity-grid zone and its average carbon intensity.
// Zones follow grid boundaries, not political ones; a single country may span
// several zones and one zone may serve several provider regions.
type Zone struct {
	// ZoneKey uniquely identifies the zone (e.g. "SE", "US-CAL-CISO").
	ZoneKey string `json:"zoneKey"`

	// Country is the ISO-2 country code the zone mainly belongs to.
	Country string `json:"country"`

	// ZoneName is a human-readable label for the zone.
	ZoneName string `json:"zoneName"`

	// FallbackZoneKey optionally names a neighbouring zone whose figures can
	// stand in when this zone's data is unavailable.
	FallbackZoneKey *string `json:"fallbackZoneKey"`

	// Stable indicates the zone's figures come from a stable yearly series.
	Stable bool `json:"stable"`

	// Free indicates the figures are from the freely redistributable tier.
	Free bool `json:"free"`

	// AverageCO2 is the yearly average carbon intensity in gCO2e per kWh.
	AverageCO2 float64 `json:"averageCO2"`

	// LowAverage marks zones whose average sits well below the global mean.
	LowAverage bool `json:"lowAverage"`
}

// RegionMapping joins a provider's native region code to a grid zone.
type RegionMapping struct {
	// Provider is the cloud/platform vendor identifier (e.g. "aws").
	Provider string `json:"provider"`

	// Region is the provider's native region code, case-sensitive.
	Region string `json:"region"`

	// GridZone is the key into the grid-zone table.
	GridZone string `json:"gridZone"`

	// Country is the ISO-2 country code of the region's datacenters.
	Country string `json:"country"`

	// Location is a human-readable datacenter location label.
	Location string `json:"location"`

	// Notes carries free-text context used in recommendation explanations.
	Notes string `json:"notes"`
}
