package gridzone

import "sort"

// ZoneIntensity pairs a grid zone with its rounded carbon intensity.
type ZoneIntensity struct {
	ZoneKey   string `json:"zoneKey"`
	ZoneName  string `json:"zoneName"`
	Country   string `json:"country"`
	Intensity int    `json:"intensity"`
}

// RegionIntensity pairs a provider region with its grid zone and intensity.
type RegionIntensity struct {
	Provider  string `json:"provider"`
	Region    string `json:"region"`
	GridZone  string `json:"gridZone"`
	Location  string `json:"location"`
	Intensity int    `json:"intensity"`
}

// Intensity band boundaries in gCO2e/kWh. The bands are descriptive only;
// nothing in enrichment or recommendation logic depends on them.
const (
	bandVeryLowMax  = 100
	bandModerateMax = 300
	bandHighMax     = 600
)

// IntensityStats summarizes the loaded grid-zone dataset.
type IntensityStats struct {
	ZoneCount int            `json:"zoneCount"`
	MeanCO2   float64        `json:"meanCO2"`
	Min       *ZoneIntensity `json:"min"`
	Max       *ZoneIntensity `json:"max"`
	Bands     map[string]int `json:"bands"`
}

// RankZonesByIntensity returns every known grid zone sorted by rounded
// intensity ascending, zone key as tie-break so the order is deterministic.
func (t *Table) RankZonesByIntensity() []ZoneIntensity {
	ranked := make([]ZoneIntensity, 0, len(t.zones))
	for _, z := range t.zones {
		ranked = append(ranked, ZoneIntensity{
			ZoneKey:   z.ZoneKey,
			ZoneName:  z.ZoneName,
			Country:   z.Country,
			Intensity: roundIntensity(z.AverageCO2),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Intensity != ranked[j].Intensity {
			return ranked[i].Intensity < ranked[j].Intensity
		}
		return ranked[i].ZoneKey < ranked[j].ZoneKey
	})
	return ranked
}

// LowestCarbonRegions returns up to n regions of the given provider ranked by
// grid intensity ascending. Regions whose zone lacks intensity data are
// dropped rather than ranked.
func (t *Table) LowestCarbonRegions(provider string, n int) []RegionIntensity {
	var ranked []RegionIntensity
	for _, m := range t.byProvider[provider] {
		intensity, ok := t.IntensityByZone(m.GridZone)
		if !ok {
			continue
		}
		ranked = append(ranked, RegionIntensity{
			Provider:  m.Provider,
			Region:    m.Region,
			GridZone:  m.GridZone,
			Location:  m.Location,
			Intensity: intensity,
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Intensity != ranked[j].Intensity {
			return ranked[i].Intensity < ranked[j].Intensity
		}
		return ranked[i].Region < ranked[j].Region
	})
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Stats computes descriptive statistics over the loaded zones: band counts,
// mean intensity, and the lowest/highest zones with their keys.
func (t *Table) Stats() IntensityStats {
	stats := IntensityStats{
		ZoneCount: len(t.zones),
		Bands: map[string]int{
			"veryLow":  0,
			"moderate": 0,
			"high":     0,
			"veryHigh": 0,
		},
	}
	if len(t.zones) == 0 {
		return stats
	}

	var sum float64
	for _, z := range t.zones {
		zi := ZoneIntensity{
			ZoneKey:   z.ZoneKey,
			ZoneName:  z.ZoneName,
			Country:   z.Country,
			Intensity: roundIntensity(z.AverageCO2),
		}
		sum += z.AverageCO2

		switch {
		case zi.Intensity < bandVeryLowMax:
			stats.Bands["veryLow"]++
		case zi.Intensity < bandModerateMax:
			stats.Bands["moderate"]++
		case zi.Intensity < bandHighMax:
			stats.Bands["high"]++
		default:
			stats.Bands["veryHigh"]++
		}

		if stats.Min == nil || zi.Intensity < stats.Min.Intensity ||
			(zi.Intensity == stats.Min.Intensity && zi.ZoneKey < stats.Min.ZoneKey) {
			minCopy := zi
			stats.Min = &minCopy
		}
		if stats.Max == nil || zi.Intensity > stats.Max.Intensity ||
			(zi.Intensity == stats.Max.Intensity && zi.ZoneKey < stats.Max.ZoneKey) {
			maxCopy := zi
			stats.Max = &maxCopy
		}
	}
	stats.MeanCO2 = sum / float64(len(t.zones))
	return stats
}
