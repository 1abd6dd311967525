package recommend

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/greenops/carbonscan/internal/detect"
	"github.com/greenops/carbonscan/internal/gridzone"
)

const (
	// daysPerYear annualizes the fixed one-kWh-per-day workload assumption.
	daysPerYear = 365

	gramsPerKilogram = 1000
)

// Engine produces lower-carbon region recommendations from the static grid
// tables. It performs no I/O and holds no mutable state, so one Engine may
// serve concurrent callers.
type Engine struct {
	table  *gridzone.Table
	logger zerolog.Logger
}

// NewEngine creates an Engine over the given tables.
func NewEngine(table *gridzone.Table, logger zerolog.Logger) *Engine {
	return &Engine{table: table, logger: logger}
}

// IntensityByGridZone returns the rounded carbon intensity for a grid zone,
// or nil when the zone is unknown.
func (e *Engine) IntensityByGridZone(key string) *int {
	intensity, ok := e.table.IntensityByZone(key)
	if !ok {
		return nil
	}
	return &intensity
}

// Recommend returns the best same-provider alternative for one deployment,
// or nil when the deployment is unmapped, its intensity is unknown, or no
// strictly lower-intensity region exists for that provider.
func (e *Engine) Recommend(d detect.EnrichedDeployment) *CarbonRecommendation {
	if d.Provider == "" || d.Region == nil || d.GridZone == nil || d.CarbonIntensity == nil {
		return nil
	}
	current := *d.CarbonIntensity

	// Ranked ascending with unknown-intensity regions already dropped, so
	// the first strict improvement is the provider's minimum.
	ranked := e.table.LowestCarbonRegions(d.Provider, 0)
	var best *gridzone.RegionIntensity
	for i := range ranked {
		if ranked[i].Intensity < current {
			best = &ranked[i]
			break
		}
	}
	if best == nil {
		// Already at or near the provider's optimum.
		return nil
	}

	savingsPercent := int(math.Round(float64(current-best.Intensity) / float64(current) * 100))

	notes := fmt.Sprintf("%s (%s) runs on the %s grid", best.Region, best.Location, best.GridZone)
	suggestedCountry := ""
	if mapping, ok := e.table.MappingFor(best.Provider, best.Region); ok {
		suggestedCountry = mapping.Country
		if mapping.Notes != "" {
			notes += ": " + mapping.Notes
		}
	}

	return &CarbonRecommendation{
		DeploymentRef:           d.ID,
		CurrentRegion:           *d.Region,
		CurrentGridZone:         *d.GridZone,
		CurrentIntensity:        current,
		SuggestedProvider:       best.Provider,
		SuggestedRegion:         best.Region,
		SuggestedGridZone:       best.GridZone,
		SuggestedCountry:        suggestedCountry,
		SuggestedIntensity:      best.Intensity,
		PotentialSavingsPercent: savingsPercent,
		Notes:                   notes,
	}
}

// Recommendations maps Recommend over a set of enriched deployments,
// keeping only deployments with a strictly better alternative.
func (e *Engine) Recommendations(deployments []detect.EnrichedDeployment) []CarbonRecommendation {
	recommendations := []CarbonRecommendation{}
	for _, d := range deployments {
		if rec := e.Recommend(d); rec != nil {
			recommendations = append(recommendations, *rec)
		}
	}

	e.logger.Debug().
		Int("deployments", len(deployments)).
		Int("recommendations", len(recommendations)).
		Msg("recommendations generated")

	return recommendations
}

// CalculatePotentialSavings annualizes the intensity delta of every
// recommendation under the fixed one-kWh-per-day workload assumption and
// returns the total in kilograms of CO2e per year.
func (e *Engine) CalculatePotentialSavings(deployments []detect.EnrichedDeployment) SavingsEstimate {
	estimate := SavingsEstimate{Recommendations: []CarbonRecommendation{}}

	var gramsPerYear float64
	for _, d := range deployments {
		rec := e.Recommend(d)
		if rec == nil {
			continue
		}
		gramsPerYear += float64(rec.CurrentIntensity-rec.SuggestedIntensity) * daysPerYear
		estimate.Recommendations = append(estimate.Recommendations, *rec)
	}

	estimate.TotalKgCO2PerYear = gramsPerYear / gramsPerKilogram
	return estimate
}
