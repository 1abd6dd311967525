// Package recommend searches same-provider alternatives for lower-carbon
// regions and estimates the savings of moving there.
package recommend

// CarbonRecommendation suggests one lower-intensity region for one detected
// deployment. It is only ever produced when SuggestedIntensity is strictly
// below CurrentIntensity.
type CarbonRecommendation struct {
	// DeploymentRef is the ID of the enriched deployment this applies to.
	DeploymentRef string `json:"deploymentRef"`

	CurrentRegion    string `json:"currentRegion"`
	CurrentGridZone  string `json:"currentGridZone"`
	CurrentIntensity int    `json:"currentIntensity"`

	SuggestedProvider  string `json:"suggestedProvider"`
	SuggestedRegion    string `json:"suggestedRegion"`
	SuggestedGridZone  string `json:"suggestedGridZone"`
	SuggestedCountry   string `json:"suggestedCountry"`
	SuggestedIntensity int    `json:"suggestedIntensity"`

	// PotentialSavingsPercent is round(((current-suggested)/current)*100),
	// always within [0, 100].
	PotentialSavingsPercent int `json:"potentialSavingsPercent"`

	Notes string `json:"notes"`
}

// SavingsEstimate aggregates the annualized effect of following every
// recommendation for a set of deployments.
type SavingsEstimate struct {
	// TotalKgCO2PerYear assumes a fixed workload of one kWh per deployment
	// per day, a documented approximation rather than measured usage.
	TotalKgCO2PerYear float64 `json:"totalKgCO2PerYear"`

	Recommendations []CarbonRecommendation `json:"recommendations"`
}
