// Package detect discovers cloud deployments by pattern-scanning a source
// tree's configuration files and enriches each detection with grid-zone
// carbon data.
package detect

import "strings"

// Environment classifies which stage a detected deployment belongs to.
type Environment string

const (
	EnvironmentProduction  Environment = "production"
	EnvironmentStaging     Environment = "staging"
	EnvironmentDevelopment Environment = "development"
	EnvironmentUnknown     Environment = "unknown"
)

// DeploymentCandidate is a raw provider/region reference extracted from one
// configuration file, prior to carbon enrichment. Candidates are transient
// per scan and never persisted by this engine.
type DeploymentCandidate struct {
	Name            string         `json:"name"`
	Environment     Environment    `json:"environment"`
	Provider        string         `json:"provider"`
	Region          *string        `json:"region"`
	Country         *string        `json:"country"`
	DetectionMethod string         `json:"detectionMethod"`
	ConfigFilePath  string         `json:"configFilePath"`
	ConfigType      string         `json:"configType"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// EnrichedDeployment is a candidate joined against the static grid tables.
// GridZone and CarbonIntensity stay nil when the provider/region pair is
// unmapped; that is an expected outcome, not an error.
type EnrichedDeployment struct {
	DeploymentCandidate

	// ID identifies this detection within a scan, used as the reference
	// target for recommendations.
	ID string `json:"id"`

	// GridZone is the key of the grid zone powering the region, if mapped.
	GridZone *string `json:"gridZone"`

	// CarbonIntensity is the zone's average intensity in gCO2e/kWh, rounded
	// to the nearest non-negative integer.
	CarbonIntensity *int `json:"carbonIntensity"`
}

// inferEnvironment guesses the deployment stage from filename and content
// keywords. The prod check runs first so "production" never falls through to
// the dev match.
func inferEnvironment(path string, content []byte) Environment {
	haystack := strings.ToLower(path) + "\n" + strings.ToLower(string(content))
	switch {
	case strings.Contains(haystack, "prod"):
		return EnvironmentProduction
	case strings.Contains(haystack, "staging"):
		return EnvironmentStaging
	case strings.Contains(haystack, "dev"):
		return EnvironmentDevelopment
	default:
		return EnvironmentUnknown
	}
}

func strPtr(s string) *string {
	return &s
}

// countryFor looks up an ISO-2 country code in a parser's region table,
// returning nil on a miss so unknown regions degrade instead of erroring.
func countryFor(table map[string]string, region string) *string {
	if c, ok := table[region]; ok {
		return strPtr(c)
	}
	return nil
}
