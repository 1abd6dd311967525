package detect

import (
	"bytes"
	"path"
)

// gcpRegionCountries maps GCP region codes to ISO-2 country codes.
var gcpRegionCountries = map[string]string{
	"us-central1":             "US",
	"us-east1":                "US",
	"us-east4":                "US",
	"us-west1":                "US",
	"us-west2":                "US",
	"us-west3":                "US",
	"us-west4":                "US",
	"northamerica-northeast1": "CA",
	"southamerica-east1":      "BR",
	"europe-north1":           "FI",
	"europe-west1":            "BE",
	"europe-west2":            "GB",
	"europe-west3":            "DE",
	"europe-west4":            "NL",
	"europe-west6":            "CH",
	"europe-west9":            "FR",
	"asia-south1":             "IN",
	"asia-southeast1":         "SG",
	"asia-northeast1":         "JP",
	"asia-northeast3":         "KR",
	"australia-southeast1":    "AU",
}

// gcpProviderMarker must precede the region assignment for the file to count
// as a GCP config; plain Terraform files without it belong to other parsers.
var gcpProviderMarker = []byte(`provider "google"`)

// GCPParser detects Google Cloud deployments in Terraform files carrying a
// google provider block.
type GCPParser struct{}

// NewGCPParser returns the GCP config parser.
func NewGCPParser() *GCPParser {
	return &GCPParser{}
}

func (p *GCPParser) Name() string {
	return "gcp"
}

func (p *GCPParser) Patterns() []string {
	return []string{"**/*.tf"}
}

func (p *GCPParser) Parse(filePath string, content []byte) ([]DeploymentCandidate, error) {
	markerIdx := bytes.Index(content, gcpProviderMarker)
	if markerIdx < 0 {
		return nil, nil
	}

	var candidates []DeploymentCandidate
	for _, loc := range tfRegionRe.FindAllSubmatchIndex(content, -1) {
		// Only region assignments after the provider marker belong to GCP.
		if loc[0] < markerIdx {
			continue
		}
		region := string(content[loc[2]:loc[3]])
		candidates = append(candidates, DeploymentCandidate{
			Name:            path.Base(filePath),
			Environment:     inferEnvironment(filePath, content),
			Provider:        "gcp",
			Region:          strPtr(region),
			Country:         countryFor(gcpRegionCountries, region),
			DetectionMethod: "terraform-provider-block",
			ConfigFilePath:  filePath,
			ConfigType:      "terraform",
		})
	}
	return candidates, nil
}
