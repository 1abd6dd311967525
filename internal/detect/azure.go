package detect

import (
	"bytes"
	"path"
	"regexp"
)

// azureRegionCountries maps Azure region codes to ISO-2 country codes.
var azureRegionCountries = map[string]string{
	"eastus":             "US",
	"eastus2":            "US",
	"centralus":          "US",
	"southcentralus":     "US",
	"westus":             "US",
	"westus2":            "US",
	"westus3":            "US",
	"canadacentral":      "CA",
	"canadaeast":         "CA",
	"brazilsouth":        "BR",
	"northeurope":        "IE",
	"westeurope":         "NL",
	"uksouth":            "GB",
	"ukwest":             "GB",
	"francecentral":      "FR",
	"germanywestcentral": "DE",
	"swedencentral":      "SE",
	"norwayeast":         "NO",
	"switzerlandnorth":   "CH",
	"polandcentral":      "PL",
	"centralindia":       "IN",
	"southindia":         "IN",
	"southeastasia":      "SG",
	"eastasia":           "HK",
	"japaneast":          "JP",
	"koreacentral":       "KR",
	"australiaeast":      "AU",
	"southafricanorth":   "ZA",
	"uaenorth":           "AE",
}

var (
	azureProviderMarker = []byte(`provider "azurerm"`)

	// Azure Terraform configs place regions in location assignments.
	azureLocationRe = regexp.MustCompile(`(?m)^\s*location\s*=\s*"([^"]+)"`)
)

// AzureParser detects Azure deployments in Terraform files carrying an
// azurerm provider block.
type AzureParser struct{}

// NewAzureParser returns the Azure config parser.
func NewAzureParser() *AzureParser {
	return &AzureParser{}
}

func (p *AzureParser) Name() string {
	return "azure"
}

func (p *AzureParser) Patterns() []string {
	return []string{"**/*.tf"}
}

func (p *AzureParser) Parse(filePath string, content []byte) ([]DeploymentCandidate, error) {
	markerIdx := bytes.Index(content, azureProviderMarker)
	if markerIdx < 0 {
		return nil, nil
	}

	var candidates []DeploymentCandidate
	for _, loc := range azureLocationRe.FindAllSubmatchIndex(content, -1) {
		if loc[0] < markerIdx {
			continue
		}
		region := string(content[loc[2]:loc[3]])
		candidates = append(candidates, DeploymentCandidate{
			Name:            path.Base(filePath),
			Environment:     inferEnvironment(filePath, content),
			Provider:        "azure",
			Region:          strPtr(region),
			Country:         countryFor(azureRegionCountries, region),
			DetectionMethod: "terraform-provider-block",
			ConfigFilePath:  filePath,
			ConfigType:      "terraform",
		})
	}
	return candidates, nil
}
