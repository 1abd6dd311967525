package detect

import (
	"path"
	"regexp"
)

// awsRegionCountries maps AWS region codes to ISO-2 country codes.
var awsRegionCountries = map[string]string{
	"us-east-1":      "US",
	"us-east-2":      "US",
	"us-west-1":      "US",
	"us-west-2":      "US",
	"us-gov-west-1":  "US",
	"us-gov-east-1":  "US",
	"ca-central-1":   "CA",
	"ca-west-1":      "CA",
	"sa-east-1":      "BR",
	"eu-west-1":      "IE",
	"eu-west-2":      "GB",
	"eu-west-3":      "FR",
	"eu-central-1":   "DE",
	"eu-central-2":   "CH",
	"eu-north-1":     "SE",
	"eu-south-1":     "IT",
	"eu-south-2":     "ES",
	"ap-south-1":     "IN",
	"ap-south-2":     "IN",
	"ap-southeast-1": "SG",
	"ap-southeast-2": "AU",
	"ap-southeast-3": "ID",
	"ap-southeast-4": "AU",
	"ap-northeast-1": "JP",
	"ap-northeast-2": "KR",
	"ap-northeast-3": "JP",
	"ap-east-1":      "HK",
	"me-south-1":     "BH",
	"me-central-1":   "AE",
	"af-south-1":     "ZA",
	"il-central-1":   "IL",
}

var (
	// region = "us-east-1" assignments in Terraform-style files.
	tfRegionRe = regexp.MustCompile(`(?m)^\s*region\s*=\s*"([^"]+)"`)

	// region: us-east-1 keys in serverless/CloudFormation-style manifests.
	manifestRegionRe = regexp.MustCompile(`(?mi)^\s*region:\s*"?([A-Za-z0-9-]+)"?\s*$`)
)

// AWSParser detects AWS deployments in two config families: Terraform files
// and templated deployment manifests (serverless framework, SAM).
type AWSParser struct{}

// NewAWSParser returns the AWS config parser.
func NewAWSParser() *AWSParser {
	return &AWSParser{}
}

func (p *AWSParser) Name() string {
	return "aws"
}

func (p *AWSParser) Patterns() []string {
	return []string{
		"**/*.tf",
		"**/serverless.yml",
		"**/serverless.yaml",
		"**/template.yml",
		"**/template.yaml",
	}
}

func (p *AWSParser) Parse(filePath string, content []byte) ([]DeploymentCandidate, error) {
	configType := "terraform"
	re := tfRegionRe
	method := "terraform-region"
	if path.Ext(filePath) != ".tf" {
		configType = "deployment-manifest"
		re = manifestRegionRe
		method = "manifest-region"
	}

	var candidates []DeploymentCandidate
	for _, m := range re.FindAllSubmatch(content, -1) {
		region := string(m[1])
		candidates = append(candidates, DeploymentCandidate{
			Name:            path.Base(filePath),
			Environment:     inferEnvironment(filePath, content),
			Provider:        "aws",
			Region:          strPtr(region),
			Country:         countryFor(awsRegionCountries, region),
			DetectionMethod: method,
			ConfigFilePath:  filePath,
			ConfigType:      configType,
		})
	}
	return candidates, nil
}
