package detect

import (
	"path"
	"regexp"
)

// CI pipelines export the target region as an environment variable, either
// YAML-style (AWS_REGION: us-east-1) or shell-style (AWS_REGION=us-east-1).
var ciRegionRe = regexp.MustCompile(`(?m)\b(?:AWS_REGION|AWS_DEFAULT_REGION)\s*[:=]\s*"?([a-z0-9-]+)"?`)

// CIPipelineParser detects deployment regions declared in CI pipeline
// definitions. Pipelines deploy somewhere real, so the environment is always
// production.
type CIPipelineParser struct{}

// NewCIPipelineParser returns the CI pipeline parser.
func NewCIPipelineParser() *CIPipelineParser {
	return &CIPipelineParser{}
}

func (p *CIPipelineParser) Name() string {
	return "ci-pipeline"
}

func (p *CIPipelineParser) Patterns() []string {
	return []string{
		"**/.github/workflows/*.yml",
		"**/.github/workflows/*.yaml",
		"**/.gitlab-ci.yml",
		"**/bitbucket-pipelines.yml",
	}
}

func (p *CIPipelineParser) Parse(filePath string, content []byte) ([]DeploymentCandidate, error) {
	var candidates []DeploymentCandidate
	for _, m := range ciRegionRe.FindAllSubmatch(content, -1) {
		region := string(m[1])
		candidates = append(candidates, DeploymentCandidate{
			Name:            path.Base(filePath),
			Environment:     EnvironmentProduction,
			Provider:        "aws",
			Region:          strPtr(region),
			Country:         countryFor(awsRegionCountries, region),
			DetectionMethod: "pipeline-env-var",
			ConfigFilePath:  filePath,
			ConfigType:      "ci-pipeline",
		})
	}
	return candidates, nil
}
