package detect

import (
	"bytes"
	"path"

	"github.com/goccy/go-json"
)

// defaultVercelRegion is where Vercel places serverless functions when the
// project config names no region.
const defaultVercelRegion = "iad1"

// vercelConfig is the subset of vercel.json this parser reads.
type vercelConfig struct {
	Name    string   `json:"name"`
	Regions []string `json:"regions"`
}

// VercelParser reads the regions array of a vercel.json project config.
type VercelParser struct{}

// NewVercelParser returns the Vercel config parser.
func NewVercelParser() *VercelParser {
	return &VercelParser{}
}

func (p *VercelParser) Name() string {
	return "vercel"
}

func (p *VercelParser) Patterns() []string {
	return []string{"**/vercel.json"}
}

func (p *VercelParser) Parse(filePath string, content []byte) ([]DeploymentCandidate, error) {
	var cfg vercelConfig
	if err := json.Unmarshal(content, &cfg); err != nil {
		// Invalid JSON is a silent miss, not a scan failure.
		return nil, nil
	}

	regions := cfg.Regions
	if len(regions) == 0 {
		regions = []string{defaultVercelRegion}
	}

	name := cfg.Name
	if name == "" {
		name = path.Base(filePath)
	}

	candidates := make([]DeploymentCandidate, 0, len(regions))
	for _, region := range regions {
		candidates = append(candidates, DeploymentCandidate{
			Name:            name,
			Environment:     inferEnvironment(filePath, content),
			Provider:        "vercel",
			Region:          strPtr(region),
			DetectionMethod: "vercel-config",
			ConfigFilePath:  filePath,
			ConfigType:      "vercel",
		})
	}
	return candidates, nil
}

// HerokuParser detects Heroku apps by their well-known config files. Heroku
// does not record the region in the source tree, so the candidate carries a
// nil region and a note that resolution needs the platform API.
type HerokuParser struct{}

// NewHerokuParser returns the Heroku config parser.
func NewHerokuParser() *HerokuParser {
	return &HerokuParser{}
}

func (p *HerokuParser) Name() string {
	return "heroku"
}

func (p *HerokuParser) Patterns() []string {
	return []string{"**/Procfile", "**/app.json"}
}

func (p *HerokuParser) Parse(filePath string, content []byte) ([]DeploymentCandidate, error) {
	// app.json is also used by other tools; require a heroku keyword there.
	if path.Base(filePath) == "app.json" &&
		!bytes.Contains(bytes.ToLower(content), []byte("heroku")) {
		return nil, nil
	}

	return []DeploymentCandidate{{
		Name:            path.Base(filePath),
		Environment:     inferEnvironment(filePath, content),
		Provider:        "heroku",
		DetectionMethod: "config-file-presence",
		ConfigFilePath:  filePath,
		ConfigType:      "heroku",
		Metadata: map[string]any{
			"note": "region resolution requires the Heroku platform API and is not performed here",
		},
	}}, nil
}

// CloudflareParser detects Cloudflare Workers projects by their wrangler
// config. Workers run on a global edge network, so no single region or
// country applies.
type CloudflareParser struct{}

// NewCloudflareParser returns the Cloudflare config parser.
func NewCloudflareParser() *CloudflareParser {
	return &CloudflareParser{}
}

func (p *CloudflareParser) Name() string {
	return "cloudflare"
}

func (p *CloudflareParser) Patterns() []string {
	return []string{"**/wrangler.toml"}
}

func (p *CloudflareParser) Parse(filePath string, content []byte) ([]DeploymentCandidate, error) {
	return []DeploymentCandidate{{
		Name:            path.Base(filePath),
		Environment:     inferEnvironment(filePath, content),
		Provider:        "cloudflare",
		DetectionMethod: "cdn-marker",
		ConfigFilePath:  filePath,
		ConfigType:      "wrangler",
		Metadata: map[string]any{
			"note": "global edge network, deployments are not bound to a single grid region",
		},
	}}, nil
}
