// Package report aggregates scan results into summary payloads and hands
// them to an external storage collaborator.
package report

import (
	"sort"

	"github.com/greenops/carbonscan/internal/detect"
)

// Summary is the aggregate payload produced alongside raw detections.
type Summary struct {
	Total         int            `json:"total"`
	ByProvider    map[string]int `json:"byProvider"`
	ByEnvironment map[string]int `json:"byEnvironment"`

	// ConfigTypes lists the distinct config families seen, sorted.
	ConfigTypes []string `json:"configTypes"`
}

// Summarize groups detections by provider and environment and collects the
// distinct config types.
func Summarize(deployments []detect.EnrichedDeployment) Summary {
	summary := Summary{
		Total:         len(deployments),
		ByProvider:    make(map[string]int),
		ByEnvironment: make(map[string]int),
		ConfigTypes:   []string{},
	}

	seen := make(map[string]struct{})
	for _, d := range deployments {
		summary.ByProvider[d.Provider]++
		summary.ByEnvironment[string(d.Environment)]++
		if _, ok := seen[d.ConfigType]; !ok {
			seen[d.ConfigType] = struct{}{}
			summary.ConfigTypes = append(summary.ConfigTypes, d.ConfigType)
		}
	}
	sort.Strings(summary.ConfigTypes)

	return summary
}
