// Package main validates the embedded grid datasets before release.
//
// The tool loads the zone and region-mapping tables exactly the way the
// scanner does and checks the cross-dataset invariants: every mapping must
// reference an existing zone, every intensity must be non-negative, and each
// bundled provider must keep a plausible number of regions.
//
// Usage:
//
//	go run ./tools/validate-grid-data [--min-zones N] [--min-mappings N]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/greenops/carbonscan/internal/gridzone"
)

// bundledProviders are the providers the mapping dataset ships regions for.
var bundledProviders = []string{"aws", "gcp", "azure", "vercel"}

func main() {
	minZones := flag.Int("min-zones", 30, "Minimum number of grid zones expected in the dataset")
	minMappings := flag.Int("min-mappings", 60, "Minimum number of region mappings expected in the dataset")
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	table := gridzone.NewTable(logger)

	problems := 0
	fail := func(format string, args ...any) {
		fmt.Fprintf(os.Stderr, "FAIL: "+format+"\n", args...)
		problems++
	}

	if table.ZoneCount() < *minZones {
		fail("zone dataset shrank: %d zones, expected at least %d", table.ZoneCount(), *minZones)
	}
	if table.MappingCount() < *minMappings {
		fail("mapping dataset shrank: %d mappings, expected at least %d", table.MappingCount(), *minMappings)
	}

	for _, zi := range table.RankZonesByIntensity() {
		if zi.Intensity < 0 {
			fail("zone %s has negative intensity %d", zi.ZoneKey, zi.Intensity)
		}
	}

	for _, provider := range bundledProviders {
		mappings := table.RegionsForProvider(provider)
		if len(mappings) == 0 {
			fail("provider %s has no region mappings", provider)
			continue
		}
		for _, m := range mappings {
			if _, ok := table.Zone(m.GridZone); !ok {
				fail("%s/%s references unknown grid zone %q", m.Provider, m.Region, m.GridZone)
			}
			if m.Country == "" {
				fail("%s/%s has no country", m.Provider, m.Region)
			}
		}
	}

	stats := table.Stats()
	fmt.Printf("zones:    %d (mean %.1f gCO2eq/kWh)\n", stats.ZoneCount, stats.MeanCO2)
	if stats.Min != nil && stats.Max != nil {
		fmt.Printf("range:    %s %d .. %s %d\n", stats.Min.ZoneKey, stats.Min.Intensity, stats.Max.ZoneKey, stats.Max.Intensity)
	}
	fmt.Printf("mappings: %d across %d providers\n", table.MappingCount(), len(bundledProviders))

	if problems > 0 {
		fmt.Fprintf(os.Stderr, "%d problem(s) found\n", problems)
		os.Exit(1)
	}
	fmt.Println("grid datasets OK")
}
