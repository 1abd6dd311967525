package gridzone

import _ "embed"

// Bundled point-in-time datasets. Zone averages follow yearly grid-intensity
// figures; region mappings follow published provider datacenter locations.

//go:embed data/grid_zones.json
var rawZonesJSON []byte

//go:embed data/region_mappings.json
var rawMappingsJSON []byte
