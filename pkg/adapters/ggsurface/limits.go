package ggsurface

import (
	"github.com/ravendarque/beyond-borders/pkg/ports"
)

// capabilityTable maps environment classes to the largest safe square
// surface edge. The values track the canvas ceilings of the browser
// families the exported PNGs round-trip through: safari-class devices cap
// at 4096, firefox-class at 11180, chromium-class at 16384.
var capabilityTable = map[ports.EnvironmentClass]int{
	ports.ClassMinimal:  4096,
	ports.ClassBalanced: 11180,
	ports.ClassExtended: 16384,
}

// DetectCapabilities returns the capabilities to assume when nothing is
// known about the consuming environment. The smallest known limit is the
// only safe default.
func DetectCapabilities() ports.Capabilities {
	return CapabilitiesFor(ports.ClassMinimal)
}

// CapabilitiesFor returns the capabilities of a specific environment class.
// Unknown classes fall back to the minimal class.
func CapabilitiesFor(class ports.EnvironmentClass) ports.Capabilities {
	max, ok := capabilityTable[class]
	if !ok {
		class = ports.ClassMinimal
		max = capabilityTable[class]
	}
	return ports.Capabilities{Class: class, MaxDimension: max}
}
