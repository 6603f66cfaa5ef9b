// Package gpu detects at most one GPU by cascading vendor-specific probes.
package gpu

import (
	"sysmon_pro/internal/logger"
	"sysmon_pro/model"
)

// Probe is one vendor detection strategy. Detect returns nil both when the
// vendor's hardware is absent and when the probe fails; the distinction is
// deliberately invisible to the caller.
type Probe interface {
	Vendor() string
	Detect() *model.GPUInfo
}

// Detect tries the probes in order and returns the first hit. All probes
// failing means no GPU, not an error.
func Detect(probes []Probe) *model.GPUInfo {
	for _, p := range probes {
		if info := p.Detect(); info != nil {
			return info
		}
	}
	return nil
}

// DefaultProbes returns the standard cascade: NVIDIA, then AMD, then Intel.
// Empty paths select the standard sysfs locations.
func DefaultProbes(log *logger.Logger, amdDevicePath, intelCardPath string) []Probe {
	return []Probe{
		NewNvidiaProbe(log),
		NewAMDProbe(amdDevicePath),
		NewIntelProbe(intelCardPath),
	}
}
