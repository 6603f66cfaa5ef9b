package gpu

import (
	"os"
	"path/filepath"

	"sysmon_pro/model"
)

const defaultIntelCardPath = "/sys/class/drm/card0"

// IntelProbe covers integrated graphics. The iGPU shares the CPU thermal
// domain and has no dedicated VRAM, so utilization, memory and temperature
// are reported as zero.
type IntelProbe struct {
	cardPath string
}

// NewIntelProbe creates the Intel probe; an empty path selects the standard
// DRM card location.
func NewIntelProbe(cardPath string) *IntelProbe {
	if cardPath == "" {
		cardPath = defaultIntelCardPath
	}
	return &IntelProbe{cardPath: cardPath}
}

// Vendor implements Probe.
func (p *IntelProbe) Vendor() string {
	return model.VendorIntel
}

// Detect activates only when the DRM card and its device subdirectory exist.
func (p *IntelProbe) Detect() *model.GPUInfo {
	if _, err := os.Stat(p.cardPath); err != nil {
		return nil
	}
	if _, err := os.Stat(filepath.Join(p.cardPath, "device")); err != nil {
		return nil
	}

	info := &model.GPUInfo{
		Vendor:       model.VendorIntel,
		Name:         "Intel Integrated Graphics",
		TopProcesses: []model.GPUProcessInfo{},
	}

	if mhz, ok := readSysfsInt(filepath.Join(p.cardPath, "gt_cur_freq_mhz")); ok {
		info.CoreClockMHz = &mhz
	}

	return info
}
