package gpu

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_const "sysmon_pro/internal/const"
	"sysmon_pro/model"
)

const defaultAMDDevicePath = "/sys/class/drm/card0/device"

// AMDProbe reads the amdgpu sysfs tree. Utilization and VRAM are not exposed
// through the files read here and are reported as zero.
type AMDProbe struct {
	devicePath string
}

// NewAMDProbe creates the AMD probe; an empty path selects the standard DRM
// device location.
func NewAMDProbe(devicePath string) *AMDProbe {
	if devicePath == "" {
		devicePath = defaultAMDDevicePath
	}
	return &AMDProbe{devicePath: devicePath}
}

// Vendor implements Probe.
func (p *AMDProbe) Vendor() string {
	return model.VendorAMD
}

// Detect activates only when the device path exists. Every file read is
// best-effort.
func (p *AMDProbe) Detect() *model.GPUInfo {
	if _, err := os.Stat(p.devicePath); err != nil {
		return nil
	}

	info := &model.GPUInfo{
		Vendor:       model.VendorAMD,
		Name:         "AMD GPU",
		TopProcesses: []model.GPUProcessInfo{},
	}

	if name := readSysfsLine(filepath.Join(p.devicePath, "product_name")); name != "" {
		info.Name = name
	}

	if data, err := os.ReadFile(filepath.Join(p.devicePath, "pp_dpm_sclk")); err == nil {
		if mhz, ok := parseActiveClock(string(data)); ok {
			info.CoreClockMHz = &mhz
		}
	}

	// 温度固定从 hwmon1 读取，个别系统该索引可能对应其他传感器
	hwmon := filepath.Join(p.devicePath, "hwmon", "hwmon1")
	if milli, ok := readSysfsInt(filepath.Join(hwmon, "temp1_input")); ok {
		info.TemperatureC = milli / 1000
	}
	if rpm, ok := readSysfsInt(filepath.Join(hwmon, "fan1_input")); ok {
		pct := fanPercentFromRPM(rpm)
		info.FanSpeedPercent = &pct
	}

	return info
}

// parseActiveClock finds the active ("*") line of a pp_dpm_sclk clock table
// and extracts its frequency in MHz, tolerating trailing unit suffixes.
//
//	0: 300Mhz
//	1: 1340Mhz *
func parseActiveClock(text string) (int, bool) {
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(line, "*") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		token := strings.TrimRight(fields[1], "MmHhZz")
		mhz, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		return mhz, true
	}
	return 0, false
}

// fanPercentFromRPM estimates fan percentage against an assumed maximum RPM,
// clamped to 100.
func fanPercentFromRPM(rpm int) int {
	pct := rpm * 100 / _const.AMDFanMaxRPM
	if pct > 100 {
		return 100
	}
	if pct < 0 {
		return 0
	}
	return pct
}

// readSysfsLine reads a one-line sysfs value, "" when unreadable.
func readSysfsLine(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// readSysfsInt reads a raw integer sysfs value.
func readSysfsInt(path string) (int, bool) {
	raw := readSysfsLine(path)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
