package collector

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"sysmon_pro/model"
)

const (
	defaultHwmonPath       = "/sys/class/hwmon"
	defaultThermalZonePath = "/sys/class/thermal/thermal_zone0/temp"
)

// SensorScanner walks a hwmon-style registry and classifies entries by the
// device name file. Sensor files report milli-units (m°C, mV) and are divided
// by 1000.
//
// Historically fan and voltage were read from every entry without a match
// filter, so the reported value was whichever entry enumerated last. That
// behavior is kept by default for dashboard compatibility; firstMatch switches
// to "first matching CPU sensor wins, then stop".
type SensorScanner struct {
	hwmonPath       string
	thermalZonePath string
	firstMatch      bool
}

// NewSensorScanner creates a scanner. Empty paths select the standard sysfs
// locations.
func NewSensorScanner(hwmonPath, thermalZonePath string, firstMatch bool) *SensorScanner {
	if hwmonPath == "" {
		hwmonPath = defaultHwmonPath
	}
	if thermalZonePath == "" {
		thermalZonePath = defaultThermalZonePath
	}
	return &SensorScanner{
		hwmonPath:       hwmonPath,
		thermalZonePath: thermalZonePath,
		firstMatch:      firstMatch,
	}
}

// Scan reads every hwmon entry. An empty or missing registry yields all
// fields nil, never an error.
func (s *SensorScanner) Scan() model.HardwareSensors {
	var sensors model.HardwareSensors

	entries, err := os.ReadDir(s.hwmonPath)
	if err != nil {
		entries = nil
	}

	for _, entry := range entries {
		dir := filepath.Join(s.hwmonPath, entry.Name())
		name := readTrimmed(filepath.Join(dir, "name"))

		if s.firstMatch {
			s.scanFirstMatch(&sensors, dir, name)
			if sensors.CPUTempC != nil && sensors.MotherboardTempC != nil &&
				sensors.CPUFanRPM != nil && sensors.CPUVoltage != nil {
				break
			}
			continue
		}

		// 兼容模式：匹配项覆盖温度，风扇/电压每个条目都覆盖
		if isCPUSensor(name) {
			sensors.CPUTempC = readMilli(filepath.Join(dir, "temp1_input"))
		}
		if isBoardSensor(name) {
			sensors.MotherboardTempC = readMilli(filepath.Join(dir, "temp1_input"))
		}
		sensors.CPUFanRPM = readIntFile(filepath.Join(dir, "fan1_input"))
		sensors.CPUVoltage = readMilli(filepath.Join(dir, "in1_input"))
	}

	// 未匹配到 CPU 温度时回退到 thermal zone
	if sensors.CPUTempC == nil {
		sensors.CPUTempC = readMilli(s.thermalZonePath)
	}

	return sensors
}

func (s *SensorScanner) scanFirstMatch(sensors *model.HardwareSensors, dir, name string) {
	if isCPUSensor(name) {
		if sensors.CPUTempC == nil {
			sensors.CPUTempC = readMilli(filepath.Join(dir, "temp1_input"))
		}
		if sensors.CPUFanRPM == nil {
			sensors.CPUFanRPM = readIntFile(filepath.Join(dir, "fan1_input"))
		}
		if sensors.CPUVoltage == nil {
			sensors.CPUVoltage = readMilli(filepath.Join(dir, "in1_input"))
		}
	}
	if isBoardSensor(name) && sensors.MotherboardTempC == nil {
		sensors.MotherboardTempC = readMilli(filepath.Join(dir, "temp1_input"))
	}
}

func isCPUSensor(name string) bool {
	return strings.Contains(name, "coretemp") ||
		strings.Contains(name, "k10temp") ||
		strings.Contains(name, "cpu")
}

func isBoardSensor(name string) bool {
	return strings.Contains(name, "acpitz") || strings.Contains(name, "board")
}

// readTrimmed reads a one-line sysfs value, "" when unreadable.
func readTrimmed(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// readMilli reads a milli-unit numeric file and converts to the base unit.
func readMilli(path string) *float64 {
	raw := readTrimmed(path)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	v /= 1000.0
	return &v
}

// readIntFile reads a raw integer sysfs file (e.g. fan RPM).
func readIntFile(path string) *int {
	raw := readTrimmed(path)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
