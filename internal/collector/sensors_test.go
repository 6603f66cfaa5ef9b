package collector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSensorEntry(t *testing.T, root, entry string, files map[string]string) {
	t.Helper()
	dir := filepath.Join(root, entry)
	require.NoError(t, os.MkdirAll(dir, 0755))
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content+"\n"), 0644))
	}
}

func TestSensorScannerEmptyRegistry(t *testing.T) {
	scanner := NewSensorScanner(t.TempDir(), filepath.Join(t.TempDir(), "missing"), false)

	sensors := scanner.Scan()

	assert.Nil(t, sensors.CPUTempC)
	assert.Nil(t, sensors.MotherboardTempC)
	assert.Nil(t, sensors.CPUFanRPM)
	assert.Nil(t, sensors.CPUVoltage)
}

func TestSensorScannerClassifiesAndConvertsMilliUnits(t *testing.T) {
	root := t.TempDir()
	writeSensorEntry(t, root, "hwmon0", map[string]string{
		"name":        "coretemp",
		"temp1_input": "45000",
		"fan1_input":  "1200",
		"in1_input":   "1250",
	})
	writeSensorEntry(t, root, "hwmon1", map[string]string{
		"name":        "acpitz",
		"temp1_input": "38000",
	})

	scanner := NewSensorScanner(root, filepath.Join(t.TempDir(), "missing"), false)
	sensors := scanner.Scan()

	require.NotNil(t, sensors.CPUTempC)
	assert.InDelta(t, 45.0, *sensors.CPUTempC, 1e-9)
	require.NotNil(t, sensors.MotherboardTempC)
	assert.InDelta(t, 38.0, *sensors.MotherboardTempC, 1e-9)
}

func TestSensorScannerLastEntryWinsByDefault(t *testing.T) {
	root := t.TempDir()
	// hwmon0 是 CPU 传感器，带风扇与电压
	writeSensorEntry(t, root, "hwmon0", map[string]string{
		"name":        "k10temp",
		"temp1_input": "52000",
		"fan1_input":  "2400",
		"in1_input":   "1350",
	})
	// hwmon1 不相关，但枚举在后，兼容模式下会覆盖风扇/电压
	writeSensorEntry(t, root, "hwmon1", map[string]string{
		"name":       "nvme",
		"fan1_input": "900",
	})

	scanner := NewSensorScanner(root, filepath.Join(t.TempDir(), "missing"), false)
	sensors := scanner.Scan()

	require.NotNil(t, sensors.CPUTempC)
	assert.InDelta(t, 52.0, *sensors.CPUTempC, 1e-9)
	require.NotNil(t, sensors.CPUFanRPM)
	assert.Equal(t, 900, *sensors.CPUFanRPM)
	// hwmon1 没有 in1_input，覆盖后电压为空
	assert.Nil(t, sensors.CPUVoltage)
}

func TestSensorScannerFirstMatchMode(t *testing.T) {
	root := t.TempDir()
	writeSensorEntry(t, root, "hwmon0", map[string]string{
		"name":        "k10temp",
		"temp1_input": "52000",
		"fan1_input":  "2400",
		"in1_input":   "1350",
	})
	writeSensorEntry(t, root, "hwmon1", map[string]string{
		"name":       "nvme",
		"fan1_input": "900",
	})

	scanner := NewSensorScanner(root, filepath.Join(t.TempDir(), "missing"), true)
	sensors := scanner.Scan()

	require.NotNil(t, sensors.CPUTempC)
	assert.InDelta(t, 52.0, *sensors.CPUTempC, 1e-9)
	require.NotNil(t, sensors.CPUFanRPM)
	assert.Equal(t, 2400, *sensors.CPUFanRPM, "first matching CPU sensor must win")
	require.NotNil(t, sensors.CPUVoltage)
	assert.InDelta(t, 1.35, *sensors.CPUVoltage, 1e-9)
}

func TestSensorScannerThermalZoneFallback(t *testing.T) {
	root := t.TempDir()
	writeSensorEntry(t, root, "hwmon0", map[string]string{
		"name": "nvme",
	})

	thermal := filepath.Join(t.TempDir(), "temp")
	require.NoError(t, os.WriteFile(thermal, []byte("61500\n"), 0644))

	scanner := NewSensorScanner(root, thermal, false)
	sensors := scanner.Scan()

	require.NotNil(t, sensors.CPUTempC)
	assert.InDelta(t, 61.5, *sensors.CPUTempC, 1e-9)
}

func TestSensorScannerMalformedValues(t *testing.T) {
	root := t.TempDir()
	writeSensorEntry(t, root, "hwmon0", map[string]string{
		"name":        "coretemp",
		"temp1_input": "not-a-number",
		"fan1_input":  "",
	})

	scanner := NewSensorScanner(root, filepath.Join(t.TempDir(), "missing"), false)
	sensors := scanner.Scan()

	assert.Nil(t, sensors.CPUTempC)
	assert.Nil(t, sensors.CPUFanRPM)
}
