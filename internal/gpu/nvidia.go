package gpu

import (
	"github.com/NVIDIA/go-nvml/pkg/nvml"

	_const "sysmon_pro/internal/const"
	"sysmon_pro/internal/logger"
	"sysmon_pro/model"
)

// NvidiaProbe queries the NVIDIA management library. Device 0 only.
type NvidiaProbe struct {
	logger *logger.Logger
}

// NewNvidiaProbe creates the NVIDIA probe.
func NewNvidiaProbe(log *logger.Logger) *NvidiaProbe {
	return &NvidiaProbe{logger: log}
}

// Vendor implements Probe.
func (p *NvidiaProbe) Vendor() string {
	return model.VendorNVIDIA
}

// Detect initializes NVML and reads device 0. Init or handle failure means
// "no NVIDIA GPU" and falls through to the next probe. A memory-info failure
// also falls through: a device that cannot report VRAM is treated as absent.
func (p *NvidiaProbe) Detect() *model.GPUInfo {
	if ret := nvml.Init(); ret != nvml.SUCCESS {
		return nil
	}
	defer nvml.Shutdown()

	device, ret := nvml.DeviceGetHandleByIndex(0)
	if ret != nvml.SUCCESS {
		return nil
	}

	memInfo, ret := device.GetMemoryInfo()
	if ret != nvml.SUCCESS {
		return nil
	}

	info := &model.GPUInfo{
		Vendor:        model.VendorNVIDIA,
		Name:          "Unknown GPU",
		MemoryTotalMB: memInfo.Total / 1024 / 1024,
		MemoryUsedMB:  memInfo.Used / 1024 / 1024,
		TopProcesses:  []model.GPUProcessInfo{},
	}

	if name, ret := device.GetName(); ret == nvml.SUCCESS && name != "" {
		info.Name = name
	}
	if util, ret := device.GetUtilizationRates(); ret == nvml.SUCCESS {
		info.UsagePercent = int(util.Gpu)
	}
	if temp, ret := device.GetTemperature(nvml.TEMPERATURE_GPU); ret == nvml.SUCCESS {
		info.TemperatureC = int(temp)
	}
	if fan, ret := device.GetFanSpeed(); ret == nvml.SUCCESS {
		speed := int(fan)
		info.FanSpeedPercent = &speed
	}
	if clock, ret := device.GetClockInfo(nvml.CLOCK_GRAPHICS); ret == nvml.SUCCESS {
		mhz := int(clock)
		info.CoreClockMHz = &mhz
	}
	if clock, ret := device.GetClockInfo(nvml.CLOCK_MEM); ret == nvml.SUCCESS {
		mhz := int(clock)
		info.MemoryClockMHz = &mhz
	}

	if procs, ret := device.GetGraphicsRunningProcesses(); ret == nvml.SUCCESS {
		for i, proc := range procs {
			if i >= _const.TopGPUProcessCount {
				break
			}
			name := "unknown"
			if pname, ret := nvml.SystemGetProcessName(int(proc.Pid)); ret == nvml.SUCCESS && pname != "" {
				name = pname
			}
			info.TopProcesses = append(info.TopProcesses, model.GPUProcessInfo{
				PID:      proc.Pid,
				Name:     name,
				MemoryMB: proc.UsedGpuMemory / 1024 / 1024,
			})
		}
	}

	return info
}
