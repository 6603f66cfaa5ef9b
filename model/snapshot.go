package model

// GPU vendor identifiers reported in Snapshot.GPU.
const (
	VendorNVIDIA = "NVIDIA"
	VendorAMD    = "AMD"
	VendorIntel  = "Intel"
)

// Process display statuses.
const (
	StatusRunning  = "Running"
	StatusSleeping = "Sleeping"
	StatusStopped  = "Stopped"
	StatusZombie   = "Zombie"
	StatusDead     = "Dead"
	StatusIdle     = "Idle"
	StatusUnknown  = "Unknown"
)

// Snapshot is the full system state assembled by one collection call.
// It is what the dashboard receives from /api/stats and /api/ws.
type Snapshot struct {
	Host        HostInfo        `json:"host"`
	Resources   ResourceBlock   `json:"resources"`
	CPUAdvanced CPUAdvanced     `json:"cpu_advanced"`
	GPU         *GPUInfo        `json:"gpu"`
	Processes   []ProcessInfo   `json:"processes"`
	Disks       []DiskInfo      `json:"disks"`
	Network     NetworkAdvanced `json:"network"`
	Sensors     HardwareSensors `json:"sensors"`
	Battery     *BatteryInfo    `json:"battery"`
}

// HostInfo 主机静态信息
type HostInfo struct {
	Hostname  string `json:"hostname"`
	OSVersion string `json:"os_version"`
}

// ResourceBlock 合并的 CPU/内存资源区块
type ResourceBlock struct {
	CPUUsagePercent    float64 `json:"cpu_usage_percent"`
	CPUCoreCount       int     `json:"cpu_core_count"`
	CPUName            string  `json:"cpu_name"`
	MemoryTotalGB      float64 `json:"memory_total_gb"`
	MemoryUsedGB       float64 `json:"memory_used_gb"`
	MemoryUsagePercent float64 `json:"memory_usage_percent"`
}

// CPUAdvanced 每核心占用、频率与负载均衡
type CPUAdvanced struct {
	PerCoreUsage    []float64 `json:"per_core_usage"`
	CPUFrequencyMHz int       `json:"cpu_frequency_mhz"`
	LoadAvg1        float64   `json:"load_avg_1"`
	LoadAvg5        float64   `json:"load_avg_5"`
	LoadAvg15       float64   `json:"load_avg_15"`
}

// GPUInfo describes the single detected GPU, if any.
type GPUInfo struct {
	Vendor          string           `json:"vendor"`
	Name            string           `json:"name"`
	UsagePercent    int              `json:"usage_percent"`
	MemoryTotalMB   uint64           `json:"memory_total_mb"`
	MemoryUsedMB    uint64           `json:"memory_used_mb"`
	TemperatureC    int              `json:"temperature_c"`
	FanSpeedPercent *int             `json:"fan_speed_percent"`
	CoreClockMHz    *int             `json:"core_clock_mhz"`
	MemoryClockMHz  *int             `json:"memory_clock_mhz"`
	TopProcesses    []GPUProcessInfo `json:"top_processes"`
}

// GPUProcessInfo 占用显存的进程
type GPUProcessInfo struct {
	PID      uint32 `json:"pid"`
	Name     string `json:"name"`
	MemoryMB uint64 `json:"memory_mb"`
}

// ProcessInfo is one row of the top-N process view.
type ProcessInfo struct {
	PID             int32   `json:"pid"`
	Name            string  `json:"name"`
	CPUUsagePercent float64 `json:"cpu_usage_percent"`
	MemoryMB        float64 `json:"memory_mb"`
	Status          string  `json:"status"`
}

// DiskInfo describes one mounted volume.
type DiskInfo struct {
	Name         string  `json:"name"`
	TotalGB      float64 `json:"total_gb"`
	UsedGB       float64 `json:"used_gb"`
	UsagePercent float64 `json:"usage_percent"`
	MountPoint   string  `json:"mount_point"`
}

// NetworkAdvanced 网络接口流量与实时网速
type NetworkAdvanced struct {
	Interfaces        []NetworkInterface `json:"interfaces"`
	DownloadSpeedMbps float64            `json:"download_speed_mbps"`
	UploadSpeedMbps   float64            `json:"upload_speed_mbps"`
}

// NetworkInterface holds one interface's cumulative traffic in whole MB.
type NetworkInterface struct {
	Name          string `json:"name"`
	ReceivedMB    uint64 `json:"received_mb"`
	TransmittedMB uint64 `json:"transmitted_mb"`
}

// HardwareSensors 硬件传感器读数，缺失的传感器为 null
type HardwareSensors struct {
	CPUTempC         *float64 `json:"cpu_temp_c"`
	MotherboardTempC *float64 `json:"motherboard_temp_c"`
	CPUFanRPM        *int     `json:"cpu_fan_rpm"`
	CPUVoltage       *float64 `json:"cpu_voltage"`
}

// BatteryInfo describes the first battery reported by the OS.
type BatteryInfo struct {
	Percentage           float64 `json:"percentage"`
	IsCharging           bool    `json:"is_charging"`
	TimeRemainingMinutes *int    `json:"time_remaining_minutes"`
	HealthPercent        float64 `json:"health_percent"`
}
