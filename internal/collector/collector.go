package collector

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/host"
	"golang.org/x/sync/errgroup"

	"sysmon_pro/config"
	"sysmon_pro/internal/gpu"
	"sysmon_pro/internal/logger"
	"sysmon_pro/model"
)

// Collector assembles one Snapshot per Collect call. The only state that
// outlives a call is the network rate baseline owned by tracker.
type Collector struct {
	logger  *logger.Logger
	tracker *RateTracker

	mutex      sync.RWMutex
	settleWait time.Duration
	gpuProbes  []gpu.Probe
	sensors    *SensorScanner
}

// New creates a new collector from the monitor configuration.
func New(log *logger.Logger, cfg *config.Config) *Collector {
	c := &Collector{
		logger:  log,
		tracker: NewRateTracker(),
	}
	c.ApplyConfig(cfg)
	return c
}

// ApplyConfig applies (or re-applies, on hot reload) the monitor settings.
// The network rate baseline is deliberately left untouched.
func (c *Collector) ApplyConfig(cfg *config.Config) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.settleWait = cfg.SettleWait()
	c.gpuProbes = gpu.DefaultProbes(c.logger, cfg.Monitor.AMDDevicePath, cfg.Monitor.IntelCardPath)
	c.sensors = NewSensorScanner(cfg.Monitor.HwmonPath, cfg.Monitor.ThermalZonePath, cfg.Monitor.SensorFirstMatch)
}

// Collect probes every data source and merges the results into one snapshot.
// It blocks for the CPU settle wait, so callers in a request path must run it
// on their own goroutine. Only a failure to read memory or to enumerate the
// process table aborts the call; every other probe degrades its own fields.
func (c *Collector) Collect(ctx context.Context) (*model.Snapshot, error) {
	c.mutex.RLock()
	settleWait := c.settleWait
	probes := c.gpuProbes
	sensors := c.sensors
	c.mutex.RUnlock()

	snapshot := &model.Snapshot{
		Host: c.collectHost(ctx),
	}

	// CPU 采样必须先行，两次采样之间有稳定等待
	resources, cpuAdvanced, err := c.sampleCPUMemory(ctx, settleWait)
	if err != nil {
		return nil, err
	}
	snapshot.Resources = resources
	snapshot.CPUAdvanced = cpuAdvanced

	// 其余探测互相独立，并发执行
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		processes, err := c.collectProcesses(gctx)
		if err != nil {
			return err
		}
		snapshot.Processes = processes
		return nil
	})
	g.Go(func() error {
		snapshot.Disks = c.collectDisks(gctx)
		return nil
	})
	g.Go(func() error {
		snapshot.Network = c.collectNetwork(gctx)
		return nil
	})
	g.Go(func() error {
		snapshot.GPU = gpu.Detect(probes)
		return nil
	})
	g.Go(func() error {
		snapshot.Sensors = sensors.Scan()
		return nil
	})
	g.Go(func() error {
		snapshot.Battery = c.collectBattery()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snapshot, nil
}

func (c *Collector) collectHost(ctx context.Context) model.HostInfo {
	info := model.HostInfo{
		Hostname:  "Unknown",
		OSVersion: "Unknown",
	}

	hi, err := host.InfoWithContext(ctx)
	if err != nil {
		c.logger.Warn("Failed to read host info: %v", err)
		return info
	}

	if hi.Hostname != "" {
		info.Hostname = hi.Hostname
	}
	if hi.Platform != "" {
		info.OSVersion = hi.Platform
		if hi.PlatformVersion != "" {
			info.OSVersion += " " + hi.PlatformVersion
		}
	}
	return info
}
