package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"

	"sysmon_pro/model"
)

const bytesPerGB = 1024 * 1024 * 1024

// sampleCPUMemory reads CPU utilization, frequency, load averages and memory
// totals. cpu.Percent with a non-zero interval takes the two counter samples
// with the settle wait between them, which is where Collect blocks.
// A memory read failure is the one error that aborts the whole collection.
func (c *Collector) sampleCPUMemory(ctx context.Context, settleWait time.Duration) (model.ResourceBlock, model.CPUAdvanced, error) {
	perCore, err := cpu.PercentWithContext(ctx, settleWait, true)
	if err != nil {
		c.logger.Warn("Failed to sample CPU usage: %v", err)
		perCore = nil
	}

	resources := model.ResourceBlock{
		CPUUsagePercent: meanUsage(perCore),
		CPUName:         "Unknown",
	}

	if count, err := cpu.CountsWithContext(ctx, true); err == nil && count > 0 {
		resources.CPUCoreCount = count
	} else {
		resources.CPUCoreCount = len(perCore)
	}

	advanced := model.CPUAdvanced{
		PerCoreUsage: perCore,
	}

	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		if infos[0].ModelName != "" {
			resources.CPUName = infos[0].ModelName
		}
		advanced.CPUFrequencyMHz = int(infos[0].Mhz)
	}

	if avg, err := load.AvgWithContext(ctx); err == nil {
		advanced.LoadAvg1 = avg.Load1
		advanced.LoadAvg5 = avg.Load5
		advanced.LoadAvg15 = avg.Load15
	}

	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return resources, advanced, fmt.Errorf("failed to read memory stats: %w", err)
	}

	resources.MemoryTotalGB = float64(vm.Total) / bytesPerGB
	resources.MemoryUsedGB = float64(vm.Used) / bytesPerGB
	resources.MemoryUsagePercent = usagePercent(resources.MemoryUsedGB, resources.MemoryTotalGB)

	return resources, advanced, nil
}

// meanUsage averages per-core usage, 0 when no cores are enumerable.
func meanUsage(perCore []float64) float64 {
	if len(perCore) == 0 {
		return 0.0
	}
	var sum float64
	for _, v := range perCore {
		sum += v
	}
	return sum / float64(len(perCore))
}

// usagePercent is used/total*100, 0 rather than undefined when total is 0.
func usagePercent(used, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return used / total * 100
}
