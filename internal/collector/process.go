package collector

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/shirou/gopsutil/v3/process"

	_const "sysmon_pro/internal/const"
	"sysmon_pro/model"
)

// collectProcesses snapshots the process table and reduces it to the top-N
// view. Failure to enumerate the table is catastrophic and aborts the
// collection; failures on individual processes (races with exits) are not.
func (c *Collector) collectProcesses(ctx context.Context) ([]model.ProcessInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate process table: %w", err)
	}

	rows := make([]model.ProcessInfo, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			// 进程可能在枚举后立即退出
			continue
		}

		row := model.ProcessInfo{
			PID:    p.Pid,
			Name:   name,
			Status: model.StatusUnknown,
		}
		if cpuPct, err := p.CPUPercentWithContext(ctx); err == nil {
			row.CPUUsagePercent = cpuPct
		}
		if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
			row.MemoryMB = float64(mi.RSS) / bytesPerMB
		}
		if statuses, err := p.StatusWithContext(ctx); err == nil {
			row.Status = mapProcessStatus(statuses)
		}
		rows = append(rows, row)
	}

	return rankProcesses(rows, _const.TopProcessCount), nil
}

// mapProcessStatus maps gopsutil status codes to the display statuses.
func mapProcessStatus(statuses []string) string {
	if len(statuses) == 0 {
		return model.StatusUnknown
	}
	switch statuses[0] {
	case process.Running:
		return model.StatusRunning
	case process.Sleep:
		return model.StatusSleeping
	case process.Stop:
		return model.StatusStopped
	case process.Zombie:
		return model.StatusZombie
	case "dead":
		return model.StatusDead
	case process.Idle:
		return model.StatusIdle
	default:
		return model.StatusUnknown
	}
}

// rankProcesses sorts descending by CPU usage and truncates to n. NaN usage
// values are sanitized first so the comparator stays a total order; ties keep
// their original enumeration order.
func rankProcesses(rows []model.ProcessInfo, n int) []model.ProcessInfo {
	for i := range rows {
		if math.IsNaN(rows[i].CPUUsagePercent) || math.IsInf(rows[i].CPUUsagePercent, 0) {
			rows[i].CPUUsagePercent = 0
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].CPUUsagePercent > rows[j].CPUUsagePercent
	})

	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}
