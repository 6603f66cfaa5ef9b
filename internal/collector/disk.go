package collector

import (
	"context"

	"github.com/shirou/gopsutil/v3/disk"

	"sysmon_pro/model"
)

// collectDisks enumerates mounted volumes. Enumeration failures degrade to an
// empty set; a volume whose usage cannot be read is skipped.
func (c *Collector) collectDisks(ctx context.Context) []model.DiskInfo {
	partitions, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		c.logger.Warn("Failed to enumerate disk partitions: %v", err)
		return nil
	}

	disks := make([]model.DiskInfo, 0, len(partitions))
	for _, p := range partitions {
		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil {
			continue
		}
		disks = append(disks, diskInfoFrom(p.Device, p.Mountpoint, usage.Total, usage.Free))
	}
	return disks
}

// diskInfoFrom computes used = total - available and the derived percentage.
func diskInfoFrom(name, mountPoint string, total, free uint64) model.DiskInfo {
	totalGB := float64(total) / bytesPerGB
	usedGB := totalGB - float64(free)/bytesPerGB
	return model.DiskInfo{
		Name:         name,
		TotalGB:      totalGB,
		UsedGB:       usedGB,
		UsagePercent: usagePercent(usedGB, totalGB),
		MountPoint:   mountPoint,
	}
}
