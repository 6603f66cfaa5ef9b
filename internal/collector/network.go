package collector

import (
	"context"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/net"

	"sysmon_pro/model"
)

const bytesPerMB = 1024 * 1024

// RateTracker derives instantaneous throughput from cumulative byte counters.
// Its baseline is the only state shared across collection calls, so all
// read-modify-write access goes through the mutex.
type RateTracker struct {
	mutex       sync.Mutex
	initialized bool
	lastRx      uint64
	lastTx      uint64
	lastTime    time.Time
}

// NewRateTracker creates a tracker with no baseline; the first Rates call
// stores one and reports zero.
func NewRateTracker() *RateTracker {
	return &RateTracker{}
}

// Rates reports download/upload speed in Mbps given the current cumulative
// totals, then overwrites the baseline. Zero elapsed time and counter resets
// (totals going backwards) report 0 instead of garbage.
func (t *RateTracker) Rates(rxTotal, txTotal uint64, now time.Time) (float64, float64) {
	t.mutex.Lock()
	defer t.mutex.Unlock()

	if !t.initialized {
		t.store(rxTotal, txTotal, now)
		return 0, 0
	}

	elapsed := now.Sub(t.lastTime).Seconds()
	if elapsed <= 0 {
		t.store(rxTotal, txTotal, now)
		return 0, 0
	}

	down := mbps(t.lastRx, rxTotal, elapsed)
	up := mbps(t.lastTx, txTotal, elapsed)
	t.store(rxTotal, txTotal, now)
	return down, up
}

func (t *RateTracker) store(rx, tx uint64, now time.Time) {
	t.initialized = true
	t.lastRx = rx
	t.lastTx = tx
	t.lastTime = now
}

// mbps converts a byte-counter delta over elapsed seconds to megabits/sec.
func mbps(prev, cur uint64, elapsed float64) float64 {
	if cur < prev {
		// 计数器重置（接口重建），本次速率归零
		return 0
	}
	return float64(cur-prev) * 8 / 1e6 / elapsed
}

// collectNetwork enumerates interface counters and derives throughput from
// the persisted baseline.
func (c *Collector) collectNetwork(ctx context.Context) model.NetworkAdvanced {
	counters, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		c.logger.Warn("Failed to read network IO counters: %v", err)
		return model.NetworkAdvanced{Interfaces: []model.NetworkInterface{}}
	}

	interfaces := make([]model.NetworkInterface, 0, len(counters))
	var rxTotal, txTotal uint64
	for _, io := range counters {
		interfaces = append(interfaces, model.NetworkInterface{
			Name:          io.Name,
			ReceivedMB:    io.BytesRecv / bytesPerMB,
			TransmittedMB: io.BytesSent / bytesPerMB,
		})
		rxTotal += io.BytesRecv
		txTotal += io.BytesSent
	}

	down, up := c.tracker.Rates(rxTotal, txTotal, time.Now())

	return model.NetworkAdvanced{
		Interfaces:        interfaces,
		DownloadSpeedMbps: down,
		UploadSpeedMbps:   up,
	}
}
