package collector

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysmon_pro/config"
	"sysmon_pro/internal/logger"
	"sysmon_pro/model"
)

func testConfig() *config.Config {
	return &config.Config{
		Monitor: config.MonitorConfig{
			SettleWaitMs: 200,
		},
	}
}

func assertSnapshotInvariants(t *testing.T, snapshot *model.Snapshot) {
	t.Helper()

	assert.LessOrEqual(t, len(snapshot.Processes), 10)
	for i := 1; i < len(snapshot.Processes); i++ {
		assert.GreaterOrEqual(t,
			snapshot.Processes[i-1].CPUUsagePercent,
			snapshot.Processes[i].CPUUsagePercent)
	}

	for _, d := range snapshot.Disks {
		if d.TotalGB == 0 {
			assert.Equal(t, 0.0, d.UsagePercent)
		} else {
			assert.InDelta(t, d.UsedGB/d.TotalGB*100, d.UsagePercent, 1e-6)
		}
	}

	for _, v := range []float64{snapshot.Network.DownloadSpeedMbps, snapshot.Network.UploadSpeedMbps} {
		assert.False(t, math.IsNaN(v))
		assert.False(t, math.IsInf(v, 0))
		assert.GreaterOrEqual(t, v, 0.0)
	}

	if snapshot.Resources.MemoryTotalGB > 0 {
		assert.InDelta(t,
			snapshot.Resources.MemoryUsedGB/snapshot.Resources.MemoryTotalGB*100,
			snapshot.Resources.MemoryUsagePercent, 1e-6)
	}
}

func TestCollectorCollect(t *testing.T) {
	col := New(logger.New(), testConfig())

	snapshot, err := col.Collect(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snapshot)

	assert.NotEmpty(t, snapshot.Host.Hostname)
	assertSnapshotInvariants(t, snapshot)

	// 首次采集没有网速基线
	assert.Equal(t, 0.0, snapshot.Network.DownloadSpeedMbps)
	assert.Equal(t, 0.0, snapshot.Network.UploadSpeedMbps)
}

func TestCollectorConcurrentCollects(t *testing.T) {
	col := New(logger.New(), testConfig())

	var wg sync.WaitGroup
	snapshots := make(chan *model.Snapshot, 8)
	errs := make(chan error, 8)

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snapshot, err := col.Collect(context.Background())
			if err != nil {
				errs <- err
				return
			}
			snapshots <- snapshot
		}()
	}
	wg.Wait()
	close(snapshots)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	for snapshot := range snapshots {
		assertSnapshotInvariants(t, snapshot)
	}
}
