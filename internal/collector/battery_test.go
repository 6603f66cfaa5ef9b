package collector

import (
	"testing"

	"github.com/distatus/battery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatteryInfoDischarging(t *testing.T) {
	info := batteryInfoFrom(&battery.Battery{
		State:      battery.Discharging,
		Current:    40,
		Full:       50,
		Design:     60,
		ChargeRate: 10,
	})

	assert.InDelta(t, 80.0, info.Percentage, 1e-9)
	assert.InDelta(t, 50.0/60.0*100.0, info.HealthPercent, 1e-9)
	assert.False(t, info.IsCharging)
	require.NotNil(t, info.TimeRemainingMinutes)
	assert.Equal(t, 240, *info.TimeRemainingMinutes)
}

func TestBatteryInfoChargingHasNoTimeRemaining(t *testing.T) {
	info := batteryInfoFrom(&battery.Battery{
		State:      battery.Charging,
		Current:    30,
		Full:       50,
		Design:     50,
		ChargeRate: 15,
	})

	assert.True(t, info.IsCharging)
	assert.Nil(t, info.TimeRemainingMinutes, "time remaining is meaningless while charging")
}

func TestBatteryInfoFullCountsAsCharging(t *testing.T) {
	info := batteryInfoFrom(&battery.Battery{
		State:   battery.Full,
		Current: 50,
		Full:    50,
		Design:  50,
	})

	assert.True(t, info.IsCharging)
	assert.Nil(t, info.TimeRemainingMinutes)
	assert.InDelta(t, 100.0, info.Percentage, 1e-9)
}

func TestBatteryInfoZeroCapacityGuards(t *testing.T) {
	info := batteryInfoFrom(&battery.Battery{
		State: battery.Unknown,
	})

	assert.Equal(t, 0.0, info.Percentage)
	assert.Equal(t, 0.0, info.HealthPercent)
	assert.Nil(t, info.TimeRemainingMinutes)
}
