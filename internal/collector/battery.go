package collector

import (
	"github.com/distatus/battery"

	"sysmon_pro/model"
)

// collectBattery queries the power-management subsystem for the first battery
// only. Absence of a battery (desktops, servers) is nil, never an error.
func (c *Collector) collectBattery() *model.BatteryInfo {
	batteries, err := battery.GetAll()
	if err != nil && len(batteries) == 0 {
		return nil
	}
	if len(batteries) == 0 || batteries[0] == nil {
		return nil
	}
	return batteryInfoFrom(batteries[0])
}

// batteryInfoFrom derives charge and health percentages from the native
// capacity fractions. While charging or full, time remaining is meaningless
// and stays nil.
func batteryInfoFrom(b *battery.Battery) *model.BatteryInfo {
	info := &model.BatteryInfo{
		Percentage:    usagePercent(b.Current, b.Full),
		HealthPercent: usagePercent(b.Full, b.Design),
		IsCharging:    b.State == battery.Charging || b.State == battery.Full,
	}

	if !info.IsCharging && b.ChargeRate > 0 {
		minutes := int(b.Current / b.ChargeRate * 60)
		info.TimeRemainingMinutes = &minutes
	}

	return info
}
