package scheduler

// DeviceState reports conditions that constrained jobs wait for.
type DeviceState interface {
	BatteryLow() bool
}

// StaticDevice is a DeviceState with a fixed battery level, set from configuration.
type StaticDevice bool

func (d StaticDevice) BatteryLow() bool {
	return bool(d)
}
