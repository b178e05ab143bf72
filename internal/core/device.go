package core

// DeviceID is a unique terminal device identifier.
type DeviceID int

// Device is a fixed terminal with a computation task to complete over the
// horizon. Position and load are immutable for the duration of a run.
type Device struct {
	ID   DeviceID
	Pos  Pos
	Load float64 // Task load (bits)
}

// NewDevice creates a terminal device at a fixed position.
func NewDevice(id DeviceID, pos Pos, load float64) *Device {
	return &Device{ID: id, Pos: pos, Load: load}
}

// ChannelGain returns the free-space gain between the device and a UAV
// waypoint at altitude h1: alpha0 / (horizDist² + h1²).
func (d *Device) ChannelGain(p Pos2, alpha0, h1 float64) float64 {
	return alpha0 / (p.DistSq(d.Pos) + h1*h1)
}
