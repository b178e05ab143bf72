package core

import "fmt"

// Instance bundles one optimization problem: the fixed terminals, the relay
// and the physical constants. Read-only once constructed.
type Instance struct {
	Devices []*Device
	UAV     *UAV
	Params  *Params
}

// NewInstance creates an instance and pins the relay endpoints from params.
func NewInstance(devices []*Device, params *Params) *Instance {
	return &Instance{
		Devices: devices,
		UAV:     NewUAV(1, params.H1, params.Start(), params.End()),
		Params:  params,
	}
}

// Validate checks instance consistency before a run.
func (inst *Instance) Validate() error {
	if err := inst.Params.Validate(); err != nil {
		return err
	}
	if len(inst.Devices) == 0 {
		return fmt.Errorf("instance: at least one device required")
	}
	for _, d := range inst.Devices {
		if d.Load < 0 {
			return fmt.Errorf("instance: device %d has negative load %v", d.ID, d.Load)
		}
	}
	if inst.UAV == nil {
		return fmt.Errorf("instance: missing UAV")
	}
	return nil
}

// DeviceByID finds a device by ID.
func (inst *Instance) DeviceByID(id DeviceID) *Device {
	for _, d := range inst.Devices {
		if d.ID == id {
			return d
		}
	}
	return nil
}
