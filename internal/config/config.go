// Package config loads optimization scenarios from YAML files.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/elektrokombinacija/uav-mec-research/internal/core"
)

// DeviceSpec places one terminal device.
type DeviceSpec struct {
	ID   int     `yaml:"id"`
	X    float64 `yaml:"x"`
	Y    float64 `yaml:"y"`
	Z    float64 `yaml:"z"`
	Load float64 `yaml:"load"` // Bits; 0 means use simulation.l_total
}

// Scenario is the on-disk shape of one run: the physical constants plus the
// device placements.
type Scenario struct {
	Simulation core.Params  `yaml:"simulation"`
	Devices    []DeviceSpec `yaml:"devices"`
}

// Load reads and validates a scenario file. Any missing or non-numeric
// required field is a fatal configuration error.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := sc.Simulation.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	if len(sc.Devices) == 0 {
		return nil, fmt.Errorf("config: %s: no devices defined", path)
	}
	return &sc, nil
}

// Instance converts the scenario into a validated problem instance.
func (sc *Scenario) Instance() (*core.Instance, error) {
	devices := make([]*core.Device, len(sc.Devices))
	for i, d := range sc.Devices {
		load := d.Load
		if load == 0 {
			load = sc.Simulation.LTotal
		}
		devices[i] = core.NewDevice(core.DeviceID(d.ID), core.Pos{X: d.X, Y: d.Y, Z: d.Z}, load)
	}
	inst := core.NewInstance(devices, &sc.Simulation)
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// Save writes a scenario to disk, used by the scenario generator tool.
func (sc *Scenario) Save(path string) error {
	data, err := yaml.Marshal(sc)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
