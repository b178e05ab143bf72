package core

import "fmt"

// Params holds the physical constants for one optimization run.
// All values are read once from configuration and never mutated.
type Params struct {
	Alpha0 float64 `yaml:"alpha0"` // Channel gain at 1m reference distance
	H1     float64 `yaml:"h1"`     // Relay UAV altitude (m)
	H2     float64 `yaml:"h2"`     // Auxiliary relay altitude (m)

	N int     `yaml:"num_slots"`  // Time slots over the horizon
	T float64 `yaml:"total_time"` // Horizon duration (s)

	Vmax float64 `yaml:"vmax"` // Per-slot velocity bound (m/s)

	KappaM float64 `yaml:"kappa_m"` // Device DVFS energy coefficient
	KappaU float64 `yaml:"kappa_u"` // UAV DVFS energy coefficient

	Epsilon1 float64 `yaml:"epsilon1"` // Flight energy, cubic velocity term
	Epsilon2 float64 `yaml:"epsilon2"` // Flight energy, linear (hover) term

	LTotal float64 `yaml:"l_total"` // Default per-device task load (bits)
	C      float64 `yaml:"c"`       // Compute cycles per bit

	ThetaM float64 `yaml:"theta_m"` // Weight on device-side energy
	ThetaU float64 `yaml:"theta_u"` // Weight on UAV-side energy

	PComm     float64 `yaml:"p_comm"`     // Transmit energy per bit per inverse gain
	RateCoeff float64 `yaml:"rate_coeff"` // Achievable rate per unit channel gain (bit/s)
	FUAVMax   float64 `yaml:"f_uav_max"`  // Aggregate UAV frequency ceiling (Hz)

	StartX float64 `yaml:"start_x"` // Pinned trajectory start
	StartY float64 `yaml:"start_y"`
	EndX   float64 `yaml:"end_x"` // Pinned trajectory end
	EndY   float64 `yaml:"end_y"`

	MaxRounds int     `yaml:"max_rounds"` // BCD round budget
	Tolerance float64 `yaml:"tolerance"`  // Relative improvement stop threshold
}

// Delta returns the slot duration T/N.
func (p *Params) Delta() float64 {
	return p.T / float64(p.N)
}

// Start returns the pinned start waypoint.
func (p *Params) Start() Pos2 { return Pos2{X: p.StartX, Y: p.StartY} }

// End returns the pinned end waypoint.
func (p *Params) End() Pos2 { return Pos2{X: p.EndX, Y: p.EndY} }

// Validate checks that every constant is usable. A failure here is a
// configuration error and the run must not proceed.
func (p *Params) Validate() error {
	positive := []struct {
		name string
		v    float64
	}{
		{"alpha0", p.Alpha0},
		{"h1", p.H1},
		{"total_time", p.T},
		{"vmax", p.Vmax},
		{"kappa_m", p.KappaM},
		{"kappa_u", p.KappaU},
		{"epsilon1", p.Epsilon1},
		{"epsilon2", p.Epsilon2},
		{"l_total", p.LTotal},
		{"c", p.C},
		{"theta_m", p.ThetaM},
		{"theta_u", p.ThetaU},
		{"p_comm", p.PComm},
		{"rate_coeff", p.RateCoeff},
		{"f_uav_max", p.FUAVMax},
	}
	for _, c := range positive {
		if c.v <= 0 {
			return fmt.Errorf("params: %s must be strictly positive, got %v", c.name, c.v)
		}
	}
	if p.N < 2 {
		return fmt.Errorf("params: num_slots must be at least 2, got %d", p.N)
	}
	if p.MaxRounds < 1 {
		return fmt.Errorf("params: max_rounds must be at least 1, got %d", p.MaxRounds)
	}
	if p.Tolerance <= 0 {
		return fmt.Errorf("params: tolerance must be strictly positive, got %v", p.Tolerance)
	}
	return nil
}
