// Package energy evaluates the system energy model for UAV-assisted MEC.
//
// Evaluate is the single objective used for BCD convergence checks and for
// final reporting. It is a pure function of (devices, trajectory, allocation,
// params): no randomness, no hidden state.
package energy

import (
	"github.com/elektrokombinacija/uav-mec-research/internal/core"
)

// Breakdown is the per-subsystem energy split for one candidate solution.
// A fresh value is computed every round; never mutated in place.
type Breakdown struct {
	Comm       float64 // Device transmit energy (J)
	Local      float64 // Device compute energy (J)
	UAVCompute float64 // Relay compute energy (J)
	Flight     float64 // Relay propulsion energy (J)
	Total      float64 // theta_m*(Comm+Local) + theta_u*(UAVCompute+Flight)
}

// Evaluate computes the energy breakdown for a trajectory and allocation.
//
// Negative frequencies or offload volumes are caller bugs; the model does not
// clamp them, so callers must reject or clip before evaluating.
func Evaluate(devices []*core.Device, traj core.Trajectory, alloc *core.Allocation, p *core.Params) Breakdown {
	var b Breakdown
	b.Comm = commEnergy(devices, traj, alloc, p)
	b.Local, b.UAVCompute = computeEnergy(devices, alloc, p)
	b.Flight = flightEnergy(traj, p)
	b.Total = p.ThetaM*(b.Comm+b.Local) + p.ThetaU*(b.UAVCompute+b.Flight)
	return b
}

// commEnergy sums per-slot transmit energy: p_comm / gain(m,n) per offloaded
// bit, so a device the relay never approaches pays the full inverse-square
// distance penalty while a closely visited one pays little.
func commEnergy(devices []*core.Device, traj core.Trajectory, alloc *core.Allocation, p *core.Params) float64 {
	total := 0.0
	for m, d := range devices {
		for n, pos := range traj {
			vol := alloc.Offload[m][n]
			if vol == 0 {
				continue
			}
			gain := d.ChannelGain(pos, p.Alpha0, p.H1)
			total += p.PComm * vol / gain
		}
	}
	return total
}

// computeEnergy sums the cubic DVFS terms over the whole horizon:
// N * delta * kappa * f³ = T * kappa * f³ per processor.
func computeEnergy(devices []*core.Device, alloc *core.Allocation, p *core.Params) (local, uav float64) {
	for m := range devices {
		fm := alloc.LocalFreq[m]
		fu := alloc.UAVFreq[m]
		local += p.T * p.KappaM * fm * fm * fm
		uav += p.T * p.KappaU * fu * fu * fu
	}
	return local, uav
}

// flightEnergy sums delta*(eps1*v³ + eps2*v) over slots. The linear term
// dominates at low speed, so slow repositioning still draws power.
func flightEnergy(traj core.Trajectory, p *core.Params) float64 {
	delta := p.Delta()
	total := 0.0
	for _, v := range traj.Velocities(delta) {
		total += delta * (p.Epsilon1*v*v*v + p.Epsilon2*v)
	}
	return total
}
