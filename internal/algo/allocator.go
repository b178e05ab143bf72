// Package algo implements the joint trajectory/resource optimization engine.
package algo

import (
	"github.com/elektrokombinacija/uav-mec-research/internal/core"
	"github.com/elektrokombinacija/uav-mec-research/internal/solver"
)

// Allocator solves the resource-allocation subproblem: given a fixed
// trajectory, choose per-device per-slot offload volumes minimizing weighted
// communication + compute energy. Local and UAV frequencies are derived from
// the volumes, so workload conservation holds by construction.
type Allocator struct {
	Backend solver.Backend
}

// NewAllocator creates an allocator over the given convex backend.
func NewAllocator(b solver.Backend) *Allocator {
	return &Allocator{Backend: b}
}

// Name returns the subproblem name.
func (a *Allocator) Name() string { return "ResourceAllocator" }

// Allocate solves for the offload volumes under the current trajectory.
// On any non-optimal backend outcome it returns the even half-load split as
// a feasible degraded allocation, flagged through the returned status.
func (a *Allocator) Allocate(inst *core.Instance, traj core.Trajectory) (*core.Allocation, solver.Status) {
	p := inst.Params
	devices := inst.Devices
	m := len(devices)
	n := p.N
	delta := p.Delta()

	// Channel gain per device per slot is fixed once the trajectory is.
	gain := make([][]float64, m)
	caps := make([][]float64, m)
	for i, d := range devices {
		gain[i] = make([]float64, n)
		caps[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			g := d.ChannelGain(traj[j], p.Alpha0, p.H1)
			gain[i][j] = g
			// Causality: a slot cannot carry more than its achievable rate.
			caps[i][j] = delta * p.RateCoeff * g
		}
	}

	prob := a.buildProblem(devices, gain, caps, p)

	res, err := a.Backend.Minimize(prob)
	if err != nil || !res.Status.IsOptimal() {
		status := solver.MaxIterations
		if err == nil {
			status = res.Status
		}
		return EvenSplit(inst), status
	}

	alloc := core.NewAllocation(m, n)
	for i := 0; i < m; i++ {
		remaining := devices[i].Load
		for j := 0; j < n; j++ {
			v := res.X[i*n+j]
			// The backend enforces bounds by penalty, so clip the tiny
			// residual violations before they reach the energy model.
			if v < 0 {
				v = 0
			}
			if v > caps[i][j] {
				v = caps[i][j]
			}
			if v > remaining {
				v = remaining
			}
			alloc.Offload[i][j] = v
			remaining -= v
		}
	}
	alloc.DeriveFrequencies(devices, p.C, p.T)
	return alloc, res.Status
}

// buildProblem assembles the convex program over x = vec(offload volumes).
func (a *Allocator) buildProblem(devices []*core.Device, gain, caps [][]float64, p *core.Params) *solver.Problem {
	m := len(devices)
	n := p.N
	dim := m * n

	offloaded := func(x []float64, i int) float64 {
		s := 0.0
		for j := 0; j < n; j++ {
			s += x[i*n+j]
		}
		return s
	}

	obj := func(x []float64) float64 {
		total := 0.0
		for i, d := range devices {
			s := offloaded(x, i)
			fm := p.C * (d.Load - s) / p.T
			fu := p.C * s / p.T
			total += p.ThetaM * p.T * p.KappaM * cube(fm)
			total += p.ThetaU * p.T * p.KappaU * cube(fu)
			for j := 0; j < n; j++ {
				total += p.ThetaM * p.PComm * x[i*n+j] / gain[i][j]
			}
		}
		return total
	}

	grad := func(dst, x []float64) {
		for i, d := range devices {
			s := offloaded(x, i)
			fm := p.C * (d.Load - s) / p.T
			fu := p.C * s / p.T
			dLocal := -3 * p.ThetaM * p.KappaM * p.C * sq(fm)
			dUAV := 3 * p.ThetaU * p.KappaU * p.C * sq(fu)
			for j := 0; j < n; j++ {
				dst[i*n+j] = dLocal + dUAV + p.ThetaM*p.PComm/gain[i][j]
			}
		}
	}

	lower := make([]float64, dim)
	upper := make([]float64, dim)
	init := make([]float64, dim)
	for i, d := range devices {
		even := d.Load / (2 * float64(n))
		for j := 0; j < n; j++ {
			upper[i*n+j] = caps[i][j]
			init[i*n+j] = minF(even, caps[i][j])
		}
	}

	var cons []solver.Constraint
	// Per device: offloaded total cannot exceed the task load.
	for i, d := range devices {
		coeffs := make(map[int]float64, n)
		for j := 0; j < n; j++ {
			coeffs[i*n+j] = 1
		}
		cons = append(cons, solver.Linear(coeffs, d.Load))
	}
	// Aggregate UAV frequency ceiling: (C/T) * sum of all volumes <= FUAVMax.
	all := make(map[int]float64, dim)
	for k := 0; k < dim; k++ {
		all[k] = p.C / p.T
	}
	cons = append(cons, solver.Linear(all, p.FUAVMax))

	return &solver.Problem{
		Dim:         dim,
		Init:        init,
		Func:        obj,
		Grad:        grad,
		Constraints: cons,
		Lower:       lower,
		Upper:       upper,
	}
}

// EvenSplit is the documented degraded allocation: every device offloads half
// its load spread uniformly across slots, frequencies derived accordingly.
func EvenSplit(inst *core.Instance) *core.Allocation {
	p := inst.Params
	alloc := core.NewAllocation(len(inst.Devices), p.N)
	for m, d := range inst.Devices {
		per := d.Load / (2 * float64(p.N))
		for n := range alloc.Offload[m] {
			alloc.Offload[m][n] = per
		}
	}
	alloc.DeriveFrequencies(inst.Devices, p.C, p.T)
	return alloc
}

// cube clamps to the non-negative domain before cubing, which keeps the
// objective convex when an iterate briefly overshoots a device's load.
func cube(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return v * v * v
}

func sq(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return v * v
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
