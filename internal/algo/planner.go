package algo

import (
	"github.com/elektrokombinacija/uav-mec-research/internal/core"
	"github.com/elektrokombinacija/uav-mec-research/internal/solver"
)

// SmoothWeight is the regularizer on consecutive-slot displacement.
const SmoothWeight = 0.01

// Planner solves the trajectory subproblem: given a fixed allocation, choose
// the interior waypoints minimizing offload-weighted squared distance to the
// devices plus a displacement smoothness term, under pinned endpoints and the
// per-slot velocity cone.
type Planner struct {
	Backend solver.Backend
}

// NewPlanner creates a planner over the given convex backend.
func NewPlanner(b solver.Backend) *Planner {
	return &Planner{Backend: b}
}

// Name returns the subproblem name.
func (pl *Planner) Name() string { return "TrajectoryPlanner" }

// Plan solves for a new trajectory under the given allocation. A nil
// allocation weights every device equally. On any non-optimal backend outcome
// it returns the pinned-endpoint straight line, flagged through the status.
func (pl *Planner) Plan(inst *core.Instance, alloc *core.Allocation) (core.Trajectory, solver.Status) {
	p := inst.Params
	n := p.N
	start, end := p.Start(), p.End()
	fallback := core.StraightLine(start, end, n)

	if n == 2 {
		// Both waypoints are pinned; nothing to optimize.
		return fallback, solver.Optimal
	}

	weights := deviceWeights(inst.Devices, alloc)
	prob := pl.buildProblem(inst, weights)

	res, err := pl.Backend.Minimize(prob)
	if err != nil || !res.Status.IsOptimal() {
		status := solver.MaxIterations
		if err == nil {
			status = res.Status
		}
		return fallback, status
	}

	traj := make(core.Trajectory, n)
	traj[0] = start
	traj[n-1] = end
	for i := 1; i < n-1; i++ {
		traj[i] = core.Pos2{X: res.X[2*(i-1)], Y: res.X[2*(i-1)+1]}
	}
	return traj, res.Status
}

// deviceWeights biases the distance objective toward devices carrying more
// offloaded volume, so the path adapts to where communication savings matter.
func deviceWeights(devices []*core.Device, alloc *core.Allocation) []float64 {
	w := make([]float64, len(devices))
	for i := range w {
		w[i] = 1
	}
	if alloc == nil {
		return w
	}
	total := 0.0
	for m := range devices {
		total += alloc.OffloadedBits(m)
	}
	if total <= 0 {
		return w
	}
	for m := range devices {
		w[m] = 1 + float64(len(devices))*alloc.OffloadedBits(m)/total
	}
	return w
}

// buildProblem assembles the convex program over the 2*(N-2) interior
// coordinates. Variable layout: x[2k], x[2k+1] = slot k+1 waypoint.
func (pl *Planner) buildProblem(inst *core.Instance, weights []float64) *solver.Problem {
	p := inst.Params
	n := p.N
	dim := 2 * (n - 2)
	start, end := p.Start(), p.End()
	devices := inst.Devices
	vBound := p.Vmax * p.Delta()

	point := func(i int) solver.Point2 {
		switch {
		case i == 0:
			return solver.Fixed2(start.X, start.Y)
		case i == n-1:
			return solver.Fixed2(end.X, end.Y)
		default:
			return solver.Var2(2*(i-1), 2*(i-1)+1)
		}
	}
	coord := func(x []float64, i int) (float64, float64) {
		switch {
		case i == 0:
			return start.X, start.Y
		case i == n-1:
			return end.X, end.Y
		default:
			return x[2*(i-1)], x[2*(i-1)+1]
		}
	}

	obj := func(x []float64) float64 {
		total := 0.0
		for i := 1; i < n-1; i++ {
			px, py := coord(x, i)
			for m, d := range devices {
				dx, dy := px-d.Pos.X, py-d.Pos.Y
				total += weights[m] * (dx*dx + dy*dy)
			}
		}
		for i := 1; i < n; i++ {
			ax, ay := coord(x, i)
			bx, by := coord(x, i-1)
			dx, dy := ax-bx, ay-by
			total += SmoothWeight * (dx*dx + dy*dy)
		}
		return total
	}

	grad := func(dst, x []float64) {
		for k := range dst {
			dst[k] = 0
		}
		for i := 1; i < n-1; i++ {
			px, py := coord(x, i)
			ix, iy := 2*(i-1), 2*(i-1)+1
			for m, d := range devices {
				dst[ix] += 2 * weights[m] * (px - d.Pos.X)
				dst[iy] += 2 * weights[m] * (py - d.Pos.Y)
			}
		}
		for i := 1; i < n; i++ {
			ax, ay := coord(x, i)
			bx, by := coord(x, i-1)
			dx, dy := ax-bx, ay-by
			if i < n-1 {
				dst[2*(i-1)] += 2 * SmoothWeight * dx
				dst[2*(i-1)+1] += 2 * SmoothWeight * dy
			}
			if i-1 > 0 {
				dst[2*(i-2)] -= 2 * SmoothWeight * dx
				dst[2*(i-2)+1] -= 2 * SmoothWeight * dy
			}
		}
	}

	cons := make([]solver.Constraint, 0, n-1)
	for i := 1; i < n; i++ {
		cons = append(cons, solver.Cone(point(i), point(i-1), vBound))
	}

	seed := core.StraightLine(start, end, n)
	init := make([]float64, dim)
	for i := 1; i < n-1; i++ {
		init[2*(i-1)] = seed[i].X
		init[2*(i-1)+1] = seed[i].Y
	}

	return &solver.Problem{
		Dim:         dim,
		Init:        init,
		Func:        obj,
		Grad:        grad,
		Constraints: cons,
	}
}
