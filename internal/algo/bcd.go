package algo

import (
	"fmt"
	"math"

	"github.com/elektrokombinacija/uav-mec-research/internal/core"
	"github.com/elektrokombinacija/uav-mec-research/internal/energy"
	"github.com/elektrokombinacija/uav-mec-research/internal/solver"
)

// State is the orchestrator's position in the alternation.
type State int

const (
	StateInit State = iota
	StateAllocate
	StatePlan
	StateConverged
	StateExhausted
)

func (s State) String() string {
	return [...]string{"INIT", "ALLOCATE", "PLAN", "CONVERGED", "EXHAUSTED"}[s]
}

// Result is the engine's output: the best trajectory/allocation pair observed
// across all rounds with its energy breakdown. Best-so-far matters because the
// alternation of two individually convex subproblems is not jointly convex,
// so the total can move non-monotonically round to round.
type Result struct {
	Trajectory core.Trajectory
	Allocation *core.Allocation
	Energy     energy.Breakdown
	Rounds     int
	State      State
	// OptimalRounds counts rounds where both subproblem solves were optimal.
	OptimalRounds int
}

// BCD alternates the resource allocator and the trajectory planner until the
// weighted total energy stops improving or the round budget runs out.
type BCD struct {
	Allocator *Allocator
	Planner   *Planner
}

// NewBCD wires both subproblems to the same convex backend.
func NewBCD(b solver.Backend) *BCD {
	return &BCD{Allocator: NewAllocator(b), Planner: NewPlanner(b)}
}

// Optimize runs the alternation. Only configuration/shape errors are
// returned; subproblem numeric failures are absorbed by the documented
// fallbacks and early termination.
func (b *BCD) Optimize(inst *core.Instance) (*Result, error) {
	if err := inst.Validate(); err != nil {
		return nil, fmt.Errorf("bcd: %w", err)
	}
	p := inst.Params

	// INIT: straight-line seed with the even split, evaluated as the
	// baseline the final answer must never fall behind.
	traj := core.StraightLine(p.Start(), p.End(), p.N)
	alloc := EvenSplit(inst)
	best := &Result{
		Trajectory: traj,
		Allocation: alloc,
		Energy:     energy.Evaluate(inst.Devices, traj, alloc, p),
		State:      StateInit,
	}

	prev := best.Energy.Total
	nonOptimalStreak := 0
	state := StateInit

	for round := 1; round <= p.MaxRounds; round++ {
		state = StateAllocate
		newAlloc, allocStatus := b.Allocator.Allocate(inst, traj)

		state = StatePlan
		newTraj, planStatus := b.Planner.Plan(inst, newAlloc)

		eb := energy.Evaluate(inst.Devices, newTraj, newAlloc, p)

		roundOptimal := allocStatus.IsOptimal() && planStatus.IsOptimal()
		if roundOptimal {
			nonOptimalStreak = 0
			best.OptimalRounds++
		} else {
			nonOptimalStreak++
		}

		if eb.Total < best.Energy.Total {
			best.Trajectory = newTraj.Clone()
			best.Allocation = newAlloc.Clone()
			best.Energy = eb
		}
		best.Rounds = round

		if nonOptimalStreak >= 2 {
			// Two consecutive degraded rounds: stop iterating on
			// fallbacks and return the best point seen.
			state = StateExhausted
			break
		}

		// Only a fully optimal round can certify convergence; a fallback
		// round repeating the same degraded point would otherwise pass
		// the improvement test trivially.
		if roundOptimal {
			rel := math.Abs(prev-eb.Total) / math.Max(math.Abs(prev), 1e-12)
			if rel < p.Tolerance {
				state = StateConverged
				break
			}
		}

		prev = eb.Total
		traj = newTraj
	}

	if state != StateConverged && state != StateExhausted {
		state = StateExhausted
	}
	best.State = state
	return best, nil
}
