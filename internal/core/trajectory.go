package core

// Trajectory is an ordered sequence of per-slot planar waypoints. Length is
// always exactly N; the first and last entries stay pinned for a whole run.
type Trajectory []Pos2

// StraightLine interpolates n waypoints between start and end inclusive.
// Used both as the BCD seed and as the planner's non-convergence fallback.
func StraightLine(start, end Pos2, n int) Trajectory {
	traj := make(Trajectory, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		traj[i] = Pos2{
			X: start.X + t*(end.X-start.X),
			Y: start.Y + t*(end.Y-start.Y),
		}
	}
	return traj
}

// Velocities returns the N-1 per-slot velocities, displacement over delta.
func (tr Trajectory) Velocities(delta float64) []float64 {
	if len(tr) < 2 {
		return nil
	}
	vs := make([]float64, len(tr)-1)
	for i := 1; i < len(tr); i++ {
		vs[i-1] = tr[i].Sub(tr[i-1]).Norm() / delta
	}
	return vs
}

// MaxVelocity returns the largest per-slot velocity.
func (tr Trajectory) MaxVelocity(delta float64) float64 {
	max := 0.0
	for _, v := range tr.Velocities(delta) {
		if v > max {
			max = v
		}
	}
	return max
}

// PathLength returns the total flown distance.
func (tr Trajectory) PathLength() float64 {
	total := 0.0
	for i := 1; i < len(tr); i++ {
		total += tr[i].Sub(tr[i-1]).Norm()
	}
	return total
}

// Clone returns a deep copy. Each BCD round replaces the current trajectory
// wholesale, so subproblems never mutate a shared slice.
func (tr Trajectory) Clone() Trajectory {
	out := make(Trajectory, len(tr))
	copy(out, tr)
	return out
}
