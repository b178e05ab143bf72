// Package solver abstracts the convex-optimization backend used by the
// allocation and trajectory subproblems.
//
// A subproblem is handed over as a Problem (objective, gradient, convex
// inequality constraints, box bounds) and comes back as a Result carrying a
// variable assignment and a Status. Callers must treat anything other than
// Optimal or OptimalInaccurate as non-optimal and apply their own fallback.
package solver

import "math"

// Status reports the outcome of a Minimize call.
type Status int

const (
	// Optimal: converged with all constraints satisfied to tolerance.
	Optimal Status = iota
	// OptimalInaccurate: usable point, but looser feasibility or an inner
	// solve that stopped on its iteration budget.
	OptimalInaccurate
	// MaxIterations: outer loop exhausted without a usable point.
	MaxIterations
	// Infeasible: constraint violation did not shrink; the feasible set is
	// likely empty for this problem.
	Infeasible
)

func (s Status) String() string {
	return [...]string{"optimal", "optimal_inaccurate", "max_iterations", "infeasible"}[s]
}

// IsOptimal reports whether the result is usable as a subproblem solution.
func (s Status) IsOptimal() bool {
	return s == Optimal || s == OptimalInaccurate
}

// Constraint is a convex inequality g(x) <= 0.
type Constraint struct {
	// Value returns g(x).
	Value func(x []float64) float64
	// Grad writes the gradient of g into dst (dst is pre-zeroed). Only
	// called at points where g(x) > 0, so norm-type constraints never need
	// a subgradient at their non-smooth origin.
	Grad func(dst, x []float64)
}

// Problem is a convex program over x in R^Dim.
type Problem struct {
	Dim  int
	Init []float64

	// Func and Grad define the convex objective.
	Func func(x []float64) float64
	Grad func(dst, x []float64)

	// Constraints are convex inequalities g(x) <= 0.
	Constraints []Constraint

	// Lower and Upper are optional per-variable box bounds (nil = none).
	Lower []float64
	Upper []float64
}

// Result is a variable assignment with its solve outcome.
type Result struct {
	X          []float64
	Objective  float64
	Status     Status
	Iterations int
	// Violation is the largest constraint/box residual at X.
	Violation float64
}

// Backend solves convex programs.
type Backend interface {
	Minimize(p *Problem) (*Result, error)
}

// Point2 selects a planar point whose coordinates are either decision
// variables (index >= 0) or pinned constants (index < 0).
type Point2 struct {
	IX, IY int
	X, Y   float64
}

// Var2 returns a fully variable point.
func Var2(ix, iy int) Point2 { return Point2{IX: ix, IY: iy} }

// Fixed2 returns a pinned constant point.
func Fixed2(x, y float64) Point2 { return Point2{IX: -1, IY: -1, X: x, Y: y} }

func (p Point2) at(x []float64) (float64, float64) {
	px, py := p.X, p.Y
	if p.IX >= 0 {
		px = x[p.IX]
	}
	if p.IY >= 0 {
		py = x[p.IY]
	}
	return px, py
}

// Cone builds the second-order-cone constraint ||a - b|| <= bound. This is
// the exact form of the per-slot velocity limit: the squared variant would
// reshape the feasible region, so it is never used here.
func Cone(a, b Point2, bound float64) Constraint {
	return Constraint{
		Value: func(x []float64) float64 {
			ax, ay := a.at(x)
			bx, by := b.at(x)
			dx, dy := ax-bx, ay-by
			return norm2(dx, dy) - bound
		},
		Grad: func(dst, x []float64) {
			ax, ay := a.at(x)
			bx, by := b.at(x)
			dx, dy := ax-bx, ay-by
			n := norm2(dx, dy)
			if n == 0 {
				return
			}
			if a.IX >= 0 {
				dst[a.IX] += dx / n
			}
			if a.IY >= 0 {
				dst[a.IY] += dy / n
			}
			if b.IX >= 0 {
				dst[b.IX] -= dx / n
			}
			if b.IY >= 0 {
				dst[b.IY] -= dy / n
			}
		},
	}
}

// Linear builds sum(coeff_i * x_i) - rhs <= 0.
func Linear(coeffs map[int]float64, rhs float64) Constraint {
	return Constraint{
		Value: func(x []float64) float64 {
			v := -rhs
			for i, c := range coeffs {
				v += c * x[i]
			}
			return v
		},
		Grad: func(dst, x []float64) {
			for i, c := range coeffs {
				dst[i] += c
			}
		},
	}
}

func norm2(dx, dy float64) float64 {
	return math.Sqrt(dx*dx + dy*dy)
}
