package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// PenaltyBackend solves convex programs with an outer quadratic-penalty loop
// around gonum's L-BFGS. Each outer round minimizes
//
//	f(x) + mu * sum( max(0, g_i(x))^2 + box residuals^2 )
//
// and multiplies mu until the iterate is feasible to tolerance or the outer
// budget runs out.
type PenaltyBackend struct {
	MuInit      float64 // Initial penalty weight
	MuGrowth    float64 // Multiplier per outer round
	OuterRounds int     // Outer penalty rounds
	InnerIters  int     // L-BFGS iteration cap per round
	FeasTol     float64 // Feasibility tolerance for Optimal
	LooseTol    float64 // Feasibility tolerance for OptimalInaccurate
}

// NewPenaltyBackend returns a backend with defaults that suit the allocation
// and trajectory subproblem scales.
func NewPenaltyBackend() *PenaltyBackend {
	return &PenaltyBackend{
		MuInit:      10,
		MuGrowth:    10,
		OuterRounds: 6,
		InnerIters:  400,
		FeasTol:     1e-6,
		LooseTol:    1e-3,
	}
}

// Minimize implements Backend.
func (b *PenaltyBackend) Minimize(p *Problem) (*Result, error) {
	if p.Dim <= 0 {
		return nil, fmt.Errorf("solver: problem has no variables")
	}
	if len(p.Init) != p.Dim {
		return nil, fmt.Errorf("solver: init length %d != dim %d", len(p.Init), p.Dim)
	}

	x := make([]float64, p.Dim)
	copy(x, p.Init)

	mu := b.MuInit
	iterations := 0
	innerClean := true

	tmp := make([]float64, p.Dim)

	for round := 0; round < b.OuterRounds; round++ {
		prob := optimize.Problem{
			Func: func(v []float64) float64 {
				return p.Func(v) + mu*b.penalty(p, v)
			},
			Grad: func(grad, v []float64) {
				p.Grad(grad, v)
				b.addPenaltyGrad(p, v, mu, grad, tmp)
			},
		}

		settings := &optimize.Settings{MajorIterations: b.InnerIters}
		res, err := optimize.Minimize(prob, x, settings, &optimize.LBFGS{})
		if res == nil {
			return nil, fmt.Errorf("solver: inner solve produced no iterate: %w", err)
		}
		copy(x, res.X)
		iterations += res.Stats.MajorIterations
		if err != nil || res.Status == optimize.IterationLimit {
			innerClean = false
		}

		if b.maxViolation(p, x) <= b.FeasTol {
			break
		}
		mu *= b.MuGrowth
	}

	viol := b.maxViolation(p, x)
	out := &Result{
		X:          x,
		Objective:  p.Func(x),
		Iterations: iterations,
		Violation:  viol,
	}
	switch {
	case viol <= b.FeasTol && innerClean:
		out.Status = Optimal
	case viol <= b.LooseTol:
		out.Status = OptimalInaccurate
	default:
		out.Status = Infeasible
	}
	return out, nil
}

// penalty returns the summed squared constraint and box residuals at x.
func (b *PenaltyBackend) penalty(p *Problem, x []float64) float64 {
	total := 0.0
	for _, c := range p.Constraints {
		if v := c.Value(x); v > 0 {
			total += v * v
		}
	}
	for i := range x {
		if p.Lower != nil {
			if d := p.Lower[i] - x[i]; d > 0 {
				total += d * d
			}
		}
		if p.Upper != nil {
			if d := x[i] - p.Upper[i]; d > 0 {
				total += d * d
			}
		}
	}
	return total
}

// addPenaltyGrad accumulates mu * d/dx of the penalty into grad.
func (b *PenaltyBackend) addPenaltyGrad(p *Problem, x []float64, mu float64, grad, tmp []float64) {
	for _, c := range p.Constraints {
		v := c.Value(x)
		if v <= 0 {
			continue
		}
		for i := range tmp {
			tmp[i] = 0
		}
		c.Grad(tmp, x)
		floats.AddScaled(grad, 2*mu*v, tmp)
	}
	for i := range x {
		if p.Lower != nil {
			if d := p.Lower[i] - x[i]; d > 0 {
				grad[i] -= 2 * mu * d
			}
		}
		if p.Upper != nil {
			if d := x[i] - p.Upper[i]; d > 0 {
				grad[i] += 2 * mu * d
			}
		}
	}
}

// maxViolation returns the largest residual across constraints and bounds.
func (b *PenaltyBackend) maxViolation(p *Problem, x []float64) float64 {
	worst := 0.0
	for _, c := range p.Constraints {
		worst = math.Max(worst, c.Value(x))
	}
	for i := range x {
		if p.Lower != nil {
			worst = math.Max(worst, p.Lower[i]-x[i])
		}
		if p.Upper != nil {
			worst = math.Max(worst, x[i]-p.Upper[i])
		}
	}
	return worst
}
