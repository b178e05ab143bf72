package algo

import (
	"fmt"

	"github.com/elektrokombinacija/uav-mec-research/internal/core"
	"github.com/elektrokombinacija/uav-mec-research/internal/solver"
)

// testParams returns constants sized like the four-corner reference runs,
// with a small slot count to keep solves fast.
func testParams() *core.Params {
	return &core.Params{
		Alpha0:    1e-4,
		H1:        10,
		H2:        20,
		N:         20,
		T:         20,
		Vmax:      10,
		KappaM:    1e-27,
		KappaU:    1e-27,
		Epsilon1:  0.01,
		Epsilon2:  0.1,
		LTotal:    30e6,
		C:         1e3,
		ThetaM:    0.5,
		ThetaU:    0.5,
		PComm:     1e-12,
		RateCoeff: 5e12,
		FUAVMax:   3e9,
		StartX:    0, StartY: 0,
		EndX: 10, EndY: 0,
		MaxRounds: 5,
		Tolerance: 1e-3,
	}
}

// createTestInstance builds the four-corner layout: devices at the corners of
// a 10x10 square, relay pinned (0,0) -> (10,0).
func createTestInstance() *core.Instance {
	params := testParams()
	devices := []*core.Device{
		core.NewDevice(1, core.Pos{X: 10, Y: 10}, 45e6),
		core.NewDevice(2, core.Pos{X: 0, Y: 10}, 30e6),
		core.NewDevice(3, core.Pos{X: 0, Y: 0}, 30e6),
		core.NewDevice(4, core.Pos{X: 10, Y: 0}, 30e6),
	}
	return core.NewInstance(devices, params)
}

// failingBackend always reports non-convergence, for fallback tests.
type failingBackend struct{}

func (failingBackend) Minimize(p *solver.Problem) (*solver.Result, error) {
	x := make([]float64, p.Dim)
	copy(x, p.Init)
	return &solver.Result{X: x, Status: solver.MaxIterations}, nil
}

// erroringBackend fails outright, for error-absorption tests.
type erroringBackend struct{}

func (erroringBackend) Minimize(p *solver.Problem) (*solver.Result, error) {
	return nil, fmt.Errorf("backend exploded")
}
