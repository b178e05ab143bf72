package energy

import (
	"math"
	"testing"

	"github.com/elektrokombinacija/uav-mec-research/internal/core"
)

func testParams() *core.Params {
	return &core.Params{
		Alpha0:    1e-4,
		H1:        10,
		H2:        20,
		N:         10,
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
		EndX:      10,
		MaxRounds: 5,
		Tolerance: 1e-3,
	}
}

func testFixture() ([]*core.Device, core.Trajectory, *core.Allocation, *core.Params) {
	p := testParams()
	devices := []*core.Device{
		core.NewDevice(1, core.Pos{X: 10, Y: 10}, 45e6),
		core.NewDevice(2, core.Pos{X: 0, Y: 10}, 30e6),
	}
	traj := core.StraightLine(p.Start(), p.End(), p.N)
	alloc := core.NewAllocation(2, p.N)
	for m, d := range devices {
		for n := range alloc.Offload[m] {
			alloc.Offload[m][n] = d.Load / (2 * float64(p.N))
		}
	}
	alloc.DeriveFrequencies(devices, p.C, p.T)
	return devices, traj, alloc, p
}

func TestEvaluate_IsPure(t *testing.T) {
	devices, traj, alloc, p := testFixture()
	a := Evaluate(devices, traj, alloc, p)
	b := Evaluate(devices, traj, alloc, p)
	if a != b {
		t.Errorf("two evaluations of identical inputs differ: %+v vs %+v", a, b)
	}
}

func TestEvaluate_WeightedTotal(t *testing.T) {
	devices, traj, alloc, p := testFixture()
	b := Evaluate(devices, traj, alloc, p)
	want := p.ThetaM*(b.Comm+b.Local) + p.ThetaU*(b.UAVCompute+b.Flight)
	if math.Abs(b.Total-want) > 1e-9*math.Abs(want) {
		t.Errorf("total %v does not match weighted sum %v", b.Total, want)
	}
	for name, v := range map[string]float64{
		"comm": b.Comm, "local": b.Local, "uav": b.UAVCompute, "flight": b.Flight,
	} {
		if v < 0 {
			t.Errorf("%s component negative: %v", name, v)
		}
	}
}

func TestEvaluate_FlightEnergyHandComputed(t *testing.T) {
	p := testParams()
	p.N = 3
	// Two slots, each covering 5m in delta seconds.
	traj := core.Trajectory{{X: 0, Y: 0}, {X: 5, Y: 0}, {X: 10, Y: 0}}
	devices := []*core.Device{core.NewDevice(1, core.Pos{X: 0, Y: 0}, 0)}
	alloc := core.NewAllocation(1, 3)

	delta := p.Delta()
	v := 5 / delta
	want := 2 * delta * (p.Epsilon1*v*v*v + p.Epsilon2*v)

	b := Evaluate(devices, traj, alloc, p)
	if math.Abs(b.Flight-want) > 1e-9*want {
		t.Errorf("flight energy %v, want %v", b.Flight, want)
	}
}

func TestEvaluate_CommDropsWhenCloser(t *testing.T) {
	devices, _, alloc, p := testFixture()
	far := core.StraightLine(core.Pos2{X: 0, Y: -10}, core.Pos2{X: 10, Y: -10}, p.N)
	near := core.StraightLine(core.Pos2{X: 0, Y: 10}, core.Pos2{X: 10, Y: 10}, p.N)

	if fb, nb := Evaluate(devices, far, alloc, p), Evaluate(devices, near, alloc, p); fb.Comm <= nb.Comm {
		t.Errorf("comm energy should grow with distance: far %v <= near %v", fb.Comm, nb.Comm)
	}
}

func TestEvaluate_HoverTermChargesSlowFlight(t *testing.T) {
	p := testParams()
	p.N = 3
	devices := []*core.Device{core.NewDevice(1, core.Pos{X: 0, Y: 0}, 0)}
	alloc := core.NewAllocation(1, 3)

	moving := core.Trajectory{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}
	b := Evaluate(devices, moving, alloc, p)
	if b.Flight <= 0 {
		t.Errorf("slow flight should still cost energy via the linear term, got %v", b.Flight)
	}
}
