package algo

import (
	"math"
	"testing"

	"github.com/elektrokombinacija/uav-mec-research/internal/core"
	"github.com/elektrokombinacija/uav-mec-research/internal/solver"
)

func TestAllocate_WorkloadConservation(t *testing.T) {
	inst := createTestInstance()
	p := inst.Params
	traj := core.StraightLine(p.Start(), p.End(), p.N)

	alloc, status := NewAllocator(solver.NewPenaltyBackend()).Allocate(inst, traj)
	if !status.IsOptimal() {
		t.Fatalf("expected optimal allocation on feasible instance, got %v", status)
	}

	if !alloc.Conserves(inst.Devices, p.C, p.T, 1.0) {
		t.Error("local + offloaded load does not match device load")
	}
	for m, d := range inst.Devices {
		off := alloc.OffloadedBits(m)
		if off < 0 || off > d.Load+1 {
			t.Errorf("device %d offload %v outside [0, %v]", d.ID, off, d.Load)
		}
	}
}

func TestAllocate_NonNegativeVolumes(t *testing.T) {
	inst := createTestInstance()
	p := inst.Params
	traj := core.StraightLine(p.Start(), p.End(), p.N)

	alloc, _ := NewAllocator(solver.NewPenaltyBackend()).Allocate(inst, traj)
	for m := range inst.Devices {
		for n, v := range alloc.Offload[m] {
			if v < 0 {
				t.Fatalf("negative offload volume %v at device %d slot %d", v, m, n)
			}
		}
		if alloc.LocalFreq[m] < 0 || alloc.UAVFreq[m] < 0 {
			t.Fatalf("negative frequency for device %d", m)
		}
	}
}

func TestAllocate_CausalityCap(t *testing.T) {
	inst := createTestInstance()
	p := inst.Params
	traj := core.StraightLine(p.Start(), p.End(), p.N)
	delta := p.Delta()

	alloc, _ := NewAllocator(solver.NewPenaltyBackend()).Allocate(inst, traj)
	for m, d := range inst.Devices {
		for n, v := range alloc.Offload[m] {
			capBits := delta * p.RateCoeff * d.ChannelGain(traj[n], p.Alpha0, p.H1)
			if v > capBits+1e-6 {
				t.Errorf("device %d slot %d: volume %v exceeds slot capacity %v", m, n, v, capBits)
			}
		}
	}
}

func TestAllocate_ZeroLoadDevicesGetNoOffload(t *testing.T) {
	params := testParams()
	devices := []*core.Device{
		core.NewDevice(1, core.Pos{X: 0, Y: 0}, 30e6), // at the relay start
		core.NewDevice(2, core.Pos{X: 8, Y: 8}, 0),
		core.NewDevice(3, core.Pos{X: 2, Y: 9}, 0),
	}
	inst := core.NewInstance(devices, params)
	traj := core.StraightLine(params.Start(), params.End(), params.N)

	alloc, status := NewAllocator(solver.NewPenaltyBackend()).Allocate(inst, traj)
	if !status.IsOptimal() {
		t.Fatalf("expected optimal allocation, got %v", status)
	}
	for m := 1; m < 3; m++ {
		if off := alloc.OffloadedBits(m); off != 0 {
			t.Errorf("zero-load device %d offloads %v bits, want 0", m, off)
		}
	}
}

func TestAllocate_FallbackIsEvenSplit(t *testing.T) {
	inst := createTestInstance()
	p := inst.Params
	traj := core.StraightLine(p.Start(), p.End(), p.N)

	for _, backend := range []solver.Backend{failingBackend{}, erroringBackend{}} {
		alloc, status := NewAllocator(backend).Allocate(inst, traj)
		if status.IsOptimal() {
			t.Fatalf("expected non-optimal status, got %v", status)
		}
		want := EvenSplit(inst)
		for m := range inst.Devices {
			for n := range alloc.Offload[m] {
				if alloc.Offload[m][n] != want.Offload[m][n] {
					t.Fatalf("fallback differs from even split at device %d slot %d", m, n)
				}
			}
			if alloc.LocalFreq[m] != want.LocalFreq[m] || alloc.UAVFreq[m] != want.UAVFreq[m] {
				t.Fatalf("fallback frequencies differ from even split for device %d", m)
			}
		}
	}
}

func TestEvenSplit_ConservesLoad(t *testing.T) {
	inst := createTestInstance()
	alloc := EvenSplit(inst)
	p := inst.Params
	for m, d := range inst.Devices {
		if got := alloc.OffloadedBits(m); math.Abs(got-d.Load/2) > 1e-6 {
			t.Errorf("device %d: even split offloads %v, want %v", d.ID, got, d.Load/2)
		}
	}
	if !alloc.Conserves(inst.Devices, p.C, p.T, 1e-6) {
		t.Error("even split does not conserve workload")
	}
}
