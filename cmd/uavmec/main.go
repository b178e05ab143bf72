// Command uavmec runs the joint UAV trajectory / computation offloading
// optimization on a scenario and prints the resulting energy breakdown.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/elektrokombinacija/uav-mec-research/internal/algo"
	"github.com/elektrokombinacija/uav-mec-research/internal/config"
	"github.com/elektrokombinacija/uav-mec-research/internal/core"
	"github.com/elektrokombinacija/uav-mec-research/internal/solver"
)

func main() {
	scenarioPath := flag.String("scenario", "", "YAML scenario file (default: built-in four-corner layout)")
	flag.Parse()

	inst, err := loadInstance(*scenarioPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	fmt.Println("=== UAV-MEC Joint Trajectory/Resource Optimization ===")
	fmt.Printf("Instance: %d devices, N=%d slots, T=%.1fs, Vmax=%.1fm/s\n",
		len(inst.Devices), inst.Params.N, inst.Params.T, inst.Params.Vmax)

	engine := algo.NewBCD(solver.NewPenaltyBackend())
	start := time.Now()
	res, err := engine.Optimize(inst)
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	fmt.Printf("\nTerminated: %s after %d rounds (%d fully optimal), %v\n",
		res.State, res.Rounds, res.OptimalRounds, elapsed)

	fmt.Println("\nEnergy breakdown (J):")
	fmt.Printf("  communication : %10.3f\n", res.Energy.Comm)
	fmt.Printf("  local compute : %10.3f\n", res.Energy.Local)
	fmt.Printf("  UAV compute   : %10.3f\n", res.Energy.UAVCompute)
	fmt.Printf("  flight        : %10.3f\n", res.Energy.Flight)
	fmt.Printf("  weighted total: %10.3f\n", res.Energy.Total)

	delta := inst.Params.Delta()
	fmt.Println("\nTrajectory:")
	fmt.Printf("  path length   : %.2f m\n", res.Trajectory.PathLength())
	fmt.Printf("  max velocity  : %.2f m/s (bound %.2f)\n",
		res.Trajectory.MaxVelocity(delta), inst.Params.Vmax)

	fmt.Println("\nPer-device offload share:")
	for m, d := range inst.Devices {
		off := res.Allocation.OffloadedBits(m)
		fmt.Printf("  TD%d at (%.0f,%.0f): %.1f%% of %.2e bits offloaded\n",
			d.ID, d.Pos.X, d.Pos.Y, 100*off/d.Load, d.Load)
	}
}

// loadInstance reads a scenario file, or builds the canonical four-corner
// layout: devices at the corners of a 10x10 square, relay pinned (0,0)->(10,0).
func loadInstance(path string) (*core.Instance, error) {
	if path != "" {
		sc, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		return sc.Instance()
	}

	params := &core.Params{
		Alpha0:    1e-4,
		H1:        10,
		H2:        20,
		N:         50,
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
		MaxRounds: 8,
		Tolerance: 1e-3,
	}
	devices := []*core.Device{
		core.NewDevice(1, core.Pos{X: 10, Y: 10}, 45e6),
		core.NewDevice(2, core.Pos{X: 0, Y: 10}, 30e6),
		core.NewDevice(3, core.Pos{X: 0, Y: 0}, 30e6),
		core.NewDevice(4, core.Pos{X: 10, Y: 0}, 30e6),
	}
	inst := core.NewInstance(devices, params)
	return inst, inst.Validate()
}
