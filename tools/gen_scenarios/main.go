// Package main provides scenario generation for UAV-MEC sweep studies.
// Generates deterministic random device layouts with configurable parameters.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/elektrokombinacija/uav-mec-research/internal/config"
	"github.com/elektrokombinacija/uav-mec-research/internal/core"
)

func main() {
	var (
		outDir  = flag.String("out", "scenarios", "output directory")
		count   = flag.Int("count", 5, "number of scenarios")
		devices = flag.Int("devices", 4, "devices per scenario")
		area    = flag.Float64("area", 10, "square side length (m)")
		loadMin = flag.Float64("load-min", 20e6, "min device load (bits)")
		loadMax = flag.Float64("load-max", 60e6, "max device load (bits)")
		seed    = flag.Int64("seed", 42, "random seed")
	)
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(*seed))
	for i := 0; i < *count; i++ {
		sc := generate(rng, *devices, *area, *loadMin, *loadMax)
		name := fmt.Sprintf("scenario_%02d.yaml", i)
		path := filepath.Join(*outDir, name)
		if err := sc.Save(path); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		fmt.Printf("wrote %s (%d devices)\n", path, *devices)
	}
}

// generate builds one scenario: devices placed uniformly in the square, the
// relay crossing it along the bottom edge.
func generate(rng *rand.Rand, devices int, area, loadMin, loadMax float64) *config.Scenario {
	sc := &config.Scenario{
		Simulation: core.Params{
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
			EndX: area, EndY: 0,
			MaxRounds: 8,
			Tolerance: 1e-3,
		},
	}
	for d := 0; d < devices; d++ {
		sc.Devices = append(sc.Devices, config.DeviceSpec{
			ID:   d + 1,
			X:    rng.Float64() * area,
			Y:    rng.Float64() * area,
			Load: loadMin + rng.Float64()*(loadMax-loadMin),
		})
	}
	return sc
}
